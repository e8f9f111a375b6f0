package cluster_test

import (
	"testing"

	"github.com/CertiKProject/findmerge/internal/cluster"
	"github.com/stretchr/testify/require"
)

// pairScores builds a symmetric score lookup from explicit (i, j) pairs;
// unlisted pairs score zero.
func pairScores(scores map[[2]int]float64) func(i, j int) float64 {
	return func(i, j int) float64 {
		if s, ok := scores[[2]int{i, j}]; ok {
			return s
		}
		return scores[[2]int{j, i}]
	}
}

func TestPartitionEmpty(t *testing.T) {
	require.Nil(t, cluster.Partition(0, nil, cluster.DefaultThreshold))
}

func TestPartitionSingletons(t *testing.T) {
	score := func(i, j int) float64 { return 0 }
	got := cluster.Partition(3, score, cluster.DefaultThreshold)
	require.Equal(t, [][]int{{0}, {1}, {2}}, got)
}

func TestPartitionSimplePair(t *testing.T) {
	score := pairScores(map[[2]int]float64{{0, 2}: 0.9})
	got := cluster.Partition(3, score, cluster.DefaultThreshold)
	require.Equal(t, [][]int{{0, 2}, {1}}, got)
}

func TestPartitionTransitiveChain(t *testing.T) {
	// A~B and B~C above threshold, A~C below: transitive closure puts
	// all three in one cluster.
	score := pairScores(map[[2]int]float64{
		{0, 1}: 0.65,
		{1, 2}: 0.65,
		{0, 2}: 0.3,
	})
	got := cluster.Partition(3, score, cluster.DefaultThreshold)
	require.Equal(t, [][]int{{0, 1, 2}}, got)
}

func TestPartitionThresholdBoundary(t *testing.T) {
	// Scores exactly at the threshold merge; scores just below do not.
	atBoundary := pairScores(map[[2]int]float64{{0, 1}: 0.6})
	require.Equal(t, [][]int{{0, 1}}, cluster.Partition(2, atBoundary, 0.6))

	below := pairScores(map[[2]int]float64{{0, 1}: 0.5999})
	require.Equal(t, [][]int{{0}, {1}}, cluster.Partition(2, below, 0.6))
}

func TestPartitionClusterOrderFollowsFirstAppearance(t *testing.T) {
	// Element 3 pairs with 1; the {1,3} cluster must still appear after
	// the {0} cluster and before {2}.
	score := pairScores(map[[2]int]float64{{1, 3}: 0.8})
	got := cluster.Partition(4, score, cluster.DefaultThreshold)
	require.Equal(t, [][]int{{0}, {1, 3}, {2}}, got)
}

func TestPartitionDeterministic(t *testing.T) {
	score := pairScores(map[[2]int]float64{
		{0, 4}: 0.7,
		{2, 3}: 0.7,
		{1, 4}: 0.7,
	})
	first := cluster.Partition(5, score, cluster.DefaultThreshold)
	for i := 0; i < 50; i++ {
		require.Equal(t, first, cluster.Partition(5, score, cluster.DefaultThreshold))
	}
	// 0, 1, 4 chain through 4.
	require.Equal(t, [][]int{{0, 1, 4}, {2, 3}}, first)
}
