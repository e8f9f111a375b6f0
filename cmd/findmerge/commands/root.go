package commands

import (
	"github.com/spf13/cobra"
)

var (
	flagFormat     string
	flagOutput     string
	flagThreshold  float64
	flagLineWindow int
	flagWorkers    int
	flagNoColor    bool
	flagDebug      bool
)

var rootCmd = &cobra.Command{
	Use:   "findmerge",
	Short: "Consolidate findings from multi-stage PR reviews",
	Long:  `Findmerge merges the findings emitted by multiple independent review passes over the same pull request into one deduplicated list: semantically equivalent findings are clustered, the strictest severity kept, and the best evidence preserved.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "json", "Output format (json, terminal, markdown, sarif)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().Float64Var(&flagThreshold, "threshold", 0, "Equivalence threshold in (0, 1] (default 0.6)")
	rootCmd.PersistentFlags().IntVar(&flagLineWindow, "line-window", 0, "Line distance window for proximity scoring (default 25)")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "Number of scoring workers (default: NumCPU)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
