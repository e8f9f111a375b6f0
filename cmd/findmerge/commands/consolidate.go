package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/CertiKProject/findmerge"
	"github.com/CertiKProject/findmerge/internal/config"
	"github.com/CertiKProject/findmerge/internal/logging"
	"github.com/CertiKProject/findmerge/internal/output"
	"github.com/CertiKProject/findmerge/internal/types"
)

var flagFailOn string

var consolidateCmd = &cobra.Command{
	Use:   "consolidate [file]",
	Short: "Deduplicate a findings JSON array from a file or stdin",
	Long: `Reads a JSON array of findings produced by upstream review stages,
merges semantically equivalent entries, and writes the canonical list.
With no argument (or "-"), findings are read from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConsolidate,
}

func init() {
	consolidateCmd.Flags().StringVar(&flagFailOn, "fail-on", "", "Exit with code 1 if canonical findings at or above this severity remain (critical, high, medium, low)")
	rootCmd.AddCommand(consolidateCmd)
}

func runConsolidate(cmd *cobra.Command, args []string) error {
	if err := logging.Init(flagDebug); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	inputPath := ""
	if len(args) == 1 && args[0] != "-" {
		inputPath = args[0]
	}

	cfg := loadConfig(cmd, inputPath)

	in, closeIn, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer closeIn()

	findings, err := types.DecodeFindings(in)
	if err != nil {
		return err
	}

	ctx, cancel := contextWithInterrupt()
	defer cancel()

	start := time.Now()
	result, err := findmerge.ConsolidateResult(ctx, findings, buildOptions(cfg)...)
	if err != nil {
		return fmt.Errorf("consolidation failed: %w", err)
	}
	logging.Logger.Debugw("consolidated findings",
		"input", result.InputCount,
		"canonical", len(result.Findings),
		"merged", result.Merged(),
		"duration", time.Since(start),
	)

	if err := writeOutput(cmd, result); err != nil {
		return err
	}

	return checkFailOnThreshold(result)
}

// loadConfig reads .findmerge.yml next to the input file (or in the
// working directory for stdin input) and fills in any flags the user
// did not set explicitly.
func loadConfig(cmd *cobra.Command, inputPath string) config.Config {
	dir := inputPath
	if dir == "" {
		dir = "."
	}
	cfg, err := config.Load(dir)
	if err != nil {
		logging.Logger.Warnw("ignoring config file", "error", err)
		return config.Config{}
	}
	if !cmd.Flags().Changed("threshold") && cfg.Threshold != 0 {
		flagThreshold = cfg.Threshold
	}
	if !cmd.Flags().Changed("line-window") && cfg.LineWindow != 0 {
		flagLineWindow = cfg.LineWindow
	}
	if !cmd.Flags().Changed("workers") && cfg.Workers != 0 {
		flagWorkers = cfg.Workers
	}
	if !cmd.Flags().Changed("format") && cfg.Format != "" {
		flagFormat = cfg.Format
	}
	if !cmd.Flags().Changed("fail-on") && cfg.FailOn != "" {
		flagFailOn = cfg.FailOn
	}
	return cfg
}

func buildOptions(cfg config.Config) []findmerge.Option {
	opts := []findmerge.Option{
		findmerge.WithThreshold(flagThreshold),
		findmerge.WithLineWindow(flagLineWindow),
		findmerge.WithWorkers(flagWorkers),
	}
	if cfg.Weights != (findmerge.Weights{}) {
		opts = append(opts, findmerge.WithWeights(cfg.Weights))
	}
	return opts
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening findings file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func contextWithInterrupt() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx, cancel
}

func writeOutput(cmd *cobra.Command, result *types.Result) error {
	output.ToolVersion = Version

	var formatter output.Formatter
	switch strings.ToLower(flagFormat) {
	case "terminal":
		noColor := flagNoColor || os.Getenv("NO_COLOR") != ""
		formatter = &output.TerminalFormatter{NoColor: noColor, Verbose: flagDebug}
	case "sarif":
		formatter = &output.SARIFFormatter{}
	case "markdown", "md":
		formatter = &output.MarkdownFormatter{}
	case "json", "":
		formatter = &output.JSONFormatter{}
	default:
		return fmt.Errorf("unknown format %q", flagFormat)
	}

	var w io.Writer = cmd.OutOrStdout()
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	return formatter.Format(w, result)
}

func checkFailOnThreshold(result *types.Result) error {
	if flagFailOn == "" {
		return nil
	}
	threshold, err := findmerge.ParseSeverity(flagFailOn)
	if err != nil {
		return fmt.Errorf("invalid --fail-on: %w", err)
	}
	for _, f := range result.Findings {
		if f.Severity >= threshold {
			os.Exit(1)
		}
	}
	return nil
}
