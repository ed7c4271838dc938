// Package main implements the uatrecon CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"uatrecon/pkg/engine"
	"uatrecon/pkg/parser"
	"uatrecon/pkg/report"
	"uatrecon/pkg/schema"
)

var (
	logger  *zap.Logger
	verbose bool

	outputPath    string
	outputFormat  string
	columnMapPath string
)

var rootCmd = &cobra.Command{
	Use:   "uatrecon",
	Short: "Reconcile employee logins between development and UAT",
	Long: `uatrecon compares employee login identifiers across the development
and UAT environments. Records are grouped by employee id and type; groups
containing both a "Y"- and an "N"-flagged row and no "T"-status row are
eligible, and each eligible "Y"-flagged row is classified as FULL_MATCH,
PARTIAL_MATCH, or NO_MATCH against all rows for the same employee id.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run [input.csv]",
	Short: "Classify login matches for an input table",
	Long: `Parses the input CSV (UTF-8, UTF-16, or Latin-1), resolves the six
required columns (emp_id, emp_type, dev_login, uat_login, status, flag),
computes group eligibility, classifies every candidate row, and writes the
output table as CSV or the full report as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runReconcile,
}

func runReconcile(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	columnMapJSON := ""
	if columnMapPath != "" {
		raw, err := os.ReadFile(columnMapPath)
		if err != nil {
			return fmt.Errorf("failed to read column map: %w", err)
		}
		columnMapJSON = string(raw)
	}

	parsed, err := parser.ParseTableWithWarnings(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", inputPath, err)
	}
	logger.Debug("parsed input table",
		zap.String("input", inputPath),
		zap.String("encoding", parsed.Encoding),
		zap.Int("rows", len(parsed.Records)),
		zap.Int("warnings", len(parsed.Warnings)),
	)
	for _, w := range parsed.Warnings {
		logger.Warn("parse warning", zap.Int("row", w.Row), zap.String("message", w.Message))
	}

	records, err := schema.NormalizeTable(parsed.Records, columnMapJSON)
	if err != nil {
		return err
	}

	eligible := engine.EligibleGroups(records)
	result := engine.ClassifyWithStats(records, eligible)
	rep := report.Build(result, parsed.Warnings)

	logger.Info("classification complete",
		zap.Int("records", result.Stats.TotalRecords),
		zap.Int("groups", result.Index.TotalGroups),
		zap.Int("eligibleGroups", result.Index.EligibleGroups),
		zap.Int("candidates", result.Stats.Candidates),
		zap.Int("full", result.Stats.FullMatches),
		zap.Int("partial", result.Stats.PartialMatches),
		zap.Int("none", result.Stats.NoMatches),
	)

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch outputFormat {
	case "csv":
		return rep.WriteCSV(out)
	case "json":
		return rep.WriteJSON(out)
	default:
		return fmt.Errorf("unknown output format %q (want csv or json)", outputFormat)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	runCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout)")
	runCmd.Flags().StringVarP(&outputFormat, "format", "f", "csv", "output format: csv or json")
	runCmd.Flags().StringVar(&columnMapPath, "column-map", "", "JSON file mapping source columns to canonical columns")
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
