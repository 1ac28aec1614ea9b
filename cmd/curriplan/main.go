// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the curriplan CLI. The root command
// takes one spreadsheet path and prints the extracted plan as JSON;
// subcommands convert batches, archive plans and inspect the heuristics.
// Every failure is reported as {"error": "..."} on stderr with exit code 1.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/curriplan/internal/convert"
	"github.com/pdiddy/curriplan/internal/logging"
	"github.com/pdiddy/curriplan/internal/plan"
	"github.com/pdiddy/curriplan/internal/sheet"
	"github.com/pdiddy/curriplan/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is the configuration resolved for the running command.
	cfg types.Config

	logger = zap.NewNop()
)

var errMissingArgument = errors.New("spreadsheet path was not given")

// rootCmd extracts one plan. Subcommands are registered in their own files.
var rootCmd = &cobra.Command{
	Use:   "curriplan FILE",
	Short: "Extract curriculum plans from spreadsheets as JSON",
	Long: `curriplan reads an academic course plan from an .xlsx or .csv file,
finds the specialty name and the table header by keyword heuristics and
prints every subject row as normalized JSON: semester, lecture, practice and
lab hours, form of attestation and whether the group is split into
subgroups. Rows whose subject or semester cannot be read are skipped.`,
	Args:          requireFile,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := logging.New(verbose)
		if err != nil {
			return err
		}
		logger = l

		c, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg = c
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runExtract,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./curriplan.yaml or ~/.config/curriplan/curriplan.yaml)")
	rootCmd.PersistentFlags().String("sheet", "", "worksheet to read (default: first sheet)")
	rootCmd.PersistentFlags().String("format", string(types.FormatJSON), "output format: json or yaml")
	rootCmd.PersistentFlags().String("labels", string(types.LabelsEnglish), "attestation labels: english or native")
	rootCmd.PersistentFlags().String("synonyms", "", "YAML file extending the header synonym table")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log heuristic decisions to stderr")
}

func requireFile(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return errMissingArgument
	case len(args) > 1:
		return fmt.Errorf("expected one spreadsheet path, got %d arguments", len(args))
	}
	return nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	x, err := newExtractor()
	if err != nil {
		return err
	}

	ex, err := convert.Extract(x, args[0], convertOptions())
	if err != nil {
		return err
	}
	logger.Debug("plan extracted",
		zap.String("file", args[0]),
		zap.Int("entries", len(ex.Result.Entries)),
		zap.Int("skipped", len(ex.Skipped)))

	// Encode fully before writing so a failure leaves stdout empty.
	var buf bytes.Buffer
	if err := convert.Encode(&buf, ex.Result, cfg.Output.Format, cfg.Output.Labels); err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(buf.Bytes())
	return err
}

// newExtractor builds an Extractor from the resolved configuration.
func newExtractor() (*plan.Extractor, error) {
	var table plan.SynonymTable
	if cfg.SynonymsFile != "" {
		t, err := plan.LoadSynonyms(cfg.SynonymsFile)
		if err != nil {
			return nil, err
		}
		table = t
	}
	return plan.NewExtractor(cfg, table, logger), nil
}

func convertOptions() convert.Options {
	return convert.Options{
		Sheet:  cfg.Sheet,
		Format: cfg.Output.Format,
		Labels: cfg.Output.Labels,
	}
}

type errorEnvelope struct {
	Error string `json:"error"`
}

// errorMessage renders err for the error envelope. Known failures keep
// their own message; anything else is reported as a processing failure.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, errMissingArgument),
		errors.Is(err, sheet.ErrNotFound),
		errors.Is(err, plan.ErrNoHeader),
		errors.Is(err, plan.ErrMissingColumn):
		return err.Error()
	}
	return "processing failed: " + err.Error()
}

func writeError(w io.Writer, err error) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(errorEnvelope{Error: errorMessage(err)})
}

// run executes the command tree with args and returns the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		writeError(stderr, err)
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
