// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns curriculum spreadsheets into plan documents,
// either one at a time onto a writer or in batches into an output
// directory.
package convert

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/curriplan/internal/plan"
	"github.com/pdiddy/curriplan/internal/sheet"
	"github.com/pdiddy/curriplan/pkg/types"
)

// Status is the outcome of converting one file in a batch.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Options controls reading and encoding.
type Options struct {
	Sheet  string
	Format types.OutputFormat
	Labels types.LabelSet

	// Force overwrites existing outputs instead of skipping them.
	Force bool
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Extract loads the spreadsheet at path and runs x over it.
func Extract(x *plan.Extractor, path string, opts Options) (*plan.Extraction, error) {
	grid, err := sheet.Load(path, sheet.Options{Sheet: opts.Sheet})
	if err != nil {
		return nil, err
	}
	return x.Extract(grid)
}

// Encode writes r to w in the requested format. JSON is indented by two
// spaces with non-ASCII and HTML characters written literally.
func Encode(w io.Writer, r types.PlanResult, format types.OutputFormat, labels types.LabelSet) error {
	if labels == types.LabelsNative {
		r = r.WithNativeLabels()
	}
	return encode(w, r, format)
}

func encode(w io.Writer, v any, format types.OutputFormat) error {
	switch format {
	case types.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	case types.FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// EncodeValue writes any document (listings, reports) in format.
func EncodeValue(w io.Writer, v any, format types.OutputFormat) error {
	return encode(w, v, format)
}

// Extension returns the file extension for format.
func Extension(format types.OutputFormat) string {
	if format == types.FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// ConvertFile converts the spreadsheet at path into outDir/<base><ext>.
// An existing output is skipped unless opts.Force is set. Progress is
// written to w.
func ConvertFile(x *plan.Extractor, path, outDir string, opts Options, w io.Writer) Status {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outPath := filepath.Join(outDir, base+Extension(opts.Format))

	if !opts.Force {
		if _, err := os.Stat(outPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
			return StatusSkipped
		}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	ex, err := Extract(x, path, opts)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	f, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}
	if err := Encode(f, ex.Result, opts.Format, opts.Labels); err != nil {
		f.Close()
		os.Remove(outPath)
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	fmt.Fprintf(w, "converted: %s (%d entries, %d rows skipped)\n",
		base, len(ex.Result.Entries), len(ex.Skipped))
	return StatusConverted
}

// ConvertBatch converts every path into outDir, printing per-file status
// to w and returning a summary. A failing file does not stop the batch.
func ConvertBatch(x *plan.Extractor, paths []string, outDir string, opts Options, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range paths {
		switch ConvertFile(x, p, outDir, opts, w) {
		case StatusConverted:
			result.Converted++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}
