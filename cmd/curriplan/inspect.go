package main

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/pdiddy/curriplan/internal/convert"
	"github.com/pdiddy/curriplan/internal/plan"
	"github.com/pdiddy/curriplan/internal/sheet"
)

// inspectReport explains how the heuristics read a spreadsheet.
type inspectReport struct {
	File          string `json:"file" yaml:"file"`
	SpecialtyName string `json:"specialtyName" yaml:"specialtyName"`

	// MatchCounts holds the header keyword matches of each scanned row.
	MatchCounts []int           `json:"matchCounts" yaml:"matchCounts"`
	HeaderRow   int             `json:"headerRow" yaml:"headerRow"`
	Columns     []columnBinding `json:"columns" yaml:"columns"`
	Unmapped    []plan.Field    `json:"unmapped" yaml:"unmapped"`

	DataRows int               `json:"dataRows" yaml:"dataRows"`
	Entries  int               `json:"entries" yaml:"entries"`
	Skipped  []plan.SkippedRow `json:"skipped" yaml:"skipped"`
}

type columnBinding struct {
	Field  plan.Field `json:"field" yaml:"field"`
	Column int        `json:"column" yaml:"column"`
	Letter string     `json:"letter" yaml:"letter"`
	Header string     `json:"header" yaml:"header"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Show how the header heuristics read a spreadsheet",
	Long: `Inspect prints the keyword match count of every scanned row, the chosen
header row, the column bound to each field and the data rows that were
skipped with the reason. Use it when a plan yields fewer entries than
expected.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, err := newExtractor()
		if err != nil {
			return err
		}
		grid, err := sheet.Load(args[0], sheet.Options{Sheet: cfg.Sheet})
		if err != nil {
			return err
		}
		ex, err := x.Extract(grid)
		if err != nil {
			return err
		}

		report := buildReport(args[0], grid, ex, x)
		var buf bytes.Buffer
		if err := convert.EncodeValue(&buf, report, cfg.Output.Format); err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	},
}

func buildReport(file string, grid sheet.Grid, ex *plan.Extraction, x *plan.Extractor) inspectReport {
	report := inspectReport{
		File:          file,
		SpecialtyName: ex.Result.SpecialtyName,
		MatchCounts:   []int{},
		HeaderRow:     ex.HeaderRow,
		Columns:       []columnBinding{},
		Unmapped:      []plan.Field{},
		DataRows:      ex.DataRows,
		Entries:       len(ex.Result.Entries),
		Skipped:       ex.Skipped,
	}
	if report.Skipped == nil {
		report.Skipped = []plan.SkippedRow{}
	}

	for r := 0; r < min(x.Window(), grid.Rows()); r++ {
		report.MatchCounts = append(report.MatchCounts, plan.MatchCount(grid[r], x.Synonyms()))
	}

	for _, f := range plan.Fields {
		c, ok := ex.Mapping.Column(f)
		if !ok {
			report.Unmapped = append(report.Unmapped, f)
			continue
		}
		report.Columns = append(report.Columns, columnBinding{
			Field:  f,
			Column: c,
			Letter: sheet.ColumnName(c),
			Header: grid.Cell(ex.HeaderRow, c),
		})
	}
	return report
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
