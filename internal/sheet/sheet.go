// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sheet loads spreadsheet files into a header-less grid of cell
// strings. Excel workbooks are read with excelize; CSV files with
// encoding/csv.
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNotFound is returned when the spreadsheet path does not exist.
var ErrNotFound = errors.New("file not found")

// ErrUnsupported is returned for file extensions no reader handles.
var ErrUnsupported = errors.New("unsupported file type")

// Grid is a loaded sheet: rows of cell text. Rows may be ragged.
type Grid [][]string

// Rows returns the number of rows in g.
func (g Grid) Rows() int {
	return len(g)
}

// Cell returns the text at row r, column c, or "" when the cell lies
// outside the grid.
func (g Grid) Cell(r, c int) string {
	if r < 0 || r >= len(g) || c < 0 || c >= len(g[r]) {
		return ""
	}
	return g[r][c]
}

// Options controls how a file is read.
type Options struct {
	// Sheet names the worksheet of a workbook; empty selects the first one.
	// Ignored for CSV.
	Sheet string
}

// Load reads the file at path into a Grid. The file handle is closed
// before Load returns.
func Load(path string, opts Options) (Grid, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return loadWorkbook(path, opts.Sheet)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		return ReadCSV(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

func loadWorkbook(path, sheet string) (Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()
	return readWorkbook(f, sheet)
}

func readWorkbook(f *excelize.File, sheet string) (Grid, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return Grid(rows), nil
}

// ReadCSV reads comma-separated rows from r. Rows may have differing
// field counts.
func ReadCSV(r io.Reader) (Grid, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	// Spreadsheet exports often prefix UTF-8 CSV with a BOM.
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return Grid(rows), nil
}

// ColumnName returns the spreadsheet letter for the zero-based column
// index c ("A" for 0).
func ColumnName(c int) string {
	name, err := excelize.ColumnNumberToName(c + 1)
	if err != nil {
		return ""
	}
	return name
}
