// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plan turns a loaded curriculum sheet into PlanEntries. It finds
// the specialty name and the header row heuristically, maps logical fields
// to columns through a synonym table and normalizes every data row below
// the header. Rows that fail to normalize are dropped, never reported as
// errors.
package plan

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/curriplan/internal/sheet"
	"github.com/pdiddy/curriplan/pkg/types"
)

var (
	// ErrNoHeader is returned when no row in the scan window matches
	// enough header keywords.
	ErrNoHeader = errors.New("header row not found")

	// ErrMissingColumn is returned when a required field has no column.
	ErrMissingColumn = errors.New("required column not found")
)

// Extractor holds the heuristics' settings. The zero value is not usable;
// build one with NewExtractor.
type Extractor struct {
	synonyms  SynonymTable
	window    int
	threshold int
	sentinel  string
	log       *zap.Logger
}

// NewExtractor returns an Extractor for cfg. A nil table selects
// DefaultSynonyms and a nil logger discards diagnostics.
func NewExtractor(cfg types.Config, table SynonymTable, log *zap.Logger) *Extractor {
	def := types.DefaultConfig()
	if table == nil {
		table = DefaultSynonyms()
	}
	if log == nil {
		log = zap.NewNop()
	}
	x := &Extractor{
		synonyms:  table,
		window:    cfg.Scan.Window,
		threshold: cfg.Scan.Threshold,
		sentinel:  cfg.Specialty.Sentinel,
		log:       log,
	}
	if x.window <= 0 {
		x.window = def.Scan.Window
	}
	if x.threshold <= 0 {
		x.threshold = def.Scan.Threshold
	}
	if x.sentinel == "" {
		x.sentinel = def.Specialty.Sentinel
	}
	return x
}

// Window returns how many leading rows the heuristics scan.
func (x *Extractor) Window() int { return x.window }

// Synonyms returns the table used to recognize header cells.
func (x *Extractor) Synonyms() SynonymTable { return x.synonyms }

// SkippedRow records a data row that produced no entry.
type SkippedRow struct {
	// Row is the zero-based row index in the sheet.
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Extraction is the outcome of Extract: the result document plus what the
// heuristics decided along the way.
type Extraction struct {
	Result    types.PlanResult
	HeaderRow int
	Mapping   Mapping

	// DataRows is the number of rows below the header row.
	DataRows int
	Skipped  []SkippedRow
}

// Extract runs the specialty finder, the header locator and the row
// normalizer over g.
func (x *Extractor) Extract(g sheet.Grid) (*Extraction, error) {
	specialty := FindSpecialty(g, x.window, x.sentinel)

	header, ok := LocateHeader(g, x.synonyms, x.window, x.threshold)
	if !ok {
		return nil, fmt.Errorf("%w in the first %d rows", ErrNoHeader, x.window)
	}
	mapping := MapHeader(g[header], x.synonyms)
	if _, ok := mapping[FieldSubjectName]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, FieldSubjectName)
	}
	x.log.Debug("header located",
		zap.Int("row", header),
		zap.Any("mapping", mapping),
		zap.String("specialty", specialty))

	ex := &Extraction{
		Result: types.PlanResult{
			SpecialtyName: specialty,
			Entries:       []types.PlanEntry{},
		},
		HeaderRow: header,
		Mapping:   mapping,
	}

	for r := header + 1; r < g.Rows(); r++ {
		ex.DataRows++
		entry, reason := normalizeRow(g, r, mapping)
		if reason != "" {
			ex.Skipped = append(ex.Skipped, SkippedRow{Row: r, Reason: reason})
			x.log.Debug("row skipped", zap.Int("row", r), zap.String("reason", reason))
			continue
		}
		ex.Result.Entries = append(ex.Result.Entries, entry)
	}
	return ex, nil
}

// normalizeRow builds the entry for row r. A non-empty reason means the
// row is dropped.
func normalizeRow(g sheet.Grid, r int, m Mapping) (types.PlanEntry, string) {
	cell := func(f Field) (string, bool) {
		c, ok := m[f]
		if !ok {
			return "", false
		}
		return g.Cell(r, c), true
	}
	text := func(f Field) string {
		s, _ := cell(f)
		return s
	}

	subject, _ := cell(FieldSubjectName)
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return types.PlanEntry{}, "empty subject name"
	}

	semText, ok := cell(FieldSemester)
	if !ok {
		return types.PlanEntry{}, "no semester column"
	}
	semester, err := parseInt(semText)
	if err != nil {
		return types.PlanEntry{}, fmt.Sprintf("semester: %v", err)
	}

	var hours [3]int
	for i, f := range []Field{FieldLectureHours, FieldPracticeHours, FieldLabHours} {
		n, err := parseHours(text(f))
		if err != nil {
			return types.PlanEntry{}, fmt.Sprintf("%s: %v", f, err)
		}
		hours[i] = n
	}

	return types.PlanEntry{
		SubjectName:       subject,
		Semester:          semester,
		LectureHours:      hours[0],
		PracticeHours:     hours[1],
		LabHours:          hours[2],
		Attestation:       ParseAttestation(text(FieldAttestation)),
		SplitForSubgroups: ParseSplit(text(FieldSplitForSubgroups)),
	}, ""
}
