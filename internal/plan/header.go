// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/curriplan/internal/sheet"
)

// specialtyMarkers identify the cell carrying the program name.
var specialtyMarkers = []string{"специальность", "specialty"}

// FindSpecialty scans the first window rows in row-major order for a cell
// containing a specialty marker and returns the text after its first
// colon. A cell without a colon yields its whole trimmed text. If no cell
// matches, sentinel is returned.
func FindSpecialty(g sheet.Grid, window int, sentinel string) string {
	for r := 0; r < min(window, g.Rows()); r++ {
		for _, cell := range g[r] {
			folded := foldText(cell)
			for _, m := range specialtyMarkers {
				if strings.Contains(folded, m) {
					return afterColon(cell)
				}
			}
		}
	}
	return sentinel
}

func afterColon(s string) string {
	if i := strings.IndexAny(s, ":："); i >= 0 {
		_, size := utf8.DecodeRuneInString(s[i:])
		return strings.TrimSpace(s[i+size:])
	}
	return strings.TrimSpace(s)
}

// Mapping binds logical fields to zero-based column indexes.
type Mapping map[Field]int

// Column returns the column bound to f.
func (m Mapping) Column(f Field) (int, bool) {
	c, ok := m[f]
	return c, ok
}

// rowValues folds every cell of row and returns them as a set.
func rowValues(row []string) map[string]bool {
	set := make(map[string]bool, len(row))
	for _, cell := range row {
		set[foldText(cell)] = true
	}
	return set
}

// MatchCount counts the (field, keyword) pairs of table whose keyword is a
// cell value of row.
func MatchCount(row []string, table SynonymTable) int {
	values := rowValues(row)
	n := 0
	for _, keywords := range table {
		for _, k := range keywords {
			if values[k] {
				n++
			}
		}
	}
	return n
}

// LocateHeader returns the index of the first row among the first window
// rows whose match count reaches threshold. The first qualifying row wins
// even if a later one matches more keywords.
func LocateHeader(g sheet.Grid, table SynonymTable, window, threshold int) (int, bool) {
	for r := 0; r < min(window, g.Rows()); r++ {
		if MatchCount(g[r], table) >= threshold {
			return r, true
		}
	}
	return -1, false
}

// MapHeader binds each field to the column of the first of its keywords,
// in priority order, that appears verbatim in row. When the keyword occurs
// in several columns the leftmost one is used. Fields without a matching
// keyword are left out.
func MapHeader(row []string, table SynonymTable) Mapping {
	columns := make([]string, len(row))
	for i, cell := range row {
		columns[i] = foldText(cell)
	}

	m := make(Mapping)
	for f, keywords := range table {
		for _, k := range keywords {
			if c := indexOf(columns, k); c >= 0 {
				m[f] = c
				break
			}
		}
	}
	return m
}

func indexOf(values []string, v string) int {
	for i, s := range values {
		if s == v {
			return i
		}
	}
	return -1
}
