// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/curriplan/internal/sheet"
)

func TestFindSpecialty(t *testing.T) {
	tests := []struct {
		name string
		grid sheet.Grid
		want string
	}{
		{
			name: "text after colon",
			grid: sheet.Grid{{"План"}, {"", "Специальность: 09.02.07 Информационные системы "}},
			want: "09.02.07 Информационные системы",
		},
		{
			name: "splits on the first colon only",
			grid: sheet.Grid{{"СПЕЦИАЛЬНОСТЬ: Программирование: базовый уровень"}},
			want: "Программирование: базовый уровень",
		},
		{
			name: "full-width colon",
			grid: sheet.Grid{{"Specialty：Applied Informatics"}},
			want: "Applied Informatics",
		},
		{
			name: "no colon returns the cell",
			grid: sheet.Grid{{"  Специальность 38.02.01  "}},
			want: "Специальность 38.02.01",
		},
		{
			name: "row-major first match wins",
			grid: sheet.Grid{{"x", "Специальность: Первая"}, {"Специальность: Вторая"}},
			want: "Первая",
		},
		{
			name: "not found",
			grid: sheet.Grid{{"Учебный план"}},
			want: "not found",
		},
		{
			name: "empty grid",
			grid: sheet.Grid{},
			want: "not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindSpecialty(tt.grid, 10, "not found"))
		})
	}
}

func TestFindSpecialtyWindow(t *testing.T) {
	g := make(sheet.Grid, 11)
	g[10] = []string{"Специальность: Поздняя"}
	assert.Equal(t, "not found", FindSpecialty(g, 10, "not found"))

	g[9] = []string{"Специальность: Ранняя"}
	assert.Equal(t, "Ранняя", FindSpecialty(g, 10, "not found"))
}

func TestMatchCount(t *testing.T) {
	table := DefaultSynonyms()
	assert.Equal(t, 0, MatchCount([]string{"Учебный план"}, table))
	assert.Equal(t, 2, MatchCount([]string{" ДИСЦИПЛИНА ", "Семестр", "Итого"}, table))
	// Exact match only: a cell containing a keyword does not count.
	assert.Equal(t, 0, MatchCount([]string{"Дисциплина (модуль)", "Семестр обучения"}, table))
}

func TestLocateHeaderFirstMatchWins(t *testing.T) {
	g := sheet.Grid{
		{"title"},
		{"Дисциплина", "Семестр"},
		planHeader,
	}
	row, ok := LocateHeader(g, DefaultSynonyms(), 10, 2)
	require.True(t, ok)
	assert.Equal(t, 1, row)

	_, ok = LocateHeader(g, DefaultSynonyms(), 1, 2)
	assert.False(t, ok)
}

func TestMapHeader(t *testing.T) {
	row := []string{"№", "Предмет", "Сем.", "Лек.", "Практические занятия", "Лаб.", "Контроль", "Деление"}
	m := MapHeader(row, DefaultSynonyms())
	assert.Equal(t, Mapping{
		FieldSubjectName:       1,
		FieldSemester:          2,
		FieldLectureHours:      3,
		FieldPracticeHours:     4,
		FieldLabHours:          5,
		FieldAttestation:       6,
		FieldSplitForSubgroups: 7,
	}, m)

	c, ok := m.Column(FieldSemester)
	assert.True(t, ok)
	assert.Equal(t, 2, c)
}

func TestMapHeaderKeywordPriority(t *testing.T) {
	// "дисциплина" outranks "предмет" even though it sits further right.
	row := []string{"Предмет", "Семестр", "Дисциплина", "Дисциплина"}
	m := MapHeader(row, DefaultSynonyms())
	assert.Equal(t, 2, m[FieldSubjectName])
	assert.Equal(t, 1, m[FieldSemester])
	_, ok := m.Column(FieldLabHours)
	assert.False(t, ok)
}

func TestLoadSynonyms(t *testing.T) {
	dir := t.TempDir()

	extend := filepath.Join(dir, "extend.yaml")
	require.NoError(t, os.WriteFile(extend, []byte(`
synonyms:
  subjectName: ["Наименование", "  "]
  semester: ["Период"]
`), 0o644))
	table, err := LoadSynonyms(extend)
	require.NoError(t, err)
	assert.Equal(t, "дисциплина", table[FieldSubjectName][0])
	assert.Equal(t, "наименование", table[FieldSubjectName][len(table[FieldSubjectName])-1])
	assert.Contains(t, table[FieldSemester], "период")

	replace := filepath.Join(dir, "replace.yaml")
	require.NoError(t, os.WriteFile(replace, []byte(`
replace: true
synonyms:
  subjectName: ["Course"]
`), 0o644))
	table, err = LoadSynonyms(replace)
	require.NoError(t, err)
	assert.Equal(t, []string{"course"}, table[FieldSubjectName])
	assert.Equal(t, DefaultSynonyms()[FieldSemester], table[FieldSemester])

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("synonyms:\n  credits: [\"ЗЕТ\"]\n"), 0o644))
	_, err = LoadSynonyms(unknown)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credits")

	_, err = LoadSynonyms(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
