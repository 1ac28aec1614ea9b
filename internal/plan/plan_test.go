// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/curriplan/internal/sheet"
	"github.com/pdiddy/curriplan/pkg/types"
)

var planHeader = []string{"Дисциплина", "Семестр", "Лекции", "Практика", "Лабораторные", "Форма контроля", "Деление на подгруппы"}

func newTestExtractor() *Extractor {
	return NewExtractor(types.DefaultConfig(), nil, nil)
}

// wellFormedGrid has the header at row 3, five valid rows and two
// malformed ones.
func wellFormedGrid() sheet.Grid {
	return sheet.Grid{
		{"Учебный план"},
		{"", "Специальность: 09.02.07 Информационные системы"},
		{},
		planHeader,
		{"Математика", "1", "36", "18", "", "Экзамен", "нет"},
		{"Физика", "1", "32", "16", "16", "Дифференцированный зачёт", "да"},
		{"История", "2", "", "34", "", "Зачёт", ""},
		{"Информатика", "2", "20", "", "40", "экзамен", "+"},
		{"Английский язык", "3", "0", "68", "0", "зачет", "1"},
		{"Философия", "осень", "30", "", "", "Экзамен", ""},
		{"Химия", "3", "много", "10", "", "Зачёт", ""},
	}
}

func TestExtractWellFormed(t *testing.T) {
	ex, err := newTestExtractor().Extract(wellFormedGrid())
	require.NoError(t, err)

	assert.Equal(t, 3, ex.HeaderRow)
	assert.Equal(t, "09.02.07 Информационные системы", ex.Result.SpecialtyName)
	require.Len(t, ex.Result.Entries, 5)

	names := make([]string, len(ex.Result.Entries))
	for i, e := range ex.Result.Entries {
		names[i] = e.SubjectName
	}
	assert.Equal(t, []string{"Математика", "Физика", "История", "Информатика", "Английский язык"}, names)

	assert.Equal(t, types.PlanEntry{
		SubjectName:   "Математика",
		Semester:      1,
		LectureHours:  36,
		PracticeHours: 18,
		LabHours:      0,
		Attestation:   types.AttestationExam,
	}, ex.Result.Entries[0])
	assert.Equal(t, types.AttestationDifferentiatedPass, ex.Result.Entries[1].Attestation)
	assert.True(t, ex.Result.Entries[1].SplitForSubgroups)
	assert.Equal(t, 0, ex.Result.Entries[2].LectureHours)
	assert.Equal(t, types.AttestationPass, ex.Result.Entries[2].Attestation)
	assert.True(t, ex.Result.Entries[3].SplitForSubgroups)

	assert.Equal(t, 7, ex.DataRows)
	require.Len(t, ex.Skipped, 2)
	assert.Equal(t, 9, ex.Skipped[0].Row)
	assert.Equal(t, 10, ex.Skipped[1].Row)
}

func TestExtractNoHeader(t *testing.T) {
	g := sheet.Grid{
		{"Специальность: Физика"},
		{"Дисциплина", "Часы"},
		{"Математика", "36"},
	}
	_, err := newTestExtractor().Extract(g)
	require.ErrorIs(t, err, ErrNoHeader)
}

func TestExtractHeaderBeyondWindow(t *testing.T) {
	g := make(sheet.Grid, 0, 12)
	for i := 0; i < 10; i++ {
		g = append(g, []string{"пусто"})
	}
	g = append(g, planHeader, []string{"Математика", "1"})

	_, err := newTestExtractor().Extract(g)
	require.ErrorIs(t, err, ErrNoHeader)
}

func TestExtractMissingSubjectColumn(t *testing.T) {
	g := sheet.Grid{
		{"Семестр", "Лекции", "Практика"},
		{"1", "2", "3"},
	}
	_, err := newTestExtractor().Extract(g)
	require.ErrorIs(t, err, ErrMissingColumn)
}

func TestExtractSkipsBlankSubjects(t *testing.T) {
	g := sheet.Grid{
		{"Дисциплина", "Семестр"},
		{"   ", "1"},
		{"", "2"},
		{"Химия"},
		{"Биология", "4"},
	}
	ex, err := newTestExtractor().Extract(g)
	require.NoError(t, err)
	require.Len(t, ex.Result.Entries, 1)
	assert.Equal(t, "Биология", ex.Result.Entries[0].SubjectName)
	assert.Equal(t, 4, ex.Result.Entries[0].Semester)
	assert.Len(t, ex.Skipped, 3)
}

func TestExtractWithoutSemesterColumn(t *testing.T) {
	g := sheet.Grid{
		{"Дисциплина", "Лекции"},
		{"Химия", "10"},
	}
	ex, err := newTestExtractor().Extract(g)
	require.NoError(t, err)
	assert.Empty(t, ex.Result.Entries)
	assert.NotNil(t, ex.Result.Entries)
}

func TestExtractNumericCellFormats(t *testing.T) {
	g := sheet.Grid{
		{"Дисциплина", "Семестр", "Лекции", "Практика"},
		{"Химия", "2.0", "3.6E+01", " 12 "},
		{"Физика", "1", "-4", ""},
	}
	ex, err := newTestExtractor().Extract(g)
	require.NoError(t, err)
	require.Len(t, ex.Result.Entries, 1)
	assert.Equal(t, 2, ex.Result.Entries[0].Semester)
	assert.Equal(t, 36, ex.Result.Entries[0].LectureHours)
	assert.Equal(t, 12, ex.Result.Entries[0].PracticeHours)
}

func TestExtractSkipsOutOfRangeNumbers(t *testing.T) {
	g := sheet.Grid{
		{"Дисциплина", "Семестр", "Лекции", "Практика"},
		{"Химия", "1e30", "10", ""},
		{"Физика", "99999999999999999999", "10", ""},
		{"Биология", "1", "1e19", ""},
		{"География", "2", "  ", ""},
		{"История", "2", "8", ""},
	}
	ex, err := newTestExtractor().Extract(g)
	require.NoError(t, err)
	require.Len(t, ex.Result.Entries, 1)
	assert.Equal(t, "История", ex.Result.Entries[0].SubjectName)
	require.Len(t, ex.Skipped, 4)
	for i, s := range ex.Skipped {
		assert.Equal(t, i+1, s.Row)
		assert.Contains(t, s.Reason, "not an integer")
	}
}

func TestExtractorConfig(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.Scan.Window = 2
	cfg.Scan.Threshold = 3
	cfg.Specialty.Sentinel = "Не найдена"

	g := sheet.Grid{
		{"Дисциплина", "Семестр"},
		{"Дисциплина", "Семестр", "Лекции"},
		{"Химия", "1", "2"},
	}
	ex, err := NewExtractor(cfg, nil, nil).Extract(g)
	require.NoError(t, err)
	assert.Equal(t, 1, ex.HeaderRow)
	assert.Equal(t, "Не найдена", ex.Result.SpecialtyName)
	require.Len(t, ex.Result.Entries, 1)

	zero := NewExtractor(types.Config{}, nil, nil)
	assert.Equal(t, 10, zero.window)
	assert.Equal(t, 2, zero.threshold)
	assert.Equal(t, "not found", zero.sentinel)
}
