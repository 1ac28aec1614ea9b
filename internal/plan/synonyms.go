// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Field is a logical output field that one or more header texts map to.
type Field string

const (
	FieldSubjectName       Field = "subjectName"
	FieldSemester          Field = "semester"
	FieldLectureHours      Field = "lectureHours"
	FieldPracticeHours     Field = "practiceHours"
	FieldLabHours          Field = "labHours"
	FieldAttestation       Field = "attestation"
	FieldSplitForSubgroups Field = "splitForSubgroups"
)

// Fields lists every logical field in output order.
var Fields = []Field{
	FieldSubjectName,
	FieldSemester,
	FieldLectureHours,
	FieldPracticeHours,
	FieldLabHours,
	FieldAttestation,
	FieldSplitForSubgroups,
}

func knownField(f Field) bool {
	for _, k := range Fields {
		if k == f {
			return true
		}
	}
	return false
}

// SynonymTable maps each field to its header keywords in priority order.
// Keywords are stored folded (see foldText).
type SynonymTable map[Field][]string

// DefaultSynonyms returns the built-in table: the headers found in Russian
// curriculum plans followed by their English equivalents.
func DefaultSynonyms() SynonymTable {
	return SynonymTable{
		FieldSubjectName:       {"дисциплина", "наименование дисциплины", "предмет", "subject", "discipline"},
		FieldSemester:          {"семестр", "сем.", "semester"},
		FieldLectureHours:      {"лекции", "лек.", "лекционные часы", "lectures"},
		FieldPracticeHours:     {"практика", "практ.", "практические занятия", "practice"},
		FieldLabHours:          {"лабораторные", "лаб.", "лабораторные работы", "labs"},
		FieldAttestation:       {"форма контроля", "аттестация", "контроль", "attestation"},
		FieldSplitForSubgroups: {"подгруппы", "деление на подгруппы", "деление", "subgroups"},
	}
}

// synonymsFile is the on-disk shape of a synonyms override.
//
//	replace: false
//	synonyms:
//	  subjectName: ["наименование"]
type synonymsFile struct {
	// Replace drops the built-in keywords of every field listed in Synonyms
	// instead of appending to them.
	Replace  bool                `yaml:"replace"`
	Synonyms map[string][]string `yaml:"synonyms"`
}

// LoadSynonyms reads a YAML override file and applies it to the default
// table. Appended keywords rank after the built-in ones.
func LoadSynonyms(path string) (SynonymTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading synonyms file: %w", err)
	}
	var sf synonymsFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing synonyms file: %w", err)
	}

	table := DefaultSynonyms()
	for name, keywords := range sf.Synonyms {
		f := Field(name)
		if !knownField(f) {
			return nil, fmt.Errorf("synonyms file: unknown field %q", name)
		}
		if sf.Replace {
			table[f] = nil
		}
		for _, k := range keywords {
			if k = foldText(k); k != "" {
				table[f] = append(table[f], k)
			}
		}
	}
	return table, nil
}
