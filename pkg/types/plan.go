// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for curriplan.
// PlanEntry and PlanResult are the output document; the config structs
// describe the settings each stage reads.
package types

// Attestation is the normalized form of control that closes a subject
// in a semester.
type Attestation string

const (
	AttestationExam               Attestation = "Exam"
	AttestationDifferentiatedPass Attestation = "Differentiated Pass"
	AttestationPass               Attestation = "Pass"
)

// nativeLabels holds the labels used by the scheduling application that
// consumes plans in their source language.
var nativeLabels = map[Attestation]string{
	AttestationExam:               "Экзамен",
	AttestationDifferentiatedPass: "Диф. зачёт",
	AttestationPass:               "Зачёт",
}

// Native returns the source-language label for a. Unknown values are
// returned unchanged.
func (a Attestation) Native() string {
	if l, ok := nativeLabels[a]; ok {
		return l
	}
	return string(a)
}

// PlanEntry is one normalized row of a curriculum plan.
type PlanEntry struct {
	// SubjectName is the trimmed discipline name. Never empty.
	SubjectName string `json:"subjectName" yaml:"subjectName"`

	// Semester is the semester number the row belongs to.
	Semester int `json:"semester" yaml:"semester"`

	LectureHours  int `json:"lectureHours" yaml:"lectureHours"`
	PracticeHours int `json:"practiceHours" yaml:"practiceHours"`
	LabHours      int `json:"labHours" yaml:"labHours"`

	// Attestation is the form of control (exam, differentiated pass, pass).
	Attestation Attestation `json:"attestation" yaml:"attestation"`

	// SplitForSubgroups reports whether the group is split into subgroups
	// for this subject.
	SplitForSubgroups bool `json:"splitForSubgroups" yaml:"splitForSubgroups"`
}

// PlanResult is the document emitted for one spreadsheet.
type PlanResult struct {
	// SpecialtyName is the program name found above the table, or the
	// configured not-found sentinel.
	SpecialtyName string `json:"specialtyName" yaml:"specialtyName"`

	// Entries preserve the row order of the source sheet.
	Entries []PlanEntry `json:"entries" yaml:"entries"`
}

// WithNativeLabels returns a copy of r whose attestation values use the
// source-language labels.
func (r PlanResult) WithNativeLabels() PlanResult {
	out := PlanResult{
		SpecialtyName: r.SpecialtyName,
		Entries:       make([]PlanEntry, len(r.Entries)),
	}
	for i, e := range r.Entries {
		e.Attestation = Attestation(e.Attestation.Native())
		out.Entries[i] = e
	}
	return out
}
