// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/curriplan/pkg/types"
)

var (
	examMarkers           = []string{"экзамен", "exam"}
	differentiatedMarkers = []string{"диф", "differentiated"}
	passMarkers           = []string{"зачет", "зачёт", "pass", "credit"}
)

// ParseAttestation maps free-form control text to an Attestation by marker
// containment, checked in the order exam, differentiated, pass. Text with
// no marker is a Pass.
func ParseAttestation(s string) types.Attestation {
	v := foldText(s)
	switch {
	case containsAny(v, examMarkers):
		return types.AttestationExam
	case containsAny(v, differentiatedMarkers):
		return types.AttestationDifferentiatedPass
	case containsAny(v, passMarkers):
		return types.AttestationPass
	}
	return types.AttestationPass
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

var splitTokens = map[string]bool{
	"да":   true,
	"yes":  true,
	"+":    true,
	"1":    true,
	"true": true,
}

// ParseSplit reports whether s is one of the tokens that mark a subject as
// split into subgroups.
func ParseSplit(s string) bool {
	return splitTokens[foldText(s)]
}

var errNotInteger = errors.New("not an integer")

// maxExactFloat is the largest magnitude a float64 holds without losing
// integer precision.
const maxExactFloat = 1 << 53

// parseInt parses cell text as an integer. Readers render numeric cells as
// decimals ("36", "36.0", "3.6E+01"); fractional values truncate toward
// zero. Values too large to represent exactly are rejected.
func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.Abs(f) > maxExactFloat {
		return 0, fmt.Errorf("%q: %w", s, errNotInteger)
	}
	return int(f), nil
}

// parseHours parses an hour count. An empty cell counts as zero; any other
// text, blanks included, must parse. Negative counts are rejected.
func parseHours(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := parseInt(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative hours %d", n)
	}
	return n, nil
}
