package faq

import (
	"math"
	"strconv"
	"strings"
)

// CanonicalID maps an identifier to the form used for comparison. Numeric
// text, surrounding whitespace allowed, becomes its shortest decimal form so
// that "1", " 1 " and "1.0" all select the row stored as 1. Anything else is
// compared verbatim.
func CanonicalID(id string) string {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return id
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return id
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// MatchID reports whether a user-supplied id selects a stored id.
// Blank ids never match.
func MatchID(input, stored string) bool {
	if strings.TrimSpace(input) == "" || strings.TrimSpace(stored) == "" {
		return false
	}
	return CanonicalID(input) == CanonicalID(stored)
}
