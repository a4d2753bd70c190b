package matching

import "strings"

// MatchMethod compares two HTTP methods case-insensitively on ASCII
//, returning a MethodMismatch when they differ.
func MatchMethod(expected, actual string) *Mismatch {
	if strings.EqualFold(expected, actual) {
		return nil
	}
	m := mismatch(MethodMismatch, "", expected, actual,
		"expected method %q but received %q", expected, actual)
	return &m
}
