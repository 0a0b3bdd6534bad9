package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/document-generator/internal/types"
)

// injectionPatterns are regex patterns for obvious prompt injection attempts.
// Single keywords such as "ignore" are left out; they occur in ordinary
// statements of purpose.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?(previous|prior|above)\s+instructions?`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+)?(previous|prior|above)`),
	regexp.MustCompile(`(?i)forget\s+(all\s+)?(previous|prior|everything)`),
	regexp.MustCompile(`(?i)you\s+are\s+now\s+an?\b`),
	regexp.MustCompile(`(?i)act\s+as\s+if\s+you\s+are\b`),
	regexp.MustCompile(`(?i)new\s+instructions?:`),
	regexp.MustCompile(`(?i)system\s+prompt`),
}

// InjectionCheckResult holds the result of a heuristic injection check.
type InjectionCheckResult struct {
	IsSafe  bool
	Matches []string
}

// CheckInjection reports the injection patterns found in text.
func CheckInjection(text string) *InjectionCheckResult {
	var matches []string
	for _, pattern := range injectionPatterns {
		if m := pattern.FindString(text); m != "" {
			matches = append(matches, m)
		}
	}
	return &InjectionCheckResult{IsSafe: len(matches) == 0, Matches: matches}
}

// CheckFields runs CheckInjection over every applicant field that will be
// placed in a prompt. Structured values are checked in their prompt form.
// Violations are ordered by field name.
func CheckFields(fields types.Fields) []Violation {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var violations []Violation
	for _, key := range keys {
		result := CheckInjection(fields.Get(key))
		if result.IsSafe {
			continue
		}
		violations = append(violations, Violation{
			Type:    ViolationInjection,
			Field:   key,
			Details: fmt.Sprintf("field %q looks like prompt instructions: %s", key, strings.Join(result.Matches, "; ")),
		})
	}
	return violations
}
