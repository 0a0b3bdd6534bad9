package validation

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"
)

// Violation types.
const (
	ViolationInjection   = "prompt_injection"
	ViolationPlaceholder = "unfilled_placeholder"
	ViolationBoilerplate = "model_boilerplate"
)

// Violation is one advisory finding about a request or generated text.
type Violation struct {
	Type  string `json:"type"`
	Field string `json:"field,omitempty"`
	// Line is 1-based; zero when the finding is not tied to a line.
	Line    int    `json:"line,omitempty"`
	Details string `json:"details"`
}

// placeholderPattern matches template slots the model left unfilled, such as
// "[Your Name]", "[Insert date]" or "{{.Program}}".
var placeholderPattern = regexp.MustCompile(`(?i)\[(your|insert|add|enter)\b[^\]]*\]|\{\{[^}]*\}\}`)

// BoilerplatePhrases are phrases a model uses when talking about itself
// instead of writing the document.
var BoilerplatePhrases = []string{
	"as an ai language model",
	"as an ai assistant",
	"i cannot fulfill",
	"i'm sorry, but",
	"here is a draft",
	"here's a draft",
}

// CheckGeneratedText scans model output line by line for unfilled
// placeholders and assistant boilerplate. Each line reports at most one
// violation of each type.
func CheckGeneratedText(text string) []Violation {
	var violations []Violation
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), len(text)+1)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if m := placeholderPattern.FindString(line); m != "" {
			violations = append(violations, Violation{
				Type:    ViolationPlaceholder,
				Line:    lineNum,
				Details: fmt.Sprintf("line %d has an unfilled placeholder: %s", lineNum, m),
			})
		}

		lower := strings.ToLower(line)
		for _, phrase := range BoilerplatePhrases {
			if strings.Contains(lower, phrase) {
				violations = append(violations, Violation{
					Type:    ViolationBoilerplate,
					Line:    lineNum,
					Details: fmt.Sprintf("line %d contains assistant boilerplate: %q", lineNum, phrase),
				})
				break
			}
		}
	}
	return violations
}
