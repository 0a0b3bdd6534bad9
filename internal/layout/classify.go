package layout

import (
	"strings"

	"github.com/jonathan/document-generator/internal/markers"
)

// State is the classifier's only memory across lines.
type State int

const (
	// Outside means bullet lines are entry sub-info.
	Outside State = iota
	// InsideResponsibilities means bullet lines are responsibility bullets.
	InsideResponsibilities
)

func (s State) String() string {
	if s == InsideResponsibilities {
		return "inside_responsibilities"
	}
	return "outside"
}

// lorHeaderText is what every greeting line renders as.
var lorHeaderText = strings.ToUpper(markers.Greeting.Literal())

// Classify splits text into lines and emits the styled blocks for every
// non-blank line in source order. Each call starts in the Outside state.
func Classify(text string) []Block {
	var blocks []Block
	state := Outside

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		var emitted []Block
		emitted, state = ClassifyLine(line, state)
		blocks = append(blocks, emitted...)
	}

	return blocks
}

// ClassifyLine classifies one trimmed, non-blank line. The first matching rule
// wins; the returned state is the input to the next line.
func ClassifyLine(line string, state State) ([]Block, State) {
	bullet := markers.Bullet.Literal()

	switch {
	case hasPrefixFold(line, markers.Greeting.Literal()):
		return []Block{spacer(12), newBlock(VariantLORHeader, lorHeaderText), spacer(12)}, state

	case strings.HasPrefix(line, markers.NameLabel.Literal()):
		return []Block{newBlock(VariantTitleName, stripLabel(line, markers.NameLabel))}, state

	case strings.HasPrefix(line, markers.RoleLabel.Literal()):
		return []Block{newBlock(VariantTitleRole, stripLabel(line, markers.RoleLabel))}, state

	case strings.HasPrefix(line, markers.ContactLabel.Literal()):
		return []Block{newBlock(VariantContactInfo, stripLabel(line, markers.ContactLabel)), spacer(12)}, state
	}

	if heading, ok := emphasized(line); ok {
		return []Block{spacer(8), newBlock(VariantSectionHeading, strings.ToUpper(heading)), spacer(4)}, state
	}

	if !strings.HasPrefix(line, bullet) {
		if rest, ok := strings.CutPrefix(line, markers.PlainBullet.Literal()); ok {
			return []Block{newBlock(VariantPlainBullet, bullet+strings.TrimSpace(rest))}, state
		}
		return []Block{newBlock(VariantPlainParagraph, line), spacer(6)}, state
	}

	rest := line[len(bullet):]

	if title, ok := emphasized(rest); ok {
		return []Block{newBlock(VariantEntryHeading, title)}, Outside
	}

	if isListLabel(rest) {
		return []Block{spacer(2), newBlock(VariantResponsibilitiesHeader, rest)}, InsideResponsibilities
	}

	if state == InsideResponsibilities {
		return []Block{newBlock(VariantResponsibilityBullet, bullet+strings.TrimSpace(rest))}, state
	}

	if !startsListWord(rest) {
		return []Block{newBlock(VariantEntrySubInfo, strings.TrimSpace(rest))}, state
	}

	// "• Responsibilities" without its colon outside a list is body text.
	return []Block{newBlock(VariantPlainParagraph, line), spacer(6)}, state
}

// emphasized reports whether s is entirely wrapped in emphasis markers with a
// non-empty body, and returns the body.
func emphasized(s string) (string, bool) {
	marker := markers.Emphasis.Literal()
	if len(s) <= 2*len(marker) {
		return "", false
	}
	if !strings.HasPrefix(s, marker) || !strings.HasSuffix(s, marker) {
		return "", false
	}
	return s[len(marker) : len(s)-len(marker)], true
}

// isListLabel matches "Responsibilities:" and "Description:" after a bullet.
func isListLabel(s string) bool {
	return strings.HasPrefix(s, markers.ResponsibilitiesLabel.Literal()) ||
		strings.HasPrefix(s, markers.DescriptionLabel.Literal())
}

// startsListWord matches the list label words with or without their colon.
func startsListWord(s string) bool {
	return strings.HasPrefix(s, strings.TrimSuffix(markers.ResponsibilitiesLabel.Literal(), ":")) ||
		strings.HasPrefix(s, strings.TrimSuffix(markers.DescriptionLabel.Literal(), ":"))
}

func stripLabel(line string, label markers.Marker) string {
	return strings.TrimSpace(strings.TrimPrefix(line, label.Literal()))
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
