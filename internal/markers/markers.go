// Package markers defines the literal marker vocabulary shared by the prompt
// builder and the line classifier. The prompt tells the model to emit these
// markers and the classifier recognizes them, so both sides read the literals
// from here.
package markers

import "strings"

// Marker identifies one structural convention in generated text.
type Marker int

const (
	// NameLabel prefixes the candidate name line.
	NameLabel Marker = iota
	// RoleLabel prefixes the role / career title line.
	RoleLabel
	// ContactLabel prefixes the contact line.
	ContactLabel
	// Emphasis wraps section headings and entry titles.
	Emphasis
	// Bullet starts work/education entry lines.
	Bullet
	// PlainBullet starts a generic list item.
	PlainBullet
	// ResponsibilitiesLabel follows a Bullet and opens a responsibility list.
	ResponsibilitiesLabel
	// DescriptionLabel follows a Bullet and opens a project description list.
	DescriptionLabel
	// Greeting opens a recommendation letter.
	Greeting
)

var literals = map[Marker]string{
	NameLabel:             "Name:",
	RoleLabel:             "Role:",
	ContactLabel:          "Contact:",
	Emphasis:              "**",
	Bullet:                "• ",
	PlainBullet:           "* ",
	ResponsibilitiesLabel: "Responsibilities:",
	DescriptionLabel:      "Description:",
	Greeting:              "To Whom It May Concern",
}

var names = map[Marker]string{
	NameLabel:             "NameLabel",
	RoleLabel:             "RoleLabel",
	ContactLabel:          "ContactLabel",
	Emphasis:              "Emphasis",
	Bullet:                "Bullet",
	PlainBullet:           "PlainBullet",
	ResponsibilitiesLabel: "ResponsibilitiesLabel",
	DescriptionLabel:      "DescriptionLabel",
	Greeting:              "Greeting",
}

// All returns every marker in declaration order.
func All() []Marker {
	return []Marker{
		NameLabel, RoleLabel, ContactLabel, Emphasis, Bullet,
		PlainBullet, ResponsibilitiesLabel, DescriptionLabel, Greeting,
	}
}

// Literal returns the canonical text of the marker.
func (m Marker) Literal() string {
	return literals[m]
}

// String returns the marker's identifier, used as a prompt placeholder key.
func (m Marker) String() string {
	if name, ok := names[m]; ok {
		return name
	}
	return "Unknown"
}

// Vocabulary maps placeholder keys to marker literals for prompt templates.
// The greeting is also exposed upper-cased as GreetingUpper.
func Vocabulary() map[string]string {
	vocab := make(map[string]string, len(literals)+1)
	for _, m := range All() {
		vocab[m.String()] = m.Literal()
	}
	vocab["GreetingUpper"] = strings.ToUpper(Greeting.Literal())
	return vocab
}

// Emphasize wraps text in emphasis markers, e.g. **SUMMARY**.
func Emphasize(text string) string {
	return Emphasis.Literal() + text + Emphasis.Literal()
}

// EntryHeading formats the first line of a work or project entry.
func EntryHeading(text string) string {
	return Bullet.Literal() + Emphasize(text)
}

// BulletItem prefixes text with the entry bullet marker.
func BulletItem(text string) string {
	return Bullet.Literal() + text
}
