// Package layout turns generated document text into an ordered sequence of
// styled blocks for the renderer.
package layout

// Variant is the layout role of a block.
type Variant string

// Block variants. Spacer carries only vertical space.
const (
	VariantTitleName              Variant = "title_name"
	VariantTitleRole              Variant = "title_role"
	VariantContactInfo            Variant = "contact_info"
	VariantLORHeader              Variant = "lor_header"
	VariantSectionHeading         Variant = "section_heading"
	VariantEntryHeading           Variant = "entry_heading"
	VariantEntrySubInfo           Variant = "entry_sub_info"
	VariantResponsibilitiesHeader Variant = "responsibilities_header"
	VariantResponsibilityBullet   Variant = "responsibility_bullet"
	VariantPlainBullet            Variant = "plain_bullet"
	VariantPlainParagraph         Variant = "plain_paragraph"
	VariantSpacer                 Variant = "spacer"
)

// Alignment is the horizontal alignment of a block.
type Alignment string

// Alignment values.
const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignJustify Alignment = "justify"
)

// Style holds the typographic attributes of a block. Sizes are in points.
type Style struct {
	FontSize    float64   `json:"font_size,omitempty"`
	Leading     float64   `json:"leading,omitempty"`
	Bold        bool      `json:"bold,omitempty"`
	Underline   bool      `json:"underline,omitempty"`
	Align       Alignment `json:"align,omitempty"`
	LeftIndent  float64   `json:"left_indent,omitempty"`
	SpaceBefore float64   `json:"space_before,omitempty"`
	SpaceAfter  float64   `json:"space_after,omitempty"`
	// Height is only set on spacer blocks.
	Height float64 `json:"height,omitempty"`
}

// Block is one styled unit of output text.
type Block struct {
	Variant Variant `json:"variant"`
	Text    string  `json:"text,omitempty"`
	Style   Style   `json:"style"`
}

// IsSpacer reports whether the block only adds vertical space.
func (b Block) IsSpacer() bool {
	return b.Variant == VariantSpacer
}

// ContentBlocks returns the blocks that carry text, dropping spacers.
func ContentBlocks(blocks []Block) []Block {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		if !b.IsSpacer() {
			out = append(out, b)
		}
	}
	return out
}
