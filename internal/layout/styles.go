package layout

var styles = map[Variant]Style{
	VariantTitleName:   {FontSize: 22, Leading: 26, Bold: true, Align: AlignCenter},
	VariantTitleRole:   {FontSize: 12, Leading: 16, Align: AlignCenter},
	VariantContactInfo: {FontSize: 10, Leading: 14, Align: AlignCenter},
	VariantLORHeader:   {FontSize: 16, Leading: 20, Bold: true, Underline: true, Align: AlignCenter},
	VariantSectionHeading: {
		FontSize: 12, Leading: 16, Bold: true, Align: AlignLeft,
		SpaceBefore: 12, SpaceAfter: 6,
	},
	VariantEntryHeading: {
		FontSize: 11, Leading: 14, Bold: true, Align: AlignLeft,
		SpaceBefore: 6, SpaceAfter: 2,
	},
	VariantEntrySubInfo:           {FontSize: 10, Leading: 13, Align: AlignLeft, LeftIndent: 15},
	VariantResponsibilitiesHeader: {FontSize: 10, Leading: 13, Align: AlignLeft, LeftIndent: 15},
	VariantResponsibilityBullet:   {FontSize: 11, Leading: 14, Align: AlignLeft, LeftIndent: 25},
	VariantPlainBullet:            {FontSize: 11, Leading: 14, Align: AlignLeft, LeftIndent: 20},
	VariantPlainParagraph:         {FontSize: 11, Leading: 16, Align: AlignJustify},
}

// StyleFor returns the style implied by a variant.
func StyleFor(v Variant) Style {
	return styles[v]
}

func newBlock(v Variant, text string) Block {
	return Block{Variant: v, Text: text, Style: StyleFor(v)}
}

func spacer(height float64) Block {
	return Block{Variant: VariantSpacer, Style: Style{Height: height}}
}
