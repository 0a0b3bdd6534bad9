// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/document-generator/internal/layout"
	"github.com/jonathan/document-generator/internal/pipeline"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// variantWidth fits the longest block variant name
	variantWidth = 23
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// PrintBlocks outputs one row per classified block: its position, variant
// and text. Spacers show their height instead of text.
func (p *Printer) PrintBlocks(blocks []layout.Block) {
	if len(blocks) == 0 {
		p.printBox("CLASSIFIED BLOCKS", "(no blocks)")
		return
	}

	var sb strings.Builder
	for i, b := range blocks {
		text := b.Text
		if b.IsSpacer() {
			text = fmt.Sprintf("(%gpt)", b.Style.Height)
		}
		sb.WriteString(fmt.Sprintf("%3d  %-*s %s\n", i+1, variantWidth, b.Variant, text))
	}

	content := layout.ContentBlocks(blocks)
	sb.WriteString(fmt.Sprintf("\n%d blocks, %d with content\n", len(blocks), len(content)))

	p.printBox("CLASSIFIED BLOCKS", sb.String())
}

// PrintResult outputs a summary of a generated document.
func (p *Printer) PrintResult(result *pipeline.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Request:  %s\n", result.RequestID))
	sb.WriteString(fmt.Sprintf("Size:     %d bytes\n", len(result.PDF)))
	if result.Pages > 0 {
		sb.WriteString(fmt.Sprintf("Pages:    %d\n", result.Pages))
	} else {
		sb.WriteString("Pages:    unknown\n")
	}
	sb.WriteString(fmt.Sprintf("Blocks:   %d\n", len(layout.ContentBlocks(result.Blocks))))

	if result.UsedPlaceholder {
		sb.WriteString("\n⚠ Model produced no text; placeholder rendered\n")
	}
	if v := result.BudgetViolation; v != nil {
		sb.WriteString(fmt.Sprintf("\n⚠ %s\n", v.Error()))
	}
	if len(result.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("\nWarnings (%d):\n", len(result.Warnings)))
		for _, w := range result.Warnings {
			sb.WriteString(fmt.Sprintf("  • %s\n", w.Details))
		}
	}

	p.printBox("GENERATED DOCUMENT", sb.String())
}
