package rendering

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/jonathan/document-generator/internal/layout"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>{{.PageCSS}}</style>
</head>
<body>
{{- range .Blocks}}
{{if .Spacer}}<div class="spacer" style="{{.CSS}}"></div>{{else}}<p class="{{.Class}}" style="{{.CSS}}">{{.Text}}</p>{{end}}
{{- end}}
</body>
</html>
`

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

type pageData struct {
	Title   string
	PageCSS template.CSS
	Blocks  []htmlBlock
}

type htmlBlock struct {
	Spacer bool
	Class  string
	Text   string
	CSS    template.CSS
}

// RenderHTML lays blocks out as a print-ready HTML page sized by geometry.
// Block text is escaped; styles come only from the block variant.
func RenderHTML(title string, blocks []layout.Block, geometry Geometry) (string, error) {
	data := pageData{
		Title:   title,
		PageCSS: pageCSS(geometry),
		Blocks:  make([]htmlBlock, 0, len(blocks)),
	}
	for _, b := range blocks {
		data.Blocks = append(data.Blocks, htmlBlock{
			Spacer: b.IsSpacer(),
			Class:  string(b.Variant),
			Text:   b.Text,
			CSS:    blockCSS(b),
		})
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return "", &TemplateError{Message: "failed to execute page template", Cause: err}
	}
	return buf.String(), nil
}

func pageCSS(g Geometry) template.CSS {
	m := g.Margins
	css := fmt.Sprintf(
		"@page { size: %spt %spt; margin: %spt %spt %spt %spt; } "+
			"html, body { margin: 0; padding: 0; } "+
			"body { font-family: Helvetica, Arial, sans-serif; color: #000; } "+
			"p { margin: 0; overflow-wrap: break-word; }",
		pt(g.Page.Width), pt(g.Page.Height), pt(m.Top), pt(m.Right), pt(m.Bottom), pt(m.Left),
	)
	return template.CSS(css)
}

func blockCSS(b layout.Block) template.CSS {
	s := b.Style
	if b.IsSpacer() {
		return template.CSS("height: " + pt(s.Height) + "pt")
	}

	rules := []string{
		"font-size: " + pt(s.FontSize) + "pt",
		"text-align: " + string(alignOrLeft(s.Align)),
	}
	if s.Leading > 0 {
		rules = append(rules, "line-height: "+pt(s.Leading)+"pt")
	}
	if s.Bold {
		rules = append(rules, "font-weight: bold")
	}
	if s.Underline {
		rules = append(rules, "text-decoration: underline")
	}
	if s.LeftIndent > 0 {
		rules = append(rules, "margin-left: "+pt(s.LeftIndent)+"pt")
	}
	if s.SpaceBefore > 0 {
		rules = append(rules, "margin-top: "+pt(s.SpaceBefore)+"pt")
	}
	if s.SpaceAfter > 0 {
		rules = append(rules, "margin-bottom: "+pt(s.SpaceAfter)+"pt")
	}
	return template.CSS(strings.Join(rules, "; "))
}

func alignOrLeft(a layout.Alignment) layout.Alignment {
	switch a {
	case layout.AlignCenter, layout.AlignJustify:
		return a
	default:
		return layout.AlignLeft
	}
}

func pt(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
