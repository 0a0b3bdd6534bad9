package rendering

import (
	"fmt"
	"strings"
)

// pointsPerInch converts PostScript points to inches.
const pointsPerInch = 72.0

// PageSize is a named paper size in points.
type PageSize struct {
	Name   string
	Width  float64
	Height float64
}

// Supported paper sizes.
var (
	A4     = PageSize{Name: "A4", Width: 595.28, Height: 841.89}
	Letter = PageSize{Name: "Letter", Width: 612, Height: 792}
)

// Margins are page margins in points.
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Geometry describes the printable page.
type Geometry struct {
	Page    PageSize
	Margins Margins
}

// DefaultGeometry is A4 with 50pt side margins, 60pt top and 50pt bottom.
func DefaultGeometry() Geometry {
	return Geometry{
		Page:    A4,
		Margins: Margins{Top: 60, Right: 50, Bottom: 50, Left: 50},
	}
}

// PageSizeByName looks up a paper size, case-insensitively.
func PageSizeByName(name string) (PageSize, error) {
	for _, size := range []PageSize{A4, Letter} {
		if strings.EqualFold(size.Name, name) {
			return size, nil
		}
	}
	return PageSize{}, fmt.Errorf("unsupported page size %q (want A4 or Letter)", name)
}

// Validate checks that margins are non-negative and leave a content area.
func (g Geometry) Validate() error {
	m := g.Margins
	if m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0 {
		return fmt.Errorf("margins must be non-negative")
	}
	if g.Page.Width <= 0 || g.Page.Height <= 0 {
		return fmt.Errorf("page size must be positive")
	}
	if m.Left+m.Right >= g.Page.Width || m.Top+m.Bottom >= g.Page.Height {
		return fmt.Errorf("margins leave no printable area on %s", g.Page.Name)
	}
	return nil
}

func inches(points float64) float64 {
	return points / pointsPerInch
}
