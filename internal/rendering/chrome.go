package rendering

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/document-generator/internal/layout"
)

// Renderer turns an ordered block sequence into an encoded document.
type Renderer interface {
	Render(ctx context.Context, title string, blocks []layout.Block, geometry Geometry) ([]byte, error)
}

// ChromeOptions configures the headless browser used for printing.
type ChromeOptions struct {
	// ExecPath overrides Chrome discovery when set.
	ExecPath string
	// Timeout bounds one render; zero means no limit.
	Timeout time.Duration
}

// ChromeRenderer prints the HTML layout to PDF with headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type ChromeRenderer struct {
	opts ChromeOptions
}

// NewChromeRenderer returns a renderer using opts.
func NewChromeRenderer(opts ChromeOptions) *ChromeRenderer {
	return &ChromeRenderer{opts: opts}
}

// Render lays out blocks as HTML and prints them to a PDF.
func (r *ChromeRenderer) Render(ctx context.Context, title string, blocks []layout.Block, geometry Geometry) ([]byte, error) {
	if err := geometry.Validate(); err != nil {
		return nil, &RenderError{Message: "invalid page geometry", Cause: err}
	}

	html, err := RenderHTML(title, blocks, geometry)
	if err != nil {
		return nil, err
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.opts.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	if r.opts.Timeout > 0 {
		browserCtx, cancel = context.WithTimeout(browserCtx, r.opts.Timeout)
		defer cancel()
	}

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			m := geometry.Margins
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(inches(geometry.Page.Width)).
				WithPaperHeight(inches(geometry.Page.Height)).
				WithMarginTop(inches(m.Top)).
				WithMarginRight(inches(m.Right)).
				WithMarginBottom(inches(m.Bottom)).
				WithMarginLeft(inches(m.Left)).
				WithPrintBackground(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, &RenderError{Message: "headless browser failed to print PDF", Cause: err}
	}
	if len(pdf) == 0 {
		return nil, &RenderError{Message: "headless browser returned an empty PDF"}
	}

	return pdf, nil
}
