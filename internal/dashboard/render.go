package dashboard

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/rbeckett/hearth/internal/landing"
)

var (
	markdownRenderer = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)
	htmlPolicy = bluemonday.UGCPolicy()
)

// PageSegment is one rendered slice of the landing page, either sanitized
// HTML from a markdown segment or a widget payload.
type PageSegment struct {
	Kind   landing.SegmentKind `json:"kind"`
	HTML   string              `json:"html,omitempty"`
	Widget *Widget             `json:"widget,omitempty"`
}

// Page is the fully rendered landing page in display order.
type Page struct {
	Segments []PageSegment `json:"segments"`
}

// RenderPage splits the effective markdown into segments, renders markdown
// slices to sanitized HTML, and computes each referenced widget against the
// snapshot. Segment order is preserved.
func RenderPage(markdown string, src SourceData, opts Options) (Page, error) {
	segs := landing.Split(markdown)
	page := Page{Segments: make([]PageSegment, 0, len(segs))}

	for _, seg := range segs {
		switch seg.Kind {
		case landing.SegmentMarkdown:
			html, err := renderMarkdown(seg.Text)
			if err != nil {
				return Page{}, err
			}
			page.Segments = append(page.Segments, PageSegment{Kind: seg.Kind, HTML: html})
		case landing.SegmentWidget:
			w, err := BuildWidget(seg.Key, src, opts)
			if err != nil {
				return Page{}, err
			}
			page.Segments = append(page.Segments, PageSegment{Kind: seg.Kind, Widget: &w})
		}
	}
	return page, nil
}

func renderMarkdown(text string) (string, error) {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return htmlPolicy.Sanitize(buf.String()), nil
}
