package render

import (
	"strings"

	"github.com/abdullahdiaa/garabic"
	"golang.org/x/text/unicode/bidi"
)

// Reshape converts logically ordered bidirectional text into its visual
// glyph order: Arabic letters are shaped into presentation forms, then
// right-to-left runs are reordered. Must be applied before any width
// measurement, since shaping changes effective width.
func Reshape(text string) string {
	if text == "" {
		return ""
	}

	shaped := garabic.Shape(text)

	var p bidi.Paragraph
	if _, err := p.SetString(shaped, bidi.DefaultDirection(bidi.RightToLeft)); err != nil {
		return shaped
	}
	ordering, err := p.Order()
	if err != nil {
		return shaped
	}

	var b strings.Builder
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		if run.Direction() == bidi.RightToLeft {
			b.WriteString(bidi.ReverseString(run.String()))
		} else {
			b.WriteString(run.String())
		}
	}
	return b.String()
}

// wrapText greedily fills lines: words are appended while the reshaped
// line still measures within maxWidth, otherwise the line is flushed and
// the overflowing word starts the next one. A single oversized word gets
// its own line rather than being split.
func wrapText(text string, maxWidth float64, measure func(string) float64) []string {
	words := strings.Fields(text)
	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if measure(Reshape(candidate)) <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
