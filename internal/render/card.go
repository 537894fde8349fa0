package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/Aaron-Tawil/smart-shelf-labels/internal/domain"
)

// Geometry is in millimetres; font sizes are in points.
const ptToMM = 25.4 / 72.0

type rgb struct{ r, g, b int }

var (
	bgColor      = rgb{0x25, 0x47, 0x78}
	patternColor = rgb{0x1E, 0x3A, 0x61}
	goldStart    = rgb{0xC2, 0x6F, 0x19}
	goldMid      = rgb{0xF6, 0xB5, 0x32}
	goldEnd      = rgb{0xC2, 0x6F, 0x19}
	whiteColor   = rgb{0xFF, 0xFF, 0xFF}
	textColor    = rgb{0x1A, 0x22, 0x36}
	saleColor    = rgb{0xD3, 0x2F, 0x2F}
	struckColor  = rgb{0xB0, 0xBE, 0xC5}
)

// White info panel, shared by both card variants.
const (
	panelX = 66.0
	panelY = 3.0
	panelW = 34.0
	panelH = 30.0
)

const saleRibbonLabel = "מבצע!"

// cardRenderer draws one sign at a time onto a shared fpdf document.
type cardRenderer struct {
	doc   *fpdf.Fpdf
	reg   fontRef
	bold  fontRef
	extra fontRef
}

func newCardRenderer(doc *fpdf.Fpdf, useHeebo bool) *cardRenderer {
	reg, bold, extra := cardFonts(useHeebo)
	return &cardRenderer{doc: doc, reg: reg, bold: bold, extra: extra}
}

// drawStandard renders the regular-price card with its origin at (x, y).
func (c *cardRenderer) drawStandard(x, y float64, sign domain.SignSpec) {
	c.drawBackground(x, y)

	c.drawGoldBar(x+2, y+2, 60, 1)
	c.drawGoldBar(x+2, y+33, 60, 1)
	c.drawPanel(x, y, sign)

	// Composite price centred in the left half.
	baseline := y + SignHeight/2 + 0.35*50*ptToMM
	c.drawPrice(x+33, baseline, sign.Price, c.extra, 50, whiteColor, anchorCenter, false)
}

// drawDiscount renders the sale variant: same background and panel, a red
// corner ribbon, and a struck-through previous price when one exists.
func (c *cardRenderer) drawDiscount(x, y float64, sign domain.SignSpec) {
	c.drawBackground(x, y)
	c.drawPanel(x, y, sign)

	if sign.PreviousPrice > 0 {
		c.drawGoldBar(x+2, y+24, 60, 1)
		c.drawPrice(x+20, y+31, sign.PreviousPrice, c.bold, 14, struckColor, anchorLeft, true)
		c.drawPrice(x+12, y+21, sign.Price, c.extra, 40, whiteColor, anchorLeft, false)
	} else {
		c.drawPrice(x+12-10*ptToMM, y+21+10*ptToMM, sign.Price, c.extra, 45, whiteColor, anchorLeft, false)
		c.drawGoldBar(x+2, y+2, 60, 1)
		c.drawGoldBar(x+2, y+33, 60, 1)
	}

	c.drawRibbon(x, y)
}

func (c *cardRenderer) drawBackground(x, y float64) {
	c.doc.SetFillColor(bgColor.r, bgColor.g, bgColor.b)
	c.doc.Rect(x, y, SignWidth, SignHeight, "F")
	c.drawHatch(x, y, SignWidth, SignHeight)
}

// drawHatch lays repeating diagonal strokes across the card, clipped to its
// bounds. The step is fixed; card content never affects the pattern.
func (c *cardRenderer) drawHatch(x, y, w, h float64) {
	c.doc.ClipRect(x, y, w, h, false)
	c.doc.SetDrawColor(patternColor.r, patternColor.g, patternColor.b)
	c.doc.SetLineWidth(0.5 * ptToMM)
	maxDim := w + h
	const step = 3.0
	for i := -h; i < w; i += step {
		c.doc.Line(x+i, y+h, x+i+maxDim, y+h-maxDim)
	}
	c.doc.ClipEnd()
}

// drawGoldBar fills a rectangle with the gold accent gradient: two linear
// segments (start→mid, mid→end) split at the horizontal midpoint.
func (c *cardRenderer) drawGoldBar(x, y, w, h float64) {
	half := w / 2
	c.doc.LinearGradient(x, y, half, h,
		goldStart.r, goldStart.g, goldStart.b,
		goldMid.r, goldMid.g, goldMid.b,
		0, 0, 1, 0)
	c.doc.LinearGradient(x+half, y, half, h,
		goldMid.r, goldMid.g, goldMid.b,
		goldEnd.r, goldEnd.g, goldEnd.b,
		0, 0, 1, 0)
}

// drawPanel fills the white info panel and writes the barcode plus the
// wrapped product name into it. The text insets inside the panel are point
// units, unlike the panel box itself.
func (c *cardRenderer) drawPanel(x, y float64, sign domain.SignSpec) {
	px, py := x+panelX, y+panelY
	c.doc.SetFillColor(whiteColor.r, whiteColor.g, whiteColor.b)
	c.doc.Rect(px, py, panelW, panelH, "F")

	c.doc.SetTextColor(textColor.r, textColor.g, textColor.b)
	c.setFont(c.reg, 8)
	c.drawCentered(px+panelW/2, py+panelH-5*ptToMM, sign.Barcode)

	c.drawWrappedName(sign.DisplayName, px, py+2*ptToMM, panelW-4*ptToMM, panelH-17*ptToMM, c.bold, 12)
}

// nameLineHeight is the wrapped-name leading, 14 pt.
const nameLineHeight = 14 * ptToMM

// nameLineCapacity is how many wrapped lines fit in a box of height h.
func nameLineCapacity(h float64) int {
	return int(h / nameLineHeight)
}

// drawWrappedName wraps the name into the given area, clips to the line
// capacity, and centres the accepted block vertically when it is shorter
// than the area.
func (c *cardRenderer) drawWrappedName(name string, x, top, w, h float64, font fontRef, size float64) {
	const lineHeight = nameLineHeight

	c.setFont(font, size)
	lines := wrapText(name, w, c.doc.GetStringWidth)

	maxLines := nameLineCapacity(h)
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	total := float64(len(lines)) * lineHeight
	var baseline float64
	if total < h {
		baseline = top + (h-total)/2 + lineHeight - 3*ptToMM
	} else {
		baseline = top + lineHeight
	}

	for _, line := range lines {
		c.drawCentered(x+w/2, baseline, Reshape(line))
		baseline += lineHeight
	}
}

type anchor int

const (
	anchorLeft anchor = iota
	anchorCenter
)

// drawPrice composes the styled price string: half-size currency symbol,
// full-size integer digits, half-size decimals, separated by a fixed gap.
// Returns the total composed width.
func (c *cardRenderer) drawPrice(x, baseline float64, price float64, font fontRef, size float64, color rgb, a anchor, strike bool) float64 {
	formatted := fmt.Sprintf("%.2f", price)
	intPart := formatted
	decPart := ""
	if idx := strings.Index(formatted, "."); idx != -1 {
		intPart, decPart = formatted[:idx], formatted[idx:]
	}

	subSize := size * 0.5
	gap := 2 * ptToMM

	c.setFont(c.reg, subSize)
	wShekel := c.doc.GetStringWidth("₪")
	c.setFont(font, subSize)
	wDec := c.doc.GetStringWidth(decPart)
	c.setFont(font, size)
	wMain := c.doc.GetStringWidth(intPart)

	total := wShekel + gap + wMain + gap + wDec
	if a == anchorCenter {
		x -= total / 2
	}

	c.doc.SetTextColor(color.r, color.g, color.b)
	cur := x
	c.setFont(c.reg, subSize)
	c.doc.Text(cur, baseline, "₪")
	cur += wShekel + gap
	c.setFont(font, size)
	c.doc.Text(cur, baseline, intPart)
	cur += wMain + gap
	c.setFont(font, subSize)
	c.doc.Text(cur, baseline, decPart)

	if strike {
		c.doc.SetDrawColor(saleColor.r, saleColor.g, saleColor.b)
		c.doc.SetLineWidth(1.5 * ptToMM)
		midY := baseline - 0.35*size*ptToMM
		dy := 0.3 * size * ptToMM
		c.doc.Line(x-2*ptToMM, midY-dy, x+total+2*ptToMM, midY+dy)
	}

	return total
}

// drawRibbon draws the diagonal sale band across the top-left corner with
// its rotated label.
func (c *cardRenderer) drawRibbon(x, y float64) {
	dIn := 10.0
	dOut := dIn + dIn*math.Sqrt2

	c.doc.SetFillColor(saleColor.r, saleColor.g, saleColor.b)
	c.doc.Polygon([]fpdf.PointType{
		{X: x, Y: y + dIn},
		{X: x, Y: y + dOut},
		{X: x + dOut, Y: y},
		{X: x + dIn, Y: y},
	}, "F")

	cx := x + (dIn+dOut)/4
	cy := y + (dIn+dOut)/4
	c.doc.TransformBegin()
	c.doc.TransformRotate(45, cx, cy)
	c.doc.SetTextColor(whiteColor.r, whiteColor.g, whiteColor.b)
	c.setFont(c.reg, 20)
	c.drawCentered(cx, cy+7*ptToMM, Reshape(saleRibbonLabel))
	c.doc.TransformEnd()
}

func (c *cardRenderer) drawCentered(cx, baseline float64, s string) {
	w := c.doc.GetStringWidth(s)
	c.doc.Text(cx-w/2, baseline, s)
}

func (c *cardRenderer) setFont(f fontRef, size float64) {
	c.doc.SetFont(f.family, f.style, size)
}
