package render

import (
	"log"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
)

// fontRef names a registered fpdf font family/style pair.
type fontRef struct {
	family string
	style  string
}

const (
	heeboFamily      = "Heebo"
	heeboExtraFamily = "Heebo-ExtraBold"
)

var heeboFiles = []string{"Heebo-Regular.ttf", "Heebo-Bold.ttf", "Heebo-ExtraBold.ttf"}

// registerFonts registers the Heebo faces from fontsDir when all three TTF
// files exist, and reports whether they are usable. Missing or broken fonts
// fall back to the built-in Helvetica faces — Hebrew glyphs will not render,
// but generation still completes.
func registerFonts(doc *fpdf.Fpdf, fontsDir string) bool {
	for _, name := range heeboFiles {
		if _, err := os.Stat(filepath.Join(fontsDir, name)); err != nil {
			log.Printf("[RENDER] Font file %s not found in %s, using built-in fonts", name, fontsDir)
			return false
		}
	}

	doc.SetFontLocation(fontsDir)
	doc.AddUTF8Font(heeboFamily, "", heeboFiles[0])
	doc.AddUTF8Font(heeboFamily, "B", heeboFiles[1])
	doc.AddUTF8Font(heeboExtraFamily, "", heeboFiles[2])
	if doc.Err() {
		log.Printf("[RENDER] Could not register Heebo fonts: %v, using built-in fonts", doc.Error())
		doc.ClearError()
		return false
	}
	return true
}

// cardFonts returns the regular/bold/extra-bold triple to draw with.
func cardFonts(useHeebo bool) (reg, bold, extra fontRef) {
	if useHeebo {
		return fontRef{heeboFamily, ""}, fontRef{heeboFamily, "B"}, fontRef{heeboExtraFamily, ""}
	}
	return fontRef{"Helvetica", ""}, fontRef{"Helvetica", "B"}, fontRef{"Helvetica", "B"}
}
