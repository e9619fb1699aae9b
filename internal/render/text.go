package render

import (
	"image"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"arc-touch-go/internal/logging"
)

// LoadFace returns Go Regular at size points. If the font cannot be
// parsed it falls back to the fixed 7x13 bitmap face.
func LoadFace(size float64) font.Face {
	f, err := opentype.Parse(goregular.TTF)
	if err == nil {
		var face font.Face
		face, err = opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			return face
		}
	}
	logging.Logger().Warn("falling back to basic font", "err", err)
	return basicfont.Face7x13
}

// wrap breaks text into lines no wider than width. Explicit newlines always
// break; a single word wider than width gets a line of its own.
func wrap(face font.Face, text string, width int) []string {
	limit := fixed.I(width)
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			next := line + " " + w
			if font.MeasureString(face, next) > limit {
				lines = append(lines, line)
				line = w
				continue
			}
			line = next
		}
		lines = append(lines, line)
	}
	return lines
}

func lineHeight(face font.Face) int {
	return face.Metrics().Height.Ceil()
}

// measure returns the size of the wrapped block.
func measure(face font.Face, lines []string) image.Point {
	var w fixed.Int26_6
	for _, l := range lines {
		if lw := font.MeasureString(face, l); lw > w {
			w = lw
		}
	}
	return image.Pt(w.Ceil(), len(lines)*lineHeight(face))
}
