// Package sim renders the watch face in a terminal and stands in for the
// wrist: keys tap, toggle the phone link and push settings updates.
package sim

import (
	"image"
	"image/color"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// FrameMsg carries a rendered frame to the model.
type FrameMsg struct {
	View string
}

// Display turns frames into FrameMsgs for a running program.
type Display struct {
	send func(tea.Msg)
}

func NewDisplay(send func(tea.Msg)) *Display {
	return &Display{send: send}
}

// Show renders img immediately; img may be reused by the caller.
func (d *Display) Show(img image.Image) error {
	d.send(FrameMsg{View: Render(img)})
	return nil
}

// Render draws img with one upper half block per two pixel rows: the
// foreground is the top pixel, the background the bottom one.
func Render(img image.Image) string {
	b := img.Bounds()
	styles := map[[2]string]lipgloss.Style{}
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			top := hex(img.At(x, y))
			bottom := "#000000"
			if y+1 < b.Max.Y {
				bottom = hex(img.At(x, y+1))
			}
			key := [2]string{top, bottom}
			st, ok := styles[key]
			if !ok {
				st = lipgloss.NewStyle().
					Foreground(lipgloss.Color(top)).
					Background(lipgloss.Color(bottom))
				styles[key] = st
			}
			sb.WriteString(st.Render("▀"))
		}
	}
	return sb.String()
}

// hex flattens c onto black.
func hex(c color.Color) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "#000000"
	}
	return cf.Hex()
}
