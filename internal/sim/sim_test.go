package sim

import (
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"arc-touch-go/internal/theme"
)

func TestRenderHalfBlocks(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 5))
	got := Render(img)
	rows := strings.Split(got, "\n")
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	for i, r := range rows {
		if w := lipgloss.Width(r); w != 3 {
			t.Errorf("row %d width = %d, want 3", i, w)
		}
		if n := strings.Count(r, "▀"); n != 3 {
			t.Errorf("row %d has %d blocks", i, n)
		}
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		c    color.Color
		want string
	}{
		{theme.White, "#ffffff"},
		{theme.Black, "#000000"},
		{theme.Color(0xf0), "#ff0000"},
		{theme.Clear, "#000000"},
	}
	for _, tt := range tests {
		if got := hex(tt.c); got != tt.want {
			t.Errorf("hex(%v) = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestDisplaySends(t *testing.T) {
	var msgs []tea.Msg
	d := NewDisplay(func(m tea.Msg) { msgs = append(msgs, m) })
	if err := d.Show(image.NewNRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 1 {
		t.Fatalf("sent %d messages", len(msgs))
	}
	if f, ok := msgs[0].(FrameMsg); !ok || f.View == "" {
		t.Errorf("message = %#v", msgs[0])
	}
}

func TestNextTheme(t *testing.T) {
	if got := nextTheme(Themes[0]); got != Themes[1] {
		t.Errorf("next of first = %q", got)
	}
	if got := nextTheme(Themes[len(Themes)-1]); got != Themes[0] {
		t.Errorf("next of last = %q", got)
	}
	if got := nextTheme("00000000"); got != Themes[0] {
		t.Errorf("next of unknown = %q", got)
	}
	for _, c := range Themes {
		if !theme.Valid(c) {
			t.Errorf("theme %q is not valid", c)
		}
	}
}

func TestPeripherals(t *testing.T) {
	l := NewLink(true)
	if l.Toggle() || l.Connected() {
		t.Error("toggle did not drop the link")
	}
	if !l.Toggle() {
		t.Error("toggle did not restore the link")
	}

	b := NewBattery(95)
	b.Add(10)
	if b.ChargePercent() != 100 {
		t.Errorf("charge = %d, want clamp to 100", b.ChargePercent())
	}
	b.Add(-150)
	if b.ChargePercent() != 0 {
		t.Errorf("charge = %d, want clamp to 0", b.ChargePercent())
	}

	now := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	v := NewVibrator()
	v.now = func() time.Time { return now }
	v.Vibrate([]time.Duration{400 * time.Millisecond, 100 * time.Millisecond, 400 * time.Millisecond})
	if !v.Buzzing() {
		t.Error("not buzzing right after Vibrate")
	}
	now = now.Add(900 * time.Millisecond)
	if v.Buzzing() {
		t.Error("still buzzing after the pattern")
	}
}
