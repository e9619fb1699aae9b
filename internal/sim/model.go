package sim

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"arc-touch-go/internal/config"
	"arc-touch-go/internal/i18n"
	"arc-touch-go/internal/theme"
	"arc-touch-go/internal/watch"
)

// Themes cycled by the c key.
var Themes = []string{
	theme.DefaultCode,
	"c0f0ccff",
	"ffc3d3c0",
	"c0cff3fc",
	"c0e3f8f3",
}

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#8B5EDB"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E7E7E7")).
			Background(lipgloss.Color("#353533")).
			Padding(0, 1)

	activeStyle = lipgloss.NewStyle().
			Inherit(statusStyle).
			Foreground(lipgloss.Color("#FF7FB3")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D7D7D"))
)

type tickMsg struct{}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}

// Peripherals are the simulated capabilities the face drives.
type Peripherals struct {
	Link     *Link
	Battery  *Battery
	Light    *Light
	Vibrator *Vibrator
}

// Model is the bubbletea model. Everything that touches the face is posted
// to the watch loop.
type Model struct {
	loop  *watch.Loop
	face  *watch.Face
	store *config.Store
	p     Peripherals

	frame  string
	notice string
	width  int
}

func NewModel(loop *watch.Loop, face *watch.Face, store *config.Store, p Peripherals) Model {
	return Model{loop: loop, face: face, store: store, p: p}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case FrameMsg:
		m.frame = msg.View
	case tickMsg:
		return m, tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ", "t":
		m.post(func() { m.face.HandleTap(1, 1) })
		m.notice = "tap"
	case "b":
		up := m.p.Link.Toggle()
		m.post(func() { m.face.HandleConnection(up) })
		m.notice = fmt.Sprintf("link %s", onOff(up))
	case "c":
		m.update(func(u *config.Update) {
			u.ThemeCode = nextTheme(u.ThemeCode)
		})
		m.notice = "theme"
	case "d":
		m.update(func(u *config.Update) { u.DateOrder = 1 - u.DateOrder })
		m.notice = "date order"
	case "l":
		m.update(func(u *config.Update) {
			u.Language = (u.Language + 1) % int32(i18n.NumLanguages)
		})
		m.notice = "language"
	case "k":
		m.update(func(u *config.Update) { u.Backlight = 1 - u.Backlight })
		m.notice = "backlight"
	case "+":
		m.p.Battery.Add(10)
	case "-":
		m.p.Battery.Add(-10)
	}
	return m, nil
}

func (m Model) post(f func()) {
	m.loop.Post(f)
}

// update edits the current settings on the loop and feeds them back as an
// inbound message, the same path a companion app takes.
func (m Model) update(edit func(*config.Update)) {
	m.post(func() {
		u := config.UpdateFrom(m.store.Settings())
		edit(&u)
		_ = m.face.HandleMessage(u.Message())
	})
}

func nextTheme(code string) string {
	for i, c := range Themes {
		if strings.EqualFold(c, code) {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m Model) View() string {
	if m.frame == "" {
		return "starting..."
	}
	flag := func(label string, on bool) string {
		if on {
			return activeStyle.Render(label)
		}
		return statusStyle.Render(label)
	}
	status := lipgloss.JoinHorizontal(lipgloss.Top,
		flag("phone "+onOff(m.p.Link.Connected()), m.p.Link.Connected()),
		flag("light "+onOff(m.p.Light.On()), m.p.Light.On()),
		statusStyle.Render(fmt.Sprintf("batt %d%%", m.p.Battery.ChargePercent())),
		flag("bzz", m.p.Vibrator.Buzzing()),
		statusStyle.Render(m.notice),
	)
	help := helpStyle.Render("space tap · b link · c theme · d date · l lang · k light · +/- batt · q quit")
	return lipgloss.JoinVertical(lipgloss.Left, frameStyle.Render(m.frame), status, help)
}
