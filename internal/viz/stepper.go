package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/signsim/internal/signsim"
)

const (
	defaultTrackWidth = 60
	bodyGlyphs        = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// Stepper is a read-only Bubble Tea model that walks a trajectory.
type Stepper struct {
	title    string
	traj     *signsim.Trajectory
	step     int
	width    int
	lo, hi   int
	quitting bool
}

func NewStepper(title string, traj *signsim.Trajectory) Stepper {
	lo, hi := traj.Initial().Position(0), traj.Initial().Position(0)
	for _, row := range traj.Positions() {
		for _, p := range row {
			lo = min(lo, p)
			hi = max(hi, p)
		}
	}
	return Stepper{title: title, traj: traj, width: defaultTrackWidth, lo: lo, hi: hi}
}

// RunStepper opens the viewer on the terminal and blocks until it quits.
func RunStepper(title string, traj *signsim.Trajectory) error {
	_, err := tea.NewProgram(NewStepper(title, traj)).Run()
	return err
}

func (m Stepper) Step() int { return m.step }

func (m Stepper) Init() tea.Cmd { return nil }

func (m Stepper) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "right", "l", "n", " ":
			if m.step < m.traj.Steps() {
				m.step++
			}
		case "left", "h", "p":
			if m.step > 0 {
				m.step--
			}
		case "g", "home":
			m.step = 0
		case "G", "end":
			m.step = m.traj.Steps()
		}
	case tea.WindowSizeMsg:
		m.width = max(10, min(msg.Width-12, 120))
	}
	return m, nil
}

func (m Stepper) View() string {
	if m.quitting {
		return ""
	}

	x := m.traj.At(m.step)
	var b strings.Builder

	b.WriteString(TitleStyle.Render(m.title))
	b.WriteString("\n\n")

	progress := 1.0
	if m.traj.Steps() > 0 {
		progress = float64(m.step) / float64(m.traj.Steps())
	}
	fmt.Fprintf(&b, "%s %s %s\n\n",
		MetricLabel.Render("step"),
		MetricValue.Render(fmt.Sprintf("%d/%d", m.step, m.traj.Steps())),
		ProgressBar(progress, 20))

	b.WriteString(Panel.Render(Track(x, m.lo, m.hi, m.width)))
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s %v\n", MetricLabel.Render("positions "), x.Positions())
	fmt.Fprintf(&b, "%s %v\n", MetricLabel.Render("velocities"), x.Velocities())
	fmt.Fprintf(&b, "%s %s  %s\n", MetricLabel.Render("potential "),
		MetricValue.Render(fmt.Sprintf("%4d", x.PotentialEnergy())),
		Sparkline(m.traj.PotentialEnergies(), m.width/2, m.step))
	fmt.Fprintf(&b, "%s %s  %s\n", MetricLabel.Render("kinetic   "),
		MetricValue.Render(fmt.Sprintf("%4d", x.KineticEnergy())),
		Sparkline(m.traj.KineticEnergies(), m.width/2, m.step))

	b.WriteString("\n")
	b.WriteString(KeyHint.Render("←/→ step · g/G first/last · q quit"))
	b.WriteString("\n")
	return b.String()
}

// Track draws the bodies of x on a number line spanning [lo, hi]. Each body
// is shown by its index glyph; bodies sharing a cell are shown as '*'.
func Track(x signsim.Snapshot, lo, hi, width int) string {
	if width < 1 {
		width = 1
	}
	cells := []rune(strings.Repeat("·", width))
	span := hi - lo

	for i := 0; i < x.Bodies(); i++ {
		col := 0
		if span > 0 {
			col = (x.Position(i) - lo) * (width - 1) / span
		}
		col = max(0, min(col, width-1))

		glyph := '*'
		if i < len(bodyGlyphs) {
			glyph = rune(bodyGlyphs[i])
		}
		if cells[col] != '·' {
			glyph = '*'
		}
		cells[col] = glyph
	}

	return fmt.Sprintf("%d %s %d", lo, string(cells), hi)
}
