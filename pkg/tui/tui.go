// Package tui provides a terminal user interface for musekit
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/musekit/musekit/pkg/pitch"
	"github.com/musekit/musekit/pkg/scale"
)

var (
	// Primary colors
	accentGreen = lipgloss.Color("#39FF14")
	amber       = lipgloss.Color("#FFBF00")
	silverGray  = lipgloss.Color("#C0C0C0")
	darkGray    = lipgloss.Color("#333333")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentGreen).
			Background(darkGray).
			Padding(0, 2).
			MarginBottom(1)

	menuStyle = lipgloss.NewStyle().
			Foreground(silverGray).
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(accentGreen).
			Bold(true).
			PaddingLeft(2)

	degreeStyle = lipgloss.NewStyle().
			Foreground(silverGray)

	currentDegreeStyle = lipgloss.NewStyle().
				Foreground(accentGreen).
				Bold(true)

	tonicStyle = lipgloss.NewStyle().
			Foreground(amber)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentGreen).
			Padding(1, 2)
)

// State represents the current TUI state
type State int

const (
	StateMenu State = iota
	StateTonic
	StateCustom
	StateExplore
)

// ScalePreset is a named repeating scale shape
type ScalePreset struct {
	Title     string
	Intervals []string
}

var scalePresets = []ScalePreset{
	{Title: "Major", Intervals: []string{"p1", "M2", "M3", "p4", "p5", "M6", "M7"}},
	{Title: "Natural minor", Intervals: []string{"p1", "M2", "m3", "p4", "p5", "m6", "m7"}},
	{Title: "Pentatonic", Intervals: []string{"p1", "M2", "M3", "p5", "M6"}},
	{Title: "Whole tone", Intervals: []string{"p1", "M2", "M3", "A4", "A5", "A6"}},
	{Title: "Overtone (just)", Intervals: []string{"1/1", "9/8", "5/4", "11/8", "3/2", "13/8", "7/4"}},
	{Title: "Custom intervals", Intervals: nil},
	{Title: "Exit", Intervals: nil},
}

// Model represents the TUI model
type Model struct {
	state     State
	menuIndex int

	tonicInput    textinput.Model
	intervalInput textinput.Model

	preset ScalePreset
	scale  *scale.Scale
	degree int
	err    error

	width  int
	height int
}

// New creates a new TUI model
func New() Model {
	tonic := textinput.New()
	tonic.Placeholder = "c4, 3/2 or 440"
	tonic.CharLimit = 32
	tonic.Width = 24

	intervals := textinput.New()
	intervals.Placeholder = "p1 M2 M3 p4 p5 M6 M7"
	intervals.CharLimit = 128
	intervals.Width = 48

	return Model{
		state:         StateMenu,
		tonicInput:    tonic,
		intervalInput: intervals,
	}
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateMenu:
			return m.updateMenu(msg)
		case StateTonic:
			return m.updateTonic(msg)
		case StateCustom:
			return m.updateCustom(msg)
		case StateExplore:
			return m.updateExplore(msg)
		}
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < len(scalePresets)-1 {
			m.menuIndex++
		}
	case "enter":
		if m.menuIndex == len(scalePresets)-1 {
			return m, tea.Quit
		}
		m.preset = scalePresets[m.menuIndex]
		m.err = nil
		m.state = StateTonic
		m.tonicInput.SetValue("")
		m.tonicInput.Focus()
		return m, textinput.Blink
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateTonic(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = StateMenu
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		if m.preset.Intervals == nil {
			m.state = StateCustom
			m.intervalInput.SetValue("")
			m.intervalInput.Focus()
			return m, textinput.Blink
		}
		return m.buildScale(m.preset.Intervals)
	}

	var cmd tea.Cmd
	m.tonicInput, cmd = m.tonicInput.Update(msg)
	return m, cmd
}

func (m Model) updateCustom(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = StateTonic
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		return m.buildScale(strings.Fields(m.intervalInput.Value()))
	}

	var cmd tea.Cmd
	m.intervalInput, cmd = m.intervalInput.Update(msg)
	return m, cmd
}

func (m Model) buildScale(intervalNames []string) (tea.Model, tea.Cmd) {
	tonic, err := pitch.FromAny(m.tonicInput.Value())
	if err != nil {
		m.err = err
		return m, nil
	}

	period := make([]pitch.Interval, 0, len(intervalNames))
	for _, name := range intervalNames {
		interval, err := pitch.IntervalFromAny(name)
		if err != nil {
			m.err = err
			return m, nil
		}
		period = append(period, interval)
	}

	repetition := repetitionFor(period)
	family, err := scale.NewRepeatingFamily(period, repetition)
	if err != nil {
		m.err = err
		return m, nil
	}
	s, err := scale.NewRepeating(tonic, family)
	if err != nil {
		m.err = err
		return m, nil
	}

	m.scale = s
	m.degree = 0
	m.err = nil
	m.state = StateExplore
	return m, nil
}

// repetitionFor picks the octave matching the period flavor: exact 2/1
// when every interval is a ratio, 1200 cents otherwise.
func repetitionFor(period []pitch.Interval) pitch.Interval {
	for _, interval := range period {
		if _, ok := interval.(pitch.Just); !ok {
			return pitch.Cents(1200)
		}
	}
	octave, err := pitch.ParseRatio("2/1")
	if err != nil {
		return pitch.Cents(1200)
	}
	return octave
}

func (m Model) updateExplore(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.degree++
	case "down", "j":
		m.degree--
	case "pgup":
		m.degree += m.scale.DegreeCount()
	case "pgdown":
		m.degree -= m.scale.DegreeCount()
	case "esc":
		m.state = StateMenu
		return m, nil
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(asciiLogo())
	s.WriteString("\n")

	switch m.state {
	case StateMenu:
		s.WriteString(m.viewMenu())
	case StateTonic:
		s.WriteString(m.viewTonic())
	case StateCustom:
		s.WriteString(m.viewCustom())
	case StateExplore:
		s.WriteString(m.viewExplore())
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓: navigate • enter: select • esc: back • q: quit"))

	return s.String()
}

func (m Model) viewMenu() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SELECT SCALE "))
	s.WriteString("\n\n")

	for i, preset := range scalePresets {
		if i == m.menuIndex {
			s.WriteString(selectedStyle.Render(fmt.Sprintf("▸ %s", preset.Title)))
			if preset.Intervals != nil {
				s.WriteString("\n")
				s.WriteString(lipgloss.NewStyle().Foreground(amber).PaddingLeft(4).
					Render(strings.Join(preset.Intervals, " ")))
			}
		} else {
			s.WriteString(menuStyle.Render(fmt.Sprintf("  %s", preset.Title)))
		}
		s.WriteString("\n")
	}

	return boxStyle.Render(s.String())
}

func (m Model) viewTonic() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(fmt.Sprintf(" %s: TONIC ", strings.ToUpper(m.preset.Title))))
	s.WriteString("\n\n")
	s.WriteString("Tonic pitch (name, ratio or hertz):\n\n")
	s.WriteString(m.tonicInput.View())
	if m.err != nil {
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s", m.err.Error())))
	}

	return boxStyle.Render(s.String())
}

func (m Model) viewCustom() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" CUSTOM INTERVALS "))
	s.WriteString("\n\n")
	s.WriteString("Rising intervals of one period, space separated:\n\n")
	s.WriteString(m.intervalInput.View())
	if m.err != nil {
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s", m.err.Error())))
	}

	return boxStyle.Render(s.String())
}

func (m Model) viewExplore() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(fmt.Sprintf(" %s SCALE ", strings.ToUpper(m.preset.Title))))
	s.WriteString("\n\n")

	// Window of degrees around the cursor, high pitches on top.
	const window = 5
	for degree := m.degree + window; degree >= m.degree-window; degree-- {
		p, err := m.scale.PitchAt(degree)
		if err != nil {
			continue
		}
		line := fmt.Sprintf("%4d  %10.3f Hz  %v", degree, p.Hertz(), p)

		switch {
		case degree == m.degree:
			s.WriteString(currentDegreeStyle.Render("▸ " + line))
		case degree == 0:
			s.WriteString(tonicStyle.Render("  " + line + "  (tonic)"))
		default:
			s.WriteString(degreeStyle.Render("  " + line))
		}
		s.WriteString("\n")
	}

	if m.err != nil {
		s.WriteString("\n")
		s.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s", m.err.Error())))
	}

	return boxStyle.Render(s.String())
}

func asciiLogo() string {
	logo := `
   __  __ _   _ ____  _____ _  _____ _____
  |  \/  | | | / ___|| ____| |/ /_ _|_   _|
  | |\/| | | | \___ \|  _| | ' / | |  | |
  | |  | | |_| |___) | |___| . \ | |  | |
  |_|  |_|\___/|____/|_____|_|\_\___| |_|
`
	return lipgloss.NewStyle().Foreground(accentGreen).Render(logo)
}

// Run starts the TUI application
func Run() error {
	p := tea.NewProgram(New(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
