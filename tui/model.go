// Package tui is a terminal storefront: a beat list driven by the catalog
// query engine and a transport bar whose frames come from tea.Tick.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"beatwave/core/catalog"
	"beatwave/core/player"
	"beatwave/model"
	"beatwave/repository"
)

const (
	seekStep    = 0.05
	volumeStep  = 5.0
	tempoStep   = 5
	tempoStart  = 120
	progressLen = 40
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C084FC"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22D3EE")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	barStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#7C3AED")).Padding(0, 1)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171"))
)

// frameMsg is one animation frame from the host scheduler.
type frameMsg time.Time

// Model is the bubbletea model.
type Model struct {
	all       []model.Beat
	visible   []model.Beat
	query     catalog.Query
	genre     int
	cursor    int
	transport *player.Transport
	interval  time.Duration
	ticking   bool // a frame is scheduled
	status    string
	width     int
}

// New builds a model over beats. opts configure the transport; its
// NewTicker is unused because frames come from tea.Tick.
func New(beats []model.Beat, opts player.Options) Model {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = 16 * time.Millisecond
	}
	all := append([]model.Beat(nil), beats...)
	lookup := func(id string) (model.Beat, bool) {
		for _, b := range all {
			if b.ID == id {
				return b, true
			}
		}
		return model.Beat{}, false
	}
	m := Model{
		all:       all,
		transport: player.NewTransport(lookup, opts),
		interval:  opts.FrameInterval,
	}
	m.refresh()
	return m
}

// Transport exposes the player for callers that inspect state.
func (m Model) Transport() *player.Transport { return m.transport }

// Visible returns the beats currently listed.
func (m Model) Visible() []model.Beat { return m.visible }

// Query returns the active filter.
func (m Model) Query() catalog.Query { return m.query }

func (m *Model) refresh() {
	m.visible = catalog.Apply(m.all, m.query)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) frame() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// schedule starts a frame chain when the transport begins advancing.
func (m *Model) schedule() tea.Cmd {
	if m.ticking || m.transport.Simulator().State() != player.Advancing {
		return nil
	}
	m.ticking = true
	return m.frame()
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case frameMsg:
		m.ticking = false
		m.transport.Tick(time.Time(msg))
		return m, m.schedule()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) apply(cmd player.Command) Model {
	if err := m.transport.Apply(cmd); err != nil {
		m.status = err.Error()
	} else {
		m.status = ""
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.transport.Apply(player.Command{Type: player.CmdPause})
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.visible) > 0 {
			m = m.apply(player.Command{Type: player.CmdPlay, BeatID: m.visible[m.cursor].ID})
		}
	case " ":
		m = m.apply(player.Command{Type: player.CmdToggle})
	case "left", "right":
		step := seekStep
		if msg.String() == "left" {
			step = -seekStep
		}
		pos := m.transport.Simulator().Progress()/player.MaxProgress + step
		m = m.apply(player.Command{Type: player.CmdSeek, Value: pos})
	case "+", "=":
		m = m.apply(player.Command{Type: player.CmdVolumeSet, Value: m.transport.Volume().Level() + volumeStep})
	case "-":
		m = m.apply(player.Command{Type: player.CmdVolumeSet, Value: m.transport.Volume().Level() - volumeStep})
	case "l":
		m = m.apply(player.Command{Type: player.CmdLoop})
	case "g":
		m.genre = (m.genre + 1) % len(repository.Genres)
		m.query.Genre = repository.Genres[m.genre]
		m.refresh()
	case "[", "]":
		bpm := tempoStart
		if m.query.Tempo != nil {
			bpm = *m.query.Tempo
			if msg.String() == "[" {
				bpm -= tempoStep
			} else {
				bpm += tempoStep
			}
		}
		m.query = m.query.WithTempo(bpm)
		m.refresh()
	case "s":
		m.query.CyclePriceSort()
		m.refresh()
	case "b":
		m.query.ToggleBestFirst()
		m.refresh()
	case "r":
		m.query.Reset()
		m.genre = 0
		m.refresh()
	}
	return m, m.schedule()
}

// waveformGlyphs renders bar heights in [0,1].
func waveformGlyphs(bars []float64, width int) string {
	const glyphs = "▁▂▃▄▅▆▇█"
	runes := []rune(glyphs)
	if width > len(bars) {
		width = len(bars)
	}
	var b strings.Builder
	for i := 0; i < width; i++ {
		idx := int(bars[i] * float64(len(runes)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(runes) {
			idx = len(runes) - 1
		}
		b.WriteRune(runes[idx])
	}
	return b.String()
}

func progressBar(progress float64, width int) string {
	filled := int(progress / player.MaxProgress * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat("━", filled) + dimStyle.Render(strings.Repeat("─", width-filled))
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("BEATWAVE"))
	b.WriteString("  " + dimStyle.Render(m.query.String()) + "\n\n")

	if len(m.visible) == 0 {
		b.WriteString(dimStyle.Render("  no beats match") + "\n")
	}
	snap := m.transport.Snapshot()
	for i, beat := range m.visible {
		marker := "  "
		if beat.ID == snap.BeatID {
			marker = "♪ "
		}
		line := fmt.Sprintf("%s%-18s %-14s %3d BPM  %-6s $%6.2f  %s",
			marker, beat.Title, beat.Producer, beat.BPM, beat.Key, beat.Price, waveformGlyphs(beat.Waveform, 16))
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	state := "⏸"
	if snap.Playing {
		state = "▶"
	}
	loop := ""
	if snap.Loop {
		loop = " ⟳"
	}
	title := "nothing playing"
	if snap.BeatID != "" {
		title = snap.Title + " · " + snap.Producer
	}
	bar := fmt.Sprintf("%s %s%s\n%s %s %s  vol %3.0f",
		state, title, loop, snap.Elapsed, progressBar(snap.Progress, progressLen), snap.Total, snap.Volume)
	b.WriteString("\n" + barStyle.Render(bar) + "\n")

	if m.status != "" {
		b.WriteString(errStyle.Render(m.status) + "\n")
	}
	b.WriteString(dimStyle.Render("enter play · space pause · ←/→ seek · +/- vol · l loop · g genre · [/] bpm · s price · b best · r reset · q quit"))
	return b.String()
}
