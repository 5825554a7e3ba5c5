package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"beatwave/core/catalog"
	"beatwave/core/player"
	"beatwave/repository"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestPlayAndFrames(t *testing.T) {
	m := New(repository.FixtureBeats(), player.Options{FrameInterval: time.Millisecond})

	m, _ = send(t, m, key("down"))
	m, cmd := send(t, m, key("enter"))
	if cmd == nil {
		t.Fatal("playing should schedule a frame")
	}
	cur, ok := m.Transport().Current()
	if !ok || cur.ID != "2" {
		t.Fatalf("current = %+v", cur)
	}

	start := time.Now()
	m, cmd = send(t, m, frameMsg(start))
	if cmd == nil {
		t.Fatal("frames continue while advancing")
	}
	m, _ = send(t, m, frameMsg(start.Add(2*time.Second)))
	if got := m.Transport().Simulator().Progress(); got < 1.99 || got > 2.01 {
		t.Errorf("progress = %v, want 2", got)
	}

	m, cmd = send(t, m, key(" "))
	if m.Transport().Simulator().Playing() {
		t.Error("space should pause")
	}
	// the pending frame arrives after the pause and must not reschedule
	m, cmd = send(t, m, frameMsg(start.Add(3*time.Second)))
	if cmd != nil {
		t.Error("no frames while paused")
	}
	if !strings.Contains(m.View(), "Glitch Protocol") {
		t.Error("view should show the current beat")
	}
}

func TestFilterKeys(t *testing.T) {
	m := New(repository.FixtureBeats(), player.Options{})

	m, _ = send(t, m, key("g")) // Trap
	if m.Query().Genre != "Trap" || len(m.Visible()) != 1 {
		t.Fatalf("genre filter = %s, %d beats", m.Query().Genre, len(m.Visible()))
	}
	m, _ = send(t, m, key("r"))
	if !m.Query().IsZero() || len(m.Visible()) != 7 {
		t.Fatal("reset should clear the query")
	}

	m, _ = send(t, m, key("]")) // 120
	m, _ = send(t, m, key("]")) // 125
	if m.Query().Tempo == nil || *m.Query().Tempo != 125 {
		t.Fatalf("tempo = %v", m.Query().Tempo)
	}
	// 115..135: 2 (128)
	if len(m.Visible()) != 1 || m.Visible()[0].ID != "2" {
		t.Errorf("tempo window = %d beats", len(m.Visible()))
	}

	m, _ = send(t, m, key("r"))
	m, _ = send(t, m, key("s"))
	if m.Query().Ranking != catalog.RankPriceDesc || m.Visible()[0].ID != "4" {
		t.Errorf("price desc first = %s", m.Visible()[0].ID)
	}
	m, _ = send(t, m, key("b"))
	if m.Query().Ranking != catalog.RankBestFirst || m.Visible()[0].ID != "3" {
		t.Errorf("best first = %s", m.Visible()[0].ID)
	}
}

func TestTransportKeys(t *testing.T) {
	m := New(repository.FixtureBeats(), player.Options{})

	m, _ = send(t, m, key(" "))
	if !strings.Contains(m.View(), "no track selected") {
		t.Error("toggle without a track should report an error")
	}

	m, _ = send(t, m, key("enter"))
	m, _ = send(t, m, key("l"))
	if !m.Transport().Simulator().Loop() {
		t.Error("l should enable loop")
	}
	m, _ = send(t, m, key("-"))
	if got := m.Transport().Volume().Level(); got != player.DefaultVolume-volumeStep {
		t.Errorf("volume = %v", got)
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.Transport().Simulator().Progress(); got < 4.99 || got > 5.01 {
		t.Errorf("seek = %v, want 5", got)
	}
}
