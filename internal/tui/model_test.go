package tui

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/simlab/internal/config"
	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/experiment"
	"github.com/san-kum/simlab/internal/sim"
	"github.com/san-kum/simlab/internal/viz"
)

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("update returned %T", next)
	}
	return mm
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newModel(t *testing.T) Model {
	t.Helper()
	m, err := NewModel(Options{Config: config.DefaultConfig()})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestNewModelUnknownSimulation(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Simulation = "pendulum"
	if _, err := NewModel(Options{Config: cfg}); !errors.Is(err, dynamo.ErrUnknownSimulation) {
		t.Errorf("expected ErrUnknownSimulation, got %v", err)
	}
}

func TestTicksAdvanceByWallTime(t *testing.T) {
	m := newModel(t)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	m = update(t, m, tickMsg(t0))
	if m.active().Steps() != 0 {
		t.Fatalf("first tick should not step, got %d", m.active().Steps())
	}
	m = update(t, m, tickMsg(t0.Add(100*time.Millisecond)))
	if got := m.active().Steps(); got != 12 {
		t.Errorf("expected 12 steps for 100ms at 120Hz, got %d", got)
	}
	if m.plots["track"].Len() != 1 {
		t.Errorf("expected one plot sample, got %d", m.plots["track"].Len())
	}

	m = update(t, m, key(" "))
	m = update(t, m, tickMsg(t0.Add(200*time.Millisecond)))
	if got := m.active().Steps(); got != 12 {
		t.Errorf("paused host stepped: %d", got)
	}

	m = update(t, m, key("."))
	if got := m.active().Steps(); got != 13 {
		t.Errorf("single step: got %d steps", got)
	}
}

func TestKeysSwitchAndTune(t *testing.T) {
	m := newModel(t)
	if m.name() != "track" {
		t.Fatalf("starting simulation %q", m.name())
	}

	m = update(t, m, key("right"))
	if got := m.active().Value("friction"); math.Abs(got-0.01) > 1e-12 {
		t.Errorf("friction after one nudge = %f", got)
	}

	m = update(t, m, key("tab"))
	if m.name() != "gauge" {
		t.Errorf("tab from track should wrap to gauge, got %q", m.name())
	}
	m = update(t, m, key("tab"))
	if m.name() != "lorenz" {
		t.Errorf("expected lorenz, got %q", m.name())
	}

	before := m.theme.Name
	m = update(t, m, key("t"))
	if m.theme.Name == before {
		t.Error("theme did not change")
	}

	out := m.View()
	if !strings.Contains(out, "simlab · lorenz") {
		t.Error("view missing title")
	}
}

func TestWindowResize(t *testing.T) {
	m := newModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.area.Cols != 100-panelWidth-1 || m.area.Rows != 30-headerRows-footerRows {
		t.Errorf("unexpected canvas area %+v", m.area)
	}
	if m.canvas.Width != m.area.Cols || m.canvas.Height != m.area.Rows {
		t.Error("canvas not resized with area")
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 10, Height: 5})
	if m.area.Cols != 20 || m.area.Rows != 8 {
		t.Errorf("minimum canvas not enforced: %+v", m.area)
	}
}

func TestLiveRenderer(t *testing.T) {
	in, err := experiment.NewRegistry().New("track", config.DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	lr := NewLiveRenderer(&buf, in, viz.ThemeMinimal, 30, 8, 10)
	in.AddObserver(lr)

	if err := sim.Run(context.Background(), in, 120, 0, nil); err != nil {
		t.Fatal(err)
	}
	if lr.Frames() < 5 || lr.Frames() > 11 {
		t.Errorf("expected about 10 frames for 1s at 10fps, got %d", lr.Frames())
	}
	if !strings.Contains(buf.String(), "Model: track") {
		t.Error("missing frame header")
	}
}
