package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/geom"
)

// pointer turns terminal mouse reports into model events. Terminal cells
// map to the centre of their 2x4 braille block on the canvas surface.
type pointer struct {
	pressed bool
	moved   bool
	from    geom.Vec2
}

// canvasArea is where the canvas sits on screen, in terminal cells.
type canvasArea struct {
	Col, Row   int // top-left cell
	Cols, Rows int
}

func (a canvasArea) surface() geom.Size {
	return geom.Size{W: float64(a.Cols * 2), H: float64(a.Rows * 4)}
}

func (a canvasArea) contains(x, y int) bool {
	return x >= a.Col && x < a.Col+a.Cols && y >= a.Row && y < a.Row+a.Rows
}

func (a canvasArea) toSurface(x, y int) geom.Vec2 {
	return geom.Vec2{X: float64((x-a.Col)*2) + 1, Y: float64((y-a.Row)*4) + 2}
}

// handle updates the gesture and returns the event to queue, if any.
// Only left presses on the canvas start a gesture; a release without
// motion is a tap at the press point.
func (p *pointer) handle(msg tea.MouseMsg, area canvasArea) (dynamo.Event, bool) {
	at := area.toSurface(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !area.contains(msg.X, msg.Y) {
			return dynamo.Event{}, false
		}
		p.pressed, p.moved, p.from = true, false, at
	case tea.MouseActionMotion:
		if !p.pressed || at == p.from && !p.moved {
			return dynamo.Event{}, false
		}
		p.moved = true
		return dynamo.Event{Kind: dynamo.Drag, At: at, From: p.from, Surface: area.surface()}, true
	case tea.MouseActionRelease:
		if !p.pressed {
			return dynamo.Event{}, false
		}
		p.pressed = false
		if !p.moved {
			return dynamo.Event{Kind: dynamo.Tap, At: p.from, From: p.from, Surface: area.surface()}, true
		}
		return dynamo.Event{Kind: dynamo.Release, At: at, From: p.from, Surface: area.surface()}, true
	}
	return dynamo.Event{}, false
}

func (p *pointer) cancel() { *p = pointer{} }
