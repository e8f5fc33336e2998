package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/geom"
)

func mouse(x, y int, action tea.MouseAction, button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func TestPointerGestures(t *testing.T) {
	area := canvasArea{Col: 0, Row: 2, Cols: 10, Rows: 5}
	surface := geom.Size{W: 20, H: 20}

	tests := []struct {
		name string
		msgs []tea.MouseMsg
		want []dynamo.Event
	}{
		{
			name: "tap",
			msgs: []tea.MouseMsg{
				mouse(3, 3, tea.MouseActionPress, tea.MouseButtonLeft),
				mouse(3, 3, tea.MouseActionRelease, tea.MouseButtonNone),
			},
			want: []dynamo.Event{
				{Kind: dynamo.Tap, At: geom.Vec2{X: 7, Y: 6}, From: geom.Vec2{X: 7, Y: 6}, Surface: surface},
			},
		},
		{
			name: "drag and release",
			msgs: []tea.MouseMsg{
				mouse(1, 2, tea.MouseActionPress, tea.MouseButtonLeft),
				mouse(1, 2, tea.MouseActionMotion, tea.MouseButtonLeft),
				mouse(4, 4, tea.MouseActionMotion, tea.MouseButtonLeft),
				mouse(4, 4, tea.MouseActionRelease, tea.MouseButtonNone),
			},
			want: []dynamo.Event{
				{Kind: dynamo.Drag, At: geom.Vec2{X: 9, Y: 10}, From: geom.Vec2{X: 3, Y: 2}, Surface: surface},
				{Kind: dynamo.Release, At: geom.Vec2{X: 9, Y: 10}, From: geom.Vec2{X: 3, Y: 2}, Surface: surface},
			},
		},
		{
			name: "press outside canvas",
			msgs: []tea.MouseMsg{
				mouse(15, 3, tea.MouseActionPress, tea.MouseButtonLeft),
				mouse(15, 3, tea.MouseActionRelease, tea.MouseButtonNone),
			},
		},
		{
			name: "right button",
			msgs: []tea.MouseMsg{
				mouse(3, 3, tea.MouseActionPress, tea.MouseButtonRight),
				mouse(3, 3, tea.MouseActionRelease, tea.MouseButtonNone),
			},
		},
		{
			name: "motion without press",
			msgs: []tea.MouseMsg{
				mouse(3, 3, tea.MouseActionMotion, tea.MouseButtonNone),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p pointer
			var got []dynamo.Event
			for _, msg := range tt.msgs {
				if ev, ok := p.handle(msg, area); ok {
					got = append(got, ev)
				}
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
