package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/history"
	"github.com/san-kum/simlab/internal/sim"
	"github.com/san-kum/simlab/internal/viz"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer is a sim.Observer that redraws a headless run in place at
// a bounded frame rate. Sim time, not wall time, paces it, so a fast run
// is sampled rather than slowed down.
type LiveRenderer struct {
	out      io.Writer
	runner   sim.Runner
	theme    viz.Theme
	canvas   *viz.Canvas
	interval float64 // sim seconds between frames
	next     float64
	rotation float64
	frames   int
	trace    *history.Ring[float64]
}

func NewLiveRenderer(out io.Writer, runner sim.Runner, theme viz.Theme, cols, rows, frameRate int) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &LiveRenderer{
		out:      out,
		runner:   runner,
		theme:    theme,
		canvas:   viz.NewCanvas(max(cols, 10), max(rows, 4)),
		interval: 1 / float64(frameRate),
		trace:    history.NewRing[float64](plotSamples),
	}
}

func (r *LiveRenderer) Start()      { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()       { fmt.Fprint(r.out, showCursor) }
func (r *LiveRenderer) Frames() int { return r.frames }

func (r *LiveRenderer) OnStep(step int, t float64, d dynamo.Diagnostics) {
	if v, ok := d.Get(plotReading[r.runner.Name()]); ok && dynamo.Finite(v) {
		r.trace.Push(v)
	}
	if t < r.next {
		return
	}
	r.next = t + r.interval
	r.rotation = dynamo.WrapAngle(r.rotation + rotationRate*r.interval)
	r.render(t, d)
}

func (r *LiveRenderer) render(t float64, d dynamo.Diagnostics) {
	r.canvas.Clear()
	r.canvas.Rasterize(r.runner.Frame(viz.View{
		Surface:     r.canvas.Size(),
		Rotation:    r.rotation,
		Pitch:       0.3,
		ShowVectors: true,
	}))

	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("Model: %s | Time: %.2fs\n", r.runner.Name(), t))
	b.WriteString(r.canvas.Render(r.theme))
	b.WriteString("\n")
	for i, rd := range d {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(fmt.Sprintf("%s=%.3g", rd.Name, rd.Value))
	}
	b.WriteString("\n")
	if r.trace.Len() > 1 {
		b.WriteString(fmt.Sprintf("%s %s\n", plotReading[r.runner.Name()], viz.Sparkline(r.trace.View().Slice(), r.canvas.Width)))
	}
	fmt.Fprint(r.out, b.String())
	r.frames++
}

// Pace returns an observer that sleeps between steps so a headless run
// advances at roughly real time.
func Pace(dt float64) sim.Observer {
	var last time.Time
	step := time.Duration(dt * float64(time.Second))
	return sim.ObserverFunc(func(int, float64, dynamo.Diagnostics) {
		if !last.IsZero() {
			if wait := step - time.Since(last); wait > 0 {
				time.Sleep(wait)
			}
		}
		last = time.Now()
	})
}
