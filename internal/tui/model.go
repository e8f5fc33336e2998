package tui

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/simlab/internal/config"
	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/experiment"
	"github.com/san-kum/simlab/internal/history"
	"github.com/san-kum/simlab/internal/viz"
)

const (
	panelWidth   = 46
	headerRows   = 2
	footerRows   = 2
	plotSamples  = 240
	rotationRate = 0.35 // attractor yaw, rad per wall second
	pitchStep    = 0.05
	coarseStep   = 10.0
)

// plotReading names the diagnostic charted for each simulation.
var plotReading = map[string]string{
	"track":  "total",
	"lorenz": "log10_separation",
	"gauge":  "alignment",
	"sled":   "kinetic",
}

type Options struct {
	Config *config.Config
	// ConfigPath is where "w" writes the effective config. Empty disables
	// saving.
	ConfigPath string
	Registry   *experiment.Registry
	Logger     *slog.Logger
}

type tickMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the live host: it owns one instance per simulation visited and
// drives the current one from wall-clock ticks.
type Model struct {
	opts      Options
	names     []string
	current   int
	instances map[string]*experiment.Instance
	plots     map[string]*history.Ring[float64]

	theme  viz.Theme
	canvas *viz.Canvas
	area   canvasArea
	ptr    pointer

	rotation    float64
	pitch       float64
	showVectors bool
	slider      int
	seed        int64

	lastTick time.Time
	fps      float64
	status   string
	showHelp bool

	width  int
	height int
}

func NewModel(opts Options) (Model, error) {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Registry == nil {
		opts.Registry = experiment.NewRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	m := Model{
		opts:        opts,
		names:       opts.Registry.Names(),
		instances:   make(map[string]*experiment.Instance),
		plots:       make(map[string]*history.Ring[float64]),
		theme:       viz.GetTheme(opts.Config.Theme),
		pitch:       0.3,
		showVectors: true,
		seed:        opts.Config.Seed,
		width:       120,
		height:      32,
	}
	m.current = -1
	for i, name := range m.names {
		if name == opts.Config.Simulation {
			m.current = i
		}
	}
	if m.current < 0 {
		return Model{}, fmt.Errorf("%w: %s", dynamo.ErrUnknownSimulation, opts.Config.Simulation)
	}
	if _, err := m.instance(); err != nil {
		return Model{}, err
	}
	m.resize()
	return m, nil
}

// Run starts the terminal program and blocks until the user quits.
func Run(opts Options) error {
	m, err := NewModel(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tick(m.opts.Config.FrameInterval())
}

func (m Model) name() string { return m.names[m.current] }

func (m *Model) instance() (*experiment.Instance, error) {
	name := m.name()
	if in, ok := m.instances[name]; ok {
		return in, nil
	}
	in, err := m.opts.Registry.New(name, m.opts.Config, m.opts.Logger)
	if err != nil {
		return nil, err
	}
	m.instances[name] = in
	m.plots[name] = history.NewRing[float64](plotSamples)
	return in, nil
}

func (m *Model) resize() {
	cols := m.width - panelWidth - 1
	rows := m.height - headerRows - footerRows
	cols = max(cols, 20)
	rows = max(rows, 8)
	m.canvas = viz.NewCanvas(cols, rows)
	m.area = canvasArea{Col: 0, Row: headerRows, Cols: cols, Rows: rows}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if ev, ok := m.ptr.handle(msg, m.area); ok {
			m.active().Push(ev)
		}
		return m, nil
	case tickMsg:
		m.onTick(time.Time(msg))
		return m, tick(m.opts.Config.FrameInterval())
	}
	return m, nil
}

func (m *Model) active() *experiment.Instance { return m.instances[m.name()] }

func (m *Model) onTick(now time.Time) {
	var elapsed time.Duration
	if !m.lastTick.IsZero() {
		elapsed = now.Sub(m.lastTick)
		if elapsed > 0 {
			m.fps = 1 / elapsed.Seconds()
		}
	}
	m.lastTick = now

	in := m.active()
	if n := in.Advance(elapsed); n > 0 {
		m.record()
	}
	if !in.Paused() {
		m.rotation = dynamo.WrapAngle(m.rotation + rotationRate*elapsed.Seconds())
	}
}

func (m *Model) record() {
	reading, ok := plotReading[m.name()]
	if !ok {
		return
	}
	if v, ok := m.active().Diagnostics().Get(reading); ok && dynamo.Finite(v) {
		m.plots[m.name()].Push(v)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	in := m.active()
	m.status = ""
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "p":
		in.Toggle()
	case ".", "n":
		in.StepOnce()
		m.record()
	case "r":
		in.Reset()
		m.plots[m.name()].Clear()
	case "R":
		m.seed++
		in.Randomize(m.seed)
		m.plots[m.name()].Clear()
		m.status = fmt.Sprintf("randomized (seed %d)", m.seed)
	case "t":
		m.theme = m.theme.Next()
		m.opts.Config.Theme = m.theme.Name
	case "tab":
		m.switchTo((m.current + 1) % len(m.names))
	case "shift+tab":
		m.switchTo((m.current + len(m.names) - 1) % len(m.names))
	case "up", "k":
		if m.slider > 0 {
			m.slider--
		}
	case "down", "j":
		if m.slider < len(in.Sliders())-1 {
			m.slider++
		}
	case "left", "h":
		m.nudge(-1)
	case "right", "l":
		m.nudge(1)
	case "H":
		m.nudge(-coarseStep)
	case "L":
		m.nudge(coarseStep)
	case "+", "=":
		m.pitch = math.Min(m.pitch+pitchStep, math.Pi/2)
	case "-", "_":
		m.pitch = math.Max(m.pitch-pitchStep, -math.Pi/2)
	case "v":
		m.showVectors = !m.showVectors
	case "w":
		m.save()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) switchTo(i int) {
	m.ptr.cancel()
	prev := m.current
	m.current = i
	if _, err := m.instance(); err != nil {
		m.current = prev
		m.status = err.Error()
		return
	}
	m.slider = 0
	m.lastTick = time.Time{}
}

func (m *Model) nudge(delta float64) {
	in := m.active()
	sliders := in.Sliders()
	if m.slider >= len(sliders) {
		return
	}
	if err := in.Nudge(sliders[m.slider].Name, delta); err != nil {
		m.status = err.Error()
		return
	}
	m.plots[m.name()].Clear()
}

// save writes the host config with every visited instance's slider
// positions.
func (m *Model) save() {
	if m.opts.ConfigPath == "" {
		m.status = "no config path; start with --config to save"
		return
	}
	cfg := m.opts.Config.Clone()
	cfg.Simulation = m.name()
	for name, in := range m.instances {
		for _, s := range in.Sliders() {
			cfg.SetSlider(name, s.Name, in.Position(s.Name))
		}
		delete(cfg.Params, name)
		for k, v := range in.Config().Params[name] {
			cfg.SetParam(name, k, v)
		}
	}
	if err := config.Save(m.opts.ConfigPath, cfg); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "saved " + m.opts.ConfigPath
}

func (m Model) View() string {
	in := m.active()
	st := m.theme.Styles()

	frame := in.Frame(viz.View{
		Surface:     m.canvas.Size(),
		Rotation:    m.rotation,
		Pitch:       m.pitch,
		ShowVectors: m.showVectors,
	})
	m.canvas.Clear()
	m.canvas.Rasterize(frame)

	var b strings.Builder
	state := st.Running.Render("● running")
	if in.Paused() {
		state = st.Paused.Render("○ paused")
	}
	b.WriteString(fmt.Sprintf("%s  %s  %s\n",
		st.Title.Render("simlab · "+m.name()), state,
		st.Hint.Render(fmt.Sprintf("t=%.2fs  steps=%d  %.0ffps  theme=%s", in.Time(), in.Steps(), m.fps, m.theme.Name))))
	b.WriteString(st.Hint.Render(in.Definition().Description) + "\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.canvas.Render(m.theme), " ", m.panel(in, st))
	b.WriteString(body + "\n")

	footer := "space pause  . step  r reset  R random  tab sim  ↑↓ slider  ←→ adjust  v vectors  t theme  ? help  q quit"
	if m.status != "" {
		footer = m.status
	}
	b.WriteString(st.Hint.Render(footer))

	if m.showHelp {
		return helpText + "\n" + b.String()
	}
	return b.String()
}

func (m Model) panel(in *experiment.Instance, st viz.Styles) string {
	var s strings.Builder
	label := st.Label.Width(24)

	s.WriteString(st.Title.Render("READINGS") + "\n")
	for _, r := range in.Diagnostics() {
		s.WriteString(label.Render(r.Name) + st.Value.Render(fmt.Sprintf("%10.4g %s", r.Value, r.Unit)) + "\n")
	}

	s.WriteString("\n" + st.Title.Render("SLIDERS") + "\n")
	for i, sl := range in.Sliders() {
		pos := in.Position(sl.Name)
		bar := viz.ProgressBar(pos/config.SliderMax, 10, m.theme)
		line := fmt.Sprintf("%-10s %s %8.4g %s", sl.Label, bar, in.Value(sl.Name), sl.Unit)
		if i == m.slider {
			s.WriteString(st.Active.Render("▸ ") + line + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}

	if plot := m.plots[m.name()]; plot != nil && plot.Len() > 1 {
		chart := asciigraph.Plot(plot.View().Slice(),
			asciigraph.Height(5),
			asciigraph.Width(panelWidth-14),
			asciigraph.Caption(plotReading[m.name()]))
		s.WriteString("\n" + st.Graph.Render(chart) + "\n")
	}

	if ms := in.Metrics(); len(ms) > 0 {
		s.WriteString("\n" + st.Title.Render("METRICS") + "\n")
		for _, mt := range ms {
			s.WriteString(label.Render(mt.Name()) + st.Value.Render(fmt.Sprintf("%10.4g", mt.Value())) + "\n")
		}
	}

	return st.Panel.Width(panelWidth).Render(s.String())
}

const helpText = `╭──────────────────────────────────────╮
│ space / p   pause or resume          │
│ . / n       single step              │
│ r           reset to initial state   │
│ R           randomize (next seed)    │
│ tab         next simulation          │
│ ↑↓ / jk     select slider            │
│ ←→ / hl     adjust slider (HL x10)   │
│ + / -       tilt the attractor view  │
│ v           toggle force vectors     │
│ t           cycle themes             │
│ w           save config              │
│ mouse       tap, drag and release    │
│ ?           toggle this help         │
╰──────────────────────────────────────╯`
