package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/simlab/internal/analysis"
	"github.com/san-kum/simlab/internal/config"
	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/experiment"
	"github.com/san-kum/simlab/internal/export"
	"github.com/san-kum/simlab/internal/physics"
	"github.com/san-kum/simlab/internal/sim"
	"github.com/san-kum/simlab/internal/storage"
	"github.com/san-kum/simlab/internal/tui"
	"github.com/san-kum/simlab/internal/viz"
)

const maxColumns = 7

// summaryReading is the series each simulation's run summary is built on.
var summaryReading = map[string]string{
	"track":  "velocity",
	"lorenz": "separation",
	"gauge":  "alignment",
	"sled":   "speed",
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr)

	in, err := experiment.NewRegistry().New(cfg.Simulation, cfg, logger)
	if err != nil {
		return err
	}
	steps := int(math.Round(cfg.Duration / in.Dt()))

	var rec *storage.Recorder
	if record {
		st := storage.New(cfg.Record.Dir)
		rec, err = st.Create(cfg.Simulation, cfg.Record.Every, time.Now())
		if err != nil {
			return err
		}
		in.AddObserver(rec)
	}

	reading := summaryReading[cfg.Simulation]
	var series []float64
	in.AddObserver(sim.ObserverFunc(func(_ int, _ float64, d dynamo.Diagnostics) {
		if v, ok := d.Get(reading); ok {
			series = append(series, v)
		}
	}))

	var fn func(int, dynamo.Diagnostics) bool
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if watch {
		lr := tui.NewLiveRenderer(os.Stdout, in, viz.GetTheme(cfg.Theme), 80, 24, frameRate)
		in.AddObserver(lr)
		in.AddObserver(tui.Pace(in.Dt()))
		lr.Start()
		defer lr.Stop()
	} else {
		header := false
		fn = func(step int, d dynamo.Diagnostics) bool {
			n := min(len(d), maxColumns)
			if !header {
				names := make([]string, n)
				for i := 0; i < n; i++ {
					names[i] = strings.ToUpper(d[i].Name)
				}
				fmt.Fprintln(w, "STEP\tTIME\t"+strings.Join(names, "\t"))
				header = true
			}
			fmt.Fprintf(w, "%d\t%.3f", step, in.Time())
			for i := 0; i < n; i++ {
				fmt.Fprintf(w, "\t%.5g", d[i].Value)
			}
			fmt.Fprintln(w)
			return true
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("run started", "sim", cfg.Simulation, "steps", steps, "dt", in.Dt(), "seed", cfg.Seed)
	start := time.Now()
	runErr := sim.Run(ctx, in, steps, every, fn)
	elapsed := time.Since(start)
	if err := w.Flush(); err != nil {
		return err
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	if runErr != nil {
		fmt.Println("interrupted")
	}

	fmt.Printf("\ncompleted %d steps (%.2fs simulated) in %v\n", in.Steps(), in.Time(), elapsed)
	metricValues := make(map[string]float64)
	fmt.Println("\nmetrics:")
	for _, m := range in.Metrics() {
		metricValues[m.Name()] = m.Value()
		fmt.Printf("  %-24s %.6g\n", m.Name(), m.Value())
	}
	summarize(in, series)

	if rec != nil {
		params := make(map[string]float64)
		for _, s := range in.Sliders() {
			params[s.Name] = in.Value(s.Name)
		}
		err := rec.Close(storage.RunMetadata{
			Simulation: cfg.Simulation,
			Seed:       cfg.Seed,
			Dt:         in.Dt(),
			Duration:   in.Time(),
			Steps:      in.Steps(),
			Params:     params,
			Metrics:    metricValues,
		})
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s (%d samples)\n", rec.ID(), rec.Rows())
	}
	return nil
}

// summarize prints the offline analysis of the series a run collected.
func summarize(in *experiment.Instance, series []float64) {
	if len(series) == 0 {
		return
	}
	dt := in.Dt()
	fmt.Println("\nsummary:")
	switch in.Name() {
	case "lorenz":
		trend := analysis.SeparationTrend(series, dt)
		fmt.Printf("  %-24s %.4f /s (r²=%.3f, %d samples)\n", "log-separation slope", trend.Slope, trend.RSquared, trend.Samples)
		verdict := "decaying: nearby starts converge"
		if trend.Growing() {
			verdict = "growing: sensitive to initial conditions"
		}
		fmt.Printf("  %-24s %s\n", "separation", verdict)
		lorenz := &physics.Lorenz{Sigma: in.Value("sigma"), Rho: in.Value("rho"), Beta: in.Value("beta")}
		lambda := analysis.LyapunovExponent(lorenz, dynamo.State{1, 1, 1}, dt, in.Time(), in.Value("epsilon"))
		fmt.Printf("  %-24s %.4f\n", "lyapunov estimate", lambda)
	case "gauge":
		s := analysis.Summarize(series)
		fmt.Printf("  %-24s %.4f -> %.4f (max %.4f)\n", "alignment", series[0], s.Last, s.Max)
		fmt.Printf("  %-24s %v\n", "never decreased", analysis.Monotone(series, 1e-9))
	default:
		speeds := make([]float64, len(series))
		for i, v := range series {
			speeds[i] = math.Abs(v)
		}
		s := analysis.Summarize(speeds)
		fmt.Printf("  %-24s %.4g (mean %.4g)\n", "peak speed", s.Max, s.Mean)
		if s.Last < 1e-3 {
			if t, ok := analysis.SettleTime(speeds, dt, 1e-3); ok {
				fmt.Printf("  %-24s %.3fs\n", "came to rest at", t)
			}
		} else {
			fmt.Printf("  %-24s %.4g\n", "still moving at", s.Last)
		}
	}
}

func listSims(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIM\tDT\tSLIDERS\tDESCRIPTION")
	for _, name := range registry.Names() {
		def, err := registry.Get(name)
		if err != nil {
			return err
		}
		names := make([]string, len(def.Sliders))
		for i, s := range def.Sliders {
			names[i] = s.Name
		}
		fmt.Fprintf(w, "%s\t%.4gs\t%s\t%s\n", name, def.Dt, strings.Join(names, ","), def.Description)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	st := storage.New(cfg.Record.Dir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSIM\tTIME\tDURATION\tDT\tSTEPS\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Simulation,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Steps,
			run.Seed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	st := storage.New(cfg.Record.Dir)

	var meta *storage.RunMetadata
	if len(args) > 0 {
		meta, err = st.Load(args[0])
	} else {
		meta, err = st.Latest("")
	}
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(meta.ID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	names := readings
	if len(names) == 0 {
		names = storage.Names(samples)
		if len(names) > 6 {
			names = names[:6]
		}
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("simulation: %s\n", meta.Simulation)
	fmt.Printf("samples: %d (every %d steps)\n\n", len(samples), meta.Every)

	for _, name := range names {
		_, values := storage.Series(samples, name)
		if len(values) == 0 {
			fmt.Printf("no reading %q\n\n", name)
			continue
		}
		graph := asciigraph.Plot(values,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	sims := experiment.NewRegistry().Names()
	if len(args) > 0 {
		sims = args
	}
	for _, name := range sims {
		presets := config.ListPresets(name)
		if len(presets) == 0 {
			fmt.Printf("no presets for simulation: %s\n", name)
			continue
		}
		fmt.Printf("presets for %s:\n", name)
		for _, p := range presets {
			fmt.Printf("  %-12s %s\n", p, describePreset(name, config.GetPreset(name, p)))
		}
	}
	return nil
}

func describePreset(sim string, p *config.Config) string {
	params := p.Params[sim]
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys)+1)
	if p.Track.Shape != "" {
		parts = append(parts, "shape="+p.Track.Shape)
	}
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%g", k, params[k]))
	}
	return strings.Join(parts, " ")
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	in, err := experiment.NewRegistry().New(cfg.Simulation, cfg, newLogger(os.Stderr))
	if err != nil {
		return err
	}
	steps := int(math.Round(after / in.Dt()))
	if err := sim.Run(context.Background(), in, steps, 0, nil); err != nil {
		return err
	}

	canvas := viz.NewCanvas(cols, rows)
	theme := viz.GetTheme(cfg.Theme)
	frame := in.Frame(viz.View{
		Surface:     canvas.Size(),
		Rotation:    0.35 * in.Time(),
		Pitch:       0.3,
		ShowVectors: true,
	})

	var svg string
	if braille {
		canvas.Rasterize(frame)
		svg = export.CanvasToSVG(canvas, theme, svgScale)
	} else {
		svg = export.FrameToSVG(frame, theme, svgScale)
	}

	path := outFile
	if path == "" {
		path = cfg.Simulation + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	fmt.Printf("wrote %s (%d primitives, t=%.2fs)\n", path, len(frame.Prims), in.Time())
	return nil
}
