package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/simlab/internal/config"
	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/experiment"
	"github.com/san-kum/simlab/internal/tui"
	"github.com/san-kum/simlab/internal/viz"
)

var (
	configFile string
	preset     string
	verbose    bool
	seed       int64
	theme      string
	dataDir    string
	sets       []string
	sliders    []string

	// run
	duration  float64
	every     int
	record    bool
	watch     bool
	frameRate int

	// plot
	readings []string

	// snapshot
	outFile  string
	after    float64
	cols     int
	rows     int
	braille  bool
	svgScale float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "simlab",
		Short:        "interactive physics learning simulations",
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		// Default to the live terminal host when no command given
		RunE: runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "apply a named preset")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.Int64Var(&seed, "seed", 1, "random seed")
	pf.StringVar(&theme, "theme", "", "colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	pf.StringVar(&dataDir, "data", "", "run store directory (default from config)")
	pf.StringArrayVar(&sets, "set", nil, "physical parameter override, name=value")
	pf.StringArrayVar(&sliders, "slider", nil, "slider position in [0,100], name=pos")

	liveCmd := &cobra.Command{
		Use:   "live [sim]",
		Short: "run a simulation in the terminal with mouse and keyboard",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}

	runCmd := &cobra.Command{
		Use:   "run [sim]",
		Short: "run a simulation headless and print diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&duration, "duration", config.DefaultDuration, "simulated seconds")
	runCmd.Flags().IntVar(&every, "every", 60, "print diagnostics every n steps (0 disables)")
	runCmd.Flags().BoolVar(&record, "record", false, "record diagnostics to the run store")
	runCmd.Flags().BoolVar(&watch, "watch", false, "draw the run in place at real time")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --watch")

	simsCmd := &cobra.Command{
		Use:   "sims",
		Short: "list simulations and their sliders",
		RunE:  listSims,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run (latest if omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&readings, "reading", nil, "readings to plot (default: first six)")

	presetsCmd := &cobra.Command{
		Use:   "presets [sim]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [sim]",
		Short: "render one frame to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshot,
	}
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <sim>.svg)")
	snapshotCmd.Flags().Float64Var(&after, "after", 2, "simulated seconds before the snapshot")
	snapshotCmd.Flags().IntVar(&cols, "cols", 80, "canvas columns")
	snapshotCmd.Flags().IntVar(&rows, "rows", 30, "canvas rows")
	snapshotCmd.Flags().BoolVar(&braille, "braille", false, "render the rasterized braille canvas instead of vectors")
	snapshotCmd.Flags().Float64Var(&svgScale, "scale", 4, "svg units per surface pixel")

	configCmd := &cobra.Command{
		Use:   "config [sim]",
		Short: "print or write the effective config as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}
	configCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(liveCmd, runCmd, simsCmd, listCmd, plotCmd, presetsCmd, snapshotCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig resolves the effective config: defaults, then the config
// file, then the preset, then flags.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if len(args) > 0 {
		cfg.Simulation = args[0]
	}

	def, err := experiment.NewRegistry().Get(cfg.Simulation)
	if err != nil {
		return nil, err
	}

	if preset != "" {
		p := config.GetPreset(def.Name, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(def.Name))
		}
		cfg.Apply(p)
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("duration") {
		cfg.Duration = duration
	}
	if dataDir != "" {
		cfg.Record.Dir = dataDir
	}

	for _, s := range sliders {
		name, pos, err := parseAssign(def, s)
		if err != nil {
			return nil, err
		}
		cfg.SetSlider(def.Name, name, pos)
	}
	for _, s := range sets {
		name, v, err := parseAssign(def, s)
		if err != nil {
			return nil, err
		}
		cfg.SetParam(def.Name, name, v)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseAssign(def *experiment.Definition, s string) (string, float64, error) {
	name, raw, ok := strings.Cut(s, "=")
	if !ok {
		return "", 0, fmt.Errorf("expected name=value, got %q", s)
	}
	name = strings.TrimSpace(name)
	if _, ok := def.Slider(name); !ok {
		return "", 0, fmt.Errorf("%w: %s.%s", dynamo.ErrUnknownParam, def.Name, name)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", 0, fmt.Errorf("parameter %s: %w", name, err)
	}
	return name, v, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI; debug records go to a file.
	logger := slog.New(slog.DiscardHandler)
	if verbose {
		f, err := tea.LogToFile("simlab-debug.log", "simlab")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer f.Close()
		logger = newLogger(f)
	}

	return tui.Run(tui.Options{
		Config:     cfg,
		ConfigPath: configFile,
		Logger:     logger,
	})
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if outFile == "" {
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := config.Save(outFile, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}
