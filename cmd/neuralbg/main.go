package main

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/neuralbg/internal/analysis"
	"github.com/san-kum/neuralbg/internal/config"
	"github.com/san-kum/neuralbg/internal/export"
	"github.com/san-kum/neuralbg/internal/gui"
	"github.com/san-kum/neuralbg/internal/metrics"
	"github.com/san-kum/neuralbg/internal/storage"
	"github.com/san-kum/neuralbg/internal/surface"
	"github.com/san-kum/neuralbg/internal/tui"
	"github.com/san-kum/neuralbg/internal/viz"
	"github.com/san-kum/neuralbg/internal/window"
)

var (
	// Config file
	configFile string
	// Preset name
	preset   string
	seed     int64
	count    int
	distance float64
	// Logging
	logLevel string
	logFile  string
	logClose io.Closer

	backend   string
	frameRate int
	theme     string
	plain     bool
	delay     int
)

var transparent = color.NRGBA{}

// main registers the commands and runs the desktop window when no
// subcommand is given. It exits with status 1 if the command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "neuralbg",
		Short: "animated particle network background",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logClose != nil {
				logClose.Close()
				logClose = nil
			}
		},
		RunE:         runWindow,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", config.DefaultPreset, "preset configuration ("+strings.Join(config.ListPresets(), ", ")+")")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pf.IntVar(&count, "count", 0, "override particle count")
	pf.Float64Var(&distance, "distance", 0, "override connection distance")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.Flags().StringVar(&backend, "backend", "ebiten", "window backend (ebiten, raylib)")
	rootCmd.Flags().Int("width", config.DefaultWidth, "window width")
	rootCmd.Flags().Int("height", config.DefaultHeight, "window height")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "animate the field in a desktop window",
		Args:  cobra.NoArgs,
		RunE:  runWindow,
	}
	windowCmd.Flags().StringVar(&backend, "backend", "ebiten", "window backend (ebiten, raylib)")
	windowCmd.Flags().Int("width", config.DefaultWidth, "window width")
	windowCmd.Flags().Int("height", config.DefaultHeight, "window height")

	termCmd := &cobra.Command{
		Use:   "term",
		Short: "animate the field in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTerm,
	}
	termCmd.Flags().StringVar(&theme, "theme", viz.DefaultTheme.Name, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	termCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	termCmd.Flags().BoolVar(&plain, "plain", false, "print frames to stdout without the full screen UI")

	recordCmd := &cobra.Command{
		Use:   "record [out.gif]",
		Short: "render frames offscreen into an animated GIF",
		Args:  cobra.ExactArgs(1),
		RunE:  runRecord,
	}
	recordCmd.Flags().Int("frames", 120, "number of frames")
	recordCmd.Flags().Int("width", 480, "image width")
	recordCmd.Flags().Int("height", 270, "image height")
	recordCmd.Flags().IntVar(&delay, "delay", 2, "delay between frames in 1/100 s")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [out.svg|out.png]",
		Short: "render one frame offscreen to SVG or PNG",
		Args:  cobra.ExactArgs(1),
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().Int("frames", 60, "frames to advance before the snapshot")
	snapshotCmd.Flags().Int("width", 800, "image width")
	snapshotCmd.Flags().Int("height", 600, "image height")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "run the field offscreen and print frame metrics",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
	statsCmd.Flags().Int("frames", 600, "number of frames")
	statsCmd.Flags().Int("width", 800, "surface width")
	statsCmd.Flags().Int("height", 600, "surface height")
	statsCmd.Flags().String("save", "", "store the run (metadata and frame log) under this directory")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark offscreen rendering at several particle counts",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	benchCmd.Flags().Int("frames", 300, "frames per run")
	benchCmd.Flags().Int("width", 800, "surface width")
	benchCmd.Flags().Int("height", 600, "surface height")

	runsCmd := &cobra.Command{
		Use:   "runs [dir] [id]",
		Short: "list runs saved by stats --save, or plot one run's links per frame",
		Args:  cobra.MaximumNArgs(2),
		RunE:  listRuns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(windowCmd, termCmd, recordCmd, snapshotCmd, statsCmd, benchCmd, runsCmd, presetsCmd, configCmd)
	return rootCmd
}

// setupLogging installs the default slog logger. The terminal UI owns the
// screen, so there logs are dropped unless --log-file is set.
func setupLogging(cmd *cobra.Command) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}

	var out io.Writer = os.Stderr
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		out, logClose = f, f
	case cmd.Name() == "term":
		out = io.Discard
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	return nil
}

// loadConfig resolves the effective configuration: preset, then config
// file, then flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.GetPreset(preset)
	if err != nil {
		return nil, err
	}

	if configFile != "" {
		cfg, err = config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("count") {
		cfg.Field.Count = count
	}
	if flags.Changed("distance") {
		cfg.Field.ConnectionDistance = distance
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("configuration resolved", "preset", preset, "config", configFile, "count", cfg.Field.Count, "seed", cfg.Seed)
	return cfg, nil
}

func look(cfg *config.Config) export.Look {
	accent, _ := config.Paint(cfg.Style.Particle.Color, 1)
	return export.Look{Background: cfg.Background(), Accent: accent, Opacity: cfg.Style.Opacity}
}

// surfaceFlags reads the size and frame flags of the current command.
func surfaceFlags(cmd *cobra.Command) (w, h, n int) {
	w, _ = cmd.Flags().GetInt("width")
	h, _ = cmd.Flags().GetInt("height")
	n, _ = cmd.Flags().GetInt("frames")
	return w, h, n
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	w, h, _ := surfaceFlags(cmd)
	if cmd.Flags().Changed("width") {
		cfg.Window.Width = w
	}
	if cmd.Flags().Changed("height") {
		cfg.Window.Height = h
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	switch backend {
	case "ebiten":
		return window.Run(cfg, slog.Default())
	case "raylib":
		if !gui.Available() {
			return fmt.Errorf("%w; use --backend ebiten", gui.ErrBackendUnavailable)
		}
		return gui.Run(cfg, slog.Default())
	}
	return fmt.Errorf("unknown backend: %s (available: ebiten, raylib)", backend)
}

func runTerm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	if plain {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return tui.Run(ctx, os.Stdout, tui.Options{Render: opts, FPS: cfg.FPS, Logger: slog.Default()})
	}

	return viz.Run(viz.Options{
		Render: opts,
		Theme:  theme,
		FPS:    cfg.FPS,
		Title:  cfg.Window.Title,
		Logger: slog.Default(),
	})
}

func runRecord(cmd *cobra.Command, args []string) error {
	width, height, frames := surfaceFlags(cmd)
	out := args[0]
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	layer := surface.NewRaster(width, height, transparent)
	rec := export.NewGIFRecorder(layer, look(cfg), delay)
	start := time.Now()
	if _, err := export.Render(opts, layer, width, height, frames, slog.Default(), rec); err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := rec.Save(f); err != nil {
		return err
	}

	fmt.Printf("recorded %d frames (%dx%d) to %s in %v\n", rec.Frames(), width, height, out, time.Since(start).Round(time.Millisecond))
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	width, height, frames := surfaceFlags(cmd)
	out := args[0]
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	switch ext := strings.ToLower(filepath.Ext(out)); ext {
	case ".svg":
		rec := surface.NewRecorder(0, 0)
		if _, err := export.Render(opts, rec, width, height, frames, slog.Default()); err != nil {
			return err
		}
		w, h := rec.Size()
		if err := os.WriteFile(out, []byte(export.FrameToSVG(rec.Ops(), w, h, look(cfg))), 0644); err != nil {
			return err
		}
	case ".png":
		layer := surface.NewRaster(width, height, transparent)
		if _, err := export.Render(opts, layer, width, height, frames, slog.Default()); err != nil {
			return err
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.WritePNG(f, layer.Image(), look(cfg)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported snapshot format %q (use .svg or .png)", ext)
	}

	fmt.Printf("wrote %s\n", out)
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	width, height, frames := surfaceFlags(cmd)
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	set := metrics.Default()
	links := metrics.NewSeries(frames)
	var frameLog storage.FrameLog
	ticks, err := export.Render(opts, surface.NewRecorder(0, 0), width, height, frames, slog.Default(), set, links, &frameLog)
	if err != nil {
		return err
	}
	period := analysis.DominantPeriod(links.Values())

	fmt.Printf("preset: %s\n", preset)
	fmt.Printf("frames: %d\n", ticks)
	fmt.Printf("particles: %d\n\n", cfg.Field.Count)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	values := set.Values()
	for _, name := range set.Names() {
		fmt.Fprintf(w, "%s\t%.3f\n", name, values[name])
	}
	if period > 0 {
		fmt.Fprintf(w, "link period\t%.1f frames\n", period)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if data := links.Values(); len(data) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("links per frame"),
		))
	}

	dir, _ := cmd.Flags().GetString("save")
	if dir == "" {
		return nil
	}
	st := storage.New(dir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Preset:     preset,
		Seed:       cfg.Seed,
		Count:      cfg.Field.Count,
		Distance:   cfg.Field.ConnectionDistance,
		Width:      width,
		Height:     height,
		Frames:     ticks,
		LinkPeriod: period,
		Metrics:    values,
	}, frameLog.Frames())
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	slog.Info("saved run", "id", runID, "dir", dir)
	fmt.Printf("\nsaved run %s\n", runID)
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	width, height, frames := surfaceFlags(cmd)
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	counts := []int{25, 50, 100, 200}
	fmt.Printf("benchmarking %d frames at %dx%d\n\n", frames, width, height)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COUNT\tFRAMES\tTIME\tFRAMES/SEC\tLINKS/FRAME")

	for _, n := range counts {
		run := cfg.Clone()
		run.Field.Count = n
		opts, err := run.Options()
		if err != nil {
			return err
		}

		density := metrics.NewLinkDensity()
		layer := surface.NewRaster(width, height, transparent)
		start := time.Now()
		ticks, err := export.Render(opts, layer, width, height, frames, slog.Default(), metrics.NewSet(density))
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%.1f\n",
			n, ticks, elapsed.Round(time.Microsecond), float64(ticks)/elapsed.Seconds(), density.Value())
	}

	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	dir := "runs"
	if len(args) == 1 {
		dir = args[0]
	}
	st := storage.New(dir)
	if len(args) == 2 {
		return showRun(st, args[1])
	}
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Printf("no runs in %s\n", dir)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tSEED\tCOUNT\tFRAMES\tLINKS/FRAME")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%.2f\n",
			r.ID, r.Preset, r.Seed, r.Count, r.Frames, r.Metrics["links_per_frame"])
	}
	return w.Flush()
}

func showRun(st *storage.Store, id string) error {
	meta, err := st.Load(id)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(id)
	if err != nil {
		return err
	}

	links := make([]float64, len(frames))
	reflections := 0
	for i, f := range frames {
		links[i] = float64(f.Links)
		reflections += f.Reflections
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s  seed: %d  particles: %d  distance: %.0f\n", meta.Preset, meta.Seed, meta.Count, meta.Distance)
	fmt.Printf("frames: %d  reflections: %d\n", len(frames), reflections)
	if period := analysis.DominantPeriod(links); period > 0 {
		fmt.Printf("link period: %.1f frames\n", period)
	}
	if len(links) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(links,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("links per frame"),
		))
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOUNT\tDISTANCE\tSPEED\tSIZE")
	for _, name := range config.ListPresets() {
		cfg, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%.0f\t%.2f\t%.1f-%.1f\n",
			name,
			cfg.Field.Count,
			cfg.Field.ConnectionDistance,
			cfg.Field.MaxSpeed,
			cfg.Field.MinSize,
			cfg.Field.MaxSize,
		)
	}
	return w.Flush()
}
