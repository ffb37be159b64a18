package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/fieldsim/internal/automation"
	"github.com/san-kum/fieldsim/internal/config"
	"github.com/san-kum/fieldsim/internal/export"
	"github.com/san-kum/fieldsim/internal/field"
	"github.com/san-kum/fieldsim/internal/gui"
	"github.com/san-kum/fieldsim/internal/maint"
	"github.com/san-kum/fieldsim/internal/metrics"
	"github.com/san-kum/fieldsim/internal/sim"
	"github.com/san-kum/fieldsim/internal/storage"
	"github.com/san-kum/fieldsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	mode       string
	verbose    bool

	// live view
	frameRate int
	theme     string
	reduced   bool
	showStats bool
	scale     float64

	// bench
	frames   int
	width    int
	height   int
	sweep    string
	save     bool
	plot     bool
	resizeAt int

	// window
	winWidth  int
	winHeight int

	// maint
	maintFor   time.Duration
	maintInGUI bool

	// tune
	param      string
	paramMin   float64
	paramMax   float64
	paramSteps int

	// export-json, snapshot
	jsonOut string
	svgOut  string

	// live --headless
	headless bool
	liveFor  time.Duration
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers commands and flags. The root command runs the terminal
// view when no subcommand is given.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "fieldsim",
		Short:        "animated particle field",
		SilenceUsage: true,
		RunE:         runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fieldsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "field preset (see presets)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	rootCmd.PersistentFlags().StringVar(&mode, "mode", "", "render mode: particles, glow or none")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	addDisplayFlags(rootCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the field in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addDisplayFlags(liveCmd)
	liveCmd.Flags().BoolVar(&headless, "headless", false, "run without a display, reading events from stdin")
	liveCmd.Flags().DurationVar(&liveFor, "for", 0, "stop a headless run after this long (0 = until interrupted)")
	liveCmd.Flags().IntVar(&width, "width", 0, "headless viewport width (default from config)")
	liveCmd.Flags().IntVar(&height, "height", 0, "headless viewport height (default from config)")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "animate the field in a resizable window",
		Args:  cobra.NoArgs,
		RunE:  runWindow,
	}
	windowCmd.Flags().IntVar(&winWidth, "width", 1280, "window width")
	windowCmd.Flags().IntVar(&winHeight, "height", 720, "window height")
	windowCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	windowCmd.Flags().BoolVar(&reduced, "reduced-motion", false, "draw one static frame")

	maintCmd := &cobra.Command{
		Use:   "maint",
		Short: "show the maintenance notice over the field",
		Args:  cobra.NoArgs,
		RunE:  runMaint,
	}
	addDisplayFlags(maintCmd)
	maintCmd.Flags().DurationVar(&maintFor, "for", maint.DefaultDuration, "countdown duration")
	maintCmd.Flags().BoolVar(&maintInGUI, "window", false, "open a window instead of the terminal")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run the field headless and report frame metrics",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&frames, "frames", 0, "frames to run (default from config)")
	benchCmd.Flags().IntVar(&width, "width", 0, "viewport width (default from config)")
	benchCmd.Flags().IntVar(&height, "height", 0, "viewport height (default from config)")
	benchCmd.Flags().IntVar(&resizeAt, "resize-at", -1, "swap width and height before this frame")
	benchCmd.Flags().StringVar(&sweep, "sweep", "", "comma separated viewports, e.g. 800x600,1920x1080")
	benchCmd.Flags().BoolVar(&save, "save", false, "store the run under the data directory")
	benchCmd.Flags().BoolVar(&plot, "plot", true, "plot link counts and frame times")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored bench runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored bench run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&jsonOut, "out", "o", "", "output file (default <run_id>.json)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render the field to an SVG file",
		Args:  cobra.NoArgs,
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&frames, "frames", 1, "frames to advance before the snapshot")
	snapshotCmd.Flags().IntVar(&width, "width", 1920, "viewport width")
	snapshotCmd.Flags().IntVar(&height, "height", 1080, "viewport height")
	snapshotCmd.Flags().StringVarP(&svgOut, "out", "o", "field.svg", "output file")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted scenario of resizes, visibility and mode changes",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "sweep one field parameter and report link and frame metrics",
		Args:  cobra.NoArgs,
		RunE:  runTune,
	}
	tuneCmd.Flags().StringVar(&param, "param", "link_distance", "parameter: "+strings.Join(automation.SweepParams(), ", "))
	tuneCmd.Flags().Float64Var(&paramMin, "min", 60, "first value")
	tuneCmd.Flags().Float64Var(&paramMax, "max", 200, "last value")
	tuneCmd.Flags().IntVar(&paramSteps, "steps", 8, "number of values")
	tuneCmd.Flags().IntVar(&frames, "frames", 120, "frames per value")
	tuneCmd.Flags().BoolVar(&plot, "plot", true, "plot mean links against the parameter")
	tuneCmd.Flags().IntVar(&width, "width", 1920, "viewport width")
	tuneCmd.Flags().IntVar(&height, "height", 1080, "viewport height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available field presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(liveCmd, windowCmd, maintCmd, benchCmd, runsCmd, plotCmd, exportJSONCmd, snapshotCmd, scenarioCmd, tuneCmd, presetsCmd, configCmd)
	return rootCmd
}

func addDisplayFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "theme: "+strings.Join(viz.ThemeNames(), ", "))
	cmd.Flags().BoolVar(&reduced, "reduced-motion", false, "draw one static frame")
	cmd.Flags().BoolVar(&showStats, "stats", false, "show the stats panel")
	cmd.Flags().Float64Var(&scale, "scale", config.DefaultScale, "field pixels per braille dot")
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig resolves defaults, the config file, the preset and then flags,
// in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Preset = preset
		cfg.Field = *p
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Field.Seed = seed
	}
	if flags.Changed("mode") {
		cfg.Display.Mode = mode
	}
	if flags.Changed("fps") {
		cfg.Display.FPS = frameRate
	}
	if flags.Changed("theme") {
		cfg.Display.Theme = theme
	}
	if flags.Changed("reduced-motion") {
		cfg.Display.ReducedMotion = reduced
	}
	if flags.Changed("scale") {
		cfg.Display.Scale = scale
	}
	if flags.Changed("frames") {
		cfg.Bench.Frames = frames
	}
	if flags.Changed("width") {
		cfg.Bench.Width = width
	}
	if flags.Changed("height") {
		cfg.Bench.Height = height
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if headless {
		return runHeadless(cmd)
	}
	return runTerminal(cmd, nil)
}

// runHeadless animates the field in real time without drawing anywhere.
// Each stdin line is a host event: "resize WxH", "hide", "show" or
// "mode NAME".
func runHeadless(cmd *cobra.Command) error {
	logger := newLogger()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if liveFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, liveFor)
		defer cancel()
	}

	events := make(chan sim.Event)
	go readEvents(ctx, os.Stdin, events, logger)

	fps := uint64(cfg.Display.FPS)
	runner := sim.New(cfg.Field)
	runner.AddObserver(field.ObserverFunc(func(s field.FrameStats) {
		if s.Frame%fps == 0 {
			logger.Info("frame", "frame", s.Frame, "mode", s.Mode, "particles", s.Particles, "links", s.Links)
		}
	}))

	lc := sim.LiveConfig{
		Viewport: cfg.BenchViewport(),
		Mode:     cfg.Mode(),
		Reduced:  cfg.Display.ReducedMotion,
		Interval: time.Second / time.Duration(cfg.Display.FPS),
		Events:   events,
	}
	logger.Info("headless run started", "preset", cfg.Preset, "viewport", lc.Viewport.String(), "fps", cfg.Display.FPS)
	result, err := runner.Live(ctx, lc, nil)
	if err != nil {
		return err
	}
	logger.Info("headless run finished", "result", result)
	return nil
}

// readEvents forwards parsed stdin lines until r is exhausted or ctx is done.
// Malformed lines are logged and skipped.
func readEvents(ctx context.Context, r io.Reader, out chan<- sim.Event, logger *slog.Logger) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		ev, err := sim.ParseEvent(line)
		if err != nil {
			logger.Warn("ignoring event", "line", line, "err", err)
			continue
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func runTerminal(cmd *cobra.Command, banner viz.Banner) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(cfg.Field, viz.Options{
		FPS:     cfg.Display.FPS,
		Theme:   cfg.Display.Theme,
		Mode:    cfg.Mode(),
		Reduced: cfg.Display.ReducedMotion,
		Scale:   cfg.Display.Scale,
		Stats:   showStats,
		Banner:  banner,
	})
	if err != nil {
		return err
	}
	return viz.Run(m)
}

func runWindow(cmd *cobra.Command, args []string) error {
	return openWindow(cmd, nil)
}

func openWindow(cmd *cobra.Command, banner viz.Banner) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return gui.Run(cfg.Field, gui.Options{
		Width:   winWidth,
		Height:  winHeight,
		FPS:     cfg.Display.FPS,
		Mode:    cfg.Mode(),
		Reduced: cfg.Display.ReducedMotion,
		Banner:  banner,
	})
}

func runMaint(cmd *cobra.Command, args []string) error {
	countdown := maint.New(time.Now(), maintFor)
	if maintInGUI {
		if winWidth == 0 || winHeight == 0 {
			winWidth, winHeight = 1280, 720
		}
		return openWindow(cmd, countdown)
	}
	return runTerminal(cmd, countdown)
}

func runBench(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Field.Seed == 0 {
		cfg.Field.Seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rc := sim.RunConfig{
		Frames:   cfg.Bench.Frames,
		Viewport: cfg.BenchViewport(),
		Mode:     cfg.Mode(),
		Reduced:  cfg.Display.ReducedMotion,
	}
	if resizeAt >= 0 {
		rc.Resizes = map[int]field.Viewport{
			resizeAt: {Width: rc.Viewport.Height, Height: rc.Viewport.Width},
		}
	}
	runner := sim.New(cfg.Field)

	if sweep != "" {
		return runSweep(ctx, logger, runner, rc)
	}

	logger.Info("bench started", "preset", cfg.Preset, "viewport", rc.Viewport.String(), "frames", rc.Frames, "seed", cfg.Field.Seed)
	start := time.Now()
	result, err := runner.Run(ctx, rc, nil)
	if err != nil {
		return err
	}
	logger.Info("bench finished", "elapsed", time.Since(start), "result", result)

	fmt.Printf("bench %s @ %s\n\n", cfg.Preset, rc.Viewport)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, m := range metrics.Standard() {
		fmt.Fprintf(w, "%s\t%.3f\n", m.Name(), result.Metrics[m.Name()])
	}
	fmt.Fprintf(w, "frames\t%d\n", result.Frames)
	fmt.Fprintf(w, "seeds\t%d\n", result.Seeds)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	printSummaries(map[string][]float64{
		"links":    result.Links(),
		"frame_ms": result.FrameTimes(),
	})

	if plot && len(result.Stats) > 1 {
		fmt.Println()
		plotSeries(result.Links(), "links per frame")
		plotSeries(result.FrameTimes(), "frame time (ms)")
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.RunMetadata{
			Preset:  cfg.Preset,
			Seed:    cfg.Field.Seed,
			Width:   rc.Viewport.Width,
			Height:  rc.Viewport.Height,
			Mode:    string(rc.Mode),
			Frames:  rc.Frames,
			Seeds:   result.Seeds,
			Metrics: result.Metrics,
		}, storage.Records(result.Stats))
		if err != nil {
			return err
		}
		logger.Info("run saved", "id", runID, "dir", dataDir)
		fmt.Printf("saved: %s\n", runID)
	}

	return nil
}

func runSweep(ctx context.Context, logger *slog.Logger, runner *sim.Runner, rc sim.RunConfig) error {
	var viewports []field.Viewport
	for _, part := range strings.Split(sweep, ",") {
		vp, err := field.ParseViewport(part)
		if err != nil {
			return err
		}
		viewports = append(viewports, vp)
	}

	logger.Info("sweep started", "viewports", len(viewports), "frames", rc.Frames)
	start := time.Now()
	results, err := runner.Sweep(ctx, rc, viewports)
	if err != nil {
		return err
	}
	logger.Info("sweep finished", "elapsed", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VIEWPORT\tPARTICLES\tMEAN LINKS\tPEAK LINKS\tFRAME MS")
	for _, r := range results {
		logger.Debug("sweep result", "result", r)
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%.0f\t%.3f\n",
			r.Viewport,
			r.Particles,
			r.Metrics["mean_links"],
			r.Metrics["peak_links"],
			r.Metrics["frame_ms"],
		)
	}
	return w.Flush()
}

func printSummaries(series map[string][]float64) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SERIES\tMEAN\tSTDDEV\tP50\tP95\tMAX")
	for _, name := range []string{"links", "frame_ms"} {
		s := metrics.Summarize(series[name])
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n", name, s.Mean, s.StdDev, s.P50, s.P95, s.Max)
	}
	w.Flush()
}

func plotSeries(data []float64, caption string) {
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)
	fmt.Println()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tVIEWPORT\tMODE\tFRAMES\tMEAN LINKS\tFRAME MS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%s\t%d\t%.1f\t%.3f\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.Mode,
			run.Frames,
			run.Metrics["mean_links"],
			run.Metrics["frame_ms"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	records, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(records) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s @ %dx%d\n", meta.Preset, meta.Width, meta.Height)
	fmt.Printf("frames: %d\n\n", len(records))

	links := make([]float64, len(records))
	times := make([]float64, len(records))
	for i, r := range records {
		links[i] = float64(r.Links)
		times[i] = r.ElapsedMS
	}
	plotSeries(links, "links per frame")
	plotSeries(times, "frame time (ms)")
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]
	path := jsonOut
	if path == "" {
		path = runID + ".json"
	}

	st := storage.New(dataDir)
	if err := st.ExportJSON(runID, path); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	n, _ := flags.GetInt("frames")
	w, _ := flags.GetInt("width")
	h, _ := flags.GetInt("height")
	vp := field.Viewport{Width: w, Height: h}

	svg := export.NewSVG(vp, "")
	rc := sim.RunConfig{Frames: n, Viewport: vp, Mode: cfg.Mode()}
	result, err := sim.New(cfg.Field).Run(cmd.Context(), rc, svg)
	if err != nil {
		return err
	}
	if err := svg.WriteFile(svgOut); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d particles, %d frames)\n", svgOut, result.Particles, result.Frames)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Printf("%s\n", scenario.Description)
	}
	fmt.Println()

	results, err := automation.RunScenario(cmd.Context(), scenario, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tPRESET\tVIEWPORT\tTICKS\tFRAMES\tSEEDS\tPARTICLES\tMEAN LINKS")
	for i, r := range results {
		name := r.Step.Name
		if name == "" {
			name = strconv.Itoa(i + 1)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%.1f\n",
			name,
			r.Step.Preset,
			r.Result.Viewport,
			r.Result.Ticks,
			r.Result.Frames,
			r.Result.Seeds,
			r.Result.Particles,
			r.Result.Metrics["mean_links"],
		)
	}
	return w.Flush()
}

func runTune(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Field.Seed == 0 {
		cfg.Field.Seed = time.Now().UnixNano()
	}

	flags := cmd.Flags()
	n, _ := flags.GetInt("frames")
	w, _ := flags.GetInt("width")
	h, _ := flags.GetInt("height")

	results, err := automation.RunSweep(cmd.Context(), &automation.ParameterSweep{
		Base:      cfg.Field,
		Run:       sim.RunConfig{Frames: n, Viewport: field.Viewport{Width: w, Height: h}, Mode: cfg.Mode()},
		ParamName: param,
		ParamMin:  paramMin,
		ParamMax:  paramMax,
		NumSteps:  paramSteps,
	}, logger)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\tPARTICLES\tMEAN LINKS\tPEAK LINKS\tFRAME MS\n", strings.ToUpper(param))
	means := make([]float64, len(results))
	for i, r := range results {
		means[i] = r.MeanLinks
		fmt.Fprintf(tw, "%.3f\t%d\t%.1f\t%.0f\t%.3f\n", r.ParamValue, r.Particles, r.MeanLinks, r.PeakLinks, r.FrameMS)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if plot && len(means) > 1 {
		fmt.Println()
		plotSeries(means, "mean links by "+param)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDENSITY\tMIN\tSPEED\tLINK\tTRAIL\tMODE\tBOUNDARY")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.0f\t%d\t%s\t%.0f\t%.2f\t%s\t%s\n",
			name, p.Density, p.MinCount, p.Speed, p.LinkDistance, p.Trail, p.Mode(), p.Boundary)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "fieldsim.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
