package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/gogpu/gg"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/fraktale/internal/config"
	"github.com/san-kum/fraktale/internal/export"
	"github.com/san-kum/fraktale/internal/fractal"
	"github.com/san-kum/fraktale/internal/logging"
	"github.com/san-kum/fraktale/internal/metrics"
	"github.com/san-kum/fraktale/internal/render"
	"github.com/san-kum/fraktale/internal/viz"
	"github.com/san-kum/fraktale/internal/web"
)

var (
	configFile string
	preset     string
	width      int
	height     int
	zoom       float64
	addr       string
	noLabels   bool
	verbose    bool
	adds       []string
	output     string
	writeTo    string
	jsonOut    string
	seeds      int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fraktale",
		Short: "recursive fractal visualizer",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				l := logging.New(os.Stderr, true)
				logging.SetLogger(l)
				gg.SetLogger(l)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return viz.RunInteractive(cfg)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "scene file (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a preset, as algorithm/name")
	pf.IntVar(&width, "width", config.DefaultWidth, "canvas width in pixels")
	pf.IntVar(&height, "height", config.DefaultHeight, "canvas height in pixels")
	pf.Float64Var(&zoom, "zoom", render.DefaultZoom, "initial zoom factor")
	pf.BoolVar(&noLabels, "no-labels", false, "hide axis tick labels")
	pf.StringArrayVar(&adds, "add", nil, "add a fractal, e.g. circle:radius=80@#ff0000 or custom-iterated-map:iterations=500;y, -x (repeatable)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render the scene to a PNG file",
		RunE:  renderPNG,
	}
	renderCmd.Flags().StringVarP(&output, "output", "o", "fraktale.png", "output file")

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "render the scene to an SVG file",
		RunE:  renderSVG,
	}
	svgCmd.Flags().StringVarP(&output, "output", "o", "fraktale.svg", "output file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the browser canvas",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")

	algorithmsCmd := &cobra.Command{
		Use:   "algorithms",
		Short: "list algorithms and their form fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "VALUE\tLABEL\tFIELDS")
			for _, a := range web.Algorithms() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", a.Value, a.Label, strings.Join(a.Keys, ", "))
			}
			return w.Flush()
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [algorithm]",
		Short: "list presets, or write one to a scene file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}
	presetsCmd.Flags().StringVar(&writeTo, "write", "", "write the --preset scene to this file")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "plot how each fractal of the scene grows",
		RunE:  sceneStats,
	}
	statsCmd.Flags().StringVar(&jsonOut, "json", "", "write a JSON report to this file instead of plotting")
	statsCmd.Flags().IntVar(&seeds, "seeds", 1, "replay iterated maps with this many consecutive seeds")

	rootCmd.AddCommand(renderCmd, svgCmd, serveCmd, algorithmsCmd, presetsCmd, statsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers the scene: defaults, then the preset, then the config
// file, then explicitly set flags and --add fractals.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		alg, name, _ := strings.Cut(preset, "/")
		p := config.GetPreset(alg, name)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(alg))
		}
		c := *p
		c.Fractals = append([]config.FractalConfig(nil), p.Fractals...)
		cfg = &c
	}

	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("zoom") {
		cfg.Viewport.Zoom = zoom
	}
	if flags.Changed("addr") {
		cfg.Addr = addr
	}
	if noLabels {
		cfg.Labels = false
	}
	for _, s := range adds {
		f, err := parseAdd(s)
		if err != nil {
			return nil, err
		}
		cfg.Fractals = append(cfg.Fractals, f)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseAdd reads algorithm:key=value,key=value with an optional ;expression
// for the iterated map and an optional @color suffix. The fields go through
// the same form check as the interactive configuration.
func parseAdd(s string) (config.FractalConfig, error) {
	spec, color, _ := strings.Cut(s, "@")
	spec, expression, _ := strings.Cut(spec, ";")
	alg, rest, _ := strings.Cut(spec, ":")
	fields := make(map[string]float64)
	if rest != "" {
		for _, kv := range strings.Split(rest, ",") {
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				return config.FractalConfig{}, fmt.Errorf("%w: %q is not key=value", fractal.ErrInvalidParameters, kv)
			}
			x, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return config.FractalConfig{}, fmt.Errorf("%w: %s: %v", fractal.ErrInvalidParameters, k, err)
			}
			fields[strings.TrimSpace(k)] = x
		}
	}

	p, err := fractal.ParseFormExpression(fractal.Algorithm(alg), fields, expression)
	if err != nil {
		return config.FractalConfig{}, err
	}
	f := config.FractalConfig{Algorithm: alg, Color: color}
	switch p := p.(type) {
	case fractal.CircleParams:
		f.Radius = p.Radius
	case fractal.EllipseParams:
		f.Width, f.Height = p.Width, p.Height
	case fractal.KochParams:
		f.Iterations, f.Length = p.Iterations, p.Length
	case fractal.KochStepParams:
		f.Iterations = p.Iterations
	case fractal.IteratedMapParams:
		f.Iterations, f.Scale, f.Seed = p.Iterations, p.Scale, p.Seed
		f.Expression = p.Expression
	}
	return f, nil
}

func renderPNG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	scene, err := cfg.BuildScene()
	if err != nil {
		return err
	}
	surface, err := render.NewGGSurface(cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	defer surface.Close()

	r, err := render.New(surface, cfg.NewViewport(), render.WithLabels(cfg.Labels))
	if err != nil {
		return err
	}
	start := time.Now()
	stats := r.Render(scene)
	if err := surface.SavePNG(output); err != nil {
		return err
	}
	printSummary(stats, time.Since(start))
	fmt.Printf("saved: %s\n", output)
	return nil
}

func renderSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	scene, err := cfg.BuildScene()
	if err != nil {
		return err
	}
	surface := export.NewSVGSurface(cfg.Width, cfg.Height)
	r, err := render.New(surface, cfg.NewViewport(), render.WithLabels(cfg.Labels))
	if err != nil {
		return err
	}
	start := time.Now()
	stats := r.Render(scene)

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if _, err := surface.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	printSummary(stats, time.Since(start))
	fmt.Printf("saved: %s (%d elements)\n", output, surface.Elements())
	return nil
}

func printSummary(stats render.Stats, elapsed time.Duration) {
	sum := metrics.Summarize(stats)
	fmt.Printf("rendered %d fractals in %v\n", sum.Instances, elapsed)
	fmt.Printf("shapes: %d  segments: %d  points: %d\n", sum.Shapes, sum.Segments, sum.Points)
	if sum.Truncated > 0 {
		fmt.Printf("truncated by budget: %d\n", sum.Truncated)
	}
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !verbose {
		logging.SetLogger(logging.New(os.Stderr, false))
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	fmt.Printf("serving on http://%s\n", cfg.Addr)
	return web.NewServer(cfg).ListenAndServe(ctx, cfg.Addr)
}

func listPresets(cmd *cobra.Command, args []string) error {
	if writeTo != "" {
		if preset == "" {
			return fmt.Errorf("--write needs --preset algorithm/name")
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := config.Save(writeTo, cfg); err != nil {
			return err
		}
		fmt.Printf("saved: %s\n", writeTo)
		return nil
	}

	groups := config.Groups()
	if len(args) == 1 {
		groups = []string{args[0]}
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tFRACTALS")
	for _, g := range groups {
		names := config.ListPresets(g)
		if len(names) == 0 {
			fmt.Printf("no presets for algorithm: %s\n", g)
			return nil
		}
		for _, name := range names {
			p := config.GetPreset(g, name)
			algs := make([]string, len(p.Fractals))
			for i, f := range p.Fractals {
				algs[i] = f.Algorithm
			}
			fmt.Fprintf(w, "%s/%s\t%s\n", g, name, strings.Join(algs, ", "))
		}
	}
	return w.Flush()
}

func sceneStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	scene, err := cfg.BuildScene()
	if err != nil {
		return err
	}
	if scene.Len() == 0 {
		fmt.Println("scene is empty")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	profiles, err := metrics.ProfileAll(ctx, scene.Instances())
	if err != nil {
		return err
	}

	if jsonOut != "" {
		surface := export.NewSVGSurface(cfg.Width, cfg.Height)
		r, err := render.New(surface, cfg.NewViewport(), render.WithLabels(false))
		if err != nil {
			return err
		}
		stats := r.Render(scene)
		if err := export.ExportJSON(jsonOut, export.NewReport(r.Viewport(), scene, stats, profiles)); err != nil {
			return err
		}
		fmt.Printf("saved: %s\n", jsonOut)
		return nil
	}

	for i, inst := range scene.Instances() {
		p := profiles[i]
		fmt.Printf("[%d] %s\n", i, inst)
		if len(p.Series) < 2 {
			fmt.Printf("  %s: %v\n\n", p.Caption, p.Series)
			continue
		}
		graph := asciigraph.Plot(p.Series,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s (final %.4g)", p.Caption, p.Value)),
		)
		fmt.Println(graph)

		// expression orbits ignore the seed
		if ip, ok := inst.Params.(fractal.IteratedMapParams); ok && ip.Expression == "" && seeds > 1 {
			values, err := metrics.SeedSpread(ctx, ip, seeds, ip.Seed)
			if err != nil {
				return err
			}
			fmt.Printf("  convergence over %d seeds: %v\n", seeds, values)
		}
		fmt.Println()
	}
	return nil
}
