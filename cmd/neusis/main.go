// Command neusis evaluates a construction script and reports the
// resulting sketch. Optional flags render the sketch to PNG or SVG.
//
// Usage:
//
//	neusis [flags] script.lisp
//
// Rendering defaults come from NEUSIS_* environment variables; flags
// take precedence.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/kelseyhightower/envconfig"

	"github.com/chazu/neusis/pkg/engine"
	"github.com/chazu/neusis/pkg/export"
	"github.com/chazu/neusis/pkg/geom"
	"github.com/chazu/neusis/pkg/script"
)

// Config carries host-level defaults for rendering and snapping.
type Config struct {
	Width      int     `envconfig:"WIDTH" default:"800"`
	Height     int     `envconfig:"HEIGHT" default:"600"`
	Padding    float64 `envconfig:"PADDING" default:"40"`
	SnapRadius float64 `envconfig:"SNAP_RADIUS" default:"8"`
}

func main() {
	var (
		pngPath = flag.String("png", "", "write a PNG rendering to this path")
		svgPath = flag.String("svg", "", "write an SVG rendering to this path")
		width   = flag.Int("width", 0, "canvas width in pixels (overrides NEUSIS_WIDTH)")
		height  = flag.Int("height", 0, "canvas height in pixels (overrides NEUSIS_HEIGHT)")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: neusis [flags] script.lisp")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var cfg Config
	if err := envconfig.Process("neusis", &cfg); err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)
	source, err := os.ReadFile(path)
	if err != nil {
		slog.Error("read script", "path", path, "error", err)
		os.Exit(1)
	}

	runner := script.NewRunner()
	runner.SnapRadius = cfg.SnapRadius
	slog.Debug("evaluating", "path", path, "bytes", len(source))
	eng, evalErrs, err := runner.Evaluate(string(source))
	if err != nil {
		slog.Error("evaluate", "path", path, "error", err)
		os.Exit(1)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, e.Error())
		}
		os.Exit(1)
	}

	printObjects(eng)

	opts := export.Options{Width: cfg.Width, Height: cfg.Height, Padding: cfg.Padding}
	if *pngPath != "" {
		if err := export.PNG(eng.Sketch(), *pngPath, opts); err != nil {
			slog.Error("export png", "error", err)
			os.Exit(1)
		}
		slog.Info("wrote png", "path", *pngPath)
	}
	if *svgPath != "" {
		if err := writeSVG(eng, *svgPath, opts); err != nil {
			slog.Error("export svg", "error", err)
			os.Exit(1)
		}
		slog.Info("wrote svg", "path", *svgPath)
	}
}

// writeSVG renders the sketch into an SVG file at path.
func writeSVG(eng *engine.Engine, path string, opts export.Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	export.SVG(eng.Sketch(), f, opts)
	return f.Close()
}

// printObjects lists every construction object with its live geometry,
// points then lines then circles, in creation order.
func printObjects(eng *engine.Engine) {
	sk := eng.Sketch()
	for _, p := range sk.Points() {
		fmt.Printf("point   %-4s (%.6g, %.6g)%s%s\n",
			p.Name, p.X.Val, p.Y.Val, frozenTag(p), hiddenTag(p.Display))
	}
	for _, l := range sk.Lines() {
		fmt.Printf("line    %-4s %s %s %s%s\n",
			l.Name, l.Kind, l.Points[0].Name, l.Points[1].Name, hiddenTag(l.Display))
	}
	for _, c := range sk.Circles() {
		ctr := c.Center.Pos()
		fmt.Printf("circle  %-4s %s center=(%.6g, %.6g) r=%.6g%s\n",
			c.Name, c.Kind, ctr.X, ctr.Y, c.Radius(), hiddenTag(c.Display))
	}
}

func frozenTag(p *geom.Point) string {
	if p.Frozen {
		return " frozen"
	}
	return ""
}

func hiddenTag(d geom.Display) string {
	if d.Hidden {
		return " hidden"
	}
	return ""
}
