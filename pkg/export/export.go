// Package export renders a sketch to raster (PNG) and vector (SVG)
// images. Renderers read the public object set only and never mutate
// the sketch; hidden objects are skipped. World coordinates are fitted
// onto a fixed pixel canvas with one uniform scale and the Y axis
// flipped so world +Y points up on screen.
package export

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/neusis/pkg/geom"
	"github.com/chazu/neusis/pkg/sketch"
)

// Default canvas geometry, used when the corresponding Options field
// is zero.
const (
	DefaultWidth   = 800
	DefaultHeight  = 600
	DefaultPadding = 40.0
)

// Marker size and label placement in pixels.
const (
	pointRadius = 3.0
	labelOffset = 5.0
)

// Options selects the output canvas. Zero fields fall back to the
// package defaults.
type Options struct {
	Width   int     // canvas width in pixels
	Height  int     // canvas height in pixels
	Padding float64 // border kept clear around the drawing, in pixels
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Padding <= 0 {
		o.Padding = DefaultPadding
	}
	return o
}

// ---------------------------------------------------------------------------
// World-to-pixel mapping

// viewport maps world coordinates onto the pixel canvas. The visible
// bounds are fitted inside the padded canvas, centered, with the Y
// axis flipped.
type viewport struct {
	w, h  int
	scale float64 // pixels per world unit
	min   v2.Vec  // world corner mapped to (offX, offY)
	offX  float64 // pixel x of min.X
	offY  float64 // pixel y of min.Y
}

// fitViewport computes the mapping for everything visible in sk. A
// sketch with nothing visible maps the world origin to the canvas
// center at unit scale, which still yields a valid blank image.
func fitViewport(sk *sketch.Sketch, opts Options) viewport {
	vp := viewport{w: opts.Width, h: opts.Height, scale: 1}
	min, max, ok := visibleBounds(sk)
	if !ok {
		vp.offX = float64(opts.Width) / 2
		vp.offY = float64(opts.Height) / 2
		return vp
	}

	// A lone point or an axis-aligned row of points has no usable span
	// on one axis; widen it so the scale stays finite.
	const minSpan = 1.0
	span := max.Sub(min)
	if span.X < minSpan {
		cx := (min.X + max.X) / 2
		min.X, max.X = cx-minSpan/2, cx+minSpan/2
		span.X = minSpan
	}
	if span.Y < minSpan {
		cy := (min.Y + max.Y) / 2
		min.Y, max.Y = cy-minSpan/2, cy+minSpan/2
		span.Y = minSpan
	}

	drawW := math.Max(float64(opts.Width)-2*opts.Padding, 1)
	drawH := math.Max(float64(opts.Height)-2*opts.Padding, 1)
	vp.scale = math.Min(drawW/span.X, drawH/span.Y)
	vp.min = min
	vp.offX = opts.Padding + (drawW-span.X*vp.scale)/2
	vp.offY = float64(opts.Height) - opts.Padding - (drawH-span.Y*vp.scale)/2
	return vp
}

// toPixel converts a world position to canvas pixels.
func (vp viewport) toPixel(p v2.Vec) v2.Vec {
	return v2.Vec{
		X: vp.offX + (p.X-vp.min.X)*vp.scale,
		Y: vp.offY - (p.Y-vp.min.Y)*vp.scale,
	}
}

// worldRect returns the world-space rectangle covering the whole
// canvas, used to clip unbounded lines before drawing.
func (vp viewport) worldRect() (rmin, rmax v2.Vec) {
	rmin = v2.Vec{
		X: vp.min.X - vp.offX/vp.scale,
		Y: vp.min.Y - (float64(vp.h)-vp.offY)/vp.scale,
	}
	rmax = v2.Vec{
		X: vp.min.X + (float64(vp.w)-vp.offX)/vp.scale,
		Y: vp.min.Y + vp.offY/vp.scale,
	}
	return rmin, rmax
}

// visibleBounds accumulates the world extents of everything that will
// be drawn. Line extents come from every attached point (the carrier
// itself is unbounded); circle extents from center plus radius. Hidden
// objects contribute nothing.
func visibleBounds(sk *sketch.Sketch) (min, max v2.Vec, ok bool) {
	add := func(p v2.Vec) {
		if !ok {
			min, max, ok = p, p, true
			return
		}
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	for _, p := range sk.Points() {
		if !p.Display.Hidden {
			add(p.Pos())
		}
	}
	for _, l := range sk.Lines() {
		if l.Display.Hidden {
			continue
		}
		for _, p := range l.Points {
			add(p.Pos())
		}
	}
	for _, c := range sk.Circles() {
		if c.Display.Hidden {
			continue
		}
		r := c.Radius()
		if !geom.Finite(r) {
			continue
		}
		ctr := c.Center.Pos()
		add(v2.Vec{X: ctr.X - r, Y: ctr.Y - r})
		add(v2.Vec{X: ctr.X + r, Y: ctr.Y + r})
	}
	return min, max, ok
}

// ---------------------------------------------------------------------------
// Line clipping

// lineSpan returns the world endpoints of the drawable portion of l:
// the carrier clipped to the canvas rectangle and to the variant's own
// parameter range. ok is false when the line is degenerate or nothing
// of it falls on the canvas.
func (vp viewport) lineSpan(l *geom.Line) (a, b v2.Vec, ok bool) {
	if l.Degenerate() {
		return a, b, false
	}
	t0, t1 := math.Inf(-1), math.Inf(1)
	switch l.Kind {
	case geom.LineRay:
		t0 = 0
	case geom.LineSegment:
		t0, t1 = 0, 1
	}
	rmin, rmax := vp.worldRect()
	t0, t1, ok = clipParams(l.Start(), l.Dir(), rmin, rmax, t0, t1)
	if !ok {
		return a, b, false
	}
	return l.PointAt(t0), l.PointAt(t1), true
}

// clipParams narrows the carrier parameter interval [t0, t1] to the
// axis-aligned rectangle [rmin, rmax], Liang-Barsky style. ok is false
// when the interval empties.
func clipParams(start, dir, rmin, rmax v2.Vec, t0, t1 float64) (float64, float64, bool) {
	p := [4]float64{-dir.X, dir.X, -dir.Y, dir.Y}
	q := [4]float64{start.X - rmin.X, rmax.X - start.X, start.Y - rmin.Y, rmax.Y - start.Y}
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > t1 {
				return 0, 0, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return 0, 0, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	return t0, t1, true
}
