package export

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/chazu/neusis/pkg/sketch"
)

// SVG writes the sketch as an SVG document to w. Layering matches PNG:
// circles, then lines, then labeled point markers.
func SVG(sk *sketch.Sketch, w io.Writer, opts Options) {
	opts = opts.withDefaults()
	vp := fitViewport(sk, opts)

	canvas := svg.New(w)
	canvas.Start(vp.w, vp.h)
	canvas.Rect(0, 0, vp.w, vp.h, "fill:white")

	for _, c := range sk.Circles() {
		if c.Display.Hidden || c.Degenerate() {
			continue
		}
		ctr := vp.toPixel(c.Center.Pos())
		canvas.Circle(px(ctr.X), px(ctr.Y), px(c.Radius()*vp.scale),
			fmt.Sprintf("fill:none;stroke:%s;stroke-width:1", inkHex(c.Display.Color)))
	}
	for _, l := range sk.Lines() {
		if l.Display.Hidden {
			continue
		}
		a, b, ok := vp.lineSpan(l)
		if !ok {
			continue
		}
		pa, pb := vp.toPixel(a), vp.toPixel(b)
		canvas.Line(px(pa.X), px(pa.Y), px(pb.X), px(pb.Y),
			fmt.Sprintf("stroke:%s;stroke-width:1", inkHex(l.Display.Color)))
	}
	for _, p := range sk.Points() {
		if p.Display.Hidden {
			continue
		}
		pos := vp.toPixel(p.Pos())
		canvas.Circle(px(pos.X), px(pos.Y), int(pointRadius),
			fmt.Sprintf("fill:%s", inkHex(p.Display.Color)))
		canvas.Text(px(pos.X+labelOffset), px(pos.Y-labelOffset), p.Name,
			fmt.Sprintf("font-size:12px;fill:%s", inkHex(p.Display.Color)))
	}

	canvas.End()
}

// px rounds a pixel coordinate to svgo's integer grid.
func px(v float64) int {
	return int(math.Round(v))
}

// inkHex returns an object's color for a style attribute, defaulting
// to black.
func inkHex(hex string) string {
	if hex == "" {
		return "#000"
	}
	return hex
}
