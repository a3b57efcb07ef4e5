package export

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/chazu/neusis/pkg/sketch"
)

// labelFace builds the font face used for point labels.
func labelFace() (font.Face, error) {
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse label font: %w", err)
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    12.0,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// PNG renders the sketch into a PNG file at path. Circles draw first,
// then lines, then labeled point markers, so points stay readable on
// top of the curves they define.
func PNG(sk *sketch.Sketch, path string, opts Options) error {
	opts = opts.withDefaults()
	vp := fitViewport(sk, opts)

	dc := gg.NewContext(vp.w, vp.h)
	dc.SetColor(color.White)
	dc.Clear()

	face, err := labelFace()
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetLineWidth(1.0)

	for _, c := range sk.Circles() {
		if c.Display.Hidden || c.Degenerate() {
			continue
		}
		setInk(dc, c.Display.Color)
		ctr := vp.toPixel(c.Center.Pos())
		dc.DrawCircle(ctr.X, ctr.Y, c.Radius()*vp.scale)
		dc.Stroke()
	}
	for _, l := range sk.Lines() {
		if l.Display.Hidden {
			continue
		}
		a, b, ok := vp.lineSpan(l)
		if !ok {
			continue
		}
		setInk(dc, l.Display.Color)
		pa, pb := vp.toPixel(a), vp.toPixel(b)
		dc.DrawLine(pa.X, pa.Y, pb.X, pb.Y)
		dc.Stroke()
	}
	for _, p := range sk.Points() {
		if p.Display.Hidden {
			continue
		}
		setInk(dc, p.Display.Color)
		pos := vp.toPixel(p.Pos())
		dc.DrawCircle(pos.X, pos.Y, pointRadius)
		dc.Fill()
		dc.DrawString(p.Name, pos.X+labelOffset, pos.Y-labelOffset)
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// setInk applies an object's color to the drawing context, defaulting
// to black.
func setInk(dc *gg.Context, hex string) {
	if hex == "" {
		dc.SetColor(color.Black)
		return
	}
	dc.SetHexColor(hex)
}
