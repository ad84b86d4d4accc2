// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabplot

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Options control how Render draws a plot.
type Options struct {
	Title, XLabel, YLabel string

	// Lines connects the points of each series. Quantile plots
	// use lines, scatter plots do not.
	Lines bool

	// LogY uses a logarithmic Y axis. Points with Y <= 0 are
	// dropped.
	LogY bool

	// Format is "png" or "svg".
	Format string

	// Width and Height default to 16cm by 10cm.
	Width, Height vg.Length

	// DPI of PNG output. It defaults to 96.
	DPI int
}

// Render draws series and writes the image to w.
func Render(w io.Writer, series []Series, opts Options) error {
	pl := plot.New()
	pl.Title.Text = opts.Title
	pl.X.Label.Text = opts.XLabel
	pl.Y.Label.Text = opts.YLabel

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)

	drawn := 0
	for i, s := range series {
		xys := plottable(s.XYs, opts.LogY)
		if len(xys) == 0 {
			continue
		}
		drawn++
		if opts.Lines {
			l, err := plotter.NewLine(xys)
			if err != nil {
				return fmt.Errorf("series %s: %w", s.Name, err)
			}
			l.Color = plotutil.Color(i)
			l.Dashes = plotutil.Dashes(0)
			pl.Add(l)
			pl.Legend.Add(s.Name, l)
			continue
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("series %s: %w", s.Name, err)
		}
		sc.GlyphStyle.Color = plotutil.Color(i)
		sc.GlyphStyle.Shape = plotutil.Shape(i)
		pl.Add(sc)
		pl.Legend.Add(s.Name, sc)
	}
	pl.Legend.Top = true
	if opts.LogY && drawn > 0 {
		// A log axis needs a positive range.
		pl.Y.Scale = plot.LogScale{}
		pl.Y.Tick.Marker = plot.LogTicks{}
	}

	width, height := opts.Width, opts.Height
	if width == 0 {
		width = 16 * vg.Centimeter
	}
	if height == 0 {
		height = 10 * vg.Centimeter
	}

	var can vg.CanvasWriterTo
	switch opts.Format {
	case "", "png":
		dpi := opts.DPI
		if dpi == 0 {
			dpi = 96
		}
		can = vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(width, height),
			vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))}
	case "svg":
		can = vgsvg.New(width, height)
	default:
		return fmt.Errorf("unknown image format %q", opts.Format)
	}
	pl.Draw(draw.New(can))
	_, err := can.WriteTo(w)
	return err
}

// plottable returns the points of xys that can be drawn. Infinite
// and NaN coordinates cannot, nor can Y <= 0 on a log scale.
func plottable(xys plotter.XYs, logY bool) plotter.XYs {
	out := make(plotter.XYs, 0, len(xys))
	for _, xy := range xys {
		if !finite(xy.X) || !finite(xy.Y) || (logY && xy.Y <= 0) {
			continue
		}
		out = append(out, xy)
	}
	return out
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
