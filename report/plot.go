package report

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Plot 频率对数坐标的曲线图，format 为 png、svg、pdf 等
// 全部值为正时纵轴也用对数坐标
func Plot(w io.Writer, t *Table, width, height vg.Length, format string) error {
	if len(t.Centers) == 0 {
		return fmt.Errorf("没有频带")
	}
	p := plot.New()
	p.Title.Text = t.Attribute
	p.X.Label.Text = "Frequency [Hz]"
	p.Y.Label.Text = t.Attribute
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	if t.Positive() {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	for i, name := range t.Names {
		pts := make(plotter.XYs, len(t.Centers))
		for f, center := range t.Centers {
			pts[f].X = center
			pts[f].Y = t.Values[i][f]
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		line.Color = plotutil.Color(i)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)
		p.Add(line, points)
		p.Legend.Add(name, line, points)
	}
	widen(&p.X)
	widen(&p.Y)
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// PlotPNG 以像素为单位输出 PNG
func PlotPNG(w io.Writer, t *Table, width, height int) error {
	return Plot(w, t, vg.Length(width)*vg.Inch/96, vg.Length(height)*vg.Inch/96, "png")
}

// widen 单点数据时放宽坐标范围，避免对数坐标取到非正值
func widen(a *plot.Axis) {
	if a.Min != a.Max {
		return
	}
	if _, ok := a.Scale.(plot.LogScale); ok {
		a.Min, a.Max = a.Min/10, a.Max*10
	}
}
