/*
 * depth.go, part of molsvg
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

//Package chemplot plots the depth profile of a rendered molecule: the depth of
//every drawing primitive against the position in which it is painted.
package chemplot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/rmera/molsvg/scene"
)

//PlotError is returned by the functions in this package.
type PlotError struct {
	msg  string
	deco []string
}

func (err PlotError) Error() string { return err.msg }

//Decorate adds dec to the list of functions the error went through, and returns that list.
func (err PlotError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical always returns true.
func (err PlotError) Critical() bool { return true }

//Depths returns the depth of each primitive, in paint order.
func Depths(prims []scene.Primitive) []float64 {
	ret := make([]float64, len(prims))
	for i, v := range prims {
		ret[i] = v.Depth()
	}
	return ret
}

//DepthRange returns the smallest and largest depth among prims.
func DepthRange(prims []scene.Primitive) (min, max float64, err error) {
	if len(prims) == 0 {
		return 0, 0, PlotError{msg: "no primitives", deco: []string{"DepthRange"}}
	}
	d := Depths(prims)
	return floats.Min(d), floats.Max(d), nil
}

func basicDepthPlot(title string, min, max float64) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Paint order"
	p.Y.Label.Text = "Depth"
	pad := (max - min) * 0.05
	if pad == 0 {
		pad = 0.5
	}
	p.Y.Min = min - pad
	p.Y.Max = max + pad
	p.Add(plotter.NewGrid())
	return p
}

//DepthPlot draws the depth of every primitive against its paint position, atoms
//and bonds in different colors, and saves it to plotname. The format is given by
//the extension of plotname (png, svg, pdf or eps).
func DepthPlot(prims []scene.Primitive, title, plotname string) error {
	min, max, err := DepthRange(prims)
	if err != nil {
		return PlotError{msg: err.Error(), deco: []string{"DepthRange", "DepthPlot"}}
	}
	var atoms, bonds plotter.XYs
	for i, v := range prims {
		pt := plotter.XY{X: float64(i), Y: v.Depth()}
		switch v.(type) {
		case *scene.Circle:
			atoms = append(atoms, pt)
		case *scene.Polygon:
			bonds = append(bonds, pt)
		}
	}
	p := basicDepthPlot(title, min, max)
	series := []struct {
		name string
		pts  plotter.XYs
		c    color.RGBA
	}{
		{"atoms", atoms, color.RGBA{R: 255, A: 255}},
		{"bonds", bonds, color.RGBA{G: 128, A: 255}},
	}
	for _, v := range series {
		if len(v.pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(v.pts)
		if err != nil {
			return PlotError{msg: fmt.Sprintf("plotting %s: %s", v.name, err), deco: []string{"DepthPlot"}}
		}
		s.GlyphStyle.Color = v.c
		s.GlyphStyle.Radius = vg.Points(3)
		p.Add(s)
		p.Legend.Add(v.name, s)
	}
	if err := p.Save(5*vg.Inch, 4*vg.Inch, plotname); err != nil {
		return PlotError{msg: fmt.Sprintf("saving %s: %s", plotname, err), deco: []string{"DepthPlot"}}
	}
	return nil
}
