/*
 * raster.go, part of molsvg.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package raster turns the SVG documents produced by the scene package into
//bitmaps, using github.com/srwiley/oksvg and github.com/srwiley/rasterx.
package raster

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/rmera/molsvg/scene"
)

//Image rasterizes the SVG document read from svg into a width x height image.
//Zero or negative sizes mean the size of the scene canvas.
func Image(svg io.Reader, width, height int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(svg, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("raster: parsing svg: %w", err)
	}
	//scene documents carry width and height but no viewBox.
	if icon.ViewBox.W == 0 || icon.ViewBox.H == 0 {
		icon.ViewBox.X, icon.ViewBox.Y = 0, 0
		icon.ViewBox.W, icon.ViewBox.H = scene.Width, scene.Height
	}
	if width <= 0 {
		width = int(icon.ViewBox.W)
	}
	if height <= 0 {
		height = int(icon.ViewBox.H)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	dasher := rasterx.NewDasher(width, height, scanner)
	icon.Draw(dasher, 1.0)
	return img, nil
}

//PNG rasterizes the SVG document read from svg and writes it to w as PNG.
func PNG(w io.Writer, svg io.Reader, width, height int) error {
	img, err := Image(svg, width, height)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("raster: encoding png: %w", err)
	}
	return nil
}
