/*
 * atomicdata.go, part of molsvg.
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

package chem

import "math"

//ElementStyle is how atoms of one element are drawn. The three colours are
//6 hexadecimal digits without the leading '#', used as the stops of a radial
//gradient whose id is the Name. Radius is in SVG user units.
type ElementStyle struct {
	Number  int
	Code    string
	Name    string
	Colour1 string
	Colour2 string
	Colour3 string
	Radius  float64
}

//A map for assigning van der Waals radii to elements
//Values from 10.1021/j100785a001 and 10.1021/jp8111556
//metal radii from 10.1023/A:1011625728803
//Note that just common "bio-elements" are present
var symbolVdwrad = map[string]float64{
	"H":  1.10,
	"C":  1.70,
	"O":  1.52,
	"N":  1.55,
	"P":  1.80,
	"S":  1.80,
	"Se": 1.90,
	"K":  2.75,
	"Ca": 2.31,
	"Mg": 1.73,
	"Cl": 1.75,
	"Na": 2.27,
	"Cu": 2.00,
	"Zn": 2.02,
	"Fe": 1.96,
	"F":  1.47,
	"Br": 1.83,
	"I":  1.98,
}

//scale from angstrom to drawing units, so carbon ends up at 40.
const vdwScale = 23.5

//the first four are the historical defaults, their radii are not derived.
var defaultElements = []ElementStyle{
	{1, "H", "Hydrogen", "FFFFFF", "050505", "020202", 25},
	{6, "C", "Carbon", "808080", "010101", "000000", 40},
	{7, "N", "Nitrogen", "0000FF", "000005", "000002", 40},
	{8, "O", "Oxygen", "FF0000", "050000", "020000", 40},
	{9, "F", "Fluorine", "90E050", "040702", "020401", 0},
	{11, "Na", "Sodium", "AB5CF2", "05020A", "020105", 0},
	{12, "Mg", "Magnesium", "8AFF00", "040800", "020400", 0},
	{15, "P", "Phosphorus", "FF8000", "080400", "040200", 0},
	{16, "S", "Sulfur", "FFFF30", "080801", "040400", 0},
	{17, "Cl", "Chlorine", "1FF01F", "010801", "000400", 0},
	{19, "K", "Potassium", "8F40D4", "04020A", "020105", 0},
	{20, "Ca", "Calcium", "3DFF00", "020800", "010400", 0},
	{26, "Fe", "Iron", "E06633", "070302", "040201", 0},
	{29, "Cu", "Copper", "C88033", "060402", "030201", 0},
	{30, "Zn", "Zinc", "7D80B0", "040405", "020203", 0},
	{34, "Se", "Selenium", "FFA100", "080500", "040300", 0},
	{35, "Br", "Bromine", "A62929", "050101", "030101", 0},
	{53, "I", "Iodine", "940094", "050005", "020002", 0},
}

//DefaultElements returns a new copy of the built-in element table, ordered by
//atomic number. Elements without an explicit radius get one derived from their
//van der Waals radius.
func DefaultElements() []ElementStyle {
	ret := make([]ElementStyle, len(defaultElements))
	copy(ret, defaultElements)
	for i, v := range ret {
		if v.Radius == 0 {
			ret[i].Radius = VdwDrawRadius(v.Code)
		}
	}
	return ret
}

//VdwDrawRadius returns the drawing radius for the element with the given symbol,
//proportional to its van der Waals radius, or 0 if the element is unknown.
func VdwDrawRadius(symbol string) float64 {
	r, ok := symbolVdwrad[symbol]
	if !ok {
		return 0
	}
	return math.Round(r * vdwScale)
}
