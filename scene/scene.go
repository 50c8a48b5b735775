/*
 * scene.go, part of molsvg.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package scene

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	chem "github.com/rmera/molsvg"
	"github.com/rmera/molsvg/style"
)

//Canvas geometry. Molecule coordinates (in angstrom) are scaled by Scale and
//moved by Offset, so the origin ends up in the center of the canvas.
const (
	Width     = 1000
	Height    = 1000
	Scale     = 100.0
	Offset    = 500.0
	BondWidth = 10.0 //distance from the bond axis to each long side of the polygon
)

const (
	Header = `<svg version="1.1" width="1000" height="1000" xmlns="http://www.w3.org/2000/svg">`
	Footer = `</svg>`
)

//Project maps molecule coordinates to canvas coordinates.
func Project(x, y float64) (float64, float64) {
	return x*Scale + Offset, y*Scale + Offset
}

//Primitive is one drawable piece of the scene, either a *Circle (an atom)
//or a *Polygon (a bond).
type Primitive interface {
	Depth() float64
	SVG() string
}

//Circle is the drawing of one atom.
type Circle struct {
	Index  int //of the atom in the molecule
	Cx, Cy float64
	R      float64
	Fill   string //id of the gradient
	Z      float64
}

func (C *Circle) Depth() float64 { return C.Z }

func (C *Circle) SVG() string {
	return fmt.Sprintf("  <circle cx=\"%.2f\" cy=\"%.2f\" r=\"%s\" fill=\"url(#%s)\"/>\n",
		C.Cx, C.Cy, strconv.FormatFloat(C.R, 'f', -1, 64), C.Fill)
}

//Polygon is the drawing of one bond, a flat rectangle along the bond axis.
type Polygon struct {
	Index  int //of the bond in the molecule
	Points [4][2]float64
	Fill   string
	Z      float64
}

func (P *Polygon) Depth() float64 { return P.Z }

func (P *Polygon) SVG() string {
	p := P.Points
	return fmt.Sprintf("  <polygon points=\"%.2f,%.2f %.2f,%.2f %.2f,%.2f %.2f,%.2f\" fill=\"%s\"/>\n",
		p[0][0], p[0][1], p[1][0], p[1][1], p[2][0], p[2][1], p[3][0], p[3][1], P.Fill)
}

//BondFill is the colour of every bond.
const BondFill = "green"

//NewCircle returns the primitive for atom i of mol, with the style from cat.
func NewCircle(mol chem.Atomer, i int, cat *style.Catalog) (*Circle, error) {
	a := mol.Atom(i)
	st, err := cat.Lookup(a.Symbol)
	if err != nil {
		return nil, chem.ErrDecorate(err, fmt.Sprintf("NewCircle (atom %d)", i))
	}
	cx, cy := Project(a.X, a.Y)
	return &Circle{Index: i, Cx: cx, Cy: cy, R: st.Radius, Fill: st.Name, Z: a.Z}, nil
}

//NewPolygon returns the primitive for bond i of mol. The corners are
//e1+o, e1-o, e2-o and e2+o, where e1 and e2 are the projected ends of the bond,
//and o=(-dy, dx)*BondWidth.
func NewPolygon(mol chem.Bonder, i int) *Polygon {
	b := mol.Bond(i)
	x1, y1 := Project(b.X1, b.Y1)
	x2, y2 := Project(b.X2, b.Y2)
	ox, oy := -b.Dy*BondWidth, b.Dx*BondWidth
	return &Polygon{
		Index: i,
		Points: [4][2]float64{
			{x1 + ox, y1 + oy},
			{x1 - ox, y1 - oy},
			{x2 - ox, y2 - oy},
			{x2 + ox, y2 + oy},
		},
		Fill: BondFill,
		Z:    b.Z,
	}
}

//Primitives returns the drawing of every atom and bond in mol, in the order in
//which they must be painted: by increasing depth. Primitives with the same depth keep
//their input order, where all atoms come before all bonds. An element missing
//from cat is a StyleNotFoundError, and no primitives are returned.
func Primitives(mol chem.Geometry, cat *style.Catalog) ([]Primitive, error) {
	prims := make([]Primitive, 0, mol.Len()+mol.LenBonds())
	for i := 0; i < mol.Len(); i++ {
		c, err := NewCircle(mol, i, cat)
		if err != nil {
			return nil, chem.ErrDecorate(err, "Primitives")
		}
		prims = append(prims, c)
	}
	for i := 0; i < mol.LenBonds(); i++ {
		prims = append(prims, NewPolygon(mol, i))
	}
	sort.SliceStable(prims, func(i, j int) bool {
		return prims[i].Depth() < prims[j].Depth()
	})
	return prims, nil
}

//WriteTo writes the SVG document for mol to w: the header, one gradient per
//element in cat, the primitives and the footer. Nothing is written if the
//primitives can't be built. The whole document is drawn from a single snapshot
//of cat, so changes made to cat meanwhile never mix into one document.
func WriteTo(w io.Writer, mol chem.Geometry, cat *style.Catalog) error {
	snap := style.NewCatalog(cat.Elements()...)
	prims, err := Primitives(mol, snap)
	if err != nil {
		return chem.ErrDecorate(err, "WriteTo")
	}
	bw := bufio.NewWriter(w)
	bw.WriteString(Header)
	bw.WriteString("\n")
	bw.WriteString(snap.Gradients())
	for _, p := range prims {
		bw.WriteString(p.SVG())
	}
	bw.WriteString(Footer)
	bw.WriteString("\n")
	return bw.Flush()
}

//Render returns the SVG document for mol. See WriteTo.
func Render(mol chem.Geometry, cat *style.Catalog) (string, error) {
	var b strings.Builder
	if err := WriteTo(&b, mol, cat); err != nil {
		return "", chem.ErrDecorate(err, "Render")
	}
	return b.String(), nil
}
