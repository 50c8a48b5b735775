/*
 * geometric.go, part of molsvg.
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

package chem

import (
	"fmt"
	"math"

	v3 "github.com/rmera/molsvg/v3"
)

//operators with a determinant below this collapse the molecule onto a plane or a line.
const singularDet = 1e-9

func Deg2Rad(f float64) float64 {
	return f * math.Pi / 180.0
}

func Rad2Deg(f float64) float64 {
	return f * 180.0 / math.Pi
}

//RotatorAroundX returns an operator that will rotate a set of
//coordinates by deg degrees around the x axis.
func RotatorAroundX(deg float64) *v3.Matrix {
	rad := Deg2Rad(deg)
	s, c := math.Sincos(rad)
	operator := []float64{1, 0, 0,
		0, c, -s,
		0, s, c}
	r, _ := v3.NewMatrix(operator) //9 elements, can't fail
	return r
}

//RotatorAroundY returns an operator that will rotate a set of
//coordinates by deg degrees around the y axis.
func RotatorAroundY(deg float64) *v3.Matrix {
	rad := Deg2Rad(deg)
	s, c := math.Sincos(rad)
	operator := []float64{c, 0, s,
		0, 1, 0,
		-s, 0, c}
	r, _ := v3.NewMatrix(operator)
	return r
}

//RotatorAroundZ returns an operator that will rotate a set of
//coordinates by deg degrees around the z axis.
func RotatorAroundZ(deg float64) *v3.Matrix {
	rad := Deg2Rad(deg)
	s, c := math.Sincos(rad)
	operator := []float64{c, -s, 0,
		s, c, 0,
		0, 0, 1}
	r, _ := v3.NewMatrix(operator)
	return r
}

//Rotator returns the operator for a rotation of xdeg degrees around x, followed by
//ydeg around y, followed by zdeg around z.
func Rotator(xdeg, ydeg, zdeg float64) *v3.Matrix {
	tmp := v3.Zeros(3)
	tmp.Mul(RotatorAroundY(ydeg), RotatorAroundX(xdeg))
	ret := v3.Zeros(3)
	ret.Mul(RotatorAroundZ(zdeg), tmp)
	return ret
}

//Coords returns a new Nx3 matrix with the coordinates of the atoms of M, in insertion order.
//It returns nil for a molecule without atoms.
func (M *Molecule) Coords() *v3.Matrix {
	if len(M.atoms) == 0 {
		return nil
	}
	data := make([]float64, 0, 3*len(M.atoms))
	for _, a := range M.atoms {
		data = append(data, a.X, a.Y, a.Z)
	}
	c, _ := v3.NewMatrix(data)
	return c
}

//SetCoords replaces the coordinates of the atoms of M with the vectors of coords,
//and updates the bonds.
func (M *Molecule) SetCoords(coords *v3.Matrix) error {
	if coords == nil && len(M.atoms) == 0 {
		return nil
	}
	if coords == nil || coords.NVecs() != len(M.atoms) {
		return newError(ErrorKindShape, fmt.Sprintf("need %d coordinates", len(M.atoms)), "SetCoords")
	}
	for i, a := range M.atoms {
		a.X = coords.At(i, 0)
		a.Y = coords.At(i, 1)
		a.Z = coords.At(i, 2)
	}
	M.updateBonds()
	return nil
}

//Transform applies the 3x3 operator m to every atom of the molecule (x' = m·x) and
//recomputes the derived data of every bond. Any previous depth order is invalidated.
func (M *Molecule) Transform(m *v3.Matrix) error {
	if m == nil {
		return newError(ErrorKindShape, "nil transformation matrix", "Transform")
	}
	if r, c := m.Dims(); r != 3 || c != 3 {
		return newError(ErrorKindShape, fmt.Sprintf("transformation matrix must be 3x3, not %dx%d", r, c), "Transform")
	}
	if d := v3.Det(m); math.Abs(d) < singularDet || math.IsNaN(d) || math.IsInf(d, 0) {
		return newError(ErrorKindShape, fmt.Sprintf("transformation matrix is singular or not finite (det=%g)", d), "Transform")
	}
	coords := M.Coords()
	if coords == nil {
		return nil
	}
	//Coordinates are row vectors, so we multiply by the transpose.
	coords.Mul(coords, m.T())
	if err := M.SetCoords(coords); err != nil {
		return errDecorate(err, "Transform")
	}
	M.atomOrder = nil
	M.bondOrder = nil
	return nil
}

func (M *Molecule) updateBonds() {
	for _, b := range M.bonds {
		b.computeCoords(M.atoms)
	}
}
