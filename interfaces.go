/*
 * interfaces.go, part of molsvg.
 *
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
 *
 */

package chem

import v3 "github.com/rmera/molsvg/v3"

//Atomer is the basic read-only interface for a set of atoms.
type Atomer interface {

	//Atom returns the Atom corresponding to the index i
	//in insertion order. Should panic if out of range.
	Atom(i int) *Atom

	//Len returns the number of atoms.
	Len() int
}

//Bonder is the read-only interface for a set of bonds between the atoms of an Atomer.
type Bonder interface {

	//Bond returns the Bond corresponding to the index i in insertion order.
	//Should panic if out of range.
	Bond(i int) *Bond

	//LenBonds returns the number of bonds.
	LenBonds() int
}

//Geometry is everything the parser, the store and the renderer need from a molecule.
//*Molecule implements it.
type Geometry interface {
	Atomer
	Bonder

	//AppendAtom adds an atom after the last one.
	AppendAtom(symbol string, x, y, z float64) error

	//AppendBond adds a bond between two existing atoms (0-based indexes).
	AppendBond(a1, a2, epairs int) error

	//SortByDepth computes the draw order for atoms and bonds.
	SortByDepth()

	//Transform applies the 3x3 matrix m to every atom and updates the bonds.
	Transform(m *v3.Matrix) error
}

//Errors

//Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
//error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call also returns the "decoration" slice of strings resulting from the current call. If passed an empty string, it should just return the current value, not add the empty string to the slice.
	Critical() bool
}
