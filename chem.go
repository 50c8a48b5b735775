/*
 * chem.go, part of molsvg.
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
	"sort"
	"unicode/utf8"
)

//Atom contains the element symbol and the cartesian coordinates of one atom.
//The coordinates only change through Molecule.Transform.
type Atom struct {
	Symbol string
	X      float64
	Y      float64
	Z      float64
}

//Depth returns the value used to order the atom when drawing. It is just the z coordinate.
func (A *Atom) Depth() float64 {
	return A.Z
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	Newat := new(Atom)
	*Newat = *A
	return Newat
}

func (A *Atom) String() string {
	return fmt.Sprintf("%s %8.4f %8.4f %8.4f", A.Symbol, A.X, A.Y, A.Z)
}

//Bond joins the atoms with indexes A1 and A2 (0-based) of the molecule that owns it.
//The rest of the fields are derived from the coordinates of those atoms and are
//kept up to date by the Molecule.
type Bond struct {
	A1     int
	A2     int
	Epairs int

	X1, Y1 float64 //planar position of A1
	X2, Y2 float64 //planar position of A2
	Z      float64 //depth, the average z of both atoms
	Len    float64 //length of the projection on the xy plane
	Dx, Dy float64 //unit vector from A1 to A2 on the xy plane
}

//Depth returns the value used to order the bond when drawing.
func (B *Bond) Depth() float64 {
	return B.Z
}

func (B *Bond) String() string {
	return fmt.Sprintf("%d-%d (%d) x1: %.4f y1: %.4f x2: %.4f y2: %.4f z: %.4f len: %.4f dx: %.4f dy: %.4f",
		B.A1, B.A2, B.Epairs, B.X1, B.Y1, B.X2, B.Y2, B.Z, B.Len, B.Dx, B.Dy)
}

//computeCoords fills the derived fields of B from the atoms in ats.
//Bonds whose atoms overlap on the xy plane get a zero direction vector.
func (B *Bond) computeCoords(ats []*Atom) {
	a1 := ats[B.A1]
	a2 := ats[B.A2]
	B.X1, B.Y1 = a1.X, a1.Y
	B.X2, B.Y2 = a2.X, a2.Y
	B.Z = (a1.Z + a2.Z) / 2
	B.Len = math.Hypot(B.X2-B.X1, B.Y2-B.Y1)
	if B.Len == 0 {
		B.Dx, B.Dy = 0, 0
		return
	}
	B.Dx = (B.X2 - B.X1) / B.Len
	B.Dy = (B.Y2 - B.Y1) / B.Len
}

/*****Molecule type***/

//Molecule owns an ordered set of atoms and an ordered set of bonds. Bonds refer to
//atoms only by their index in the molecule, so the order of the atoms
//must never change once a bond has been added.
type Molecule struct {
	atoms []*Atom
	bonds []*Bond
	//draw order, filled by SortByDepth
	atomOrder []int
	bondOrder []int
}

//MaxSymbolLen is the longest element symbol (code) a molecule accepts.
const MaxSymbolLen = 3

//most atoms or bonds NewMolecule reserves room for.
const maxPrealloc = 4096

func preallocLen(n int) int {
	if n < 0 {
		return 0
	}
	if n > maxPrealloc {
		return maxPrealloc
	}
	return n
}

//NewMolecule returns an empty molecule with room for atoms atoms and bonds bonds.
//Large counts are only a hint: the room reserved is capped, and the molecule grows as needed.
func NewMolecule(atoms, bonds int) *Molecule {
	atoms = preallocLen(atoms)
	bonds = preallocLen(bonds)
	M := new(Molecule)
	M.atoms = make([]*Atom, 0, atoms)
	M.bonds = make([]*Bond, 0, bonds)
	return M
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

//The molecule methods:

//AppendAtom adds a new atom at the end of the molecule. The symbol must have between
//1 and MaxSymbolLen characters and the coordinates must be finite, otherwise a
//FormatError is returned and nothing is added.
func (M *Molecule) AppendAtom(symbol string, x, y, z float64) error {
	if symbol == "" {
		return newError(ErrorKindFormat, "empty element symbol", "AppendAtom")
	}
	if utf8.RuneCountInString(symbol) > MaxSymbolLen {
		return newError(ErrorKindFormat, fmt.Sprintf("element symbol %q longer than %d characters", symbol, MaxSymbolLen), "AppendAtom")
	}
	if !finite(x) || !finite(y) || !finite(z) {
		return newError(ErrorKindFormat, fmt.Sprintf("non-finite coordinates (%g, %g, %g)", x, y, z), "AppendAtom")
	}
	M.atoms = append(M.atoms, &Atom{Symbol: symbol, X: x, Y: y, Z: z})
	M.atomOrder = nil
	return nil
}

//AppendBond adds a bond between the atoms a1 and a2 (0-based). Both atoms must
//already be in the molecule, otherwise a ReferentialError is returned and nothing
//is added.
func (M *Molecule) AppendBond(a1, a2, epairs int) error {
	n := len(M.atoms)
	if a1 < 0 || a1 >= n || a2 < 0 || a2 >= n {
		return newError(ErrorKindReferential, fmt.Sprintf("bond %d-%d out of range for %d atoms", a1, a2, n), "AppendBond")
	}
	b := &Bond{A1: a1, A2: a2, Epairs: epairs}
	b.computeCoords(M.atoms)
	M.bonds = append(M.bonds, b)
	M.bondOrder = nil
	return nil
}

//Atom returns the ith atom, in insertion order. It panics if i is out of range.
func (M *Molecule) Atom(i int) *Atom {
	return M.atoms[i]
}

//Bond returns the ith bond, in insertion order. It panics if i is out of range.
func (M *Molecule) Bond(i int) *Bond {
	return M.bonds[i]
}

//Len returns the number of atoms in the molecule.
func (M *Molecule) Len() int {
	return len(M.atoms)
}

//LenBonds returns the number of bonds in the molecule.
func (M *Molecule) LenBonds() int {
	return len(M.bonds)
}

//Cap returns the number of atoms the molecule can hold before growing.
func (M *Molecule) Cap() int {
	return cap(M.atoms)
}

//CapBonds returns the number of bonds the molecule can hold before growing.
func (M *Molecule) CapBonds() int {
	return cap(M.bonds)
}

//SortByDepth computes the draw order of atoms and of bonds, each by increasing
//depth. Ties keep insertion order. The insertion order itself, on which the bond
//indexes depend, is not altered.
func (M *Molecule) SortByDepth() {
	M.atomOrder = identity(len(M.atoms))
	M.bondOrder = identity(len(M.bonds))
	sort.SliceStable(M.atomOrder, func(i, j int) bool {
		return M.atoms[M.atomOrder[i]].Z < M.atoms[M.atomOrder[j]].Z
	})
	sort.SliceStable(M.bondOrder, func(i, j int) bool {
		return M.bonds[M.bondOrder[i]].Z < M.bonds[M.bondOrder[j]].Z
	})
}

//DepthOrder returns the atom and bond indexes in draw order, as computed by the last call to
//SortByDepth. If the molecule changed after that call, SortByDepth is called again.
func (M *Molecule) DepthOrder() (atoms, bonds []int) {
	if len(M.atomOrder) != len(M.atoms) || len(M.bondOrder) != len(M.bonds) {
		M.SortByDepth()
	}
	atoms = make([]int, len(M.atomOrder))
	bonds = make([]int, len(M.bondOrder))
	copy(atoms, M.atomOrder)
	copy(bonds, M.bondOrder)
	return atoms, bonds
}

//Copy returns a deep copy of the molecule.
func (M *Molecule) Copy() *Molecule {
	ret := NewMolecule(len(M.atoms), len(M.bonds))
	for _, v := range M.atoms {
		ret.atoms = append(ret.atoms, v.Copy())
	}
	for _, v := range M.bonds {
		b := *v
		ret.bonds = append(ret.bonds, &b)
	}
	return ret
}

func (M *Molecule) String() string {
	return fmt.Sprintf("atom_max: %d atom_no: %d bond_max: %d bond_no: %d", M.Cap(), M.Len(), M.CapBonds(), M.LenBonds())
}

func identity(n int) []int {
	r := make([]int, n)
	for i := range r {
		r[i] = i
	}
	return r
}
