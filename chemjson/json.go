/*
 * json.go, part of molsvg.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package chemjson

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	chem "github.com/rmera/molsvg"
	v3 "github.com/rmera/molsvg/v3"
)

//A ready-to-serialize container for an atom. The coordinates go in the next line.
type Atom struct {
	Symbol string
}

//A ready-to-serialize container for coordinates
type Coords struct {
	Coords []float64
}

//A ready-to-serialize container for a bond. A1 and A2 are 0-based atom indexes.
type Bond struct {
	A1     int
	A2     int
	Epairs int
}

//An easily JSON-serializable error type,
type Error struct {
	deco     []string
	IsError  bool //If this is false (no error) all the other fields will be at their zero-values.
	InHeader bool
	InAtoms  bool
	InBonds  bool
	Atom     int    //which atom or bond, if InAtoms or InBonds
	Function string //which go function gave the error
	Message  string //the error itself
}

//Error implements the error interface
func (J *Error) Error() string {
	return J.Message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (J *Error) Decorate(dec string) []string {
	if dec == "" {
		return J.deco
	}
	J.deco = append(J.deco, dec)
	return J.deco
}

//Critical always returns true.
func (J *Error) Critical() bool { return true }

//Serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - "))
	}
	return ret
}

//Information sent before the molecule itself.
type Info struct {
	Name  string
	Atoms int
	Bonds int
}

//Takes an error and some additional info to create a json-marshal-ble error.
//where is "header", "atoms" or "bonds".
func NewError(where, function string, index int, err error) *Error {
	jerr := new(Error)
	jerr.IsError = true
	switch where {
	case "header":
		jerr.InHeader = true
	case "bonds":
		jerr.InBonds = true
	default:
		jerr.InAtoms = true
	}
	jerr.Atom = index
	jerr.Function = function
	jerr.Message = err.Error()
	return jerr
}

//SendMolecule encodes the molecule, under the given name, and writes it to out.
func SendMolecule(name string, mol chem.Geometry, out io.Writer) *Error {
	const funcname = "SendMolecule"
	enc := json.NewEncoder(out)
	info := &Info{Name: name, Atoms: mol.Len(), Bonds: mol.LenBonds()}
	if err := enc.Encode(info); err != nil {
		return NewError("header", funcname, 0, err)
	}
	coords := make([]float64, 0, 3*mol.Len())
	for i := 0; i < mol.Len(); i++ {
		a := mol.Atom(i)
		coords = append(coords, a.X, a.Y, a.Z)
	}
	var c *v3.Matrix
	if len(coords) > 0 {
		var err error
		if c, err = v3.NewMatrix(coords); err != nil {
			return NewError("atoms", funcname, 0, err)
		}
	}
	if err := EncodeAtoms(mol, c, enc); err != nil {
		err.Decorate(funcname)
		return err
	}
	if err := EncodeBonds(mol, enc); err != nil {
		err.Decorate(funcname)
		return err
	}
	return nil
}

//EncodeAtoms encodes each atom of mol followed by its row of coords.
func EncodeAtoms(mol chem.Atomer, coords *v3.Matrix, enc *json.Encoder) *Error {
	const funcname = "EncodeAtoms"
	if mol == nil {
		return nil //Its assumed to be intentional.
	}
	c := new(Coords)
	t := make([]float64, 3)
	for i := 0; i < mol.Len(); i++ {
		if err := enc.Encode(&Atom{Symbol: mol.Atom(i).Symbol}); err != nil {
			return NewError("atoms", funcname, i, err)
		}
		c.Coords = coords.Row(t, i)
		if err := enc.Encode(c); err != nil {
			return NewError("atoms", funcname, i, err)
		}
	}
	return nil
}

//EncodeBonds encodes the bonds of mol, one per line.
func EncodeBonds(mol chem.Bonder, enc *json.Encoder) *Error {
	const funcname = "EncodeBonds"
	for i := 0; i < mol.LenBonds(); i++ {
		b := mol.Bond(i)
		if err := enc.Encode(&Bond{A1: b.A1, A2: b.A2, Epairs: b.Epairs}); err != nil {
			return NewError("bonds", funcname, i, err)
		}
	}
	return nil
}

func readLine(stream *bufio.Reader, v interface{}) error {
	line, err := stream.ReadBytes('\n')
	if err != nil && (err != io.EOF || len(line) == 0) {
		return err
	}
	return json.Unmarshal(line, v)
}

//DecodeMolecule reads a molecule written by SendMolecule.
func DecodeMolecule(stream *bufio.Reader) (*Info, *chem.Molecule, *Error) {
	const funcname = "DecodeMolecule"
	info := new(Info)
	if err := readLine(stream, info); err != nil {
		return nil, nil, NewError("header", funcname, 0, err)
	}
	if info.Atoms < 0 || info.Bonds < 0 {
		return nil, nil, NewError("header", funcname, 0, fmt.Errorf("negative counts %d %d", info.Atoms, info.Bonds))
	}
	mol := chem.NewMolecule(info.Atoms, info.Bonds)
	for i := 0; i < info.Atoms; i++ {
		at := new(Atom)
		if err := readLine(stream, at); err != nil {
			return nil, nil, NewError("atoms", funcname, i, err)
		}
		c := new(Coords)
		if err := readLine(stream, c); err != nil {
			return nil, nil, NewError("atoms", funcname, i, err)
		}
		if len(c.Coords) != 3 {
			return nil, nil, NewError("atoms", funcname, i, fmt.Errorf("%d coordinates for atom %d", len(c.Coords), i))
		}
		if err := mol.AppendAtom(at.Symbol, c.Coords[0], c.Coords[1], c.Coords[2]); err != nil {
			return nil, nil, NewError("atoms", funcname, i, err)
		}
	}
	for i := 0; i < info.Bonds; i++ {
		b := new(Bond)
		if err := readLine(stream, b); err != nil {
			return nil, nil, NewError("bonds", funcname, i, err)
		}
		if err := mol.AppendBond(b.A1, b.A2, b.Epairs); err != nil {
			return nil, nil, NewError("bonds", funcname, i, err)
		}
	}
	return info, mol, nil
}
