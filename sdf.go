/*
 * sdf.go, part of molsvg.
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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

const sdfHeaderLines = 3

//sdfLines hands out the lines of a structure-data file one at a time, and
//remembers the (1-based) number of the last one.
type sdfLines struct {
	r    *bufio.Reader
	line int
}

//next returns the fields of the next line. A missing line is a FormatError.
func (s *sdfLines) next(what string) ([]string, error) {
	s.line++
	str, err := s.r.ReadString('\n')
	if err != nil && !(err == io.EOF && str != "") {
		if err == io.EOF {
			return nil, s.errorf("missing %s line", what)
		}
		return nil, WrapError(ErrorKindFormat, err, fmt.Sprintf("line %d: can't read %s line", s.line, what), "sdfLines.next")
	}
	return strings.Fields(str), nil
}

func (s *sdfLines) errorf(format string, a ...interface{}) *ChemError {
	return newError(ErrorKindFormat, fmt.Sprintf("line %d: ", s.line)+fmt.Sprintf(format, a...), "sdfLines")
}

//ParseSDF reads a molecule in the structure-data (MOL/SDF) format from r.
//The first 3 lines are ignored. The fourth line must start with the number of atoms
//and the number of bonds. Each of the following atom lines starts with x, y, z and
//the element symbol, and each bond line with the 1-based indexes of both atoms and
//the number of electron pairs. Anything else in a line, and any line after the last
//bond, is ignored.
//On error, the returned molecule is nil. Problems with the text give a FormatError
//with the line number, bonds to atoms that don't exist give a ReferentialError.
func ParseSDF(r io.Reader) (*Molecule, error) {
	s := &sdfLines{r: bufio.NewReader(r)}
	for i := 0; i < sdfHeaderLines; i++ {
		if _, err := s.next("header"); err != nil {
			return nil, errDecorate(err, "ParseSDF")
		}
	}
	counts, err := s.next("counts")
	if err != nil {
		return nil, errDecorate(err, "ParseSDF")
	}
	if len(counts) < 2 {
		return nil, errDecorate(s.errorf("counts line needs 2 fields, got %d", len(counts)), "ParseSDF")
	}
	natoms, err := strconv.Atoi(counts[0])
	if err != nil {
		return nil, errDecorate(s.errorf("bad atom count %q", counts[0]), "ParseSDF")
	}
	nbonds, err := strconv.Atoi(counts[1])
	if err != nil {
		return nil, errDecorate(s.errorf("bad bond count %q", counts[1]), "ParseSDF")
	}
	if natoms < 0 || nbonds < 0 {
		return nil, errDecorate(s.errorf("negative counts %d %d", natoms, nbonds), "ParseSDF")
	}
	mol := NewMolecule(natoms, nbonds)
	var c [3]float64
	for i := 0; i < natoms; i++ {
		fields, err := s.next("atom")
		if err != nil {
			return nil, errDecorate(err, "ParseSDF")
		}
		if len(fields) < 4 {
			return nil, errDecorate(s.errorf("atom line needs 4 fields, got %d", len(fields)), "ParseSDF")
		}
		for j := range c {
			c[j], err = strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, errDecorate(s.errorf("bad coordinate %q", fields[j]), "ParseSDF")
			}
			if !finite(c[j]) {
				return nil, errDecorate(s.errorf("non-finite coordinate %q", fields[j]), "ParseSDF")
			}
		}
		if utf8.RuneCountInString(fields[3]) > MaxSymbolLen {
			return nil, errDecorate(s.errorf("element symbol %q longer than %d characters", fields[3], MaxSymbolLen), "ParseSDF")
		}
		if err := mol.AppendAtom(fields[3], c[0], c[1], c[2]); err != nil {
			return nil, errDecorate(err, "ParseSDF")
		}
	}
	var b [3]int
	for i := 0; i < nbonds; i++ {
		fields, err := s.next("bond")
		if err != nil {
			return nil, errDecorate(err, "ParseSDF")
		}
		if len(fields) < 3 {
			return nil, errDecorate(s.errorf("bond line needs 3 fields, got %d", len(fields)), "ParseSDF")
		}
		for j := range b {
			b[j], err = strconv.Atoi(fields[j])
			if err != nil {
				return nil, errDecorate(s.errorf("bad integer %q", fields[j]), "ParseSDF")
			}
		}
		if err := mol.AppendBond(b[0]-1, b[1]-1, b[2]); err != nil {
			return nil, errDecorate(err, fmt.Sprintf("ParseSDF (line %d)", s.line))
		}
	}
	return mol, nil
}
