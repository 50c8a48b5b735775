/*
 * sdf_test.go, part of molsvg.
 *
 * Copyright 2013 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

import (
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestSDFRead(Te *testing.T) {
	mol, err := SDFRead("test/water.sdf")
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != 3 || mol.LenBonds() != 2 {
		Te.Fatalf("Expected 3 atoms and 2 bonds, got %s", mol)
	}
	if a := mol.Atom(0); a.Symbol != "O" || a.X != -0.2929 || a.Z != 0.1 {
		Te.Errorf("Wrong first atom %s", a)
	}
	if b := mol.Bond(1); b.A1 != 0 || b.A2 != 2 || b.Epairs != 1 {
		Te.Errorf("Bond indexes should be 0-based: %s", b)
	}
	caf, err := SDFRead("test/caffeine.sdf")
	if err != nil {
		Te.Fatal(err)
	}
	if caf.Len() != 14 || caf.LenBonds() != 15 {
		Te.Errorf("Expected 14 atoms and 15 bonds, got %s", caf)
	}
}

func TestSDFCompressed(Te *testing.T) {
	raw, err := os.ReadFile("test/caffeine.sdf")
	if err != nil {
		Te.Fatal(err)
	}
	dir := Te.TempDir()
	gzname := filepath.Join(dir, "caffeine.sdf.gz")
	gf, err := os.Create(gzname)
	if err != nil {
		Te.Fatal(err)
	}
	gw := gzip.NewWriter(gf)
	gw.Write(raw)
	gw.Close()
	gf.Close()
	zname := filepath.Join(dir, "caffeine.sdf.zst")
	zf, err := os.Create(zname)
	if err != nil {
		Te.Fatal(err)
	}
	zw, err := zstd.NewWriter(zf)
	if err != nil {
		Te.Fatal(err)
	}
	zw.Write(raw)
	zw.Close()
	zf.Close()

	plain, err := SDFRead("test/caffeine.sdf")
	if err != nil {
		Te.Fatal(err)
	}
	for _, name := range []string{gzname, zname} {
		mol, err := SDFRead(name)
		if err != nil {
			Te.Fatalf("%s: %v", name, err)
		}
		if mol.Len() != plain.Len() || mol.LenBonds() != plain.LenBonds() {
			Te.Fatalf("%s: got %s, expected %s", name, mol, plain)
		}
		for i := 0; i < mol.Len(); i++ {
			if *mol.Atom(i) != *plain.Atom(i) {
				Te.Errorf("%s: atom %d differs: %s vs %s", name, i, mol.Atom(i), plain.Atom(i))
			}
		}
		for i := 0; i < mol.LenBonds(); i++ {
			if *mol.Bond(i) != *plain.Bond(i) {
				Te.Errorf("%s: bond %d differs", name, i)
			}
		}
	}
}

//hasLine tells whether err reports a problem on the given line.
func hasLine(err error, line string) bool {
	return err != nil && strings.Contains(err.Error(), "line "+line+":")
}

func TestSDFBadInput(Te *testing.T) {
	header := "name\nprogram\ncomment\n"
	cases := []struct {
		name string
		text string
		kind error
		line string
	}{
		{"short header", "name\nprogram\n", ErrFormat, "3"},
		{"no counts", header, ErrFormat, "4"},
		{"one count", header + "3\n", ErrFormat, "4"},
		{"bad count", header + "x 1\n", ErrFormat, "4"},
		{"negative", header + "-1 0\n", ErrFormat, "4"},
		{"missing atom", header + "2 0\n0 0 0 C\n", ErrFormat, "6"},
		{"short atom", header + "1 0\n0 0 C\n", ErrFormat, "5"},
		{"bad coordinate", header + "1 0\n0 zero 0 C\n", ErrFormat, "5"},
		{"NaN coordinate", header + "1 0\n0 NaN 0 C\n", ErrFormat, "5"},
		{"infinite coordinate", header + "2 0\n0 0 0 C\n-Inf 0 0 O\n", ErrFormat, "6"},
		{"overflowing coordinate", header + "1 0\n1e400 0 0 C\n", ErrFormat, "5"},
		{"long symbol", header + "1 0\n0 0 0 Carb\n", ErrFormat, "5"},
		{"huge atom count", header + "4611686018427387904 0\n0 0 0 C\n", ErrFormat, "6"},
		{"huge bond count", header + "1 4611686018427387904\n0 0 0 C\n", ErrFormat, "6"},
		{"short bond", header + "2 1\n0 0 0 C\n1 0 0 O\n1 2\n", ErrFormat, "7"},
		{"bad bond", header + "2 1\n0 0 0 C\n1 0 0 O\n1 b 1\n", ErrFormat, "7"},
		{"missing bond", header + "2 1\n0 0 0 C\n1 0 0 O\n", ErrFormat, "7"},
		{"dangling bond", header + "2 1\n0 0 0 C\n1 0 0 O\n1 3 1\n", ErrReferential, ""},
		{"zero index", header + "2 1\n0 0 0 C\n1 0 0 O\n0 1 1\n", ErrReferential, ""},
	}
	for _, c := range cases {
		mol, err := ParseSDF(strings.NewReader(c.text))
		if mol != nil {
			Te.Errorf("%s: a molecule was returned together with an error", c.name)
		}
		if !errors.Is(err, c.kind) {
			Te.Errorf("%s: expected %v, got %v", c.name, c.kind, err)
			continue
		}
		if c.line != "" && !hasLine(err, c.line) {
			Te.Errorf("%s: expected the error on line %s, got %v", c.name, c.line, err)
		}
	}
}

func TestSDFLenient(Te *testing.T) {
	//CRLF, no final newline, extra columns and trailing garbage are all fine.
	text := "a\r\nb\r\nc\r\n 2 1 0 0 V2000\r\n0 0 0 C 0 0\r\n1.5 0 0 O\r\n1 2 2 0 0\r\nM  END\r\ngarbage"
	mol, err := ParseSDF(strings.NewReader(text))
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != 2 || mol.LenBonds() != 1 || mol.Bond(0).Epairs != 2 {
		Te.Errorf("Wrong molecule %s", mol)
	}
	last := "a\nb\nc\n1 0\n0 0 0 C"
	mol, err = ParseSDF(strings.NewReader(last))
	if err != nil || mol.Len() != 1 {
		Te.Errorf("A last line without newline should be read: %v %v", mol, err)
	}
	empty, err := ParseSDF(strings.NewReader("a\nb\nc\n0 0\n"))
	if err != nil || empty.Len() != 0 || empty.LenBonds() != 0 {
		Te.Errorf("An empty molecule is valid: %v %v", empty, err)
	}
}
