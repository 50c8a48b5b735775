/*
 * store_test.go, part of molsvg.
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

package store

import (
	"context"
	"errors"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	chem "github.com/rmera/molsvg"
	"github.com/rmera/molsvg/internal/logging"
	"github.com/rmera/molsvg/scene"
	"github.com/rmera/molsvg/style"
)

type SQLiteTestSuite struct {
	suite.Suite
	ctx  context.Context
	db   *DB
	logs *observer.ObservedLogs
}

func (s *SQLiteTestSuite) open(atomic bool) *DB {
	core, logs := observer.New(zapcore.DebugLevel)
	s.logs = logs
	db, err := Open(s.ctx, Options{Driver: SQLite, DSN: ":memory:", Atomic: atomic, Logger: logging.NewFromCore(core)})
	s.Require().NoError(err)
	s.Require().NoError(db.CreateSchema(s.ctx))
	return db
}

func (s *SQLiteTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = s.open(true)
	_, err := s.db.SeedElements(s.ctx, chem.DefaultElements())
	s.Require().NoError(err)
}

func (s *SQLiteTestSuite) TearDownTest() {
	s.db.Close()
}

func (s *SQLiteTestSuite) addFile(db *DB, name, file string) error {
	f, err := os.Open(file)
	s.Require().NoError(err)
	defer f.Close()
	return db.AddMolecule(s.ctx, name, f)
}

func (s *SQLiteTestSuite) count(db *DB, table string) int {
	var n int
	s.Require().NoError(db.db.QueryRowContext(s.ctx, "SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func (s *SQLiteTestSuite) TestSchemaIsIdempotent() {
	s.NoError(s.db.CreateSchema(s.ctx))
	s.NoError(s.db.CreateSchema(s.ctx))
}

func (s *SQLiteTestSuite) TestRoundTrip() {
	orig, err := chem.SDFRead("../test/caffeine.sdf")
	s.Require().NoError(err)
	s.Require().NoError(s.addFile(s.db, "Caffeine", "../test/caffeine.sdf"))
	loaded, err := s.db.LoadMolecule(s.ctx, "Caffeine")
	s.Require().NoError(err)
	s.Require().Equal(orig.Len(), loaded.Len())
	s.Require().Equal(orig.LenBonds(), loaded.LenBonds())
	for i := 0; i < orig.Len(); i++ {
		s.Equal(*orig.Atom(i), *loaded.Atom(i), "atom %d", i)
	}
	for i := 0; i < orig.LenBonds(); i++ {
		s.Equal(*orig.Bond(i), *loaded.Bond(i), "bond %d", i)
	}
	cat := style.NewCatalog()
	s.Require().NoError(cat.Load(s.ctx, s.db))
	before, err := scene.Render(orig, cat)
	s.Require().NoError(err)
	after, err := scene.Render(loaded, cat)
	s.Require().NoError(err)
	s.Equal(before, after, "a reloaded molecule must draw exactly like the original")

	again, err := s.db.LoadMolecule(s.ctx, "Caffeine")
	s.Require().NoError(err)
	s.NotSame(loaded.Atom(0), again.Atom(0), "each load returns a new molecule")
}

func (s *SQLiteTestSuite) TestDuplicateName() {
	s.Require().NoError(s.addFile(s.db, "Water", "../test/water.sdf"))
	err := s.addFile(s.db, "Water", "../test/water.sdf")
	s.True(errors.Is(err, chem.ErrUniqueness), "got %v", err)
	s.Equal(1, s.count(s.db, "Molecules"))
	s.Equal(3, s.count(s.db, "Atoms"))
	s.Equal(2, s.count(s.db, "Bonds"))
	mol, err := s.db.LoadMolecule(s.ctx, "Water")
	s.Require().NoError(err)
	s.Equal(3, mol.Len())
	s.Equal(1, s.logs.FilterMessage("molecule name already in use").Len())
}

func (s *SQLiteTestSuite) TestNotFound() {
	mol, err := s.db.LoadMolecule(s.ctx, "Unobtainium")
	s.Nil(mol)
	s.True(errors.Is(err, chem.ErrNotFound), "got %v", err)
}

func (s *SQLiteTestSuite) TestBadInputWritesNothing() {
	err := s.db.AddMolecule(s.ctx, "Broken", strings.NewReader("a\nb\nc\n2 0\n0 0 0 C\n"))
	s.True(errors.Is(err, chem.ErrFormat), "got %v", err)
	s.Equal(0, s.count(s.db, "Molecules"))
	s.Equal(0, s.count(s.db, "Atoms"))
}

func (s *SQLiteTestSuite) TestEmptyMolecule() {
	s.Require().NoError(s.db.AddMolecule(s.ctx, "Nothing", strings.NewReader("a\nb\nc\n0 0\n")))
	mol, err := s.db.LoadMolecule(s.ctx, "Nothing")
	s.Require().NoError(err)
	s.Equal(0, mol.Len())
	s.Equal(0, mol.LenBonds())
}

//breakBondLinks makes every bond link insertion fail.
func (s *SQLiteTestSuite) breakBondLinks(db *DB) {
	_, err := db.db.ExecContext(s.ctx, "DROP TABLE MoleculeBond")
	s.Require().NoError(err)
}

func (s *SQLiteTestSuite) TestAtomicAddRollsBack() {
	s.breakBondLinks(s.db)
	err := s.addFile(s.db, "Water", "../test/water.sdf")
	s.Require().Error(err)
	s.Equal(0, s.count(s.db, "Molecules"))
	s.Equal(0, s.count(s.db, "Atoms"))
}

func (s *SQLiteTestSuite) TestNonAtomicAddLeavesPartialMolecule() {
	db := s.open(false)
	defer db.Close()
	s.breakBondLinks(db)
	err := s.addFile(db, "Water", "../test/water.sdf")
	s.Require().Error(err)
	s.Equal(1, s.count(db, "Molecules"))
	s.Equal(3, s.count(db, "Atoms"))
}

func (s *SQLiteTestSuite) TestMolecules() {
	s.Require().NoError(s.addFile(s.db, "Water", "../test/water.sdf"))
	s.Require().NoError(s.addFile(s.db, "Caffeine", "../test/caffeine.sdf"))
	list, err := s.db.Molecules(s.ctx)
	s.Require().NoError(err)
	s.Equal([]MoleculeInfo{{"Water", 3, 2}, {"Caffeine", 14, 15}}, list)
}

func (s *SQLiteTestSuite) TestElements() {
	els, err := s.db.Elements(s.ctx)
	s.Require().NoError(err)
	s.Equal(chem.DefaultElements(), els)

	n, err := s.db.SeedElements(s.ctx, chem.DefaultElements())
	s.NoError(err)
	s.Zero(n, "seeding only happens on an empty table")

	s.Require().NoError(s.db.RemoveElement(s.ctx, "O"))
	err = s.db.RemoveElement(s.ctx, "O")
	s.True(errors.Is(err, chem.ErrNotFound), "got %v", err)

	ox := style.Element{Number: 8, Code: "O", Name: "Oxygen", Colour1: "FF0000", Colour2: "050000", Colour3: "020000", Radius: 45}
	s.Require().NoError(s.db.AddElement(s.ctx, ox))
	err = s.db.AddElement(s.ctx, ox)
	s.True(errors.Is(err, chem.ErrUniqueness), "got %v", err)

	bad := ox
	bad.Code, bad.Colour2 = "Q", "red"
	err = s.db.AddElement(s.ctx, bad)
	s.True(errors.Is(err, chem.ErrFormat), "got %v", err)

	radius, err := s.db.Radius(s.ctx)
	s.Require().NoError(err)
	s.Equal(45.0, radius["O"])
	s.Equal(25.0, radius["H"])
	names, err := s.db.ElementName(s.ctx)
	s.Require().NoError(err)
	s.Equal("Carbon", names["C"])
	grads, err := s.db.RadialGradients(s.ctx)
	s.Require().NoError(err)
	s.Equal(len(els), strings.Count(grads, "<radialGradient "))
}

func (s *SQLiteTestSuite) TestStyleMissAtRenderTime() {
	s.Require().NoError(s.db.RemoveElement(s.ctx, "H"))
	//storing doesn't care about styles
	s.Require().NoError(s.addFile(s.db, "Water", "../test/water.sdf"))
	mol, err := s.db.LoadMolecule(s.ctx, "Water")
	s.Require().NoError(err)
	cat := style.NewCatalog()
	s.Require().NoError(cat.Load(s.ctx, s.db))
	_, err = scene.Render(mol, cat)
	s.True(errors.Is(err, chem.ErrStyleNotFound), "got %v", err)
}

func TestSQLiteTestSuite(t *testing.T) {
	suite.Run(t, new(SQLiteTestSuite))
}

func TestOpenErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := Open(ctx, Options{Driver: "oracle", DSN: "x"}); err == nil {
		t.Error("unknown drivers should be rejected")
	}
	if _, err := Open(ctx, Options{Driver: SQLite}); err == nil {
		t.Error("an empty DSN should be rejected")
	}
}

func TestRebind(t *testing.T) {
	q := "INSERT INTO Atoms (ELEMENT_CODE, X, Y, Z) VALUES (?, ?, ?, ?)"
	if got := rebind(SQLite, q); got != q {
		t.Errorf("sqlite queries should not change: %s", got)
	}
	want := "INSERT INTO Atoms (ELEMENT_CODE, X, Y, Z) VALUES ($1, $2, $3, $4)"
	if got := rebind(Postgres, q); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestValidateElement(t *testing.T) {
	ok := style.Element{Number: 8, Code: "O", Name: "Oxygen", Colour1: "FF0000", Colour2: "050000", Colour3: "020000", Radius: 40}
	assert.NoError(t, ValidateElement(ok))
	for _, name := range []string{"_dummy", "Carbon-13", "Ca.2"} {
		e := ok
		e.Name = name
		assert.NoError(t, ValidateElement(e), name)
	}
	e := ok
	e.Code = "Uuo"
	assert.NoError(t, ValidateElement(e))

	bad := map[string]func(e *style.Element){
		"long code":        func(e *style.Element) { e.Code = "Oxyg" },
		"name with quote":  func(e *style.Element) { e.Name = `Ox"ygen` },
		"name with space":  func(e *style.Element) { e.Name = "Heavy water" },
		"name with markup": func(e *style.Element) { e.Name = "O<x>" },
		"name with paren":  func(e *style.Element) { e.Name = "O)" },
		"leading digit":    func(e *style.Element) { e.Name = "13C" },
		"leading hyphen":   func(e *style.Element) { e.Name = "-O" },
		"NaN radius":       func(e *style.Element) { e.Radius = math.NaN() },
		"infinite radius":  func(e *style.Element) { e.Radius = math.Inf(1) },
		"short colour":     func(e *style.Element) { e.Colour3 = "FFF" },
		"empty code":       func(e *style.Element) { e.Code = "" },
		"empty name":       func(e *style.Element) { e.Name = "" },
	}
	for what, spoil := range bad {
		e := ok
		spoil(&e)
		err := ValidateElement(e)
		assert.True(t, errors.Is(err, chem.ErrFormat), "%s: got %v", what, err)
	}
}

func (s *SQLiteTestSuite) TestUnsafeElementNotStored() {
	before, err := s.db.Elements(s.ctx)
	s.Require().NoError(err)
	e := style.Element{Number: 99, Code: "Es", Name: `x"/><script/>`, Colour1: "FF0000", Colour2: "050000", Colour3: "020000", Radius: 30}
	err = s.db.AddElement(s.ctx, e)
	s.True(errors.Is(err, chem.ErrFormat), "got %v", err)
	after, err := s.db.Elements(s.ctx)
	s.Require().NoError(err)
	s.Equal(len(before), len(after))
}
