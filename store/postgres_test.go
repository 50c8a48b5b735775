/*
 * postgres_test.go, part of molsvg.
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
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"

	chem "github.com/rmera/molsvg"
)

type PostgresTestSuite struct {
	suite.Suite
	ctx  context.Context
	mock sqlmock.Sqlmock
	sql  *sql.DB
}

func (s *PostgresTestSuite) SetupTest() {
	var err error
	s.ctx = context.Background()
	s.sql, s.mock, err = sqlmock.New()
	s.Require().NoError(err)
}

func (s *PostgresTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	s.sql.Close()
}

func (s *PostgresTestSuite) water() *chem.Molecule {
	mol := chem.NewMolecule(2, 1)
	s.Require().NoError(mol.AppendAtom("O", 0, 0, 0))
	s.Require().NoError(mol.AppendAtom("H", 1, 0, 0))
	s.Require().NoError(mol.AppendBond(0, 1, 1))
	return mol
}

func (s *PostgresTestSuite) TestAddUsesNumberedPlaceholders() {
	db := New(s.sql, Options{Driver: Postgres, Atomic: true})
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`INSERT INTO Molecules \(NAME\) VALUES \(\$1\) RETURNING MOLECULE_ID`).
		WithArgs("Water").
		WillReturnRows(sqlmock.NewRows([]string{"molecule_id"}).AddRow(int64(7)))
	for i, sym := range []string{"O", "H"} {
		s.mock.ExpectQuery(`INSERT INTO Atoms \(ELEMENT_CODE, X, Y, Z\) VALUES \(\$1, \$2, \$3, \$4\) RETURNING ATOM_ID`).
			WithArgs(sym, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"atom_id"}).AddRow(int64(100 + i)))
		s.mock.ExpectExec(`INSERT INTO MoleculeAtom \(MOLECULE_ID, ATOM_ID\) VALUES \(\$1, \$2\)`).
			WithArgs(int64(7), int64(100+i)).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	s.mock.ExpectQuery(`INSERT INTO Bonds \(A1, A2, EPAIRS\) VALUES \(\$1, \$2, \$3\) RETURNING BOND_ID`).
		WithArgs(0, 1, 1).
		WillReturnRows(sqlmock.NewRows([]string{"bond_id"}).AddRow(int64(50)))
	s.mock.ExpectExec(`INSERT INTO MoleculeBond \(MOLECULE_ID, BOND_ID\) VALUES \(\$1, \$2\)`).
		WithArgs(int64(7), int64(50)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	s.NoError(db.AddGeometry(s.ctx, "Water", s.water()))
}

func (s *PostgresTestSuite) TestUniqueViolation() {
	db := New(s.sql, Options{Driver: Postgres})
	s.mock.ExpectQuery(`INSERT INTO Molecules`).
		WithArgs("Water").
		WillReturnError(&pgconn.PgError{Code: "23505", Message: `duplicate key value violates unique constraint "molecules_name_key"`})

	err := db.AddGeometry(s.ctx, "Water", s.water())
	s.True(errors.Is(err, chem.ErrUniqueness), "got %v", err)
	var pe *pgconn.PgError
	s.True(errors.As(err, &pe), "the driver error is kept as the cause")
}

func (s *PostgresTestSuite) TestFailureRollsBack() {
	db := New(s.sql, Options{Driver: Postgres, Atomic: true})
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`INSERT INTO Molecules`).
		WillReturnRows(sqlmock.NewRows([]string{"molecule_id"}).AddRow(int64(1)))
	s.mock.ExpectQuery(`INSERT INTO Atoms`).
		WillReturnError(errors.New("connection reset by peer"))
	s.mock.ExpectRollback()

	err := db.AddGeometry(s.ctx, "Water", s.water())
	s.Require().Error(err)
	s.False(errors.Is(err, chem.ErrUniqueness))
	s.Contains(err.Error(), "connection reset by peer")
}

func (s *PostgresTestSuite) TestLoad() {
	db := New(s.sql, Options{Driver: Postgres})
	s.mock.ExpectQuery(`SELECT MOLECULE_ID FROM Molecules WHERE NAME = \$1`).
		WithArgs("Water").
		WillReturnRows(sqlmock.NewRows([]string{"molecule_id"}).AddRow(int64(3)))
	s.mock.ExpectQuery(`SELECT Atoms.ELEMENT_CODE, Atoms.X, Atoms.Y, Atoms.Z\s+FROM Atoms JOIN MoleculeAtom .* ORDER BY Atoms.ATOM_ID`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"element_code", "x", "y", "z"}).
			AddRow("O", 0.0, 0.0, 0.0).
			AddRow("H", 1.0, 0.0, 0.5))
	s.mock.ExpectQuery(`SELECT Bonds.A1, Bonds.A2, Bonds.EPAIRS\s+FROM Bonds JOIN MoleculeBond .* ORDER BY Bonds.BOND_ID`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"a1", "a2", "epairs"}).AddRow(0, 1, 1))

	mol, err := db.LoadMolecule(s.ctx, "Water")
	s.Require().NoError(err)
	s.Equal(2, mol.Len())
	s.Equal(1, mol.LenBonds())
	s.Equal(0.25, mol.Bond(0).Z)
}

func (s *PostgresTestSuite) TestLoadCorruptedBond() {
	db := New(s.sql, Options{Driver: Postgres})
	s.mock.ExpectQuery(`SELECT MOLECULE_ID FROM Molecules`).
		WillReturnRows(sqlmock.NewRows([]string{"molecule_id"}).AddRow(int64(3)))
	s.mock.ExpectQuery(`SELECT Atoms.ELEMENT_CODE`).
		WillReturnRows(sqlmock.NewRows([]string{"element_code", "x", "y", "z"}).AddRow("O", 0.0, 0.0, 0.0))
	s.mock.ExpectQuery(`SELECT Bonds.A1`).
		WillReturnRows(sqlmock.NewRows([]string{"a1", "a2", "epairs"}).AddRow(0, 4, 1))

	mol, err := db.LoadMolecule(s.ctx, "Water")
	s.Nil(mol)
	s.True(errors.Is(err, chem.ErrReferential), "got %v", err)
}

func (s *PostgresTestSuite) TestNotFound() {
	db := New(s.sql, Options{Driver: Postgres})
	s.mock.ExpectQuery(`SELECT MOLECULE_ID FROM Molecules WHERE NAME = \$1`).
		WithArgs("Nope").
		WillReturnError(sql.ErrNoRows)

	_, err := db.LoadMolecule(s.ctx, "Nope")
	s.True(errors.Is(err, chem.ErrNotFound), "got %v", err)
}

func (s *PostgresTestSuite) TestRemoveMissingElement() {
	db := New(s.sql, Options{Driver: Postgres})
	s.mock.ExpectExec(`DELETE FROM Elements WHERE ELEMENT_CODE = \$1`).
		WithArgs("Xx").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := db.RemoveElement(s.ctx, "Xx")
	s.True(errors.Is(err, chem.ErrNotFound), "got %v", err)
}

func (s *PostgresTestSuite) TestSchema() {
	db := New(s.sql, Options{Driver: Postgres})
	for range postgresSchema {
		s.mock.ExpectExec(`CREATE TABLE IF NOT EXISTS`).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	s.NoError(db.CreateSchema(s.ctx))
}

func TestPostgresTestSuite(t *testing.T) {
	suite.Run(t, new(PostgresTestSuite))
}
