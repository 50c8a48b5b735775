/*
 * store.go, part of molsvg.
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

//Package store keeps molecules and element styles in a relational database,
//SQLite (github.com/mattn/go-sqlite3) or PostgreSQL (github.com/jackc/pgx/v5).
//A molecule is stored as one Molecules row, one Atoms row per atom and one
//Bonds row per bond, tied together by the MoleculeAtom and MoleculeBond tables.
//The row ids keep the order in which atoms and bonds were added, which is what
//the bond indexes refer to.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mattn/go-sqlite3"

	chem "github.com/rmera/molsvg"
	"github.com/rmera/molsvg/internal/logging"
)

//Options for Open and New.
type Options struct {
	Driver string //SQLite or Postgres. Defaults to SQLite.
	DSN    string //file name or ":memory:" for SQLite, connection string for PostgreSQL
	//Atomic makes AddMolecule run in one transaction, so a failure leaves nothing
	//behind. Otherwise each statement commits on its own.
	Atomic bool
	Logger logging.Logger
}

//DB is a molecule database.
type DB struct {
	db     *sql.DB
	driver string
	atomic bool
	log    logging.Logger
}

//executor is what *sql.DB and *sql.Tx have in common.
type executor interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

//Open connects to the database described by opts. The pool is limited to a
//single connection, which also keeps an in-memory SQLite database alive
//between calls.
func Open(ctx context.Context, opts Options) (*DB, error) {
	if opts.Driver == "" {
		opts.Driver = SQLite
	}
	if opts.Driver != SQLite && opts.Driver != Postgres {
		return nil, fmt.Errorf("store: unsupported driver %q", opts.Driver)
	}
	if opts.DSN == "" {
		return nil, errors.New("store: empty data source name")
	}
	db, err := sql.Open(opts.Driver, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("store: opening %s database: %w", opts.Driver, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: connecting to %s database: %w", opts.Driver, err)
	}
	if opts.Driver == SQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: enabling foreign keys: %w", err)
		}
	}
	D := New(db, opts)
	D.log.Debug("database opened", logging.String("driver", D.driver))
	return D, nil
}

//New wraps an already open database. The caller is responsible for the pool
//settings. Mostly useful for tests.
func New(db *sql.DB, opts Options) *DB {
	if opts.Driver == "" {
		opts.Driver = SQLite
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	return &DB{db: db, driver: opts.Driver, atomic: opts.Atomic, log: opts.Logger.Named("store")}
}

//Driver returns the name of the database/sql driver in use.
func (D *DB) Driver() string { return D.driver }

//Close closes the database.
func (D *DB) Close() error {
	return D.db.Close()
}

func (D *DB) q(query string) string {
	return rebind(D.driver, query)
}

//CreateSchema creates the tables that don't exist yet.
func (D *DB) CreateSchema(ctx context.Context) error {
	for _, stmt := range schemaFor(D.driver) {
		if _, err := D.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store: creating schema: %w", err)
		}
	}
	return nil
}

//isUniqueViolation reports whether err comes from a UNIQUE or PRIMARY KEY constraint,
//for either driver.
func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return pe.Code == "23505"
	}
	return false
}

//withExecutor runs fn on the database, or inside one transaction if the DB is atomic.
func (D *DB) withExecutor(ctx context.Context, fn func(executor) error) error {
	if !D.atomic {
		return fn(D.db)
	}
	tx, err := D.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			D.log.Error("rollback failed", logging.Err(rerr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: committing transaction: %w", err)
	}
	return nil
}

//AddMolecule reads a structure-data file from r and stores it as name.
//Nothing is written if r can't be parsed, or if name is already taken
//(a UniquenessViolation).
func (D *DB) AddMolecule(ctx context.Context, name string, r io.Reader) error {
	mol, err := chem.ParseSDF(r)
	if err != nil {
		return chem.ErrDecorate(err, "AddMolecule")
	}
	return D.AddGeometry(ctx, name, mol)
}

//AddGeometry stores mol under name. Atoms and bonds are inserted in order, so
//their row ids keep the order of mol.
func (D *DB) AddGeometry(ctx context.Context, name string, mol chem.Geometry) error {
	err := D.withExecutor(ctx, func(ex executor) error {
		var molID int64
		err := ex.QueryRowContext(ctx, D.q(`INSERT INTO Molecules (NAME) VALUES (?) RETURNING MOLECULE_ID`), name).Scan(&molID)
		if err != nil {
			if isUniqueViolation(err) {
				D.log.Warn("molecule name already in use", logging.String("name", name))
				return chem.WrapError(chem.ErrorKindUniqueness, err, fmt.Sprintf("molecule %q already exists", name), "AddGeometry")
			}
			return fmt.Errorf("store: inserting molecule %q: %w", name, err)
		}
		D.log.Debug("molecule inserted", logging.String("name", name), logging.Int64("molecule_id", molID))
		for i := 0; i < mol.Len(); i++ {
			a := mol.Atom(i)
			var atomID int64
			err := ex.QueryRowContext(ctx, D.q(`INSERT INTO Atoms (ELEMENT_CODE, X, Y, Z) VALUES (?, ?, ?, ?) RETURNING ATOM_ID`),
				a.Symbol, a.X, a.Y, a.Z).Scan(&atomID)
			if err != nil {
				return fmt.Errorf("store: inserting atom %d of %q: %w", i, name, err)
			}
			if _, err := ex.ExecContext(ctx, D.q(`INSERT INTO MoleculeAtom (MOLECULE_ID, ATOM_ID) VALUES (?, ?)`), molID, atomID); err != nil {
				return fmt.Errorf("store: linking atom %d of %q: %w", i, name, err)
			}
			D.log.Debug("atom inserted", logging.Int64("atom_id", atomID), logging.String("element", a.Symbol))
		}
		for i := 0; i < mol.LenBonds(); i++ {
			b := mol.Bond(i)
			var bondID int64
			err := ex.QueryRowContext(ctx, D.q(`INSERT INTO Bonds (A1, A2, EPAIRS) VALUES (?, ?, ?) RETURNING BOND_ID`),
				b.A1, b.A2, b.Epairs).Scan(&bondID)
			if err != nil {
				return fmt.Errorf("store: inserting bond %d of %q: %w", i, name, err)
			}
			if _, err := ex.ExecContext(ctx, D.q(`INSERT INTO MoleculeBond (MOLECULE_ID, BOND_ID) VALUES (?, ?)`), molID, bondID); err != nil {
				return fmt.Errorf("store: linking bond %d of %q: %w", i, name, err)
			}
			D.log.Debug("bond inserted", logging.Int64("bond_id", bondID))
		}
		return nil
	})
	if err != nil {
		return chem.ErrDecorate(err, "AddGeometry")
	}
	D.log.Info("molecule added", logging.String("name", name), logging.Int("atoms", mol.Len()), logging.Int("bonds", mol.LenBonds()))
	return nil
}

//LoadMolecule rebuilds the molecule stored as name. Atoms and bonds come back in
//the order in which they were added. A name that is not in the database gives a
//NotFoundError. Each call returns a new molecule.
func (D *DB) LoadMolecule(ctx context.Context, name string) (*chem.Molecule, error) {
	var molID int64
	err := D.db.QueryRowContext(ctx, D.q(`SELECT MOLECULE_ID FROM Molecules WHERE NAME = ?`), name).Scan(&molID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, chem.NewError(chem.ErrorKindNotFound, fmt.Sprintf("no molecule named %q", name), "LoadMolecule")
	}
	if err != nil {
		return nil, fmt.Errorf("store: looking up molecule %q: %w", name, err)
	}
	mol := chem.NewMolecule(0, 0)
	rows, err := D.db.QueryContext(ctx, D.q(`SELECT Atoms.ELEMENT_CODE, Atoms.X, Atoms.Y, Atoms.Z
		FROM Atoms JOIN MoleculeAtom ON Atoms.ATOM_ID = MoleculeAtom.ATOM_ID
		WHERE MoleculeAtom.MOLECULE_ID = ?
		ORDER BY Atoms.ATOM_ID`), molID)
	if err != nil {
		return nil, fmt.Errorf("store: loading atoms of %q: %w", name, err)
	}
	for rows.Next() {
		var code string
		var x, y, z float64
		if err := rows.Scan(&code, &x, &y, &z); err != nil {
			rows.Close()
			return nil, fmt.Errorf("store: reading atom of %q: %w", name, err)
		}
		if err := mol.AppendAtom(code, x, y, z); err != nil {
			rows.Close()
			return nil, chem.ErrDecorate(err, "LoadMolecule")
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: loading atoms of %q: %w", name, err)
	}
	rows, err = D.db.QueryContext(ctx, D.q(`SELECT Bonds.A1, Bonds.A2, Bonds.EPAIRS
		FROM Bonds JOIN MoleculeBond ON Bonds.BOND_ID = MoleculeBond.BOND_ID
		WHERE MoleculeBond.MOLECULE_ID = ?
		ORDER BY Bonds.BOND_ID`), molID)
	if err != nil {
		return nil, fmt.Errorf("store: loading bonds of %q: %w", name, err)
	}
	defer rows.Close()
	for rows.Next() {
		var a1, a2, epairs int
		if err := rows.Scan(&a1, &a2, &epairs); err != nil {
			return nil, fmt.Errorf("store: reading bond of %q: %w", name, err)
		}
		//a corrupted row gives a ReferentialError here.
		if err := mol.AppendBond(a1, a2, epairs); err != nil {
			return nil, chem.ErrDecorate(err, "LoadMolecule")
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: loading bonds of %q: %w", name, err)
	}
	D.log.Debug("molecule loaded", logging.String("name", name), logging.Int("atoms", mol.Len()), logging.Int("bonds", mol.LenBonds()))
	return mol, nil
}

//MoleculeInfo summarizes one stored molecule.
type MoleculeInfo struct {
	Name  string `json:"name"`
	Atoms int    `json:"atoms"`
	Bonds int    `json:"bonds"`
}

//Molecules lists the stored molecules, in the order in which they were added.
func (D *DB) Molecules(ctx context.Context) ([]MoleculeInfo, error) {
	rows, err := D.db.QueryContext(ctx, `SELECT m.NAME,
		(SELECT COUNT(*) FROM MoleculeAtom ma WHERE ma.MOLECULE_ID = m.MOLECULE_ID),
		(SELECT COUNT(*) FROM MoleculeBond mb WHERE mb.MOLECULE_ID = m.MOLECULE_ID)
		FROM Molecules m ORDER BY m.MOLECULE_ID`)
	if err != nil {
		return nil, fmt.Errorf("store: listing molecules: %w", err)
	}
	defer rows.Close()
	var ret []MoleculeInfo
	for rows.Next() {
		var m MoleculeInfo
		if err := rows.Scan(&m.Name, &m.Atoms, &m.Bonds); err != nil {
			return nil, fmt.Errorf("store: listing molecules: %w", err)
		}
		ret = append(ret, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: listing molecules: %w", err)
	}
	return ret, nil
}
