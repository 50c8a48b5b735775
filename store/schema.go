/*
 * schema.go, part of molsvg.
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

package store

import (
	"strconv"
	"strings"
)

//Supported database/sql driver names.
const (
	SQLite   = "sqlite3"
	Postgres = "pgx"
)

//Atoms.ELEMENT_CODE is not a foreign key: styles are resolved when drawing,
//so a molecule may be stored before its elements, and an element removed
//while atoms still use it.

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS Elements (
		ELEMENT_NO   INTEGER     NOT NULL,
		ELEMENT_CODE VARCHAR(3)  NOT NULL PRIMARY KEY,
		ELEMENT_NAME VARCHAR(32) NOT NULL,
		COLOUR1      CHAR(6)     NOT NULL,
		COLOUR2      CHAR(6)     NOT NULL,
		COLOUR3      CHAR(6)     NOT NULL,
		RADIUS       REAL        NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS Atoms (
		ATOM_ID      INTEGER    PRIMARY KEY AUTOINCREMENT NOT NULL,
		ELEMENT_CODE VARCHAR(3) NOT NULL,
		X            REAL       NOT NULL,
		Y            REAL       NOT NULL,
		Z            REAL       NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS Bonds (
		BOND_ID INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
		A1      INTEGER NOT NULL,
		A2      INTEGER NOT NULL,
		EPAIRS  INTEGER NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS Molecules (
		MOLECULE_ID INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
		NAME        TEXT    NOT NULL UNIQUE)`,
	`CREATE TABLE IF NOT EXISTS MoleculeAtom (
		MOLECULE_ID INTEGER NOT NULL REFERENCES Molecules(MOLECULE_ID),
		ATOM_ID     INTEGER NOT NULL REFERENCES Atoms(ATOM_ID),
		PRIMARY KEY (MOLECULE_ID, ATOM_ID))`,
	`CREATE TABLE IF NOT EXISTS MoleculeBond (
		MOLECULE_ID INTEGER NOT NULL REFERENCES Molecules(MOLECULE_ID),
		BOND_ID     INTEGER NOT NULL REFERENCES Bonds(BOND_ID),
		PRIMARY KEY (MOLECULE_ID, BOND_ID))`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS Elements (
		ELEMENT_NO   INTEGER          NOT NULL,
		ELEMENT_CODE VARCHAR(3)       NOT NULL PRIMARY KEY,
		ELEMENT_NAME VARCHAR(32)      NOT NULL,
		COLOUR1      CHAR(6)          NOT NULL,
		COLOUR2      CHAR(6)          NOT NULL,
		COLOUR3      CHAR(6)          NOT NULL,
		RADIUS       DOUBLE PRECISION NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS Atoms (
		ATOM_ID      BIGSERIAL        PRIMARY KEY,
		ELEMENT_CODE VARCHAR(3)       NOT NULL,
		X            DOUBLE PRECISION NOT NULL,
		Y            DOUBLE PRECISION NOT NULL,
		Z            DOUBLE PRECISION NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS Bonds (
		BOND_ID BIGSERIAL PRIMARY KEY,
		A1      INTEGER   NOT NULL,
		A2      INTEGER   NOT NULL,
		EPAIRS  INTEGER   NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS Molecules (
		MOLECULE_ID BIGSERIAL PRIMARY KEY,
		NAME        TEXT      NOT NULL UNIQUE)`,
	`CREATE TABLE IF NOT EXISTS MoleculeAtom (
		MOLECULE_ID BIGINT NOT NULL REFERENCES Molecules(MOLECULE_ID),
		ATOM_ID     BIGINT NOT NULL REFERENCES Atoms(ATOM_ID),
		PRIMARY KEY (MOLECULE_ID, ATOM_ID))`,
	`CREATE TABLE IF NOT EXISTS MoleculeBond (
		MOLECULE_ID BIGINT NOT NULL REFERENCES Molecules(MOLECULE_ID),
		BOND_ID     BIGINT NOT NULL REFERENCES Bonds(BOND_ID),
		PRIMARY KEY (MOLECULE_ID, BOND_ID))`,
}

func schemaFor(driver string) []string {
	if driver == Postgres {
		return postgresSchema
	}
	return sqliteSchema
}

//rebind turns the '?' placeholders of q into '$1', '$2'... for PostgreSQL.
//Queries in this package never have a literal '?'.
func rebind(driver, q string) string {
	if driver != Postgres {
		return q
	}
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
