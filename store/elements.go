/*
 * elements.go, part of molsvg.
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
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	chem "github.com/rmera/molsvg"
	"github.com/rmera/molsvg/internal/logging"
	"github.com/rmera/molsvg/style"
)

func isHexColour(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

//isXMLName tells whether s can be used as an XML id and in a url(#...) reference:
//a letter or underscore followed by letters, digits, '-', '_' or '.'.
func isXMLName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

//ValidateElement checks that e can be stored and drawn. The code needs between 1 and
//chem.MaxSymbolLen characters, the name is used as the gradient id so it must be an
//XML name, the three colours need 6 hexadecimal digits each and the radius must be
//positive and finite. It returns a FormatError otherwise.
func ValidateElement(e style.Element) error {
	var problems []string
	if e.Code == "" {
		problems = append(problems, "empty code")
	} else if n := utf8.RuneCountInString(e.Code); n > chem.MaxSymbolLen {
		problems = append(problems, fmt.Sprintf("code has %d characters, the maximum is %d", n, chem.MaxSymbolLen))
	}
	if e.Name == "" {
		problems = append(problems, "empty name")
	} else if !isXMLName(e.Name) {
		problems = append(problems, fmt.Sprintf("name %q is not a valid XML name", e.Name))
	}
	for i, c := range []string{e.Colour1, e.Colour2, e.Colour3} {
		if !isHexColour(c) {
			problems = append(problems, fmt.Sprintf("colour %d (%q) is not 6 hex digits", i+1, c))
		}
	}
	if !(e.Radius > 0) || math.IsInf(e.Radius, 1) {
		problems = append(problems, "radius must be positive and finite")
	}
	if len(problems) > 0 {
		return chem.NewError(chem.ErrorKindFormat, fmt.Sprintf("element %q: %s", e.Code, strings.Join(problems, ", ")), "ValidateElement")
	}
	return nil
}

//Elements returns all the element styles, ordered by atomic number and then by code.
//It makes *DB a style.Source.
func (D *DB) Elements(ctx context.Context) ([]style.Element, error) {
	rows, err := D.db.QueryContext(ctx, `SELECT ELEMENT_NO, ELEMENT_CODE, ELEMENT_NAME, COLOUR1, COLOUR2, COLOUR3, RADIUS
		FROM Elements ORDER BY ELEMENT_NO, ELEMENT_CODE`)
	if err != nil {
		return nil, fmt.Errorf("store: listing elements: %w", err)
	}
	defer rows.Close()
	var ret []style.Element
	for rows.Next() {
		var e style.Element
		if err := rows.Scan(&e.Number, &e.Code, &e.Name, &e.Colour1, &e.Colour2, &e.Colour3, &e.Radius); err != nil {
			return nil, fmt.Errorf("store: reading element: %w", err)
		}
		ret = append(ret, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: listing elements: %w", err)
	}
	return ret, nil
}

func (D *DB) addElement(ctx context.Context, ex executor, e style.Element) error {
	if err := ValidateElement(e); err != nil {
		return chem.ErrDecorate(err, "AddElement")
	}
	_, err := ex.ExecContext(ctx, D.q(`INSERT INTO Elements (ELEMENT_NO, ELEMENT_CODE, ELEMENT_NAME, COLOUR1, COLOUR2, COLOUR3, RADIUS)
		VALUES (?, ?, ?, ?, ?, ?, ?)`), e.Number, e.Code, e.Name, e.Colour1, e.Colour2, e.Colour3, e.Radius)
	if err != nil {
		if isUniqueViolation(err) {
			D.log.Warn("element code already in use", logging.String("code", e.Code))
			return chem.WrapError(chem.ErrorKindUniqueness, err, fmt.Sprintf("element %q already exists", e.Code), "AddElement")
		}
		return fmt.Errorf("store: inserting element %q: %w", e.Code, err)
	}
	return nil
}

//AddElement stores a new element style. A code already in use is a UniquenessViolation.
func (D *DB) AddElement(ctx context.Context, e style.Element) error {
	if err := D.addElement(ctx, D.db, e); err != nil {
		return err
	}
	D.log.Info("element added", logging.String("code", e.Code))
	return nil
}

//RemoveElement deletes the style of the element with the given code. Atoms
//with that code stay, but can't be drawn until the element is added again.
func (D *DB) RemoveElement(ctx context.Context, code string) error {
	res, err := D.db.ExecContext(ctx, D.q(`DELETE FROM Elements WHERE ELEMENT_CODE = ?`), code)
	if err != nil {
		return fmt.Errorf("store: removing element %q: %w", code, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: removing element %q: %w", code, err)
	}
	if n == 0 {
		return chem.NewError(chem.ErrorKindNotFound, fmt.Sprintf("no element %q", code), "RemoveElement")
	}
	D.log.Info("element removed", logging.String("code", code))
	return nil
}

//SeedElements stores els if there are no elements yet, all in one transaction. It
//returns how many were stored.
func (D *DB) SeedElements(ctx context.Context, els []style.Element) (int, error) {
	var n int
	if err := D.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM Elements`).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: counting elements: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	tx, err := D.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("store: beginning transaction: %w", err)
	}
	for _, e := range els {
		if err := D.addElement(ctx, tx, e); err != nil {
			tx.Rollback()
			return 0, chem.ErrDecorate(err, "SeedElements")
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: committing element seed: %w", err)
	}
	D.log.Info("elements seeded", logging.Int("count", len(els)))
	return len(els), nil
}

//Radius returns the drawing radius of every element, by code.
func (D *DB) Radius(ctx context.Context) (map[string]float64, error) {
	els, err := D.Elements(ctx)
	if err != nil {
		return nil, err
	}
	ret := make(map[string]float64, len(els))
	for _, e := range els {
		ret[e.Code] = e.Radius
	}
	return ret, nil
}

//ElementName returns the name of every element, by code.
func (D *DB) ElementName(ctx context.Context) (map[string]string, error) {
	els, err := D.Elements(ctx)
	if err != nil {
		return nil, err
	}
	ret := make(map[string]string, len(els))
	for _, e := range els {
		ret[e.Code] = e.Name
	}
	return ret, nil
}

//RadialGradients returns the SVG gradient definitions of every element.
func (D *DB) RadialGradients(ctx context.Context) (string, error) {
	els, err := D.Elements(ctx)
	if err != nil {
		return "", err
	}
	return style.NewCatalog(els...).Gradients(), nil
}
