/*
 * errors.go, part of molsvg.
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

package chem

import (
	"errors"
	"fmt"
	"strings"
)

//ErrorKind tells apart the failure classes of the library.
type ErrorKind int

const (
	ErrorKindUnknown       ErrorKind = iota
	ErrorKindFormat                  //malformed, short or missing input lines
	ErrorKindUniqueness              //duplicate molecule name
	ErrorKindReferential             //bond index outside the atom range
	ErrorKindStyleNotFound           //element code absent from the style catalog
	ErrorKindNotFound                //no such molecule in the store
	ErrorKindShape                   //matrix of the wrong dimensions
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindFormat:
		return "FormatError"
	case ErrorKindUniqueness:
		return "UniquenessViolation"
	case ErrorKindReferential:
		return "ReferentialError"
	case ErrorKindStyleNotFound:
		return "StyleNotFoundError"
	case ErrorKindNotFound:
		return "NotFoundError"
	case ErrorKindShape:
		return "ShapeError"
	}
	return "Error"
}

//Sentinels to use with errors.Is. Any *ChemError of the same kind matches them.
var (
	ErrFormat        = &ChemError{kind: ErrorKindFormat, msg: "malformed structure-data input"}
	ErrUniqueness    = &ChemError{kind: ErrorKindUniqueness, msg: "name already in use"}
	ErrReferential   = &ChemError{kind: ErrorKindReferential, msg: "bond refers to a missing atom"}
	ErrStyleNotFound = &ChemError{kind: ErrorKindStyleNotFound, msg: "element not in style catalog"}
	ErrNotFound      = &ChemError{kind: ErrorKindNotFound, msg: "not found"}
)

//ChemError is the error type returned by this library. Besides the message it
//carries its kind, the list of functions it went through (see Decorate), whether
//it is critical, and the lower-level error that caused it, if any.
type ChemError struct {
	kind     ErrorKind
	msg      string
	deco     []string
	critical bool
	err      error
}

func newError(kind ErrorKind, msg string, caller string) *ChemError {
	return &ChemError{kind: kind, msg: msg, deco: []string{caller}, critical: true}
}

//NewError returns a critical error of the given kind, decorated with the caller name.
func NewError(kind ErrorKind, msg string, caller string) *ChemError {
	return newError(kind, msg, caller)
}

//WrapError returns an error of the given kind that wraps err.
func WrapError(kind ErrorKind, err error, msg string, caller string) *ChemError {
	e := newError(kind, msg, caller)
	e.err = err
	return e
}

//Error returns a string with an error message.
func (err *ChemError) Error() string {
	msg := fmt.Sprintf("%s: %s", err.kind, err.msg)
	if err.err != nil {
		msg = msg + ": " + err.err.Error()
	}
	if len(err.deco) > 0 {
		msg = msg + " (" + strings.Join(err.deco, " < ") + ")"
	}
	return msg
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err *ChemError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Critical return whether the error is critical or it can be ignored
func (err *ChemError) Critical() bool { return err.critical }

//Kind returns the failure class of the error.
func (err *ChemError) Kind() ErrorKind { return err.kind }

func (err *ChemError) Unwrap() error { return err.err }

//Is reports whether target is a *ChemError of the same kind.
func (err *ChemError) Is(target error) bool {
	t, ok := target.(*ChemError)
	if !ok {
		return false
	}
	return t.kind == err.kind
}

//KindOf returns the kind of the first *ChemError in err's chain, or ErrorKindUnknown.
func KindOf(err error) ErrorKind {
	var c *ChemError
	if errors.As(err, &c) {
		return c.kind
	}
	return ErrorKindUnknown
}

//errDecorate adds the caller's name to err if it is a library Error, and returns it.
//Other errors are returned unchanged.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(Error); ok {
		e.Decorate(caller)
	}
	return err
}

//ErrDecorate is errDecorate for the sub-packages.
func ErrDecorate(err error, caller string) error {
	return errDecorate(err, caller)
}
