/*
 * errors.go, part of afprep.
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

package afprep

import (
	"errors"
	"fmt"
)

//Sentinel kinds for the errors returned by the structure layer.
//Use errors.Is to check for them.
var (
	ErrStructureNotFound  = errors.New("structure not found")
	ErrChainNotFound      = errors.New("chain not found")
	ErrNoResolvedResidues = errors.New("no resolved residues")
	ErrMalformedStructure = errors.New("malformed structure file")
)

//FileError is the general structure for errors in the structure layer. It fullfills Error.
type FileError struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	kind     error
	deco     []string
	critical bool
}

func (err FileError) Error() string {
	msg := err.message
	if err.kind != nil {
		msg = fmt.Sprintf("%s: %s", err.kind.Error(), msg)
	}
	if err.filename != "" {
		msg = fmt.Sprintf("%s (%s)", msg, err.filename)
	}
	return msg
}

func (E FileError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//FileName returns the name of the file that caused the error, if any.
func (err FileError) FileName() string { return err.filename }

func (err FileError) Critical() bool { return err.critical }

//Unwrap returns the sentinel kind of the error.
func (err FileError) Unwrap() error { return err.kind }

//errDecorate adds the caller's name to the decorations of err, if err is a FileError,
//and sets its file name if it has none.
func errDecorate(err error, caller, filename string) error {
	if err == nil {
		return nil
	}
	err2, ok := err.(FileError)
	if !ok {
		return err
	}
	if err2.filename == "" {
		err2.filename = filename
	}
	err2.deco = err2.Decorate(caller)
	return err2
}
