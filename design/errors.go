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

package design

import (
	"fmt"

	"github.com/rmera/afprep/features"
)

//ErrConfigurationInconsistent is the kind of the errors caused by protocol
//parameters that don't fit together. It is the same sentinel as in the features package.
var ErrConfigurationInconsistent = features.ErrConfigurationInconsistent

//Error is the error type returned by the functions in this package.
type Error struct {
	message  string
	kind     error
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	if err.kind != nil {
		return fmt.Sprintf("%s: %s", err.kind.Error(), err.message)
	}
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

//Unwrap returns the sentinel kind of the error, or nil.
func (err Error) Unwrap() error { return err.kind }

func inconsistent(caller, format string, args ...interface{}) Error {
	return Error{fmt.Sprintf(format, args...), ErrConfigurationInconsistent, []string{caller}, true}
}
