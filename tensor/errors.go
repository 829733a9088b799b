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

package tensor

import (
	"errors"
	"fmt"
)

//Sentinel kinds for the errors returned by this package. Use errors.Is to
//check for them.
var (
	ErrRankMismatch      = errors.New("rank mismatch between tensor and shape schema")
	ErrPadTargetTooSmall = errors.New("pad target smaller than tensor")
	ErrNoSchema          = errors.New("no shape schema for feature")
)

//Error is the error type returned by the functions in this package.
type Error struct {
	message  string
	feature  string //the feature that has problems, or empty string if none.
	kind     error
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	msg := err.message
	if err.feature != "" {
		msg = fmt.Sprintf("feature %s: %s", err.feature, msg)
	}
	if err.kind != nil {
		msg = fmt.Sprintf("%s: %s", err.kind.Error(), msg)
	}
	return msg
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

//Feature returns the name of the feature that caused the error, if any.
func (err Error) Feature() string { return err.feature }

//Unwrap returns the sentinel kind of the error, or nil.
func (err Error) Unwrap() error { return err.kind }

//errDecorate decorates err with the caller's name, and sets the feature
//name, if err is an Error.
func errDecorate(err error, caller, feature string) error {
	if err == nil {
		return nil
	}
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	if err2.feature == "" {
		err2.feature = feature
	}
	err2.deco = err2.Decorate(caller)
	return err2
}

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrIndexRank       = PanicMsg("afprep/tensor: index rank doesn't match tensor rank")
	ErrIndexOutOfRange = PanicMsg("afprep/tensor: index out of range")
	ErrScalar          = PanicMsg("afprep/tensor: operation not defined for scalars")
	ErrShape           = PanicMsg("afprep/tensor: dimension mismatch")
)
