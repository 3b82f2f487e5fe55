/*
Copyright © 2021 the tonyear authors.
This file is part of tonyear.

tonyear is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

tonyear is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with tonyear.  If not, see <http://www.gnu.org/licenses/>.
*/

package tonyear

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the error kind shared by every validation failure
// in this package and its subpackages. Use errors.Is to check for it.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError reports a violated precondition. Msg identifies
// the precondition and is returned unchanged by Error.
type InvalidArgumentError struct {
	Msg string
}

func (e *InvalidArgumentError) Error() string { return e.Msg }

// Is reports whether target is ErrInvalidArgument.
func (e *InvalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

// InvalidArgument returns an *InvalidArgumentError with a formatted message.
func InvalidArgument(format string, a ...interface{}) error {
	return &InvalidArgumentError{Msg: fmt.Sprintf(format, a...)}
}
