// Copyright (C) 2024 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package errkind implements the small error-kind taxonomy shared by
// every package in the ORDER BY execution core: BadArguments, Internal,
// and Upstream (see spec.md §7).
package errkind

import "github.com/pkg/errors"

// Kind tags an error with one of the abstract kinds from spec.md §7.
type Kind int

const (
	// BadArguments indicates a caller-supplied argument count or shape
	// is invalid, e.g. an empty sort key list.
	BadArguments Kind = iota
	// Internal indicates a collaborator contract violation: schema
	// mismatch, unresolved column name, empty block list in a merge,
	// or a non-Sort expression where one was required.
	Internal
	// Upstream tags an error propagated unchanged from an input
	// stream or array kernel.
	Upstream
)

func (k Kind) String() string {
	switch k {
	case BadArguments:
		return "BadArguments"
	case Internal:
		return "Internal"
	case Upstream:
		return "Upstream"
	default:
		return "Unknown"
	}
}

type kindError struct {
	kind Kind
	err  error
}

func (e *kindError) Error() string { return e.kind.String() + ": " + e.err.Error() }
func (e *kindError) Unwrap() error { return e.err }

// New creates an error of the given kind with a formatted message.
func New(k Kind, format string, args ...interface{}) error {
	return &kindError{kind: k, err: errors.Errorf(format, args...)}
}

// Wrap tags an existing error (typically from a collaborator) with a
// kind, preserving the original error as the cause.
func Wrap(k Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: k, err: errors.Wrap(err, msg)}
}

// Is reports whether the outermost kind-tagged error in err's Unwrap
// chain carries kind k; kind tags nested below it are not consulted.
func Is(err error, k Kind) bool {
	var ke *kindError
	for err != nil {
		if e, ok := err.(*kindError); ok {
			ke = e
			break
		}
		err = errors.Unwrap(err)
	}
	return ke != nil && ke.kind == k
}
