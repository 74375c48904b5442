// Copyright 2025 The DYOD Project Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package d holds assertion helpers used to guard invariants that are
// not expected to occur at a sanitized API boundary: segment size
// parity after a chunk append, the dictionary build, and the like,
// where a violation indicates a bug in this module. table.New and
// table.NewFromConfig also use PanicIfFalse to reject a non-positive
// target chunk size. Chunk arity is not checked here; it is returned
// as an error by chunk.Chunk.Append.
package d

import "github.com/pkg/errors"

// PanicIfError panics with err if it is non-nil.
func PanicIfError(err error) {
	if err != nil {
		panic(err)
	}
}

// PanicIfTrue panics if b is true.
func PanicIfTrue(b bool) {
	if b {
		panic("expected condition to be false")
	}
}

// PanicIfFalse panics if b is false.
func PanicIfFalse(b bool) {
	if !b {
		panic("expected condition to be true")
	}
}

// Wrap annotates err with a stack trace via pkg/errors. Wrap(nil)
// returns nil. Wrapping an already-wrapped error is a no-op: the
// original stack trace is preserved.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(stackTracer); ok {
		return err
	}
	return errors.WithStack(err)
}

// Unwrap returns the innermost cause of err, or err itself if it was
// never wrapped.
func Unwrap(err error) error {
	return errors.Cause(err)
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}
