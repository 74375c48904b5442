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

package coltype

import (
	"strings"

	goerrors "gopkg.in/src-d/go-errors.v1"
)

// ErrTypeMismatch is returned whenever a Variant's Kind does not
// match the type a caller expected (an extraction, a cross-kind
// comparison, or an append against a differently-typed segment).
var ErrTypeMismatch = goerrors.NewKind("type mismatch: expected %s, got %s")

// Variant holds exactly one scalar value of any kind in the closed
// type set, tagged with its Kind at runtime. It is the engine's
// AllTypeVariant: a zero Variant is an Int32 holding 0, never a "no
// value" state — the engine carries no NULLs (spec §1 Non-goals).
type Variant struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

func NewInt32(v int32) Variant     { return Variant{kind: Int32, i: int64(v)} }
func NewInt64(v int64) Variant     { return Variant{kind: Int64, i: v} }
func NewFloat32(v float32) Variant { return Variant{kind: Float32, f: float64(v)} }
func NewFloat64(v float64) Variant { return Variant{kind: Float64, f: v} }
func NewString(v string) Variant   { return Variant{kind: String, s: v} }

// Kind reports which scalar type v holds.
func (v Variant) Kind() Kind { return v.kind }

// ToVariant wraps a typed scalar value into a Variant, tagging it
// with the Kind corresponding to T. This is the typed-to-variant half
// of TypeDispatch.
func ToVariant[T Scalar](value T) Variant {
	switch x := any(value).(type) {
	case int32:
		return NewInt32(x)
	case int64:
		return NewInt64(x)
	case float32:
		return NewFloat32(x)
	case float64:
		return NewFloat64(x)
	case string:
		return NewString(x)
	default:
		panic("coltype: unreachable scalar type in ToVariant")
	}
}

// FromVariant extracts the T-typed value out of v, failing
// ErrTypeMismatch if v's Kind does not correspond to T. This is the
// variant-to-typed half of TypeDispatch.
func FromVariant[T Scalar](v Variant) (T, error) {
	want := KindOf[T]()
	if v.kind != want {
		var zero T
		return zero, ErrTypeMismatch.New(want, v.kind)
	}
	switch want {
	case Int32:
		return any(int32(v.i)).(T), nil
	case Int64:
		return any(v.i).(T), nil
	case Float32:
		return any(float32(v.f)).(T), nil
	case Float64:
		return any(v.f).(T), nil
	case String:
		return any(v.s).(T), nil
	default:
		panic("coltype: unreachable scalar type in FromVariant")
	}
}

// Equal reports whether a and b hold the same value. It fails
// ErrTypeMismatch if a and b have different kinds — comparing
// mismatched tags is a programming error (spec §3), never an
// implicit conversion.
func Equal(a, b Variant) (bool, error) {
	if a.kind != b.kind {
		return false, ErrTypeMismatch.New(a.kind, b.kind)
	}
	switch a.kind {
	case Int32, Int64:
		return a.i == b.i, nil
	case Float32, Float64:
		return a.f == b.f, nil
	case String:
		return a.s == b.s, nil
	default:
		panic("coltype: unreachable kind in Equal")
	}
}

// Compare returns -1, 0, or 1 as a is less than, equal to, or
// greater than b. Floats compare with strict IEEE-754 ordering;
// strings compare lexicographically by byte. It fails
// ErrTypeMismatch if a and b have different kinds.
func Compare(a, b Variant) (int, error) {
	if a.kind != b.kind {
		return 0, ErrTypeMismatch.New(a.kind, b.kind)
	}
	switch a.kind {
	case Int32, Int64:
		switch {
		case a.i < b.i:
			return -1, nil
		case a.i > b.i:
			return 1, nil
		default:
			return 0, nil
		}
	case Float32, Float64:
		switch {
		case a.f < b.f:
			return -1, nil
		case a.f > b.f:
			return 1, nil
		default:
			return 0, nil
		}
	case String:
		return strings.Compare(a.s, b.s), nil
	default:
		panic("coltype: unreachable kind in Compare")
	}
}
