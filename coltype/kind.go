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

// Package coltype holds the closed set of scalar column types the
// engine supports, the runtime type tag (Kind) identifying one of
// them, and the Variant tagged union used to carry a single typed
// value across segment and operator boundaries.
package coltype

import (
	"fmt"

	goerrors "gopkg.in/src-d/go-errors.v1"
)

// ErrUnknownType is returned by ParseKind for a tag outside the
// closed scalar set.
var ErrUnknownType = goerrors.NewKind("unknown column type %q")

// Kind tags one of the engine's closed set of scalar column types.
type Kind uint8

const (
	Int32 Kind = iota
	Int64
	Float32
	Float64
	String
)

// String returns the canonical wire tag for k ("int", "long",
// "float", "double", "string"), matching spec §6.
func (k Kind) String() string {
	switch k {
	case Int32:
		return "int"
	case Int64:
		return "long"
	case Float32:
		return "float"
	case Float64:
		return "double"
	case String:
		return "string"
	default:
		return fmt.Sprintf("coltype.Kind(%d)", uint8(k))
	}
}

// ParseKind maps a canonical type tag to its Kind, failing
// ErrUnknownType for anything outside the closed set.
func ParseKind(tag string) (Kind, error) {
	switch tag {
	case "int":
		return Int32, nil
	case "long":
		return Int64, nil
	case "float":
		return Float32, nil
	case "double":
		return Float64, nil
	case "string":
		return String, nil
	default:
		return 0, ErrUnknownType.New(tag)
	}
}

// Scalar is the closed set of Go types a column may store, matching
// the Kind enum one-to-one.
type Scalar interface {
	int32 | int64 | float32 | float64 | string
}

// KindOf returns the Kind tag corresponding to the Scalar type
// parameter T. This is the TypeDispatch mapping from a compile-time
// type parameter back to its runtime tag.
func KindOf[T Scalar]() Kind {
	var zero T
	switch any(zero).(type) {
	case int32:
		return Int32
	case int64:
		return Int64
	case float32:
		return Float32
	case float64:
		return Float64
	case string:
		return String
	default:
		panic(fmt.Sprintf("coltype: unreachable scalar type %T", zero))
	}
}
