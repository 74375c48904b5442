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

// Package segment implements the three segment kinds a chunk column
// may be stored as: ValueSegment (mutable, append-only),
// DictionarySegment (immutable, dictionary-compressed), and
// ReferenceSegment (immutable, a zero-copy view over another table).
package segment

import (
	goerrors "gopkg.in/src-d/go-errors.v1"

	"github.com/dyod/columnstore/coltype"
	"github.com/dyod/columnstore/rowid"
)

// ErrOutOfBounds is returned by Get for an offset outside [0, Size()).
var ErrOutOfBounds = goerrors.NewKind("segment: offset %d out of bounds (size %d)")

// ErrImmutable is returned by Append on a DictionarySegment or
// ReferenceSegment.
var ErrImmutable = goerrors.NewKind("segment: %s segments are immutable")

// Segment is the capability set every column fragment implements:
// indexed read by ChunkOffset, append, size, and a memory estimate.
type Segment interface {
	// Get returns the value at offset, wrapped as a Variant.
	Get(offset rowid.ChunkOffset) (coltype.Variant, error)
	// Append adds a value to the end of the segment. Dictionary and
	// reference segments always fail this with ErrImmutable.
	Append(v coltype.Variant) error
	// Size reports the number of rows currently stored.
	Size() int
	// EstimateMemoryUsage reports an approximate byte footprint.
	EstimateMemoryUsage() uint64
	// Kind reports the scalar type this segment stores, letting a
	// caller (chunk.Chunk.Append) validate a row's values against
	// every column before mutating any of them.
	Kind() coltype.Kind
}

// Bounded is implemented by segments (DictionarySegment) that can
// answer a value's lower/upper bound directly, letting TableScan push
// range predicates down to a single ValueId comparison per row
// instead of materializing every value (spec §4.9).
type Bounded interface {
	// LowerBoundVariant returns the smallest ValueId id such that the
	// dictionary entry at id is >= search, or rowid.InvalidValueId.
	LowerBoundVariant(search coltype.Variant) (rowid.ValueId, error)
	// UpperBoundVariant returns the smallest ValueId id such that the
	// dictionary entry at id is > search, or rowid.InvalidValueId.
	UpperBoundVariant(search coltype.Variant) (rowid.ValueId, error)
	// ValueIdAt returns the ValueId stored at offset, without
	// resolving it through the dictionary.
	ValueIdAt(offset rowid.ChunkOffset) (rowid.ValueId, error)
}

// NewValueSegment constructs an empty, mutable ValueSegment for kind,
// dispatching to the monomorphized per-type constructor.
func NewValueSegment(kind coltype.Kind) Segment {
	switch kind {
	case coltype.Int32:
		return NewTypedValueSegment[int32]()
	case coltype.Int64:
		return NewTypedValueSegment[int64]()
	case coltype.Float32:
		return NewTypedValueSegment[float32]()
	case coltype.Float64:
		return NewTypedValueSegment[float64]()
	case coltype.String:
		return NewTypedValueSegment[string]()
	default:
		panic("segment: unreachable kind in NewValueSegment")
	}
}

// Compress builds a DictionarySegment from src, a same-kind
// ValueSegment, dispatching on kind. src must be a *ValueSegment[T]
// for the T matching kind, or Compress panics — callers (Table)
// always hold this invariant by construction. width1Max/width2Max are
// the dictionary-cardinality breakpoints the resulting attribute
// vector is sized against (normally sourced from
// config.EngineConfig.AttributeVectorWidth1Max/2Max).
func Compress(kind coltype.Kind, src Segment, width1Max, width2Max int) Segment {
	switch kind {
	case coltype.Int32:
		return NewDictionarySegment(src.(*ValueSegment[int32]), width1Max, width2Max)
	case coltype.Int64:
		return NewDictionarySegment(src.(*ValueSegment[int64]), width1Max, width2Max)
	case coltype.Float32:
		return NewDictionarySegment(src.(*ValueSegment[float32]), width1Max, width2Max)
	case coltype.Float64:
		return NewDictionarySegment(src.(*ValueSegment[float64]), width1Max, width2Max)
	case coltype.String:
		return NewDictionarySegment(src.(*ValueSegment[string]), width1Max, width2Max)
	default:
		panic("segment: unreachable kind in Compress")
	}
}
