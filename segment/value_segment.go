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

package segment

import (
	"unsafe"

	"github.com/dyod/columnstore/coltype"
	"github.com/dyod/columnstore/rowid"
)

// ValueSegment is a typed, append-only column fragment holding a
// plain slice of T.
type ValueSegment[T coltype.Scalar] struct {
	values []T
}

// NewTypedValueSegment constructs an empty ValueSegment[T].
func NewTypedValueSegment[T coltype.Scalar]() *ValueSegment[T] {
	return &ValueSegment[T]{}
}

// Values returns the underlying slice by reference, for efficient
// scanning (spec §4.2) — callers must not mutate it.
func (vs *ValueSegment[T]) Values() []T { return vs.values }

func (vs *ValueSegment[T]) Get(offset rowid.ChunkOffset) (coltype.Variant, error) {
	i := int(offset)
	if i < 0 || i >= len(vs.values) {
		return coltype.Variant{}, ErrOutOfBounds.New(i, len(vs.values))
	}
	return coltype.ToVariant(vs.values[i]), nil
}

func (vs *ValueSegment[T]) Append(v coltype.Variant) error {
	typed, err := coltype.FromVariant[T](v)
	if err != nil {
		return err
	}
	vs.values = append(vs.values, typed)
	return nil
}

func (vs *ValueSegment[T]) Size() int { return len(vs.values) }

func (vs *ValueSegment[T]) Kind() coltype.Kind { return coltype.KindOf[T]() }

func (vs *ValueSegment[T]) EstimateMemoryUsage() uint64 {
	var zero T
	return uint64(len(vs.values)) * uint64(unsafe.Sizeof(zero))
}
