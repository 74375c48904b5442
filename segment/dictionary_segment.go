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
	"sort"
	"unsafe"

	"github.com/dyod/columnstore/attrvec"
	"github.com/dyod/columnstore/coltype"
	"github.com/dyod/columnstore/d"
	"github.com/dyod/columnstore/rowid"
)

// DictionarySegment is an immutable, dictionary-compressed column
// fragment: a sorted, duplicate-free dictionary of T plus a
// width-selected attribute vector of value-ids (spec §4.3).
type DictionarySegment[T coltype.Scalar] struct {
	dict []T
	av   *attrvec.AttributeVector
}

// NewDictionarySegment builds a DictionarySegment from src in one
// pass: sort-and-dedup the values into a dictionary, pick the
// narrowest attribute-vector width for the dictionary's cardinality
// against the width1Max/width2Max breakpoints, then resolve every
// value to its dictionary index via binary search.
func NewDictionarySegment[T coltype.Scalar](src *ValueSegment[T], width1Max, width2Max int) *DictionarySegment[T] {
	values := src.Values()

	dict := make([]T, len(values))
	copy(dict, values)
	sort.Slice(dict, func(i, j int) bool { return mustLess(dict[i], dict[j]) })
	dict = dedup(dict)

	av := attrvec.New(attrvec.SelectWidth(len(dict), width1Max, width2Max), len(values))
	for i, v := range values {
		idx := sort.Search(len(dict), func(j int) bool { return !mustLess(dict[j], v) })
		// v was copied from dict's source values, so it is always
		// present in the deduped dictionary at the position lower_bound
		// finds.
		d.PanicIfError(av.Set(i, rowid.ValueId(idx)))
	}

	return &DictionarySegment[T]{dict: dict, av: av}
}

func mustLess[T coltype.Scalar](a, b T) bool {
	c, err := coltype.Compare(coltype.ToVariant(a), coltype.ToVariant(b))
	d.PanicIfError(err)
	return c < 0
}

func dedup[T coltype.Scalar](sorted []T) []T {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if mustLess(out[len(out)-1], v) {
			out = append(out, v)
		}
	}
	return out
}

// Dictionary returns the underlying sorted-unique dictionary by
// reference — callers must not mutate it.
func (ds *DictionarySegment[T]) Dictionary() []T { return ds.dict }

// UniqueValuesCount returns the dictionary's cardinality.
func (ds *DictionarySegment[T]) UniqueValuesCount() int { return len(ds.dict) }

// ValueByValueId resolves id through the dictionary, failing
// ErrOutOfBounds if id >= UniqueValuesCount().
func (ds *DictionarySegment[T]) ValueByValueId(id rowid.ValueId) (T, error) {
	var zero T
	if int(id) >= len(ds.dict) {
		return zero, ErrOutOfBounds.New(int(id), len(ds.dict))
	}
	return ds.dict[id], nil
}

// LowerBound returns the smallest ValueId whose dictionary entry is
// >= value, or rowid.InvalidValueId.
func (ds *DictionarySegment[T]) LowerBound(value T) rowid.ValueId {
	i := sort.Search(len(ds.dict), func(j int) bool { return !mustLess(ds.dict[j], value) })
	if i == len(ds.dict) {
		return rowid.InvalidValueId
	}
	return rowid.ValueId(i)
}

// UpperBound returns the smallest ValueId whose dictionary entry is
// > value, or rowid.InvalidValueId.
func (ds *DictionarySegment[T]) UpperBound(value T) rowid.ValueId {
	i := sort.Search(len(ds.dict), func(j int) bool { return mustLess(value, ds.dict[j]) })
	if i == len(ds.dict) {
		return rowid.InvalidValueId
	}
	return rowid.ValueId(i)
}

func (ds *DictionarySegment[T]) LowerBoundVariant(search coltype.Variant) (rowid.ValueId, error) {
	typed, err := coltype.FromVariant[T](search)
	if err != nil {
		return 0, err
	}
	return ds.LowerBound(typed), nil
}

func (ds *DictionarySegment[T]) UpperBoundVariant(search coltype.Variant) (rowid.ValueId, error) {
	typed, err := coltype.FromVariant[T](search)
	if err != nil {
		return 0, err
	}
	return ds.UpperBound(typed), nil
}

func (ds *DictionarySegment[T]) ValueIdAt(offset rowid.ChunkOffset) (rowid.ValueId, error) {
	return ds.av.Get(int(offset))
}

func (ds *DictionarySegment[T]) Get(offset rowid.ChunkOffset) (coltype.Variant, error) {
	id, err := ds.av.Get(int(offset))
	if err != nil {
		return coltype.Variant{}, err
	}
	v, err := ds.ValueByValueId(id)
	if err != nil {
		return coltype.Variant{}, err
	}
	return coltype.ToVariant(v), nil
}

func (ds *DictionarySegment[T]) Append(coltype.Variant) error {
	return ErrImmutable.New("dictionary")
}

func (ds *DictionarySegment[T]) Size() int { return ds.av.Size() }

func (ds *DictionarySegment[T]) Kind() coltype.Kind { return coltype.KindOf[T]() }

func (ds *DictionarySegment[T]) EstimateMemoryUsage() uint64 {
	var zero T
	dictBytes := uint64(len(ds.dict)) * uint64(unsafe.Sizeof(zero))
	return dictBytes + ds.av.EstimateMemoryUsage()
}
