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

// Package chunk implements Chunk, a horizontal partition of a table:
// an ordered collection of one segment per column, fixed in column
// count once sealed (spec §4.5).
package chunk

import (
	"sync"

	goerrors "gopkg.in/src-d/go-errors.v1"

	"github.com/dyod/columnstore/coltype"
	"github.com/dyod/columnstore/d"
	"github.com/dyod/columnstore/rowid"
	"github.com/dyod/columnstore/segment"
)

// ErrArityMismatch is returned by Append when the row's value count
// does not match the chunk's column count.
var ErrArityMismatch = goerrors.NewKind("chunk: row has %d values, chunk has %d columns")

// ErrNoSuchColumn is returned by GetSegment for a column id outside
// the chunk's column count.
var ErrNoSuchColumn = goerrors.NewKind("chunk: no column %d (chunk has %d columns)")

// Chunk owns one segment per column. add_segment variants are guarded
// by a mutex so a chunk may safely participate in concurrent
// compression (spec §5): one goroutine replacing segment i while
// another chunk's readers iterate segment j.
type Chunk struct {
	mu       sync.Mutex
	segments []segment.Segment
}

// New constructs an empty chunk.
func New() *Chunk {
	return &Chunk{}
}

// NewWithColumns constructs a chunk pre-sized to hold one fresh,
// empty ValueSegment per kind in kinds, in order.
func NewWithColumns(kinds []coltype.Kind) *Chunk {
	c := &Chunk{segments: make([]segment.Segment, len(kinds))}
	for i, k := range kinds {
		c.segments[i] = segment.NewValueSegment(k)
	}
	return c
}

// AddSegment appends seg as a new trailing column.
func (c *Chunk) AddSegment(seg segment.Segment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.segments = append(c.segments, seg)
}

// ReplaceSegment overwrites the segment at colID in place.
// table.Table.CompressChunk does not use it: it builds a fresh chunk
// with AddSegment and swaps the whole chunk.
func (c *Chunk) ReplaceSegment(colID rowid.ColumnId, seg segment.Segment) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := int(colID)
	if i < 0 || i >= len(c.segments) {
		return ErrNoSuchColumn.New(int(colID), len(c.segments))
	}
	c.segments[i] = seg
	return nil
}

// GetSegment returns the segment handle for colID.
func (c *Chunk) GetSegment(colID rowid.ColumnId) (segment.Segment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := int(colID)
	if i < 0 || i >= len(c.segments) {
		return nil, ErrNoSuchColumn.New(int(colID), len(c.segments))
	}
	return c.segments[i], nil
}

// Append forwards each value in values to the corresponding column's
// segment, failing ErrArityMismatch if the row's width does not match
// the chunk's column count, or coltype.ErrTypeMismatch if any value's
// Kind does not match its column's. No partial append: every value is
// checked against its column before any segment is mutated, so a bad
// row is rejected without growing some segments and not others.
func (c *Chunk) Append(values []coltype.Variant) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(values) != len(c.segments) {
		return ErrArityMismatch.New(len(values), len(c.segments))
	}
	for i, v := range values {
		if want, got := c.segments[i].Kind(), v.Kind(); want != got {
			return coltype.ErrTypeMismatch.New(want, got)
		}
	}
	for i, v := range values {
		// Every value's Kind matches its segment's, so Append can no
		// longer fail on mutable (ValueSegment) columns; a failure here
		// means this chunk holds an immutable segment, which the append
		// path never legitimately reaches.
		d.PanicIfError(c.segments[i].Append(v))
	}
	if len(c.segments) > 0 {
		want := c.segments[0].Size()
		for _, seg := range c.segments[1:] {
			d.PanicIfFalse(seg.Size() == want)
		}
	}
	return nil
}

// Size returns the size of the first segment, or 0 for a columnless
// or empty chunk. By the chunk invariant, every segment has this same
// size once the chunk has been appended to at all.
func (c *Chunk) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.segments) == 0 {
		return 0
	}
	return c.segments[0].Size()
}

// ColumnCount returns the number of segment slots in the chunk.
func (c *Chunk) ColumnCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.segments)
}
