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
	"github.com/dyod/columnstore/coltype"
	"github.com/dyod/columnstore/rowid"
)

// CellSource is the narrow view a ReferenceSegment needs of the table
// it points into. table.Table implements it structurally; segment
// never imports table, avoiding the import cycle that a direct
// *table.Table field would create (table already imports segment to
// build columns).
type CellSource interface {
	// GetCell resolves the value at (col, row) in the underlying table.
	GetCell(col rowid.ColumnId, row rowid.RowId) (coltype.Variant, error)
	// RowCount reports the table's total row count, across all chunks.
	RowCount() int
}

// ReferenceSegment is an immutable, zero-copy view: a referenced
// table, a column within it, and a shared position list. By
// invariant the referenced table never itself holds reference
// segments (spec §4.4) — reference segments do not nest.
type ReferenceSegment struct {
	table   CellSource
	column  rowid.ColumnId
	kind    coltype.Kind
	posList rowid.PosList
}

// NewReferenceSegment constructs a view over table's column (typed
// kind), ordered by posList.
func NewReferenceSegment(table CellSource, column rowid.ColumnId, kind coltype.Kind, posList rowid.PosList) *ReferenceSegment {
	return &ReferenceSegment{table: table, column: column, kind: kind, posList: posList}
}

// ReferencedTable returns the table this segment's rows resolve
// against.
func (rs *ReferenceSegment) ReferencedTable() CellSource { return rs.table }

// ReferencedColumn returns the column id this segment resolves.
func (rs *ReferenceSegment) ReferencedColumn() rowid.ColumnId { return rs.column }

// PosList returns the segment's position list by reference.
func (rs *ReferenceSegment) PosList() rowid.PosList { return rs.posList }

func (rs *ReferenceSegment) Get(offset rowid.ChunkOffset) (coltype.Variant, error) {
	i := int(offset)
	if i < 0 || i >= len(rs.posList) {
		return coltype.Variant{}, ErrOutOfBounds.New(i, len(rs.posList))
	}
	return rs.table.GetCell(rs.column, rs.posList[i])
}

func (rs *ReferenceSegment) Append(coltype.Variant) error {
	return ErrImmutable.New("reference")
}

func (rs *ReferenceSegment) Size() int { return len(rs.posList) }

func (rs *ReferenceSegment) Kind() coltype.Kind { return rs.kind }

func (rs *ReferenceSegment) EstimateMemoryUsage() uint64 {
	// A PosList entry is two 32-bit fields; the segment itself owns no
	// column data.
	return uint64(len(rs.posList)) * 8
}
