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

package operator

import (
	"context"

	goerrors "gopkg.in/src-d/go-errors.v1"

	"github.com/dyod/columnstore/chunk"
	"github.com/dyod/columnstore/coltype"
	"github.com/dyod/columnstore/rowid"
	"github.com/dyod/columnstore/segment"
	"github.com/dyod/columnstore/table"
)

// ScanType names a TableScan predicate's comparison against its
// search value (spec §4.9).
type ScanType int

const (
	Eq ScanType = iota
	Neq
	Lt
	Lte
	Gt
	Gte
)

func (s ScanType) String() string {
	switch s {
	case Eq:
		return "="
	case Neq:
		return "!="
	case Lt:
		return "<"
	case Lte:
		return "<="
	case Gt:
		return ">"
	case Gte:
		return ">="
	default:
		return "?"
	}
}

// ErrNoSuchColumn is returned by TableScan for a column id outside the
// input table's column count.
var ErrNoSuchColumn = goerrors.NewKind("table_scan: no column %d (input has %d columns)")

// TableScan is a unary operator producing an output table whose
// chunks are entirely ReferenceSegments over the rows of input that
// satisfy "column scanType searchValue". Input columns may be
// ValueSegments, DictionarySegments, or ReferenceSegments; scanning a
// DictionarySegment column pushes the predicate down to a single
// ValueId range comparison per row rather than resolving every value
// (spec §4.9's headline optimization). Scanning a ReferenceSegment
// column composes rather than nests: the output points at the
// upstream reference's referenced table, never at input itself.
type TableScan struct {
	base
	input       Operator
	columnID    rowid.ColumnId
	scanType    ScanType
	searchValue coltype.Variant
}

// NewTableScan constructs a scan of input's columnID column against
// searchValue using scanType.
func NewTableScan(input Operator, columnID rowid.ColumnId, scanType ScanType, searchValue coltype.Variant) *TableScan {
	return &TableScan{
		base:        newBase("TableScan"),
		input:       input,
		columnID:    columnID,
		scanType:    scanType,
		searchValue: searchValue,
	}
}

// Execute implements Operator.
func (ts *TableScan) Execute(ctx context.Context) error {
	return ts.run(ctx, ts.execute)
}

func (ts *TableScan) execute(context.Context) (*table.Table, error) {
	in, err := outputOf(ts.input)
	if err != nil {
		return nil, err
	}

	if int(ts.columnID) >= in.ColumnCount() {
		return nil, ErrNoSuchColumn.New(int(ts.columnID), in.ColumnCount())
	}
	columnKind := in.ColumnType(ts.columnID)
	if columnKind != ts.searchValue.Kind() {
		return nil, coltype.ErrTypeMismatch.New(columnKind, ts.searchValue.Kind())
	}

	dataTable, posList, err := ts.scan(in)
	if err != nil {
		return nil, err
	}

	out := table.New(in.TargetChunkSize())
	for col := 0; col < in.ColumnCount(); col++ {
		cid := rowid.ColumnId(col)
		if err := out.AddColumn(in.ColumnName(cid), in.ColumnType(cid)); err != nil {
			return nil, err
		}
	}
	if len(posList) > 0 {
		c := chunk.New()
		for col := 0; col < in.ColumnCount(); col++ {
			c.AddSegment(segment.NewReferenceSegment(dataTable, rowid.ColumnId(col), in.ColumnType(rowid.ColumnId(col)), posList))
		}
		out.EmplaceChunk(c)
	}
	return out, nil
}

// scan walks every chunk of in's scanned column and returns the
// table the output's reference segments should resolve against, plus
// the matching rows' positions in ascending order. dataTable is the
// referenced table itself when the scanned column is already a
// ReferenceSegment (composition, not nesting), or in otherwise.
func (ts *TableScan) scan(in *table.Table) (segment.CellSource, rowid.PosList, error) {
	var dataTable segment.CellSource
	posList := rowid.PosList{}

	for ci := 0; ci < in.ChunkCount(); ci++ {
		c, err := in.GetChunk(rowid.ChunkId(ci))
		if err != nil {
			return nil, nil, err
		}
		seg, err := c.GetSegment(ts.columnID)
		if err != nil {
			return nil, nil, err
		}

		if refSeg, ok := seg.(*segment.ReferenceSegment); ok {
			dataTable = refSeg.ReferencedTable()
			rows := refSeg.PosList()
			for offset := 0; offset < len(rows); offset++ {
				v, err := seg.Get(rowid.ChunkOffset(offset))
				if err != nil {
					return nil, nil, err
				}
				match, err := ts.matchesValue(v)
				if err != nil {
					return nil, nil, err
				}
				if match {
					posList = append(posList, rows[offset])
				}
			}
			continue
		}

		dataTable = in
		if bounded, ok := seg.(segment.Bounded); ok {
			inRange, err := ts.idPredicate(bounded)
			if err != nil {
				return nil, nil, err
			}
			for offset := 0; offset < seg.Size(); offset++ {
				id, err := bounded.ValueIdAt(rowid.ChunkOffset(offset))
				if err != nil {
					return nil, nil, err
				}
				if inRange(id) {
					posList = append(posList, rowid.RowId{ChunkId: rowid.ChunkId(ci), ChunkOffset: rowid.ChunkOffset(offset)})
				}
			}
			continue
		}

		for offset := 0; offset < seg.Size(); offset++ {
			v, err := seg.Get(rowid.ChunkOffset(offset))
			if err != nil {
				return nil, nil, err
			}
			match, err := ts.matchesValue(v)
			if err != nil {
				return nil, nil, err
			}
			if match {
				posList = append(posList, rowid.RowId{ChunkId: rowid.ChunkId(ci), ChunkOffset: rowid.ChunkOffset(offset)})
			}
		}
	}

	return dataTable, posList, nil
}

// matchesValue evaluates the scan predicate directly against a
// resolved value; used for ValueSegment and ReferenceSegment columns,
// which offer no cheaper path.
func (ts *TableScan) matchesValue(v coltype.Variant) (bool, error) {
	c, err := coltype.Compare(v, ts.searchValue)
	if err != nil {
		return false, err
	}
	switch ts.scanType {
	case Eq:
		return c == 0, nil
	case Neq:
		return c != 0, nil
	case Lt:
		return c < 0, nil
	case Lte:
		return c <= 0, nil
	case Gt:
		return c > 0, nil
	case Gte:
		return c >= 0, nil
	default:
		panic("table_scan: unreachable scan type")
	}
}

// idPredicate turns the scan predicate into a ValueId range test
// against bounded's dictionary, so scanning a DictionarySegment column
// never resolves a value through the dictionary per row. The
// arithmetic relies on rowid.InvalidValueId being the maximum
// representable ValueId: when a bound is "past the end of the
// dictionary", the corresponding raw-id comparison already holds for
// every real stored id, with no dictionary-size lookup needed.
func (ts *TableScan) idPredicate(bounded segment.Bounded) (func(rowid.ValueId) bool, error) {
	lo, err := bounded.LowerBoundVariant(ts.searchValue)
	if err != nil {
		return nil, err
	}
	hi, err := bounded.UpperBoundVariant(ts.searchValue)
	if err != nil {
		return nil, err
	}
	switch ts.scanType {
	case Eq:
		return func(id rowid.ValueId) bool { return id >= lo && id < hi }, nil
	case Neq:
		return func(id rowid.ValueId) bool { return !(id >= lo && id < hi) }, nil
	case Lt:
		return func(id rowid.ValueId) bool { return id < lo }, nil
	case Lte:
		return func(id rowid.ValueId) bool { return id < hi }, nil
	case Gt:
		return func(id rowid.ValueId) bool { return id >= hi }, nil
	case Gte:
		return func(id rowid.ValueId) bool { return id >= lo }, nil
	default:
		panic("table_scan: unreachable scan type")
	}
}
