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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyod/columnstore/coltype"
	"github.com/dyod/columnstore/rowid"
	"github.com/dyod/columnstore/segment"
	"github.com/dyod/columnstore/table"
)

// buildScanTable mirrors the S1 fixture: target chunk size 2,
// columns a:int32/b:string, rows (4,"Hello,"), (6,"world"), (3,"!").
func buildScanTable(t *testing.T) *table.Table {
	t.Helper()
	tbl := table.New(2)
	require.NoError(t, tbl.AddColumn("a", coltype.Int32))
	require.NoError(t, tbl.AddColumn("b", coltype.String))
	require.NoError(t, tbl.Append([]coltype.Variant{coltype.NewInt32(4), coltype.NewString("Hello,")}))
	require.NoError(t, tbl.Append([]coltype.Variant{coltype.NewInt32(6), coltype.NewString("world")}))
	require.NoError(t, tbl.Append([]coltype.Variant{coltype.NewInt32(3), coltype.NewString("!")}))
	return tbl
}

// S5 — a value-segment scan pushing ">= 4" over a, keeping rows 4 and 6.
func TestTableScanValueSegment(t *testing.T) {
	tbl := buildScanTable(t)
	src := NewTableWrapper(tbl)
	require.NoError(t, src.Execute(context.Background()))

	scan := NewTableScan(src, 0, Gte, coltype.NewInt32(4))
	require.NoError(t, scan.Execute(context.Background()))

	out, ok := scan.Output()
	require.True(t, ok)
	assert.Equal(t, 2, out.RowCount())

	v0, err := out.GetCell(0, rowid.RowId{ChunkId: 0, ChunkOffset: 0})
	require.NoError(t, err)
	got0, _ := coltype.FromVariant[int32](v0)
	assert.EqualValues(t, 4, got0)

	v1, err := out.GetCell(0, rowid.RowId{ChunkId: 0, ChunkOffset: 1})
	require.NoError(t, err)
	got1, _ := coltype.FromVariant[int32](v1)
	assert.EqualValues(t, 6, got1)
}

// S6 — a second scan composed on S5's output must resolve against the
// original data table, never the intermediate reference table.
func TestTableScanComposesWithoutNesting(t *testing.T) {
	tbl := buildScanTable(t)
	src := NewTableWrapper(tbl)
	require.NoError(t, src.Execute(context.Background()))

	scan1 := NewTableScan(src, 0, Gte, coltype.NewInt32(4))
	require.NoError(t, scan1.Execute(context.Background()))

	scan2 := NewTableScan(scan1, 0, Lt, coltype.NewInt32(6))
	require.NoError(t, scan2.Execute(context.Background()))

	out, ok := scan2.Output()
	require.True(t, ok)
	assert.Equal(t, 1, out.RowCount())

	v, err := out.GetCell(0, rowid.RowId{ChunkId: 0, ChunkOffset: 0})
	require.NoError(t, err)
	got, _ := coltype.FromVariant[int32](v)
	assert.EqualValues(t, 4, got)

	c, err := out.GetChunk(0)
	require.NoError(t, err)
	seg, err := c.GetSegment(0)
	require.NoError(t, err)
	refSeg, ok := seg.(*segment.ReferenceSegment)
	require.True(t, ok)
	assert.Same(t, tbl, refSeg.ReferencedTable())
}

// TableScan over a dictionary-compressed column takes the
// ValueId-range pushdown path and must agree with the uncompressed
// result.
func TestTableScanDictionarySegmentPushdown(t *testing.T) {
	tbl := buildScanTable(t)
	require.NoError(t, tbl.CompressChunk(0))

	src := NewTableWrapper(tbl)
	require.NoError(t, src.Execute(context.Background()))

	scan := NewTableScan(src, 0, Gte, coltype.NewInt32(4))
	require.NoError(t, scan.Execute(context.Background()))

	out, ok := scan.Output()
	require.True(t, ok)
	assert.Equal(t, 2, out.RowCount())
	v, err := out.GetCell(0, rowid.RowId{ChunkId: 0, ChunkOffset: 0})
	require.NoError(t, err)
	got, _ := coltype.FromVariant[int32](v)
	assert.EqualValues(t, 4, got)
}

func TestTableScanNoMatchesYieldsZeroChunks(t *testing.T) {
	tbl := buildScanTable(t)
	src := NewTableWrapper(tbl)
	require.NoError(t, src.Execute(context.Background()))

	scan := NewTableScan(src, 0, Gt, coltype.NewInt32(100))
	require.NoError(t, scan.Execute(context.Background()))

	out, ok := scan.Output()
	require.True(t, ok)
	assert.Equal(t, 0, out.ChunkCount())
	assert.Equal(t, 0, out.RowCount())
}

func TestTableScanTypeMismatch(t *testing.T) {
	tbl := buildScanTable(t)
	src := NewTableWrapper(tbl)
	require.NoError(t, src.Execute(context.Background()))

	scan := NewTableScan(src, 0, Eq, coltype.NewString("4"))
	err := scan.Execute(context.Background())
	assert.True(t, coltype.ErrTypeMismatch.Is(err))
}

func TestTableScanNoSuchColumn(t *testing.T) {
	tbl := buildScanTable(t)
	src := NewTableWrapper(tbl)
	require.NoError(t, src.Execute(context.Background()))

	scan := NewTableScan(src, 5, Eq, coltype.NewInt32(1))
	err := scan.Execute(context.Background())
	assert.True(t, ErrNoSuchColumn.Is(err))
}

func TestTableScanInputNotExecuted(t *testing.T) {
	tbl := buildScanTable(t)
	src := NewTableWrapper(tbl)
	scan := NewTableScan(src, 0, Eq, coltype.NewInt32(4))
	err := scan.Execute(context.Background())
	assert.True(t, ErrInputNotExecuted.Is(err))
}
