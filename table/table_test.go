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

package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyod/columnstore/coltype"
	"github.com/dyod/columnstore/config"
	"github.com/dyod/columnstore/rowid"
)

func buildS1(t *testing.T) *Table {
	t.Helper()
	tbl := New(2)
	require.NoError(t, tbl.AddColumn("a", coltype.Int32))
	require.NoError(t, tbl.AddColumn("b", coltype.String))
	require.NoError(t, tbl.Append([]coltype.Variant{coltype.NewInt32(4), coltype.NewString("Hello,")}))
	require.NoError(t, tbl.Append([]coltype.Variant{coltype.NewInt32(6), coltype.NewString("world")}))
	require.NoError(t, tbl.Append([]coltype.Variant{coltype.NewInt32(3), coltype.NewString("!")}))
	return tbl
}

// S1 — append and shape.
func TestAppendAndShape(t *testing.T) {
	tbl := buildS1(t)

	assert.Equal(t, 2, tbl.ChunkCount())
	assert.Equal(t, 3, tbl.RowCount())

	c0, err := tbl.GetChunk(0)
	require.NoError(t, err)
	assert.Equal(t, 2, c0.Size())

	c1, err := tbl.GetChunk(1)
	require.NoError(t, err)
	assert.Equal(t, 1, c1.Size())

	v, err := tbl.GetCell(0, rowid.RowId{ChunkId: 1, ChunkOffset: 0})
	require.NoError(t, err)
	got, _ := coltype.FromVariant[int32](v)
	assert.EqualValues(t, 3, got)
}

func TestAddColumnAfterRowsFails(t *testing.T) {
	tbl := New(2)
	require.NoError(t, tbl.AddColumn("a", coltype.Int32))
	require.NoError(t, tbl.Append([]coltype.Variant{coltype.NewInt32(1)}))

	err := tbl.AddColumn("b", coltype.String)
	assert.True(t, ErrSchemaLocked.Is(err))
}

func TestColumnIdByName(t *testing.T) {
	tbl := buildS1(t)
	id, err := tbl.ColumnIdByName("b")
	require.NoError(t, err)
	assert.EqualValues(t, 1, id)

	_, err = tbl.ColumnIdByName("nope")
	assert.True(t, ErrNoSuchColumn.Is(err))
}

func TestEmptyTableHasZeroChunks(t *testing.T) {
	tbl := New(4)
	assert.Equal(t, 0, tbl.ChunkCount())
	assert.Equal(t, 0, tbl.RowCount())
}

func TestCompressChunkRequiresFullChunk(t *testing.T) {
	tbl := New(2)
	require.NoError(t, tbl.AddColumn("a", coltype.Int32))
	require.NoError(t, tbl.Append([]coltype.Variant{coltype.NewInt32(1)}))

	err := tbl.CompressChunk(0)
	assert.True(t, ErrPreconditionViolated.Is(err))
}

func TestCompressChunkPreservesValuesAndSchema(t *testing.T) {
	tbl := New(2)
	require.NoError(t, tbl.AddColumn("a", coltype.Int32))
	require.NoError(t, tbl.AddColumn("b", coltype.String))
	require.NoError(t, tbl.Append([]coltype.Variant{coltype.NewInt32(4), coltype.NewString("Hello,")}))
	require.NoError(t, tbl.Append([]coltype.Variant{coltype.NewInt32(6), coltype.NewString("world")}))

	require.NoError(t, tbl.CompressChunk(0))

	assert.Equal(t, 2, tbl.ChunkCount())
	assert.Equal(t, 2, tbl.ColumnCount())

	v, err := tbl.GetCell(0, rowid.RowId{ChunkId: 0, ChunkOffset: 0})
	require.NoError(t, err)
	got, _ := coltype.FromVariant[int32](v)
	assert.EqualValues(t, 4, got)

	v, err = tbl.GetCell(1, rowid.RowId{ChunkId: 0, ChunkOffset: 1})
	require.NoError(t, err)
	gotStr, _ := coltype.FromVariant[string](v)
	assert.Equal(t, "world", gotStr)
}

func TestCompressChunkNoSuchChunk(t *testing.T) {
	tbl := New(2)
	require.NoError(t, tbl.AddColumn("a", coltype.Int32))
	err := tbl.CompressChunk(7)
	assert.True(t, ErrNoSuchChunk.Is(err))
}

// NewFromConfig's width thresholds reach CompressChunk: a dictionary
// whose cardinality exceeds a caller-narrowed AttributeVectorWidth1Max
// must land in a 2-byte attribute vector, not the 1-byte default.
func TestCompressChunkHonorsConfiguredWidthThresholds(t *testing.T) {
	tbl := NewFromConfig(config.EngineConfig{
		TargetChunkSize:          4,
		AttributeVectorWidth1Max: 1,
		AttributeVectorWidth2Max: 100,
	})
	require.NoError(t, tbl.AddColumn("a", coltype.Int32))
	for _, v := range []int32{1, 2, 3, 4} {
		require.NoError(t, tbl.Append([]coltype.Variant{coltype.NewInt32(v)}))
	}
	require.NoError(t, tbl.CompressChunk(0))

	c, err := tbl.GetChunk(0)
	require.NoError(t, err)
	seg, err := c.GetSegment(0)
	require.NoError(t, err)
	// dictionary of 4 int32s in a width-2 vector: 4*4 dict bytes + 4*2
	// attribute-vector bytes. A width-1 vector (the package default)
	// would instead total 4*4+4*1.
	assert.EqualValues(t, 24, seg.EstimateMemoryUsage())
}
