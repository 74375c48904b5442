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

// Package table implements Table: a sequence of chunks plus schema,
// with append-driven chunk rollover and in-place dictionary
// compression (spec §4.6).
package table

import (
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	goerrors "gopkg.in/src-d/go-errors.v1"

	"github.com/dyod/columnstore/chunk"
	"github.com/dyod/columnstore/coltype"
	"github.com/dyod/columnstore/config"
	"github.com/dyod/columnstore/d"
	"github.com/dyod/columnstore/rowid"
	"github.com/dyod/columnstore/segment"
)

// ErrSchemaLocked is returned by AddColumn once the table has any
// rows.
var ErrSchemaLocked = goerrors.NewKind("table: cannot add column %q, table already has rows")

// ErrNoSuchColumn is returned by ColumnIdByName for an unknown name.
var ErrNoSuchColumn = goerrors.NewKind("table: no column named %q")

// ErrPreconditionViolated is returned by CompressChunk when the
// target chunk is not yet full.
var ErrPreconditionViolated = goerrors.NewKind("table: chunk %d is not full (size %d, target %d)")

// ErrNoSuchChunk is returned by GetChunk/CompressChunk for a chunk id
// outside the table's chunk count.
var ErrNoSuchChunk = goerrors.NewKind("table: no chunk %d (table has %d chunks)")

var log = logrus.WithField("component", "table")

// Table owns an ordered sequence of chunks plus a parallel column
// name/type schema and a target chunk size. The chunk vector is
// guarded by a mutex; concurrent append to a single table is not
// supported by contract (spec §5) — callers serialize their own
// writers.
type Table struct {
	mu                  sync.Mutex
	name                string
	targetChunkSize     int
	attrVectorWidth1Max int
	attrVectorWidth2Max int
	columnNames         []string
	columnKinds         []coltype.Kind
	chunks              []*chunk.Chunk
}

// New constructs a table with the given target chunk size (must be >
// 0), zero columns, and zero chunks. The first chunk is allocated
// lazily by the first Append. Attribute-vector width thresholds come
// from config.Default(); use NewFromConfig to pick every knob,
// including the chunk size, from a caller-supplied EngineConfig.
func New(targetChunkSize int) *Table {
	d.PanicIfFalse(targetChunkSize > 0)
	cfg, err := config.Default()
	d.PanicIfError(err)
	return &Table{
		targetChunkSize:     targetChunkSize,
		attrVectorWidth1Max: cfg.AttributeVectorWidth1Max,
		attrVectorWidth2Max: cfg.AttributeVectorWidth2Max,
	}
}

// NewFromConfig constructs a table whose target chunk size and
// attribute-vector width thresholds all come from cfg, letting a
// deployment tune every knob CompressChunk consults from one place.
func NewFromConfig(cfg config.EngineConfig) *Table {
	d.PanicIfFalse(cfg.TargetChunkSize > 0)
	return &Table{
		targetChunkSize:     cfg.TargetChunkSize,
		attrVectorWidth1Max: cfg.AttributeVectorWidth1Max,
		attrVectorWidth2Max: cfg.AttributeVectorWidth2Max,
	}
}

// SetName records a display name for log correlation; it is not part
// of the catalog key (catalog.StorageManager owns that mapping).
func (t *Table) SetName(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.name = name
}

// AddColumn appends (name, kind) to the schema and a fresh, empty
// ValueSegment to every existing chunk. Fails ErrSchemaLocked once any
// row has been appended (spec §4.6).
func (t *Table) AddColumn(name string, kind coltype.Kind) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.rowCountLocked() > 0 {
		return ErrSchemaLocked.New(name)
	}
	t.columnNames = append(t.columnNames, name)
	t.columnKinds = append(t.columnKinds, kind)
	for _, c := range t.chunks {
		c.AddSegment(segment.NewValueSegment(kind))
	}
	return nil
}

// Append adds one row, rolling over to a fresh chunk first if the
// tail chunk is already at the target size.
func (t *Table) Append(values []coltype.Variant) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	var tail *chunk.Chunk
	if len(t.chunks) == 0 || t.chunks[len(t.chunks)-1].Size() == t.targetChunkSize {
		tail = chunk.NewWithColumns(t.columnKinds)
		t.chunks = append(t.chunks, tail)
	} else {
		tail = t.chunks[len(t.chunks)-1]
	}
	return tail.Append(values)
}

// RowCount is (chunk_count-1)*target_chunk_size + last_chunk.size().
func (t *Table) RowCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rowCountLocked()
}

func (t *Table) rowCountLocked() int {
	if len(t.chunks) == 0 {
		return 0
	}
	return (len(t.chunks)-1)*t.targetChunkSize + t.chunks[len(t.chunks)-1].Size()
}

// ChunkCount returns the number of chunks.
func (t *Table) ChunkCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.chunks)
}

// ColumnCount returns the number of columns in the schema.
func (t *Table) ColumnCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.columnNames)
}

// ColumnName returns the name of column id.
func (t *Table) ColumnName(id rowid.ColumnId) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.columnNames[id]
}

// ColumnType returns the Kind of column id.
func (t *Table) ColumnType(id rowid.ColumnId) coltype.Kind {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.columnKinds[id]
}

// ColumnIdByName performs a linear search for name, failing
// ErrNoSuchColumn if absent.
func (t *Table) ColumnIdByName(name string) (rowid.ColumnId, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, n := range t.columnNames {
		if n == name {
			return rowid.ColumnId(i), nil
		}
	}
	return 0, ErrNoSuchColumn.New(name)
}

// TargetChunkSize returns the table's configured chunk size.
func (t *Table) TargetChunkSize() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.targetChunkSize
}

// GetChunk returns the chunk handle for id, failing ErrNoSuchChunk if
// out of range.
func (t *Table) GetChunk(id rowid.ChunkId) (*chunk.Chunk, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := int(id)
	if i < 0 || i >= len(t.chunks) {
		return nil, ErrNoSuchChunk.New(i, len(t.chunks))
	}
	return t.chunks[i], nil
}

// EmplaceChunk appends a pre-built chunk, used by result-producing
// operators (e.g. TableScan) to hand their reference-segment chunk
// straight to a freshly constructed output table.
func (t *Table) EmplaceChunk(c *chunk.Chunk) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.chunks = append(t.chunks, c)
}

// GetCell implements segment.CellSource, resolving a single cell for
// a ReferenceSegment's Get.
func (t *Table) GetCell(col rowid.ColumnId, row rowid.RowId) (coltype.Variant, error) {
	c, err := t.GetChunk(row.ChunkId)
	if err != nil {
		return coltype.Variant{}, err
	}
	seg, err := c.GetSegment(col)
	if err != nil {
		return coltype.Variant{}, err
	}
	return seg.Get(row.ChunkOffset)
}

// CompressChunk replaces the chunk at id with an equivalent chunk
// whose segments are all DictionarySegments built from the originals,
// one worker per column (spec §5's compression protocol). The target
// chunk must already be full; otherwise ErrPreconditionViolated.
// Replacement is atomic from a reader's perspective: GetChunk never
// observes a partially-compressed chunk.
func (t *Table) CompressChunk(id rowid.ChunkId) error {
	t.mu.Lock()
	i := int(id)
	if i < 0 || i >= len(t.chunks) {
		t.mu.Unlock()
		return ErrNoSuchChunk.New(i, len(t.chunks))
	}
	src := t.chunks[i]
	kinds := append([]coltype.Kind(nil), t.columnKinds...)
	width1Max, width2Max := t.attrVectorWidth1Max, t.attrVectorWidth2Max
	t.mu.Unlock()

	if src.Size() != t.TargetChunkSize() {
		return ErrPreconditionViolated.New(i, src.Size(), t.TargetChunkSize())
	}

	dst := chunk.New()
	compressed := make([]segment.Segment, len(kinds))

	var g errgroup.Group
	for col := range kinds {
		col := col
		g.Go(func() error {
			srcSeg, err := src.GetSegment(rowid.ColumnId(col))
			if err != nil {
				return err
			}
			compressed[col] = segment.Compress(kinds[col], srcSeg, width1Max, width2Max)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, seg := range compressed {
		dst.AddSegment(seg)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if i >= len(t.chunks) {
		return ErrNoSuchChunk.New(i, len(t.chunks))
	}
	t.chunks[i] = dst
	log.WithFields(logrus.Fields{
		"table":   t.name,
		"chunk":   i,
		"columns": len(kinds),
		"rows":    dst.Size(),
	}).Debug("compressed chunk")
	return nil
}
