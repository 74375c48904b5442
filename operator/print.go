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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/dyod/columnstore/coltype"
	"github.com/dyod/columnstore/rowid"
	"github.com/dyod/columnstore/table"
)

// Print is a pass-through operator: its output equals its input's
// output unchanged. As a side effect of Execute, it renders the
// table to sink — a bolded header (when sink is a terminal), then
// every chunk's rows pipe-separated, then a row-count/memory footer.
type Print struct {
	base
	input Operator
	sink  io.Writer
}

// NewPrint constructs a Print rendering input's output to sink.
func NewPrint(input Operator, sink io.Writer) *Print {
	return &Print{base: newBase("Print"), input: input, sink: sink}
}

// Execute implements Operator.
func (p *Print) Execute(ctx context.Context) error {
	return p.run(ctx, p.execute)
}

func (p *Print) execute(context.Context) (*table.Table, error) {
	in, err := outputOf(p.input)
	if err != nil {
		return nil, err
	}
	p.render(in)
	return in, nil
}

func (p *Print) render(t *table.Table) {
	header := color.New(color.Bold)
	if p.isTerminal() {
		header.EnableColor()
	} else {
		header.DisableColor()
	}

	names := make([]string, t.ColumnCount())
	for i := range names {
		cid := rowid.ColumnId(i)
		names[i] = fmt.Sprintf("%s (%s)", t.ColumnName(cid), t.ColumnType(cid))
	}
	header.Fprintln(p.sink, strings.Join(names, " | "))

	var mem uint64
	for ci := 0; ci < t.ChunkCount(); ci++ {
		c, err := t.GetChunk(rowid.ChunkId(ci))
		if err != nil {
			continue
		}
		for row := 0; row < c.Size(); row++ {
			cells := make([]string, t.ColumnCount())
			for col := range cells {
				v, err := t.GetCell(rowid.ColumnId(col), rowid.RowId{ChunkId: rowid.ChunkId(ci), ChunkOffset: rowid.ChunkOffset(row)})
				if err != nil {
					cells[col] = "<error>"
					continue
				}
				cells[col] = formatVariant(v)
			}
			fmt.Fprintln(p.sink, strings.Join(cells, " | "))
		}
		for col := 0; col < t.ColumnCount(); col++ {
			if seg, err := c.GetSegment(rowid.ColumnId(col)); err == nil {
				mem += seg.EstimateMemoryUsage()
			}
		}
	}

	fmt.Fprintf(p.sink, "%s rows, %s\n", humanize.Comma(int64(t.RowCount())), humanize.Bytes(mem))
}

func (p *Print) isTerminal() bool {
	f, ok := p.sink.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func formatVariant(v coltype.Variant) string {
	switch v.Kind() {
	case coltype.Int32:
		x, _ := coltype.FromVariant[int32](v)
		return fmt.Sprintf("%d", x)
	case coltype.Int64:
		x, _ := coltype.FromVariant[int64](v)
		return fmt.Sprintf("%d", x)
	case coltype.Float32:
		x, _ := coltype.FromVariant[float32](v)
		return fmt.Sprintf("%g", x)
	case coltype.Float64:
		x, _ := coltype.FromVariant[float64](v)
		return fmt.Sprintf("%g", x)
	case coltype.String:
		x, _ := coltype.FromVariant[string](v)
		return x
	default:
		return "?"
	}
}
