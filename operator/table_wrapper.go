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

	"github.com/dyod/columnstore/table"
)

// TableWrapper is a leaf operator that lifts an already-built
// *table.Table into the DAG, for tests and for composing a pipeline
// over a table that was never registered in a catalog.
type TableWrapper struct {
	base
	t *table.Table
}

// NewTableWrapper wraps t.
func NewTableWrapper(t *table.Table) *TableWrapper {
	return &TableWrapper{base: newBase("TableWrapper"), t: t}
}

// Execute implements Operator.
func (w *TableWrapper) Execute(ctx context.Context) error {
	return w.run(ctx, func(context.Context) (*table.Table, error) {
		return w.t, nil
	})
}
