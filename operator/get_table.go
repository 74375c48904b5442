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

	"github.com/dyod/columnstore/catalog"
	"github.com/dyod/columnstore/table"
)

// GetTable is a leaf operator that resolves a table by name out of a
// catalog at execution time, so the DAG captures the name rather than
// a snapshot of the table handle.
type GetTable struct {
	base
	catalog *catalog.StorageManager
	name    string
}

// NewGetTable constructs a GetTable resolving name against sm.
func NewGetTable(sm *catalog.StorageManager, name string) *GetTable {
	return &GetTable{base: newBase("GetTable"), catalog: sm, name: name}
}

// Execute implements Operator.
func (g *GetTable) Execute(ctx context.Context) error {
	return g.run(ctx, func(context.Context) (*table.Table, error) {
		return g.catalog.GetTable(g.name)
	})
}
