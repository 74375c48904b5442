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

// Package catalog implements StorageManager, the process-wide
// registry mapping table names to table handles (spec §4.7).
package catalog

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	goerrors "gopkg.in/src-d/go-errors.v1"

	"github.com/dyod/columnstore/table"
)

// ErrDuplicate is returned by AddTable for a name already registered.
var ErrDuplicate = goerrors.NewKind("catalog: table %q already exists")

// ErrNoSuchTable is returned by GetTable/DropTable for an unregistered
// name.
var ErrNoSuchTable = goerrors.NewKind("catalog: no table %q")

var log = logrus.WithField("component", "catalog")

// StorageManager is a named-table registry. It is not a global
// singleton in this module — callers construct and pass around the
// instance(s) they need, which is friendlier to testing than the
// process-wide singleton the spec describes; a package-level default
// instance is provided via Default for callers who do want singleton
// behavior.
type StorageManager struct {
	mu     sync.RWMutex
	tables map[string]*table.Table
}

// New constructs an empty StorageManager.
func New() *StorageManager {
	return &StorageManager{tables: make(map[string]*table.Table)}
}

// Default is a process-wide StorageManager instance, for callers that
// want the spec's singleton-catalog behavior directly.
var Default = New()

// AddTable registers t under name, failing ErrDuplicate if name is
// already registered.
func (sm *StorageManager) AddTable(name string, t *table.Table) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if _, ok := sm.tables[name]; ok {
		return ErrDuplicate.New(name)
	}
	t.SetName(name)
	sm.tables[name] = t
	log.WithField("table", name).Debug("added table")
	return nil
}

// DropTable removes name from the registry, failing ErrNoSuchTable if
// absent (not idempotent — see SPEC_FULL.md §5).
func (sm *StorageManager) DropTable(name string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if _, ok := sm.tables[name]; !ok {
		return ErrNoSuchTable.New(name)
	}
	delete(sm.tables, name)
	log.WithField("table", name).Debug("dropped table")
	return nil
}

// GetTable returns the table registered under name, failing
// ErrNoSuchTable if absent.
func (sm *StorageManager) GetTable(name string) (*table.Table, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	t, ok := sm.tables[name]
	if !ok {
		return nil, ErrNoSuchTable.New(name)
	}
	return t, nil
}

// HasTable reports whether name is registered.
func (sm *StorageManager) HasTable(name string) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	_, ok := sm.tables[name]
	return ok
}

// TableNames returns the registered table names, sorted for
// deterministic iteration.
func (sm *StorageManager) TableNames() []string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	names := make([]string, 0, len(sm.tables))
	for name := range sm.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset clears the registry.
func (sm *StorageManager) Reset() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.tables = make(map[string]*table.Table)
	log.Debug("reset catalog")
}
