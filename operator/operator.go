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

// Package operator implements the operator execution framework
// (spec §4.8): a DAG node with 0-2 inputs, at-most-once execution,
// and lazy output retrieval, plus the concrete leaves GetTable,
// TableWrapper, TableScan, and Print.
package operator

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	goerrors "gopkg.in/src-d/go-errors.v1"

	"github.com/dyod/columnstore/table"
)

// ErrAlreadyExecuted is returned by Execute on any operator's second call.
var ErrAlreadyExecuted = goerrors.NewKind("operator: already executed")

// ErrInputNotExecuted is returned when an operator's Execute runs
// before an upstream input has produced output — a construction-order
// bug in the caller's DAG, not a data error.
var ErrInputNotExecuted = goerrors.NewKind("operator: input has not been executed yet")

// Operator is the capability set every DAG node implements: execute
// once, then retrieve output lazily.
type Operator interface {
	// Execute runs the operator. A second call on the same operator
	// always fails ErrAlreadyExecuted, whether or not the first call
	// succeeded.
	Execute(ctx context.Context) error
	// Output returns the operator's result table and true once
	// Execute has completed successfully; before that it returns
	// (nil, false) — callers must treat the bool as "is this output
	// present", never synthesize a default/empty table for it.
	Output() (*table.Table, bool)
}

// base is embedded by every concrete operator; it owns the
// at-most-once execution state and the per-node trace id used in log
// correlation across a multi-operator execution.
type base struct {
	mu       sync.Mutex
	executed bool
	output   *table.Table

	traceID uuid.UUID
	log     *logrus.Entry
}

func newBase(label string) base {
	id := uuid.New()
	return base{
		traceID: id,
		log:     logrus.WithFields(logrus.Fields{"operator": label, "trace_id": id.String()}),
	}
}

// run claims the at-most-once execution slot, invokes fn, and stores
// its result as the operator's output on success. The slot is claimed
// before fn runs, so a concurrent second Execute call always observes
// ErrAlreadyExecuted regardless of how long fn takes.
func (b *base) run(ctx context.Context, fn func(ctx context.Context) (*table.Table, error)) error {
	b.mu.Lock()
	if b.executed {
		b.mu.Unlock()
		return ErrAlreadyExecuted.New()
	}
	b.executed = true
	b.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	b.log.Debug("executing")
	out, err := fn(ctx)
	if err != nil {
		b.log.WithError(err).Debug("execute failed")
		return err
	}

	b.mu.Lock()
	b.output = out
	b.mu.Unlock()
	b.log.WithField("rows", out.RowCount()).Debug("executed")
	return nil
}

// Output implements Operator.
func (b *base) Output() (*table.Table, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.output, b.output != nil
}

// outputOf fetches in's output, failing ErrInputNotExecuted if in has
// not produced one yet.
func outputOf(in Operator) (*table.Table, error) {
	out, ok := in.Output()
	if !ok {
		return nil, ErrInputNotExecuted.New()
	}
	return out, nil
}
