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

// Package config holds EngineConfig, the core's typed, defaulted
// tuning knobs. It never touches disk itself: a caller may decode a
// TOML document through Load, but only from an io.Reader they already
// opened.
package config

import (
	"io"

	"github.com/BurntSushi/toml"
	"github.com/creasty/defaults"
)

// EngineConfig holds the tuning knobs a StorageManager deployment may
// want to override: the target chunk size of tables built with
// table.NewFromConfig, and the dictionary-cardinality thresholds
// attrvec.SelectWidth uses to pick a 1/2/4-byte attribute vector.
type EngineConfig struct {
	// TargetChunkSize is the row capacity table.NewFromConfig gives a
	// new table. table.New takes its chunk size as an argument and does
	// not read this field.
	TargetChunkSize int `toml:"target_chunk_size" default:"100000"`
	// AttributeVectorWidth1Max is the largest dictionary cardinality
	// still eligible for a 1-byte attribute vector: attrvec.SelectWidth
	// consumes this directly via table.Table.CompressChunk.
	AttributeVectorWidth1Max int `toml:"attribute_vector_width1_max" default:"256"`
	// AttributeVectorWidth2Max is the largest dictionary cardinality
	// still eligible for a 2-byte attribute vector; above it, 4 bytes.
	AttributeVectorWidth2Max int `toml:"attribute_vector_width2_max" default:"65536"`
}

// Default returns an EngineConfig populated entirely from its
// `default` struct tags.
func Default() (EngineConfig, error) {
	cfg := EngineConfig{}
	if err := defaults.Set(&cfg); err != nil {
		return EngineConfig{}, err
	}
	return cfg, nil
}

// Load starts from Default and overrides any field a TOML document
// read from r sets explicitly. r is the caller's responsibility to
// open and close — this package never performs file I/O itself.
func Load(r io.Reader) (EngineConfig, error) {
	cfg, err := Default()
	if err != nil {
		return EngineConfig{}, err
	}
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return EngineConfig{}, err
	}
	return cfg, nil
}
