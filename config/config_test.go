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

package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, 100000, cfg.TargetChunkSize)
	assert.Equal(t, 256, cfg.AttributeVectorWidth1Max)
	assert.Equal(t, 65536, cfg.AttributeVectorWidth2Max)
}

func TestLoadOverridesDefaults(t *testing.T) {
	doc := `target_chunk_size = 500`
	cfg, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.TargetChunkSize)
	// Fields the document doesn't mention keep their defaults.
	assert.Equal(t, 256, cfg.AttributeVectorWidth1Max)
}

func TestLoadRejectsMalformedToml(t *testing.T) {
	_, err := Load(strings.NewReader("not = valid = toml"))
	assert.Error(t, err)
}
