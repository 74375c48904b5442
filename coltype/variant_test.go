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

package coltype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKindRoundTrip(t *testing.T) {
	cases := []struct {
		tag  string
		kind Kind
	}{
		{"int", Int32},
		{"long", Int64},
		{"float", Float32},
		{"double", Float64},
		{"string", String},
	}
	for _, c := range cases {
		t.Run(c.tag, func(t *testing.T) {
			k, err := ParseKind(c.tag)
			require.NoError(t, err)
			assert.Equal(t, c.kind, k)
			assert.Equal(t, c.tag, k.String())
		})
	}
}

func TestParseKindUnknown(t *testing.T) {
	_, err := ParseKind("blob")
	assert.True(t, ErrUnknownType.Is(err))
}

func TestToFromVariant(t *testing.T) {
	v := ToVariant(int32(42))
	assert.Equal(t, Int32, v.Kind())
	got, err := FromVariant[int32](v)
	require.NoError(t, err)
	assert.Equal(t, int32(42), got)

	_, err = FromVariant[int64](v)
	assert.True(t, ErrTypeMismatch.Is(err))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Int32, KindOf[int32]())
	assert.Equal(t, Int64, KindOf[int64]())
	assert.Equal(t, Float32, KindOf[float32]())
	assert.Equal(t, Float64, KindOf[float64]())
	assert.Equal(t, String, KindOf[string]())
}

func TestEqual(t *testing.T) {
	eq, err := Equal(NewInt32(4), NewInt32(4))
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = Equal(NewInt32(4), NewInt32(6))
	require.NoError(t, err)
	assert.False(t, eq)

	_, err = Equal(NewInt32(4), NewString("4"))
	assert.True(t, ErrTypeMismatch.Is(err))
}

func TestCompareNumeric(t *testing.T) {
	c, err := Compare(NewInt64(4), NewInt64(6))
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	c, err = Compare(NewFloat64(6), NewFloat64(4))
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	c, err = Compare(NewFloat64(4), NewFloat64(4))
	require.NoError(t, err)
	assert.Equal(t, 0, c)
}

func TestCompareString(t *testing.T) {
	c, err := Compare(NewString("Bill"), NewString("Steve"))
	require.NoError(t, err)
	assert.Equal(t, -1, c)
}

func TestCompareMismatch(t *testing.T) {
	_, err := Compare(NewInt32(1), NewFloat32(1))
	assert.True(t, ErrTypeMismatch.Is(err))
}
