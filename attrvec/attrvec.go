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

// Package attrvec implements the width-selected integer vector
// backing a dictionary segment's value-ids (spec §4.1). Width is
// chosen by the dictionary's cardinality, not by the column's value
// count — the source exercise this spec derives from famously gets
// this wrong (picks width from log2 of the value count); this package
// fixes that, see SelectWidth.
package attrvec

import (
	"fmt"

	goerrors "gopkg.in/src-d/go-errors.v1"

	"github.com/dyod/columnstore/rowid"
)

// ErrOutOfBounds is returned by Get/Set for an index outside [0, Size()).
var ErrOutOfBounds = goerrors.NewKind("attribute vector: index %d out of bounds (size %d)")

// Width is the number of bytes each stored value-id occupies.
type Width uint8

const (
	Width1 Width = 1
	Width2 Width = 2
	Width4 Width = 4
)

// SelectWidth picks the narrowest width that can index a dictionary
// of dictSize unique entries: 1 byte for <= width1Max entries, 2 bytes
// for <= width2Max, 4 bytes otherwise (spec §4.1, corrected per spec
// §9). width1Max/width2Max are the engine's configured breakpoints
// (config.EngineConfig.AttributeVectorWidth1Max/2Max); callers with no
// configuration to consult pass its defaults, 1<<8 and 1<<16.
func SelectWidth(dictSize, width1Max, width2Max int) Width {
	switch {
	case dictSize <= width1Max:
		return Width1
	case dictSize <= width2Max:
		return Width2
	default:
		return Width4
	}
}

// AttributeVector is a fixed-size, width-packed vector of ValueIds.
type AttributeVector struct {
	width Width
	size  int
	u8    []uint8
	u16   []uint16
	u32   []uint32
}

// New constructs an AttributeVector of the given width, pre-allocated
// to hold size elements, all initialized to 0.
func New(width Width, size int) *AttributeVector {
	av := &AttributeVector{width: width, size: size}
	switch width {
	case Width1:
		av.u8 = make([]uint8, size)
	case Width2:
		av.u16 = make([]uint16, size)
	case Width4:
		av.u32 = make([]uint32, size)
	default:
		panic(fmt.Sprintf("attrvec: invalid width %d", width))
	}
	return av
}

// Width reports the number of bytes per stored element.
func (av *AttributeVector) Width() Width { return av.width }

// Size reports the number of elements.
func (av *AttributeVector) Size() int { return av.size }

// Get returns the ValueId stored at i, widened to the 32-bit
// representation regardless of storage width.
func (av *AttributeVector) Get(i int) (rowid.ValueId, error) {
	if i < 0 || i >= av.size {
		return 0, ErrOutOfBounds.New(i, av.size)
	}
	switch av.width {
	case Width1:
		return rowid.ValueId(av.u8[i]), nil
	case Width2:
		return rowid.ValueId(av.u16[i]), nil
	default:
		return rowid.ValueId(av.u32[i]), nil
	}
}

// Set stores v at i, truncated to the vector's width.
func (av *AttributeVector) Set(i int, v rowid.ValueId) error {
	if i < 0 || i >= av.size {
		return ErrOutOfBounds.New(i, av.size)
	}
	switch av.width {
	case Width1:
		av.u8[i] = uint8(v)
	case Width2:
		av.u16[i] = uint16(v)
	default:
		av.u32[i] = uint32(v)
	}
	return nil
}

// EstimateMemoryUsage returns size * width bytes.
func (av *AttributeVector) EstimateMemoryUsage() uint64 {
	return uint64(av.size) * uint64(av.width)
}
