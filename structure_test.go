// seehuhn.de/go/gdsii - a library for reading and writing GDSII stream files
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package gdsii

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStructureStampsTimestamps(t *testing.T) {
	s := NewStructure([]byte("CELLA"))
	assert.Equal(t, "CELLA", string(s.Name))
	assert.Equal(t, s.ModTime, s.AccessTime)
	assert.Nil(t, s.Class)
	assert.Empty(t, s.Elements)
}

func TestStructureRoundTrip(t *testing.T) {
	s := &Structure{
		ModTime:    Timestamp{2000, 1, 1, 0, 0, 0},
		AccessTime: Timestamp{2000, 1, 1, 0, 0, 0},
		Name:       []byte("TOP"),
		Elements: []Element{
			&Boundary{Layer: 1, XY: []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}},
			&Node{Layer: 2, XY: []Point{{5, 5}}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeStructure(&buf, s))

	got, err := readStructure(newIterator(&buf))
	require.NoError(t, err)
	assert.Equal(t, s.Name, got.Name)
	assert.Equal(t, s.ModTime, got.ModTime)
	require.Len(t, got.Elements, 2)
	_, ok := got.Elements[0].(*Boundary)
	assert.True(t, ok)
	_, ok = got.Elements[1].(*Node)
	assert.True(t, ok)
}

func TestStructureRoundTripWithClass(t *testing.T) {
	class := uint16(1)
	s := &Structure{
		ModTime:    Timestamp{2000, 1, 1, 0, 0, 0},
		AccessTime: Timestamp{2000, 1, 1, 0, 0, 0},
		Name:       []byte("TOP"),
		Class:      &class,
	}
	var buf bytes.Buffer
	require.NoError(t, writeStructure(&buf, s))

	got, err := readStructure(newIterator(&buf))
	require.NoError(t, err)
	require.NotNil(t, got.Class)
	assert.Equal(t, class, *got.Class)
}

func TestReadStructureRejectsUnknownRecordInElementLoop(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTimestamps(&buf, tagBGNSTR, Times{
		ModTime:    Timestamp{2000, 1, 1, 0, 0, 0},
		AccessTime: Timestamp{2000, 1, 1, 0, 0, 0},
	}))
	require.NoError(t, writeRecord(&buf, Record{Tag: tagSTRNAME, Payload: []byte("TOP")}))
	require.NoError(t, writeRecord(&buf, Record{Tag: MakeTag(UNITS, Real8), Payload: []float64{1, 1}}))

	_, err := readStructure(newIterator(&buf))
	require.Error(t, err)
}
