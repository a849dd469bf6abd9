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

func TestNewLibraryDefaults(t *testing.T) {
	lib := NewLibrary([]byte("LIB"), Units{Logical: 1e-3, Physical: 1e-9})
	assert.Equal(t, int16(5), lib.Version)
	assert.Equal(t, "LIB", string(lib.Name))
	assert.Equal(t, lib.ModTime, lib.AccessTime)
	assert.False(t, lib.HasSecurity)
	assert.False(t, lib.Format.Set)
	assert.Empty(t, lib.Structures)
}

func TestLibraryRoundTripMinimal(t *testing.T) {
	lib := &Library{
		Version:    5,
		ModTime:    Timestamp{2000, 1, 1, 0, 0, 0},
		AccessTime: Timestamp{2000, 1, 1, 0, 0, 0},
		Name:       []byte("LIB"),
		Units:      Units{Logical: 1e-3, Physical: 1e-9},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, lib))

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, lib.Version, got.Version)
	assert.Equal(t, lib.Name, got.Name)
	assert.Equal(t, lib.Units, got.Units)
	assert.Empty(t, got.Structures)
}

func TestLibraryRoundTripWithOptionalHeaderFields(t *testing.T) {
	dirSize := int16(7)
	generations := int16(3)
	lib := &Library{
		Version:     5,
		ModTime:     Timestamp{2000, 1, 1, 0, 0, 0},
		AccessTime:  Timestamp{2000, 1, 1, 0, 0, 0},
		Name:        []byte("LIB"),
		Units:       Units{Logical: 1e-3, Physical: 1e-9},
		LibDirSize:  &dirSize,
		SRFName:     []byte("SRF"),
		Security:    []ACL{{GID: 1, UID: 2, Access: 3}},
		HasSecurity: true,
		RefLibs:     []byte("REF1REF2"),
		Fonts:       []byte("FONT1"),
		AttrTable:   []byte("attrs.txt"),
		Generations: &generations,
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, lib))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.NotNil(t, got.LibDirSize)
	assert.Equal(t, dirSize, *got.LibDirSize)
	assert.Equal(t, lib.SRFName, got.SRFName)
	assert.True(t, got.HasSecurity)
	assert.Equal(t, lib.Security, got.Security)
	assert.Equal(t, lib.RefLibs, got.RefLibs)
	assert.Equal(t, lib.Fonts, got.Fonts)
	assert.Equal(t, lib.AttrTable, got.AttrTable)
	require.NotNil(t, got.Generations)
	assert.Equal(t, generations, *got.Generations)
}

func TestLibraryRoundTripWithStructures(t *testing.T) {
	lib := &Library{
		Version:    5,
		ModTime:    Timestamp{2000, 1, 1, 0, 0, 0},
		AccessTime: Timestamp{2000, 1, 1, 0, 0, 0},
		Name:       []byte("LIB"),
		Units:      Units{Logical: 1e-3, Physical: 1e-9},
		Structures: []*Structure{
			{
				ModTime:    Timestamp{2000, 1, 1, 0, 0, 0},
				AccessTime: Timestamp{2000, 1, 1, 0, 0, 0},
				Name:       []byte("TOP"),
				Elements: []Element{
					&Boundary{Layer: 1, XY: []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}},
				},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, lib))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, got.Structures, 1)
	assert.Equal(t, "TOP", string(got.Structures[0].Name))
	require.Len(t, got.Structures[0].Elements, 1)
}

func TestReadRejectsMissingHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRecord(&buf, Record{Tag: MakeTag(LIBNAME, ASCII), Payload: []byte("LIB")}))

	_, err := Read(&buf)
	require.Error(t, err)
}

func TestReadStopsAtFirstMalformedRecord(t *testing.T) {
	lib := &Library{
		Version:    5,
		ModTime:    Timestamp{2000, 1, 1, 0, 0, 0},
		AccessTime: Timestamp{2000, 1, 1, 0, 0, 0},
		Name:       []byte("LIB"),
		Units:      Units{Logical: 1e-3, Physical: 1e-9},
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, lib))
	full := buf.Bytes()

	// Truncate mid-stream: no recovery past the first short read.
	truncated := full[:len(full)-3]
	_, err := Read(bytes.NewReader(truncated))
	require.Error(t, err)
}
