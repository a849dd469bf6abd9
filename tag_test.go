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

import "testing"

func TestMakeTagRoundTrip(t *testing.T) {
	tag := MakeTag(BOUNDARY, NoData)
	if tag.Kind() != BOUNDARY {
		t.Errorf("Kind() = %v, want %v", tag.Kind(), BOUNDARY)
	}
	if tag.DataType() != NoData {
		t.Errorf("DataType() = %v, want %v", tag.DataType(), NoData)
	}
}

func TestTagString(t *testing.T) {
	tag := MakeTag(HEADER, Int2)
	if got, want := tag.String(), "HEADER"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTagStringMismatchedDataType(t *testing.T) {
	// HEADER's table entry declares Int2; asking for it tagged as ASCII
	// must not silently report the name as if the type matched.
	tag := MakeTag(HEADER, ASCII)
	if got := tag.String(); got == "HEADER" {
		t.Errorf("String() = %q, want a fallback representation, not the table name", got)
	}
}

func TestDataTypeString(t *testing.T) {
	cases := map[DataType]string{
		NoData:   "NODATA",
		BitArray: "BITARRAY",
		Int2:     "INT2",
		Int4:     "INT4",
		Real4:    "REAL4",
		Real8:    "REAL8",
		ASCII:    "ASCII",
	}
	for dt, want := range cases {
		if got := dt.String(); got != want {
			t.Errorf("DataType(%d).String() = %q, want %q", dt, got, want)
		}
	}
}

func TestKnownDataTypesIncludesReal4(t *testing.T) {
	if !knownDataTypes[Real4] {
		t.Error("knownDataTypes[Real4] = false, want true (REAL4 is defined but never emitted)")
	}
	if supportedDataTypes[Real4] {
		t.Error("supportedDataTypes[Real4] = true, want false (readers must reject REAL4)")
	}
}
