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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRecordAsPoints(t *testing.T) {
	r := Record{Tag: MakeTag(XY, Int4), Payload: []int32{0, 1, 2, 3, 4, 5}}
	got, err := r.AsPoints()
	if err != nil {
		t.Fatalf("AsPoints: %v", err)
	}
	want := []Point{{0, 1}, {2, 3}, {4, 5}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AsPoints mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordAsPointsOddLength(t *testing.T) {
	r := Record{Tag: MakeTag(XY, Int4), Payload: []int32{0, 1, 2}}
	if _, err := r.AsPoints(); err == nil {
		t.Fatal("AsPoints: expected error for odd-length payload")
	}
}

func TestRecordAsTimes(t *testing.T) {
	r := Record{Tag: MakeTag(BGNLIB, Int2), Payload: []int16{100, 1, 1, 1, 2, 3, 110, 8, 14, 21, 10, 35}}
	got, err := r.AsTimes()
	if err != nil {
		t.Fatalf("AsTimes: %v", err)
	}
	want := Times{
		ModTime:    Timestamp{Year: 2000, Month: 1, Day: 1, Hour: 1, Minute: 2, Second: 3},
		AccessTime: Timestamp{Year: 2010, Month: 8, Day: 14, Hour: 21, Minute: 10, Second: 35},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AsTimes mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeTimesRoundTrip(t *testing.T) {
	want := Times{
		ModTime:    Timestamp{Year: 2000, Month: 1, Day: 1, Hour: 0, Minute: 0, Second: 0},
		AccessTime: Timestamp{Year: 2000, Month: 1, Day: 1, Hour: 0, Minute: 0, Second: 0},
	}
	ints := encodeTimes(want)
	r := Record{Tag: MakeTag(BGNLIB, Int2), Payload: ints}
	got, err := r.AsTimes()
	if err != nil {
		t.Fatalf("AsTimes: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordAsACLs(t *testing.T) {
	r := Record{Tag: MakeTag(LIBSECUR, Int2), Payload: []int16{1, 2, 3, 4, 5, 6}}
	got, err := r.AsACLs()
	if err != nil {
		t.Fatalf("AsACLs: %v", err)
	}
	want := []ACL{{GID: 1, UID: 2, Access: 3}, {GID: 4, UID: 5, Access: 6}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AsACLs mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordAsACLsBadLength(t *testing.T) {
	r := Record{Tag: MakeTag(LIBSECUR, Int2), Payload: []int16{1, 2}}
	if _, err := r.AsACLs(); err == nil {
		t.Fatal("AsACLs: expected error for non-multiple-of-3 payload")
	}
}

func TestDecodeASCIIStripsTrailingNUL(t *testing.T) {
	got, err := decodeASCII([]byte("AB\x00"))
	if err != nil {
		t.Fatalf("decodeASCII: %v", err)
	}
	if string(got.([]byte)) != "AB" {
		t.Errorf("decodeASCII = %q, want %q", got, "AB")
	}
}

func TestDecodeASCIINoTrailingNUL(t *testing.T) {
	got, err := decodeASCII([]byte("ABC"))
	if err != nil {
		t.Fatalf("decodeASCII: %v", err)
	}
	if string(got.([]byte)) != "ABC" {
		t.Errorf("decodeASCII = %q, want %q", got, "ABC")
	}
}

func TestEncodePayloadASCIIPadsToEven(t *testing.T) {
	out, err := encodePayload(ASCII, []byte("ABC"))
	if err != nil {
		t.Fatalf("encodePayload: %v", err)
	}
	want := []byte("ABC\x00")
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("encodePayload mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeInt2RejectsOddLength(t *testing.T) {
	if _, err := decodeInt2([]byte{0x00}); err == nil {
		t.Fatal("decodeInt2: expected error for odd-length payload")
	}
}

func TestDecodeInt4RejectsWrongLength(t *testing.T) {
	if _, err := decodeInt4([]byte{0x00, 0x01, 0x02}); err == nil {
		t.Fatal("decodeInt4: expected error for length not a multiple of 4")
	}
}

func TestDecodeNoDataRejectsNonemptyPayload(t *testing.T) {
	if _, err := decodeNoData([]byte{0x00}); err == nil {
		t.Fatal("decodeNoData: expected error for nonempty payload")
	}
}
