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

func TestEncodeReal8Vectors(t *testing.T) {
	cases := []struct {
		x    float64
		want uint64
	}{
		{1.0, 0x4110000000000000},
		{-2.0, 0xC120000000000000},
		{0.0, 0x0000000000000000},
	}
	for _, c := range cases {
		got, err := encodeReal8(c.x)
		if err != nil {
			t.Fatalf("encodeReal8(%v): %v", c.x, err)
		}
		if got != c.want {
			t.Errorf("encodeReal8(%v) = 0x%016x, want 0x%016x", c.x, got, c.want)
		}
	}
}

func TestDecodeReal8Vectors(t *testing.T) {
	cases := []struct {
		bits uint64
		want float64
	}{
		{0x4110000000000000, 1.0},
		{0xC120000000000000, -2.0},
		{0x0000000000000000, 0.0},
	}
	for _, c := range cases {
		got := decodeReal8(c.bits)
		if got != c.want {
			t.Errorf("decodeReal8(0x%016x) = %v, want %v", c.bits, got, c.want)
		}
	}
}

func TestReal8RoundTrip(t *testing.T) {
	values := []float64{0, 1, -1, 0.5, -0.5, 1e-3, 1e-9, 1000, -1000, 3.14159265, 1.0 / 3.0}
	for _, x := range values {
		bits, err := encodeReal8(x)
		if err != nil {
			t.Fatalf("encodeReal8(%v): %v", x, err)
		}
		got := decodeReal8(bits)
		diff := got - x
		if diff < 0 {
			diff = -diff
		}
		tol := 1e-12 * (1 + abs(x))
		if diff > tol {
			t.Errorf("round trip %v -> 0x%016x -> %v, diff %v exceeds tolerance %v", x, bits, got, diff, tol)
		}
	}
}

func TestEncodeReal8Overflow(t *testing.T) {
	huge := 1e300
	if _, err := encodeReal8(huge); err != ErrRealOverflow {
		t.Errorf("encodeReal8(%v) error = %v, want ErrRealOverflow", huge, err)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
