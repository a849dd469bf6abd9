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
	"encoding/binary"
	"io"
)

// WriteRecord encodes and writes a single record to w.
func (f *Framer) WriteRecord(w io.Writer, r Record) error {
	payload, err := encodePayload(r.Tag.DataType(), r.Payload)
	if err != nil {
		return err
	}

	totalSize := 4 + len(payload)
	if totalSize > 0xFFFF {
		return ErrOversize
	}

	var header [4]byte
	binary.BigEndian.PutUint16(header[0:2], uint16(totalSize))
	binary.BigEndian.PutUint16(header[2:4], uint16(r.Tag))

	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	if len(payload) > 0 {
		if _, err := w.Write(payload); err != nil {
			return err
		}
	}
	return nil
}

// writeRecord is a package-internal convenience for codec code that does
// not need a *Framer receiver of its own (the framer holds no mutable
// write-side state, so a free function avoids threading a Framer value
// through every codec call for the sake of symmetry with ReadRecord).
func writeRecord(w io.Writer, r Record) error {
	f := &Framer{}
	return f.WriteRecord(w, r)
}

// pointsToInt32 flattens points into an XY record's INT4 payload.
func pointsToInt32(points []Point) []int32 {
	out := make([]int32, 0, 2*len(points))
	for _, p := range points {
		out = append(out, p.X, p.Y)
	}
	return out
}
