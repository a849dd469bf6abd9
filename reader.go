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
	"errors"
	"io"
)

// supportedDataTypes are the payload encodings this library can decode.
// REAL4 is a defined GDSII data type but is never emitted by conforming
// writers; encountering it is treated the same as an unrecognised low
// byte.
var supportedDataTypes = map[DataType]bool{
	NoData:   true,
	BitArray: true,
	Int2:     true,
	Int4:     true,
	Real8:    true,
	ASCII:    true,
}

// Framer frames a GDSII byte stream into records. It is the lowest layer of
// the codec: it does no grammar validation beyond the wire-format
// invariants of spec §4.2.
type Framer struct {
	r io.Reader
}

// NewFramer wraps r for record-at-a-time reading.
func NewFramer(r io.Reader) *Framer {
	return &Framer{r: r}
}

// ReadRecord reads and decodes the next record from the stream.
func (f *Framer) ReadRecord() (Record, error) {
	var header [4]byte
	if _, err := io.ReadFull(f.r, header[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Record{}, ErrShortRead
		}
		return Record{}, err
	}

	totalSize := binary.BigEndian.Uint16(header[0:2])
	tag := Tag(binary.BigEndian.Uint16(header[2:4]))

	if totalSize < 4 || totalSize%2 != 0 {
		return Record{}, errBadLength("record total size must be even and >= 4")
	}

	payloadLen := int(totalSize) - 4
	payload := make([]byte, payloadLen)
	if payloadLen > 0 {
		if _, err := io.ReadFull(f.r, payload); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return Record{}, ErrShortRead
			}
			return Record{}, err
		}
	}

	dt := tag.DataType()
	if !supportedDataTypes[dt] {
		return Record{}, errUnsupportedTagType(tag)
	}

	value, err := decodePayload(dt, payload)
	if err != nil {
		if fe, ok := err.(*FormatError); ok {
			fe.Tag = tag
			return Record{}, fe
		}
		return Record{}, err
	}

	return Record{Tag: tag, Payload: value}, nil
}
