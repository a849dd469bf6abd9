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
	"bufio"
	"io"

	"github.com/klauspost/compress/gzip"
)

// gzipMagic is the two-byte gzip member header (RFC 1952 §2.3.1).
var gzipMagic = [2]byte{0x1f, 0x8b}

// OpenMaybeCompressed wraps r so that Read transparently gunzips the
// stream if it starts with a gzip member header, and otherwise returns a
// buffered reader that yields the bytes of r unchanged. Distributed .gds files are routinely shipped gzip-compressed
// (conventionally with a .gds.gz extension); callers can pass the result
// straight to Read without having to sniff the format themselves.
func OpenMaybeCompressed(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	peek, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if len(peek) == 2 && peek[0] == gzipMagic[0] && peek[1] == gzipMagic[1] {
		return gzip.NewReader(br)
	}
	return br, nil
}
