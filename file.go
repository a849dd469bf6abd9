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
	"os"

	"github.com/google/renameio"
)

// ReadFile opens path, transparently gunzipping it if it is gzip-compressed
// (see OpenMaybeCompressed), and parses it as a Library.
func ReadFile(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := OpenMaybeCompressed(f)
	if err != nil {
		return nil, err
	}
	return Read(r)
}

// WriteFile serialises lib and writes it to path as a single atomic
// operation: the stream is built in memory, then renamed into place via
// renameio so that readers never observe a partially-written file.
func WriteFile(path string, lib *Library) error {
	var buf bytes.Buffer
	if err := Write(&buf, lib); err != nil {
		return err
	}
	return renameio.WriteFile(path, buf.Bytes(), 0644)
}
