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

import "io"

// iterator is a one-record lookahead over a Framer. Grammar code reads
// Current() and conditionally consumes it by calling Advance(); this
// matches the LL(1) shape of the GDSII grammar, where every optional field
// is recognised by a single tag lookahead.
type iterator struct {
	f       *Framer
	current Record
	err     error
	started bool
}

// newIterator wraps r and primes the lookahead slot on first use.
func newIterator(r io.Reader) *iterator {
	return &iterator{f: NewFramer(r)}
}

// fill lazily fetches the first record on first access.
func (it *iterator) fill() {
	if it.started {
		return
	}
	it.started = true
	it.current, it.err = it.f.ReadRecord()
}

// Current returns the most recently advanced-to record, fetching the first
// record from the stream on the very first call.
func (it *iterator) Current() (Record, error) {
	it.fill()
	return it.current, it.err
}

// Advance moves to the next record and returns it.
func (it *iterator) Advance() (Record, error) {
	it.fill()
	if it.err != nil {
		return it.current, it.err
	}
	it.current, it.err = it.f.ReadRecord()
	return it.current, it.err
}
