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

// Structure is a named cell containing an ordered list of layout elements.
// A Structure is owned by exactly one Library; it holds no back-reference
// to its owner.
type Structure struct {
	ModTime    Timestamp
	AccessTime Timestamp
	Name       []byte
	Class      *uint16 // optional STRCLASS bitfield
	Elements   []Element
}

// NewStructure returns an empty structure with the given name and the
// current time as both its modification and access timestamps.
func NewStructure(name []byte) *Structure {
	now := currentTimestamp()
	return &Structure{
		ModTime:    now,
		AccessTime: now,
		Name:       name,
	}
}

var (
	tagBGNSTR   = MakeTag(BGNSTR, Int2)
	tagSTRNAME  = MakeTag(STRNAME, ASCII)
	tagSTRCLASS = MakeTag(STRCLASS, BitArray)
	tagENDSTR   = MakeTag(ENDSTR, NoData)
)

// readStructure reads one structure, starting at BGNSTR and ending after
// ENDSTR.
func readStructure(it *iterator) (*Structure, error) {
	const element = "Structure"
	times, err := readTimestamps(it, tagBGNSTR, element)
	if err != nil {
		return nil, err
	}
	s := &Structure{ModTime: times.ModTime, AccessTime: times.AccessTime}

	if s.Name, err = readString(it, tagSTRNAME, element); err != nil {
		return nil, err
	}
	if s.Class, err = readOptUint16(it, tagSTRCLASS); err != nil {
		return nil, err
	}

	for {
		r, err := it.Current()
		if err != nil {
			return nil, err
		}
		if r.Tag == tagENDSTR {
			if _, err := it.Advance(); err != nil {
				return nil, err
			}
			break
		}
		if r.Tag.DataType() != NoData || !isElementOpeningTag(r.Tag) {
			return nil, errUnexpectedTag(r.Tag, element)
		}
		el, err := readElement(it)
		if err != nil {
			return nil, err
		}
		s.Elements = append(s.Elements, el)
	}

	return s, nil
}

func isElementOpeningTag(t Tag) bool {
	switch t {
	case openingTag(BOUNDARY), openingTag(PATH), openingTag(SREF),
		openingTag(AREF), openingTag(TEXT), openingTag(NODE), openingTag(BOX):
		return true
	default:
		return false
	}
}

// writeStructure writes one structure, from BGNSTR through ENDSTR.
func writeStructure(w io.Writer, s *Structure) error {
	times := Times{ModTime: s.ModTime, AccessTime: s.AccessTime}
	if err := writeTimestamps(w, tagBGNSTR, times); err != nil {
		return err
	}
	if err := writeRecord(w, Record{Tag: tagSTRNAME, Payload: s.Name}); err != nil {
		return err
	}
	if err := writeOptUint16(w, tagSTRCLASS, s.Class); err != nil {
		return err
	}
	for _, el := range s.Elements {
		if err := writeElement(w, el); err != nil {
			return err
		}
	}
	return writeRecord(w, Record{Tag: tagENDSTR})
}
