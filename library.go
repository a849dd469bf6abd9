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

// Package gdsii reads and writes files in the GDSII Stream Format, a
// legacy binary interchange format for integrated-circuit layout.
//
// A stream is read in one pass into a [Library], an in-memory tree of
// [Structure]s each containing an ordered list of [Element]s (Boundary,
// Path, SRef, ARef, Text, Node, Box). The same tree can be written back to
// a byte stream bit-for-bit, provided Boundary and Box closing points are
// re-emitted as they were canonicalised away on read.
//
//	lib, err := gdsii.Read(r)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, s := range lib.Structures {
//		fmt.Println(string(s.Name), len(s.Elements))
//	}
//
//	err = gdsii.Write(w, lib)
//
// This package does no geometric computation, boolean operations, or
// rendering; it only frames, validates, and round-trips the wire format.
package gdsii

import (
	"io"
	"time"
)

// Library is the root of a GDSII object tree: a file version, a set of
// header attributes, and an ordered list of Structures. A Library owns its
// Structures; there are no back-references and nothing is shared between
// parses.
type Library struct {
	Version    int16
	ModTime    Timestamp
	AccessTime Timestamp
	Name       []byte
	Units      Units

	// Optional header attributes, all unset (zero value / nil / false) by
	// default.
	LibDirSize  *int16
	SRFName     []byte
	Security    []ACL
	HasSecurity bool
	RefLibs     []byte
	Fonts       []byte
	AttrTable   []byte
	Generations *int16
	Format      Format

	Structures []*Structure
}

// NewLibrary returns an empty library with the given name and units, and
// the current time as both its modification and access timestamps.
func NewLibrary(name []byte, units Units) *Library {
	now := currentTimestamp()
	return &Library{
		Version:    5,
		ModTime:    now,
		AccessTime: now,
		Name:       name,
		Units:      units,
	}
}

func currentTimestamp() Timestamp {
	t := time.Now().UTC()
	return Timestamp{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

var (
	tagHEADER      = MakeTag(HEADER, Int2)
	tagBGNLIB      = MakeTag(BGNLIB, Int2)
	tagLIBDIRSIZE  = MakeTag(LIBDIRSIZE, Int2)
	tagSRFNAME     = MakeTag(SRFNAME, ASCII)
	tagLIBNAME     = MakeTag(LIBNAME, ASCII)
	tagREFLIBS     = MakeTag(REFLIBS, ASCII)
	tagFONTS       = MakeTag(FONTS, ASCII)
	tagATTRTABLE   = MakeTag(ATTRTABLE, ASCII)
	tagGENERATIONS = MakeTag(GENERATIONS, Int2)
	tagENDLIB      = MakeTag(ENDLIB, NoData)
)

// Read parses a complete GDSII stream into a Library. The first grammar
// violation aborts the parse and returns an error describing it; no
// partial tree is returned on failure.
func Read(r io.Reader) (*Library, error) {
	const element = "Library"
	it := newIterator(r)

	version, err := readMandatoryScalar(it, tagHEADER, element, scalarInt16)
	if err != nil {
		return nil, err
	}
	times, err := readTimestamps(it, tagBGNLIB, element)
	if err != nil {
		return nil, err
	}

	lib := &Library{Version: version, ModTime: times.ModTime, AccessTime: times.AccessTime}

	if lib.LibDirSize, err = readOptInt16(it, tagLIBDIRSIZE); err != nil {
		return nil, err
	}
	if lib.SRFName, err = readOptionalWholeASCII(it, tagSRFNAME); err != nil {
		return nil, err
	}
	if acls, present, err := readACL(it); err != nil {
		return nil, err
	} else {
		lib.Security, lib.HasSecurity = acls, present
	}
	if lib.Name, err = readString(it, tagLIBNAME, element); err != nil {
		return nil, err
	}
	if lib.RefLibs, err = readOptionalWholeASCII(it, tagREFLIBS); err != nil {
		return nil, err
	}
	if lib.Fonts, err = readOptionalWholeASCII(it, tagFONTS); err != nil {
		return nil, err
	}
	if lib.AttrTable, err = readOptionalWholeASCII(it, tagATTRTABLE); err != nil {
		return nil, err
	}
	if lib.Generations, err = readOptInt16(it, tagGENERATIONS); err != nil {
		return nil, err
	}
	if lib.Format, err = readFormat(it); err != nil {
		return nil, err
	}
	if lib.Units, err = readUnits(it); err != nil {
		return nil, err
	}

	for {
		r, err := it.Current()
		if err != nil {
			return nil, err
		}
		if r.Tag == tagENDLIB {
			break
		}
		if r.Tag != tagBGNSTR {
			return nil, errUnexpectedTag(r.Tag, element)
		}
		s, err := readStructure(it)
		if err != nil {
			return nil, err
		}
		lib.Structures = append(lib.Structures, s)
	}

	return lib, nil
}

// readOptionalWholeASCII reads an optional whole-payload ASCII field
// (REFLIBS, FONTS, ATTRTABLE, SRFNAME): present or absent, stored verbatim.
func readOptionalWholeASCII(it *iterator, tag Tag) ([]byte, error) {
	v, ok, err := readOptionalScalar(it, tag, scalarString)
	if err != nil || !ok {
		return nil, err
	}
	return v, nil
}

// Write serialises lib to w as a complete GDSII stream, in the exact
// record order declared by the library header schema (spec §4.7) followed
// by each structure in order and a final ENDLIB.
func Write(w io.Writer, lib *Library) error {
	if err := writeMandatoryInt16(w, tagHEADER, lib.Version); err != nil {
		return err
	}
	times := Times{ModTime: lib.ModTime, AccessTime: lib.AccessTime}
	if err := writeTimestamps(w, tagBGNLIB, times); err != nil {
		return err
	}
	if err := writeOptInt16(w, tagLIBDIRSIZE, lib.LibDirSize); err != nil {
		return err
	}
	if lib.SRFName != nil {
		if err := writeRecord(w, Record{Tag: tagSRFNAME, Payload: lib.SRFName}); err != nil {
			return err
		}
	}
	if err := writeACL(w, lib.Security, lib.HasSecurity); err != nil {
		return err
	}
	if err := writeRecord(w, Record{Tag: tagLIBNAME, Payload: lib.Name}); err != nil {
		return err
	}
	if lib.RefLibs != nil {
		if err := writeRecord(w, Record{Tag: tagREFLIBS, Payload: lib.RefLibs}); err != nil {
			return err
		}
	}
	if lib.Fonts != nil {
		if err := writeRecord(w, Record{Tag: tagFONTS, Payload: lib.Fonts}); err != nil {
			return err
		}
	}
	if lib.AttrTable != nil {
		if err := writeRecord(w, Record{Tag: tagATTRTABLE, Payload: lib.AttrTable}); err != nil {
			return err
		}
	}
	if err := writeOptInt16(w, tagGENERATIONS, lib.Generations); err != nil {
		return err
	}
	if err := writeFormat(w, lib.Format); err != nil {
		return err
	}
	if err := writeUnits(w, lib.Units); err != nil {
		return err
	}

	for _, s := range lib.Structures {
		if err := writeStructure(w, s); err != nil {
			return err
		}
	}

	return writeRecord(w, Record{Tag: tagENDLIB})
}
