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

import "fmt"

// DataType is the payload encoding of a record, taken from the low byte of
// its Tag.
type DataType byte

// The six payload encodings defined by the GDSII stream format. REAL4 is
// defined by the format but never emitted; readers must reject it.
const (
	NoData   DataType = 0x00
	BitArray DataType = 0x01
	Int2     DataType = 0x02
	Int4     DataType = 0x03
	Real4    DataType = 0x04
	Real8    DataType = 0x05
	ASCII    DataType = 0x06
)

func (dt DataType) String() string {
	switch dt {
	case NoData:
		return "NODATA"
	case BitArray:
		return "BITARRAY"
	case Int2:
		return "INT2"
	case Int4:
		return "INT4"
	case Real4:
		return "REAL4"
	case Real8:
		return "REAL8"
	case ASCII:
		return "ASCII"
	default:
		return fmt.Sprintf("DataType(0x%02x)", byte(dt))
	}
}

// RecordKind identifies the semantic meaning of a record, taken from the
// high byte of its Tag.
type RecordKind byte

// The record kinds of the GDSII stream grammar. Kinds marked "unused" are
// part of the format's tag table but never produced by this library and
// rejected where encountered in a grammar position that requires a
// specific other tag.
const (
	HEADER       RecordKind = 0x00
	BGNLIB       RecordKind = 0x01
	LIBNAME      RecordKind = 0x02
	UNITS        RecordKind = 0x03
	ENDLIB       RecordKind = 0x04
	BGNSTR       RecordKind = 0x05
	STRNAME      RecordKind = 0x06
	ENDSTR       RecordKind = 0x07
	BOUNDARY     RecordKind = 0x08
	PATH         RecordKind = 0x09
	SREF         RecordKind = 0x0A
	AREF         RecordKind = 0x0B
	TEXT         RecordKind = 0x0C
	LAYER        RecordKind = 0x0D
	DATATYPE     RecordKind = 0x0E
	WIDTH        RecordKind = 0x0F
	XY           RecordKind = 0x10
	ENDEL        RecordKind = 0x11
	SNAME        RecordKind = 0x12
	COLROW       RecordKind = 0x13
	TEXTNODE     RecordKind = 0x14 // unused
	NODE         RecordKind = 0x15
	TEXTTYPE     RecordKind = 0x16
	PRESENTATION RecordKind = 0x17
	SPACING      RecordKind = 0x18 // unused
	STRING       RecordKind = 0x19
	STRANS       RecordKind = 0x1A
	MAG          RecordKind = 0x1B
	ANGLE        RecordKind = 0x1C
	UINTEGER     RecordKind = 0x1D // unused
	USTRING      RecordKind = 0x1E // unused
	REFLIBS      RecordKind = 0x1F
	FONTS        RecordKind = 0x20
	PATHTYPE     RecordKind = 0x21
	GENERATIONS  RecordKind = 0x22
	ATTRTABLE    RecordKind = 0x23
	STYPTABLE    RecordKind = 0x24 // unused
	STRTYPE      RecordKind = 0x25 // unused
	ELFLAGS      RecordKind = 0x26
	ELKEY        RecordKind = 0x27 // unused
	LINKTYPE     RecordKind = 0x28 // unused
	LINKKEYS     RecordKind = 0x29 // unused
	NODETYPE     RecordKind = 0x2A
	PROPATTR     RecordKind = 0x2B
	PROPVALUE    RecordKind = 0x2C
	BOX          RecordKind = 0x2D
	BOXTYPE      RecordKind = 0x2E
	PLEX         RecordKind = 0x2F
	BGNEXTN      RecordKind = 0x30
	ENDEXTN      RecordKind = 0x31
	TAPENUM      RecordKind = 0x32 // unused
	TAPECODE     RecordKind = 0x33 // unused
	STRCLASS     RecordKind = 0x34
	RESERVED     RecordKind = 0x35 // unused
	FORMAT       RecordKind = 0x36
	MASK         RecordKind = 0x37
	ENDMASKS     RecordKind = 0x38
	LIBDIRSIZE   RecordKind = 0x39
	SRFNAME      RecordKind = 0x3A
	LIBSECUR     RecordKind = 0x3B
)

// Tag is the 16-bit (RecordKind, DataType) pair that prefixes every record
// payload.
type Tag uint16

// MakeTag combines a record kind and a data type into a Tag.
func MakeTag(kind RecordKind, dt DataType) Tag {
	return Tag(uint16(kind)<<8 | uint16(dt))
}

// Kind returns the record kind (high byte) of the tag.
func (t Tag) Kind() RecordKind { return RecordKind(t >> 8) }

// DataType returns the payload encoding (low byte) of the tag.
func (t Tag) DataType() DataType { return DataType(t & 0xff) }

func (t Tag) String() string {
	if info, ok := tagTable[t.Kind()]; ok && info.dataType == t.DataType() {
		return info.name
	}
	return fmt.Sprintf("Tag(kind=0x%02x,type=0x%02x)", byte(t.Kind()), byte(t.DataType()))
}

type tagInfo struct {
	name     string
	dataType DataType
}

// tagTable is the compile-time tag -> (name, expected data type) table,
// indexed by record kind. It is used for diagnostics: Tag.String reports
// the table name only when the tag's low byte matches the expected type.
var tagTable = map[RecordKind]tagInfo{
	HEADER:       {"HEADER", Int2},
	BGNLIB:       {"BGNLIB", Int2},
	LIBNAME:      {"LIBNAME", ASCII},
	UNITS:        {"UNITS", Real8},
	ENDLIB:       {"ENDLIB", NoData},
	BGNSTR:       {"BGNSTR", Int2},
	STRNAME:      {"STRNAME", ASCII},
	ENDSTR:       {"ENDSTR", NoData},
	BOUNDARY:     {"BOUNDARY", NoData},
	PATH:         {"PATH", NoData},
	SREF:         {"SREF", NoData},
	AREF:         {"AREF", NoData},
	TEXT:         {"TEXT", NoData},
	LAYER:        {"LAYER", Int2},
	DATATYPE:     {"DATATYPE", Int2},
	WIDTH:        {"WIDTH", Int4},
	XY:           {"XY", Int4},
	ENDEL:        {"ENDEL", NoData},
	SNAME:        {"SNAME", ASCII},
	COLROW:       {"COLROW", Int2},
	TEXTNODE:     {"TEXTNODE", NoData},
	NODE:         {"NODE", NoData},
	TEXTTYPE:     {"TEXTTYPE", Int2},
	PRESENTATION: {"PRESENTATION", BitArray},
	SPACING:      {"SPACING", NoData},
	STRING:       {"STRING", ASCII},
	STRANS:       {"STRANS", BitArray},
	MAG:          {"MAG", Real8},
	ANGLE:        {"ANGLE", Real8},
	UINTEGER:     {"UINTEGER", Int4},
	USTRING:      {"USTRING", ASCII},
	REFLIBS:      {"REFLIBS", ASCII},
	FONTS:        {"FONTS", ASCII},
	PATHTYPE:     {"PATHTYPE", Int2},
	GENERATIONS:  {"GENERATIONS", Int2},
	ATTRTABLE:    {"ATTRTABLE", ASCII},
	STYPTABLE:    {"STYPTABLE", ASCII},
	STRTYPE:      {"STRTYPE", Int2},
	ELFLAGS:      {"ELFLAGS", BitArray},
	ELKEY:        {"ELKEY", Int4},
	LINKTYPE:     {"LINKTYPE", Int2},
	LINKKEYS:     {"LINKKEYS", Int4},
	NODETYPE:     {"NODETYPE", Int2},
	PROPATTR:     {"PROPATTR", Int2},
	PROPVALUE:    {"PROPVALUE", ASCII},
	BOX:          {"BOX", NoData},
	BOXTYPE:      {"BOXTYPE", Int2},
	PLEX:         {"PLEX", Int4},
	BGNEXTN:      {"BGNEXTN", Int4},
	ENDEXTN:      {"ENDEXTN", Int4},
	TAPENUM:      {"TAPENUM", Int2},
	TAPECODE:     {"TAPECODE", Int2},
	STRCLASS:     {"STRCLASS", BitArray},
	RESERVED:     {"RESERVED", BitArray},
	FORMAT:       {"FORMAT", Int2},
	MASK:         {"MASK", ASCII},
	ENDMASKS:     {"ENDMASKS", NoData},
	LIBDIRSIZE:   {"LIBDIRSIZE", Int2},
	SRFNAME:      {"SRFNAME", ASCII},
	LIBSECUR:     {"LIBSECUR", Int2},
}

// knownDataTypes is the set of data types the format defines, REAL4
// included. The framer decodes only supportedDataTypes, which omits REAL4,
// so a REAL4 record is rejected with UnsupportedTagType.
var knownDataTypes = map[DataType]bool{
	NoData:   true,
	BitArray: true,
	Int2:     true,
	Int4:     true,
	Real4:    true,
	Real8:    true,
	ASCII:    true,
}
