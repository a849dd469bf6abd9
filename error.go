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
	"errors"
	"fmt"
)

// ErrShortRead indicates that the input stream ended before a complete
// record (or record payload) could be read.
var ErrShortRead = errors.New("gdsii: short read")

// ErrOversize indicates that a record's encoded size would exceed the
// 16-bit total-size field of the wire format.
var ErrOversize = errors.New("gdsii: record too large to encode")

// ErrRealOverflow indicates that a float64 value is outside the range
// representable by the GDSII real8 format.
var ErrRealOverflow = errors.New("gdsii: real value overflows GDSII real8 range")

// Kind identifies which clause of the error taxonomy in spec §7 a
// *FormatError instance belongs to.
type Kind int

// The error kinds of the format taxonomy. ShortRead, Oversize and
// RealOverflow are reported as plain sentinel errors above; the remaining
// kinds always carry tag/context and use FormatError.
const (
	BadLength Kind = iota + 1
	UnsupportedTagType
	DataSize
	BadShape
	MissingRecord
	UnexpectedTag
)

func (k Kind) String() string {
	switch k {
	case BadLength:
		return "bad record length"
	case UnsupportedTagType:
		return "unsupported tag data type"
	case DataSize:
		return "payload size inconsistent with data type"
	case BadShape:
		return "payload shape invalid for field"
	case MissingRecord:
		return "required record missing"
	case UnexpectedTag:
		return "unexpected tag"
	default:
		return "unknown error"
	}
}

// FormatError reports a violation of the GDSII grammar or wire format. It
// always carries enough context to identify the offending record: the
// observed tag (when known) and, for element-level violations, the element
// kind under which the violation occurred.
type FormatError struct {
	Kind    Kind
	Tag     Tag    // the observed tag, if any; zero value HEADER/NODATA means "not applicable"
	Element string // the element kind in progress, e.g. "Boundary"; empty if not applicable
	Detail  string // human-readable detail, e.g. "length 3 not even"
	Err     error  // wrapped cause, if any
}

func (e *FormatError) Error() string {
	msg := "gdsii: " + e.Kind.String()
	if e.Element != "" {
		msg += " in " + e.Element
	}
	if e.Tag != 0 || e.Kind == MissingRecord || e.Kind == UnexpectedTag {
		msg += fmt.Sprintf(" (tag %s)", e.Tag)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func errBadLength(detail string) error {
	return &FormatError{Kind: BadLength, Detail: detail}
}

func errUnsupportedTagType(tag Tag) error {
	return &FormatError{Kind: UnsupportedTagType, Tag: tag}
}

func errDataSize(tag Tag, detail string) error {
	return &FormatError{Kind: DataSize, Tag: tag, Detail: detail}
}

func errBadShape(element, detail string) error {
	return &FormatError{Kind: BadShape, Element: element, Detail: detail}
}

func errMissingRecord(tag Tag, element string) error {
	return &FormatError{Kind: MissingRecord, Tag: tag, Element: element}
}

func errUnexpectedTag(tag Tag, element string) error {
	return &FormatError{Kind: UnexpectedTag, Tag: tag, Element: element}
}
