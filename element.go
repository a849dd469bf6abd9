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

// Element is implemented by the seven GDSII layout primitives: *Boundary,
// *Path, *SRef, *ARef, *Text, *Node, and *Box. The set is closed; type
// switches over Element are exhaustive for these seven types (spec §9,
// "Element polymorphism -> tagged variant").
type Element interface {
	elementKind() string
}

// Boundary is a closed polygon on a layer.
type Boundary struct {
	ElFlags    *uint16
	Plex       *int32
	Layer      int16
	DataType   int16
	XY         []Point // closed polygon; the duplicated closing point is not stored
	Properties []Property
}

func (*Boundary) elementKind() string { return "Boundary" }

// Path is an open or capped polyline on a layer.
type Path struct {
	ElFlags    *uint16
	Plex       *int32
	Layer      int16
	DataType   int16
	PathType   *int16
	Width      *int32
	BgnExtn    *int32
	EndExtn    *int32
	XY         []Point
	Properties []Property
}

func (*Path) elementKind() string { return "Path" }

// SRef is a single reference to another structure, optionally transformed.
type SRef struct {
	ElFlags    *uint16
	Plex       *int32
	StructName []byte
	STrans     STrans
	XY         Point
	Properties []Property
}

func (*SRef) elementKind() string { return "SRef" }

// ARef is a rectangular array reference to another structure.
type ARef struct {
	ElFlags    *uint16
	Plex       *int32
	StructName []byte
	STrans     STrans
	ColRow     ColRow
	Origin     Point // array origin
	ColEnd     Point // origin + Cols * column pitch
	RowEnd     Point // origin + Rows * row pitch
	Properties []Property
}

func (*ARef) elementKind() string { return "ARef" }

// Text places a string at a point on a layer, optionally transformed.
type Text struct {
	ElFlags      *uint16
	Plex         *int32
	Layer        int16
	TextType     int16
	Presentation *uint16
	PathType     *int16
	Width        *int32
	STrans       STrans
	XY           Point
	String       []byte
	Properties   []Property
}

func (*Text) elementKind() string { return "Text" }

// Node is a set of one or more points identifying an electrical node.
type Node struct {
	ElFlags  *uint16
	Plex     *int32
	Layer    int16
	NodeType int16
	XY       []Point // at least one point; no Properties per spec
}

func (*Node) elementKind() string { return "Node" }

// Box is a closed five-point (degenerate to four-corner) shape on a layer.
type Box struct {
	ElFlags    *uint16
	Plex       *int32
	Layer      int16
	BoxType    int16
	XY         []Point // closed box; the duplicated closing point is not stored
	Properties []Property
}

func (*Box) elementKind() string { return "Box" }

// openingTag returns the NODATA opening tag for each element kind.
func openingTag(kind RecordKind) Tag { return MakeTag(kind, NoData) }

var endElTag = MakeTag(ENDEL, NoData)

// readOptUint16 reads an optional bitfield-shaped field (ELFLAGS,
// PRESENTATION) into a *uint16.
func readOptUint16(it *iterator, tag Tag) (*uint16, error) {
	v, ok, err := readOptionalScalar(it, tag, scalarBits)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

// readOptInt16 reads an optional INT2-shaped scalar field (PATHTYPE) into a
// *int16.
func readOptInt16(it *iterator, tag Tag) (*int16, error) {
	v, ok, err := readOptionalScalar(it, tag, scalarInt16)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

// readOptInt32 reads an optional INT4-shaped scalar field (PLEX, WIDTH,
// BGNEXTN, ENDEXTN) into a *int32.
func readOptInt32(it *iterator, tag Tag) (*int32, error) {
	v, ok, err := readOptionalScalar(it, tag, scalarInt32)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

func writeOptUint16(w io.Writer, tag Tag, v *uint16) error {
	if v == nil {
		return nil
	}
	return writeRecord(w, Record{Tag: tag, Payload: *v})
}

func writeOptInt16(w io.Writer, tag Tag, v *int16) error {
	if v == nil {
		return nil
	}
	return writeRecord(w, Record{Tag: tag, Payload: []int16{*v}})
}

func writeOptInt32(w io.Writer, tag Tag, v *int32) error {
	if v == nil {
		return nil
	}
	return writeRecord(w, Record{Tag: tag, Payload: []int32{*v}})
}

func readMandatoryInt16(it *iterator, tag Tag, element string) (int16, error) {
	return readMandatoryScalar(it, tag, element, scalarInt16)
}

func writeMandatoryInt16(w io.Writer, tag Tag, v int16) error {
	return writeRecord(w, Record{Tag: tag, Payload: []int16{v}})
}

// closePolygon validates that pts is a closed polygon of at least
// minPoints (pre-closure), then strips the duplicated closing point.
func closePolygon(element string, pts []Point, minPoints int) ([]Point, error) {
	if len(pts) < minPoints {
		return nil, errBadShape(element, "too few points for a closed shape")
	}
	first, last := pts[0], pts[len(pts)-1]
	if first != last {
		return nil, errBadShape(element, "first and last XY point must match for a closed shape")
	}
	return pts[:len(pts)-1], nil
}

// reopenPolygon re-appends the closing point dropped by closePolygon.
func reopenPolygon(pts []Point) []Point {
	out := make([]Point, len(pts)+1)
	copy(out, pts)
	out[len(pts)] = pts[0]
	return out
}

func tagELFLAGS() Tag { return MakeTag(ELFLAGS, BitArray) }
func tagPLEX() Tag    { return MakeTag(PLEX, Int4) }

// readElement reads one element in full, from its opening tag through
// ENDEL, dispatching on the opening tag.
func readElement(it *iterator) (Element, error) {
	r, err := it.Current()
	if err != nil {
		return nil, err
	}

	switch r.Tag {
	case openingTag(BOUNDARY):
		return readBoundary(it)
	case openingTag(PATH):
		return readPath(it)
	case openingTag(SREF):
		return readSRef(it)
	case openingTag(AREF):
		return readARef(it)
	case openingTag(TEXT):
		return readText(it)
	case openingTag(NODE):
		return readNode(it)
	case openingTag(BOX):
		return readBox(it)
	default:
		return nil, errUnexpectedTag(r.Tag, "")
	}
}

func requireEndEl(it *iterator, element string) error {
	r, err := it.Current()
	if err != nil {
		return err
	}
	if err := checkTag(r, endElTag, element); err != nil {
		return err
	}
	_, err = it.Advance()
	return err
}

func readBoundary(it *iterator) (*Boundary, error) {
	const element = "Boundary"
	if _, err := it.Advance(); err != nil { // past BOUNDARY
		return nil, err
	}
	b := &Boundary{}
	var err error
	if b.ElFlags, err = readOptUint16(it, tagELFLAGS()); err != nil {
		return nil, err
	}
	if b.Plex, err = readOptInt32(it, tagPLEX()); err != nil {
		return nil, err
	}
	if b.Layer, err = readMandatoryInt16(it, MakeTag(LAYER, Int2), element); err != nil {
		return nil, err
	}
	if b.DataType, err = readMandatoryInt16(it, MakeTag(DATATYPE, Int2), element); err != nil {
		return nil, err
	}
	pts, err := readXY(it, element)
	if err != nil {
		return nil, err
	}
	if b.XY, err = closePolygon(element, pts, 4); err != nil {
		return nil, err
	}
	if b.Properties, err = readProperties(it, element); err != nil {
		return nil, err
	}
	if err := requireEndEl(it, element); err != nil {
		return nil, err
	}
	return b, nil
}

func writeBoundary(w io.Writer, b *Boundary) error {
	if err := writeRecord(w, Record{Tag: openingTag(BOUNDARY)}); err != nil {
		return err
	}
	if err := writeOptUint16(w, tagELFLAGS(), b.ElFlags); err != nil {
		return err
	}
	if err := writeOptInt32(w, tagPLEX(), b.Plex); err != nil {
		return err
	}
	if err := writeMandatoryInt16(w, MakeTag(LAYER, Int2), b.Layer); err != nil {
		return err
	}
	if err := writeMandatoryInt16(w, MakeTag(DATATYPE, Int2), b.DataType); err != nil {
		return err
	}
	if err := writeXY(w, reopenPolygon(b.XY)); err != nil {
		return err
	}
	if err := writeProperties(w, b.Properties); err != nil {
		return err
	}
	return writeRecord(w, Record{Tag: endElTag})
}

func readPath(it *iterator) (*Path, error) {
	const element = "Path"
	if _, err := it.Advance(); err != nil {
		return nil, err
	}
	p := &Path{}
	var err error
	if p.ElFlags, err = readOptUint16(it, tagELFLAGS()); err != nil {
		return nil, err
	}
	if p.Plex, err = readOptInt32(it, tagPLEX()); err != nil {
		return nil, err
	}
	if p.Layer, err = readMandatoryInt16(it, MakeTag(LAYER, Int2), element); err != nil {
		return nil, err
	}
	if p.DataType, err = readMandatoryInt16(it, MakeTag(DATATYPE, Int2), element); err != nil {
		return nil, err
	}
	if p.PathType, err = readOptInt16(it, MakeTag(PATHTYPE, Int2)); err != nil {
		return nil, err
	}
	if p.Width, err = readOptInt32(it, MakeTag(WIDTH, Int4)); err != nil {
		return nil, err
	}
	if p.BgnExtn, err = readOptInt32(it, MakeTag(BGNEXTN, Int4)); err != nil {
		return nil, err
	}
	if p.EndExtn, err = readOptInt32(it, MakeTag(ENDEXTN, Int4)); err != nil {
		return nil, err
	}
	if p.XY, err = readXY(it, element); err != nil {
		return nil, err
	}
	if len(p.XY) < 2 {
		return nil, errBadShape(element, "path must have at least 2 points")
	}
	if p.Properties, err = readProperties(it, element); err != nil {
		return nil, err
	}
	if err := requireEndEl(it, element); err != nil {
		return nil, err
	}
	return p, nil
}

func writePath(w io.Writer, p *Path) error {
	if err := writeRecord(w, Record{Tag: openingTag(PATH)}); err != nil {
		return err
	}
	if err := writeOptUint16(w, tagELFLAGS(), p.ElFlags); err != nil {
		return err
	}
	if err := writeOptInt32(w, tagPLEX(), p.Plex); err != nil {
		return err
	}
	if err := writeMandatoryInt16(w, MakeTag(LAYER, Int2), p.Layer); err != nil {
		return err
	}
	if err := writeMandatoryInt16(w, MakeTag(DATATYPE, Int2), p.DataType); err != nil {
		return err
	}
	if err := writeOptInt16(w, MakeTag(PATHTYPE, Int2), p.PathType); err != nil {
		return err
	}
	if err := writeOptInt32(w, MakeTag(WIDTH, Int4), p.Width); err != nil {
		return err
	}
	if err := writeOptInt32(w, MakeTag(BGNEXTN, Int4), p.BgnExtn); err != nil {
		return err
	}
	if err := writeOptInt32(w, MakeTag(ENDEXTN, Int4), p.EndExtn); err != nil {
		return err
	}
	if err := writeXY(w, p.XY); err != nil {
		return err
	}
	if err := writeProperties(w, p.Properties); err != nil {
		return err
	}
	return writeRecord(w, Record{Tag: endElTag})
}

func readSRef(it *iterator) (*SRef, error) {
	const element = "SRef"
	if _, err := it.Advance(); err != nil {
		return nil, err
	}
	s := &SRef{}
	var err error
	if s.ElFlags, err = readOptUint16(it, tagELFLAGS()); err != nil {
		return nil, err
	}
	if s.Plex, err = readOptInt32(it, tagPLEX()); err != nil {
		return nil, err
	}
	if s.StructName, err = readString(it, MakeTag(SNAME, ASCII), element); err != nil {
		return nil, err
	}
	if s.STrans, err = readSTrans(it); err != nil {
		return nil, err
	}
	pts, err := readXY(it, element)
	if err != nil {
		return nil, err
	}
	if len(pts) != 1 {
		return nil, errBadShape(element, "SRef XY must be exactly 1 point")
	}
	s.XY = pts[0]
	if s.Properties, err = readProperties(it, element); err != nil {
		return nil, err
	}
	if err := requireEndEl(it, element); err != nil {
		return nil, err
	}
	return s, nil
}

func writeSRef(w io.Writer, s *SRef) error {
	if err := writeRecord(w, Record{Tag: openingTag(SREF)}); err != nil {
		return err
	}
	if err := writeOptUint16(w, tagELFLAGS(), s.ElFlags); err != nil {
		return err
	}
	if err := writeOptInt32(w, tagPLEX(), s.Plex); err != nil {
		return err
	}
	if err := writeRecord(w, Record{Tag: MakeTag(SNAME, ASCII), Payload: s.StructName}); err != nil {
		return err
	}
	if err := writeSTrans(w, s.STrans); err != nil {
		return err
	}
	if err := writeXY(w, []Point{s.XY}); err != nil {
		return err
	}
	if err := writeProperties(w, s.Properties); err != nil {
		return err
	}
	return writeRecord(w, Record{Tag: endElTag})
}

func readARef(it *iterator) (*ARef, error) {
	const element = "ARef"
	if _, err := it.Advance(); err != nil {
		return nil, err
	}
	a := &ARef{}
	var err error
	if a.ElFlags, err = readOptUint16(it, tagELFLAGS()); err != nil {
		return nil, err
	}
	if a.Plex, err = readOptInt32(it, tagPLEX()); err != nil {
		return nil, err
	}
	if a.StructName, err = readString(it, MakeTag(SNAME, ASCII), element); err != nil {
		return nil, err
	}
	if a.STrans, err = readSTrans(it); err != nil {
		return nil, err
	}
	if a.ColRow, err = readColRow(it, element); err != nil {
		return nil, err
	}
	pts, err := readXY(it, element)
	if err != nil {
		return nil, err
	}
	if len(pts) != 3 {
		return nil, errBadShape(element, "ARef XY must be exactly 3 points")
	}
	a.Origin, a.ColEnd, a.RowEnd = pts[0], pts[1], pts[2]
	if a.Properties, err = readProperties(it, element); err != nil {
		return nil, err
	}
	if err := requireEndEl(it, element); err != nil {
		return nil, err
	}
	return a, nil
}

func writeARef(w io.Writer, a *ARef) error {
	if err := writeRecord(w, Record{Tag: openingTag(AREF)}); err != nil {
		return err
	}
	if err := writeOptUint16(w, tagELFLAGS(), a.ElFlags); err != nil {
		return err
	}
	if err := writeOptInt32(w, tagPLEX(), a.Plex); err != nil {
		return err
	}
	if err := writeRecord(w, Record{Tag: MakeTag(SNAME, ASCII), Payload: a.StructName}); err != nil {
		return err
	}
	if err := writeSTrans(w, a.STrans); err != nil {
		return err
	}
	if err := writeColRow(w, a.ColRow); err != nil {
		return err
	}
	if err := writeXY(w, []Point{a.Origin, a.ColEnd, a.RowEnd}); err != nil {
		return err
	}
	if err := writeProperties(w, a.Properties); err != nil {
		return err
	}
	return writeRecord(w, Record{Tag: endElTag})
}

func readText(it *iterator) (*Text, error) {
	const element = "Text"
	if _, err := it.Advance(); err != nil {
		return nil, err
	}
	t := &Text{}
	var err error
	if t.ElFlags, err = readOptUint16(it, tagELFLAGS()); err != nil {
		return nil, err
	}
	if t.Plex, err = readOptInt32(it, tagPLEX()); err != nil {
		return nil, err
	}
	if t.Layer, err = readMandatoryInt16(it, MakeTag(LAYER, Int2), element); err != nil {
		return nil, err
	}
	if t.TextType, err = readMandatoryInt16(it, MakeTag(TEXTTYPE, Int2), element); err != nil {
		return nil, err
	}
	if t.Presentation, err = readOptUint16(it, MakeTag(PRESENTATION, BitArray)); err != nil {
		return nil, err
	}
	if t.PathType, err = readOptInt16(it, MakeTag(PATHTYPE, Int2)); err != nil {
		return nil, err
	}
	if t.Width, err = readOptInt32(it, MakeTag(WIDTH, Int4)); err != nil {
		return nil, err
	}
	// Canonical field order: STRANS bitfield, then MAG, then ANGLE (spec §9
	// flags one source variant's Text reader as getting this order wrong).
	if t.STrans, err = readSTrans(it); err != nil {
		return nil, err
	}
	pts, err := readXY(it, element)
	if err != nil {
		return nil, err
	}
	if len(pts) != 1 {
		return nil, errBadShape(element, "Text XY must be exactly 1 point")
	}
	t.XY = pts[0]
	if t.String, err = readString(it, MakeTag(STRING, ASCII), element); err != nil {
		return nil, err
	}
	if t.Properties, err = readProperties(it, element); err != nil {
		return nil, err
	}
	if err := requireEndEl(it, element); err != nil {
		return nil, err
	}
	return t, nil
}

func writeText(w io.Writer, t *Text) error {
	if err := writeRecord(w, Record{Tag: openingTag(TEXT)}); err != nil {
		return err
	}
	if err := writeOptUint16(w, tagELFLAGS(), t.ElFlags); err != nil {
		return err
	}
	if err := writeOptInt32(w, tagPLEX(), t.Plex); err != nil {
		return err
	}
	if err := writeMandatoryInt16(w, MakeTag(LAYER, Int2), t.Layer); err != nil {
		return err
	}
	if err := writeMandatoryInt16(w, MakeTag(TEXTTYPE, Int2), t.TextType); err != nil {
		return err
	}
	if err := writeOptUint16(w, MakeTag(PRESENTATION, BitArray), t.Presentation); err != nil {
		return err
	}
	if err := writeOptInt16(w, MakeTag(PATHTYPE, Int2), t.PathType); err != nil {
		return err
	}
	if err := writeOptInt32(w, MakeTag(WIDTH, Int4), t.Width); err != nil {
		return err
	}
	if err := writeSTrans(w, t.STrans); err != nil {
		return err
	}
	if err := writeXY(w, []Point{t.XY}); err != nil {
		return err
	}
	if err := writeRecord(w, Record{Tag: MakeTag(STRING, ASCII), Payload: t.String}); err != nil {
		return err
	}
	if err := writeProperties(w, t.Properties); err != nil {
		return err
	}
	return writeRecord(w, Record{Tag: endElTag})
}

func readNode(it *iterator) (*Node, error) {
	const element = "Node"
	if _, err := it.Advance(); err != nil {
		return nil, err
	}
	n := &Node{}
	var err error
	if n.ElFlags, err = readOptUint16(it, tagELFLAGS()); err != nil {
		return nil, err
	}
	if n.Plex, err = readOptInt32(it, tagPLEX()); err != nil {
		return nil, err
	}
	if n.Layer, err = readMandatoryInt16(it, MakeTag(LAYER, Int2), element); err != nil {
		return nil, err
	}
	if n.NodeType, err = readMandatoryInt16(it, MakeTag(NODETYPE, Int2), element); err != nil {
		return nil, err
	}
	if n.XY, err = readXY(it, element); err != nil {
		return nil, err
	}
	if len(n.XY) < 1 {
		return nil, errBadShape(element, "node must have at least 1 point")
	}
	if err := requireEndEl(it, element); err != nil {
		return nil, err
	}
	return n, nil
}

func writeNode(w io.Writer, n *Node) error {
	if err := writeRecord(w, Record{Tag: openingTag(NODE)}); err != nil {
		return err
	}
	if err := writeOptUint16(w, tagELFLAGS(), n.ElFlags); err != nil {
		return err
	}
	if err := writeOptInt32(w, tagPLEX(), n.Plex); err != nil {
		return err
	}
	if err := writeMandatoryInt16(w, MakeTag(LAYER, Int2), n.Layer); err != nil {
		return err
	}
	if err := writeMandatoryInt16(w, MakeTag(NODETYPE, Int2), n.NodeType); err != nil {
		return err
	}
	if err := writeXY(w, n.XY); err != nil {
		return err
	}
	return writeRecord(w, Record{Tag: endElTag})
}

func readBox(it *iterator) (*Box, error) {
	const element = "Box"
	if _, err := it.Advance(); err != nil {
		return nil, err
	}
	b := &Box{}
	var err error
	if b.ElFlags, err = readOptUint16(it, tagELFLAGS()); err != nil {
		return nil, err
	}
	if b.Plex, err = readOptInt32(it, tagPLEX()); err != nil {
		return nil, err
	}
	if b.Layer, err = readMandatoryInt16(it, MakeTag(LAYER, Int2), element); err != nil {
		return nil, err
	}
	if b.BoxType, err = readMandatoryInt16(it, MakeTag(BOXTYPE, Int2), element); err != nil {
		return nil, err
	}
	pts, err := readXY(it, element)
	if err != nil {
		return nil, err
	}
	if len(pts) != 5 {
		return nil, errBadShape(element, "Box XY must be exactly 5 points")
	}
	if b.XY, err = closePolygon(element, pts, 5); err != nil {
		return nil, err
	}
	if b.Properties, err = readProperties(it, element); err != nil {
		return nil, err
	}
	if err := requireEndEl(it, element); err != nil {
		return nil, err
	}
	return b, nil
}

func writeBox(w io.Writer, b *Box) error {
	if err := writeRecord(w, Record{Tag: openingTag(BOX)}); err != nil {
		return err
	}
	if err := writeOptUint16(w, tagELFLAGS(), b.ElFlags); err != nil {
		return err
	}
	if err := writeOptInt32(w, tagPLEX(), b.Plex); err != nil {
		return err
	}
	if err := writeMandatoryInt16(w, MakeTag(LAYER, Int2), b.Layer); err != nil {
		return err
	}
	if err := writeMandatoryInt16(w, MakeTag(BOXTYPE, Int2), b.BoxType); err != nil {
		return err
	}
	if err := writeXY(w, reopenPolygon(b.XY)); err != nil {
		return err
	}
	if err := writeProperties(w, b.Properties); err != nil {
		return err
	}
	return writeRecord(w, Record{Tag: endElTag})
}

// writeElement dispatches to the matching write function for el's concrete
// type.
func writeElement(w io.Writer, el Element) error {
	switch e := el.(type) {
	case *Boundary:
		return writeBoundary(w, e)
	case *Path:
		return writePath(w, e)
	case *SRef:
		return writeSRef(w, e)
	case *ARef:
		return writeARef(w, e)
	case *Text:
		return writeText(w, e)
	case *Node:
		return writeNode(w, e)
	case *Box:
		return writeBox(w, e)
	default:
		panic("gdsii: unknown element type")
	}
}
