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

// Record is a single decoded (Tag, Payload) unit of the GDSII stream. The
// concrete Go type stored in Payload depends on Tag.DataType():
//
//	NoData    -> nil
//	BitArray  -> uint16
//	Int2      -> []int16
//	Int4      -> []int32
//	Real8     -> []float64
//	ASCII     -> []byte (NUL already stripped)
type Record struct {
	Tag     Tag
	Payload any
}

// decodeNoData validates an empty payload.
func decodeNoData(payload []byte) (any, error) {
	if len(payload) != 0 {
		return nil, errDataSize(0, "NODATA payload must be empty")
	}
	return nil, nil
}

// decodeBitArray decodes a 2-byte big-endian bitfield.
func decodeBitArray(payload []byte) (any, error) {
	if len(payload) != 2 {
		return nil, errDataSize(0, "BITARRAY payload must be exactly 2 bytes")
	}
	return uint16(payload[0])<<8 | uint16(payload[1]), nil
}

// decodeInt2 decodes a sequence of big-endian signed 16-bit integers.
func decodeInt2(payload []byte) (any, error) {
	if len(payload) == 0 || len(payload)%2 != 0 {
		return nil, errDataSize(0, "INT2 payload must be a nonzero multiple of 2 bytes")
	}
	out := make([]int16, len(payload)/2)
	for i := range out {
		out[i] = int16(uint16(payload[2*i])<<8 | uint16(payload[2*i+1]))
	}
	return out, nil
}

// decodeInt4 decodes a sequence of big-endian signed 32-bit integers.
func decodeInt4(payload []byte) (any, error) {
	if len(payload) == 0 || len(payload)%4 != 0 {
		return nil, errDataSize(0, "INT4 payload must be a nonzero multiple of 4 bytes")
	}
	out := make([]int32, len(payload)/4)
	for i := range out {
		b := payload[4*i : 4*i+4]
		out[i] = int32(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
	}
	return out, nil
}

// decodeReal8Payload decodes a sequence of GDSII real8 values.
func decodeReal8Payload(payload []byte) (any, error) {
	if len(payload) == 0 || len(payload)%8 != 0 {
		return nil, errDataSize(0, "REAL8 payload must be a nonzero multiple of 8 bytes")
	}
	out := make([]float64, len(payload)/8)
	for i := range out {
		b := payload[8*i : 8*i+8]
		bits := uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
			uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7])
		out[i] = decodeReal8(bits)
	}
	return out, nil
}

// decodeASCII decodes a byte string, stripping a single trailing NUL used
// for even-length padding.
func decodeASCII(payload []byte) (any, error) {
	if len(payload) == 0 {
		return nil, errDataSize(0, "ASCII payload must be nonempty")
	}
	if payload[len(payload)-1] == 0x00 {
		payload = payload[:len(payload)-1]
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

// decodePayload dispatches to the primitive decoder for dt.
func decodePayload(dt DataType, payload []byte) (any, error) {
	switch dt {
	case NoData:
		return decodeNoData(payload)
	case BitArray:
		return decodeBitArray(payload)
	case Int2:
		return decodeInt2(payload)
	case Int4:
		return decodeInt4(payload)
	case Real8:
		return decodeReal8Payload(payload)
	case ASCII:
		return decodeASCII(payload)
	default:
		return nil, nil // caller already rejected Real4 / unknown types
	}
}

// encodePayload produces the wire bytes for a record's payload, given its
// decoded Go representation (as produced by decodePayload, or as built
// programmatically).
func encodePayload(dt DataType, value any) ([]byte, error) {
	switch dt {
	case NoData:
		return nil, nil

	case BitArray:
		v := value.(uint16)
		return []byte{byte(v >> 8), byte(v)}, nil

	case Int2:
		v := value.([]int16)
		out := make([]byte, 2*len(v))
		for i, x := range v {
			out[2*i] = byte(uint16(x) >> 8)
			out[2*i+1] = byte(uint16(x))
		}
		return out, nil

	case Int4:
		v := value.([]int32)
		out := make([]byte, 4*len(v))
		for i, x := range v {
			u := uint32(x)
			out[4*i] = byte(u >> 24)
			out[4*i+1] = byte(u >> 16)
			out[4*i+2] = byte(u >> 8)
			out[4*i+3] = byte(u)
		}
		return out, nil

	case Real8:
		v := value.([]float64)
		out := make([]byte, 8*len(v))
		for i, x := range v {
			bits, err := encodeReal8(x)
			if err != nil {
				return nil, err
			}
			for j := 0; j < 8; j++ {
				out[8*i+j] = byte(bits >> uint(56-8*j))
			}
		}
		return out, nil

	case ASCII:
		v := value.([]byte)
		out := make([]byte, len(v))
		copy(out, v)
		if len(out)%2 != 0 {
			out = append(out, 0x00)
		}
		return out, nil

	default:
		return nil, errUnsupportedTagType(0)
	}
}

// Point is a single (x, y) coordinate pair, in the database units declared
// by a Library's physical/logical units.
type Point struct {
	X, Y int32
}

// AsPoints interprets an INT4 payload as a sequence of (x, y) pairs.
func (r Record) AsPoints() ([]Point, error) {
	ints, ok := r.Payload.([]int32)
	if !ok {
		return nil, errBadShape("", "record is not an INT4 payload")
	}
	if len(ints) == 0 || len(ints)%2 != 0 {
		return nil, errBadShape("", "XY payload length must be a nonzero multiple of 2")
	}
	out := make([]Point, len(ints)/2)
	for i := range out {
		out[i] = Point{X: ints[2*i], Y: ints[2*i+1]}
	}
	return out, nil
}

// Times holds the pair of timestamps carried by BGNLIB and BGNSTR records:
// the library/structure modification time and last-access time. GDSII
// encodes these as naive (timezone-free) year/month/day/hour/minute/second
// sextuples, with the year offset by 1900.
type Times struct {
	ModTime, AccessTime Timestamp
}

// Timestamp is a naive UTC timestamp as stored in a GDSII stream: there is
// no timezone information and no validation of field ranges (per spec,
// rejecting e.g. month=0 is left to callers).
type Timestamp struct {
	Year, Month, Day, Hour, Minute, Second int
}

// AsTimes interprets an INT2 payload of exactly 12 values as a
// (mod_time, access_time) pair.
func (r Record) AsTimes() (Times, error) {
	ints, ok := r.Payload.([]int16)
	if !ok || len(ints) != 12 {
		return Times{}, errBadShape("", "timestamp payload must be exactly 12 INT2 values")
	}
	mk := func(v []int16) Timestamp {
		return Timestamp{
			Year:   int(v[0]) + 1900,
			Month:  int(v[1]),
			Day:    int(v[2]),
			Hour:   int(v[3]),
			Minute: int(v[4]),
			Second: int(v[5]),
		}
	}
	return Times{ModTime: mk(ints[0:6]), AccessTime: mk(ints[6:12])}, nil
}

// encodeTimes produces the 12-value INT2 payload for a Times pair.
func encodeTimes(t Times) []int16 {
	enc := func(ts Timestamp) []int16 {
		return []int16{
			int16(ts.Year - 1900),
			int16(ts.Month),
			int16(ts.Day),
			int16(ts.Hour),
			int16(ts.Minute),
			int16(ts.Second),
		}
	}
	out := make([]int16, 0, 12)
	out = append(out, enc(t.ModTime)...)
	out = append(out, enc(t.AccessTime)...)
	return out
}

// ACL is one (group ID, user ID, access) triple of a library security list.
type ACL struct {
	GID, UID, Access int16
}

// AsACLs interprets an INT2 payload as a sequence of ACL triples.
func (r Record) AsACLs() ([]ACL, error) {
	ints, ok := r.Payload.([]int16)
	if !ok {
		return nil, errBadShape("", "ACL record is not an INT2 payload")
	}
	if len(ints) == 0 || len(ints)%3 != 0 {
		return nil, errBadShape("", "ACL payload length must be a nonzero multiple of 3")
	}
	out := make([]ACL, len(ints)/3)
	for i := range out {
		out[i] = ACL{GID: ints[3*i], UID: ints[3*i+1], Access: ints[3*i+2]}
	}
	return out, nil
}

// checkTag returns MissingRecord if r's tag does not match want.
func checkTag(r Record, want Tag, element string) error {
	if r.Tag != want {
		return errMissingRecord(want, element)
	}
	return nil
}
