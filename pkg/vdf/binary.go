// Package vdf reads and writes Valve's binary KeyValues format, the encoding
// Steam uses for shortcuts.vdf.
//
// A document is a sequence of typed fields. Each field is a type byte, a
// NUL-terminated key and a value whose layout depends on the type. Objects
// nest until an end marker. Field order is preserved in both directions so
// that rewriting a file Steam produced keeps every record intact.
package vdf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Binary VDF type markers.
const (
	TypeObject  byte = 0x00
	TypeString  byte = 0x01
	TypeInt32   byte = 0x02
	TypeFloat32 byte = 0x03
	TypeUint64  byte = 0x07
	TypeEnd     byte = 0x08
	TypeInt64   byte = 0x0A
	// Some writers close objects with 0x0B instead of 0x08.
	TypeEndAlt byte = 0x0B
)

var (
	// ErrMalformed is returned when the data is not valid binary VDF.
	ErrMalformed = errors.New("malformed binary vdf")
	// ErrUnsupportedType is returned when encoding a value with no VDF representation.
	ErrUnsupportedType = errors.New("unsupported vdf value type")
	// ErrEmbeddedNUL is returned when encoding a key or string containing a NUL byte.
	ErrEmbeddedNUL = errors.New("vdf string contains NUL byte")
)

// Decode parses a complete binary VDF document.
// The top level may end with an end marker or at the end of the data.
func Decode(data []byte) (Object, error) {
	d := &decoder{data: data}
	obj, err := d.readObject(true)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// Encode serializes obj as a binary VDF document terminated by an end marker.
func Encode(obj Object) ([]byte, error) {
	buf, err := appendObject(nil, obj)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

type decoder struct {
	data []byte
	pos  int
}

func (d *decoder) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at pos %d", ErrMalformed, fmt.Sprintf(format, args...), d.pos)
}

// readObject reads fields until an end marker. At the top level running out
// of data also terminates the object.
func (d *decoder) readObject(top bool) (Object, error) {
	obj := Object{}

	for {
		if d.pos >= len(d.data) {
			if top {
				return obj, nil
			}
			return nil, d.errorf("unexpected end of data in object")
		}

		typeByte := d.data[d.pos]
		d.pos++

		if typeByte == TypeEnd || typeByte == TypeEndAlt {
			return obj, nil
		}

		key, err := d.readString()
		if err != nil {
			return nil, err
		}

		var val any
		switch typeByte {
		case TypeObject:
			val, err = d.readObject(false)
		case TypeString:
			val, err = d.readString()
		case TypeInt32:
			var b []byte
			if b, err = d.take(4, key); err == nil {
				val = int32(binary.LittleEndian.Uint32(b))
			}
		case TypeFloat32:
			var b []byte
			if b, err = d.take(4, key); err == nil {
				val = math.Float32frombits(binary.LittleEndian.Uint32(b))
			}
		case TypeUint64:
			var b []byte
			if b, err = d.take(8, key); err == nil {
				val = binary.LittleEndian.Uint64(b)
			}
		case TypeInt64:
			var b []byte
			if b, err = d.take(8, key); err == nil {
				val = int64(binary.LittleEndian.Uint64(b))
			}
		default:
			return nil, d.errorf("unknown type marker 0x%02x for key %q", typeByte, key)
		}
		if err != nil {
			return nil, err
		}

		obj = append(obj, Field{Key: key, Value: val})
	}
}

// readString reads a NUL-terminated string.
func (d *decoder) readString() (string, error) {
	start := d.pos
	for d.pos < len(d.data) {
		if d.data[d.pos] == 0x00 {
			s := string(d.data[start:d.pos])
			d.pos++
			return s, nil
		}
		d.pos++
	}
	d.pos = start
	return "", d.errorf("unterminated string")
}

func (d *decoder) take(n int, key string) ([]byte, error) {
	if d.pos+n > len(d.data) {
		return nil, d.errorf("unexpected end of data reading value for %q", key)
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func appendObject(buf []byte, obj Object) ([]byte, error) {
	for _, f := range obj {
		var err error
		buf, err = appendField(buf, f)
		if err != nil {
			return nil, err
		}
	}
	return append(buf, TypeEnd), nil
}

func appendField(buf []byte, f Field) ([]byte, error) {
	if strings.IndexByte(f.Key, 0x00) >= 0 {
		return nil, fmt.Errorf("%w: key %q", ErrEmbeddedNUL, f.Key)
	}

	switch v := f.Value.(type) {
	case Object:
		buf = appendKey(buf, TypeObject, f.Key)
		return appendObject(buf, v)
	case string:
		if strings.IndexByte(v, 0x00) >= 0 {
			return nil, fmt.Errorf("%w: value of %q", ErrEmbeddedNUL, f.Key)
		}
		buf = appendKey(buf, TypeString, f.Key)
		return appendCString(buf, v), nil
	case int32:
		buf = appendKey(buf, TypeInt32, f.Key)
		return binary.LittleEndian.AppendUint32(buf, uint32(v)), nil
	case float32:
		buf = appendKey(buf, TypeFloat32, f.Key)
		return binary.LittleEndian.AppendUint32(buf, math.Float32bits(v)), nil
	case uint64:
		buf = appendKey(buf, TypeUint64, f.Key)
		return binary.LittleEndian.AppendUint64(buf, v), nil
	case int64:
		buf = appendKey(buf, TypeInt64, f.Key)
		return binary.LittleEndian.AppendUint64(buf, uint64(v)), nil
	default:
		return nil, fmt.Errorf("%w: %T for key %q", ErrUnsupportedType, f.Value, f.Key)
	}
}

func appendKey(buf []byte, typeByte byte, key string) []byte {
	buf = append(buf, typeByte)
	return appendCString(buf, key)
}

func appendCString(buf []byte, s string) []byte {
	buf = append(buf, s...)
	return append(buf, 0x00)
}
