package osc

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

// TypeTag identifies an OSC argument type on the wire.
type TypeTag byte

const (
	TypeInt32   TypeTag = 'i'
	TypeInt64   TypeTag = 'h'
	TypeFloat32 TypeTag = 'f'
	TypeFloat64 TypeTag = 'd'
	TypeString  TypeTag = 's'
	TypeBlob    TypeTag = 'b'
	TypeTimeTag TypeTag = 't'
	TypeChar    TypeTag = 'c'
	TypeColor   TypeTag = 'r'
	TypeTrue    TypeTag = 'T'
	TypeFalse   TypeTag = 'F'
	TypeNil     TypeTag = 'N'
	TypeBang    TypeTag = 'I'
	TypeTagList TypeTag = ','
	TypeInvalid TypeTag = 0
)

// Char is a single Unicode scalar value, wire-encoded as a 4-byte
// big-endian code point. It is a defined type because rune aliases int32.
type Char rune

// Color is an RGBA color argument, four bytes on the wire.
type Color [4]byte

// Bang is the zero-width 'I' impulse marker.
type Bang struct{}

// TagList is a decoded type tag string without its leading comma.
type TagList string

// ToTypeTag returns the OSC TypeTag for the given argument.
// Returns TypeInvalid if the argument type is unsupported.
func ToTypeTag(arg interface{}) TypeTag {
	switch t := arg.(type) {
	case bool:
		if t {
			return TypeTrue
		}
		return TypeFalse
	case nil:
		return TypeNil
	case Bang:
		return TypeBang
	case int32:
		return TypeInt32
	case int64:
		return TypeInt64
	case float32:
		return TypeFloat32
	case float64:
		return TypeFloat64
	case string:
		return TypeString
	case []byte:
		return TypeBlob
	case Char:
		return TypeChar
	case Color:
		return TypeColor
	case Timetag:
		return TypeTimeTag
	case TagList:
		return TypeTagList
	default:
		return TypeInvalid
	}
}

// DecodeValue decodes raw bytes as the value named by the type tag.
//
// Zero-width tags (T, F, N, I and an empty tag list) require empty input.
// Fixed-width tags require an exact length match; anything else is an
// underrun, never a partial read. Only s, b and the tag list have
// data-dependent lengths.
func DecodeValue(data []byte, tag TypeTag) (interface{}, error) {
	if len(data)%bit32Size != 0 {
		return nil, fmt.Errorf("DecodeValue: %w", ErrNotFourByte)
	}

	switch tag {
	case TypeTrue, TypeFalse, TypeNil, TypeBang:
		if len(data) != 0 {
			return nil, fmt.Errorf("DecodeValue: %c: %w", tag, ErrUnderrun)
		}
		switch tag {
		case TypeTrue:
			return true, nil
		case TypeFalse:
			return false, nil
		case TypeBang:
			return Bang{}, nil
		default:
			return nil, nil
		}

	case TypeInt32:
		if len(data) != bit32Size {
			return nil, fmt.Errorf("DecodeValue: i: %w", ErrUnderrun)
		}
		return int32(binary.BigEndian.Uint32(data)), nil

	case TypeFloat32:
		if len(data) != bit32Size {
			return nil, fmt.Errorf("DecodeValue: f: %w", ErrUnderrun)
		}
		return math.Float32frombits(binary.BigEndian.Uint32(data)), nil

	case TypeInt64:
		if len(data) != bit64Size {
			return nil, fmt.Errorf("DecodeValue: h: %w", ErrUnderrun)
		}
		return int64(binary.BigEndian.Uint64(data)), nil

	case TypeFloat64:
		if len(data) != bit64Size {
			return nil, fmt.Errorf("DecodeValue: d: %w", ErrUnderrun)
		}
		return math.Float64frombits(binary.BigEndian.Uint64(data)), nil

	case TypeTimeTag:
		if len(data) != bit64Size {
			return nil, fmt.Errorf("DecodeValue: t: %w", ErrUnderrun)
		}
		return Timetag(binary.BigEndian.Uint64(data)), nil

	case TypeChar:
		if len(data) != bit32Size {
			return nil, fmt.Errorf("DecodeValue: c: %w", ErrUnderrun)
		}
		r := rune(binary.BigEndian.Uint32(data))
		if !utf8.ValidRune(r) {
			return nil, fmt.Errorf("DecodeValue: c: %w", ErrStringConversion)
		}
		return Char(r), nil

	case TypeColor:
		if len(data) != bit32Size {
			return nil, fmt.Errorf("DecodeValue: r: %w", ErrUnderrun)
		}
		var c Color
		copy(c[:], data)
		return c, nil

	case TypeString:
		if len(data) == 0 {
			return nil, fmt.Errorf("DecodeValue: s: %w", ErrUnderrun)
		}
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("DecodeValue: s: %w", ErrStringConversion)
		}
		return string(trimNulls(data)), nil

	case TypeTagList:
		if len(data) == 0 {
			return TagList(""), nil
		}
		tags := make([]byte, 0, len(data)-1)
		for _, c := range data[1:] {
			if c != 0 {
				tags = append(tags, c)
			}
		}
		return TagList(tags), nil

	case TypeBlob:
		if len(data) == 0 {
			return nil, fmt.Errorf("DecodeValue: b: %w", ErrUnderrun)
		}
		if len(data) < bit32Size {
			return nil, fmt.Errorf("DecodeValue: b: %w", ErrUnderrun)
		}
		size := int(int32(binary.BigEndian.Uint32(data[:bit32Size])))
		if size < 0 || len(data) < bit32Size+size {
			return nil, fmt.Errorf("DecodeValue: b: %w", ErrUnderrun)
		}
		out := make([]byte, size)
		copy(out, data[bit32Size:bit32Size+size])
		return out, nil

	default:
		return nil, fmt.Errorf("DecodeValue: %q: %w", tag, ErrInvalidTypeFlag)
	}
}

// EncodeValue returns the wire encoding of the given argument. Zero-width
// values encode to nothing; strings, tag lists and blobs are null-padded to
// the next 4-byte boundary.
func EncodeValue(arg interface{}) ([]byte, error) {
	switch t := arg.(type) {
	case bool, nil, Bang:
		return nil, nil

	case int32:
		out := make([]byte, bit32Size)
		binary.BigEndian.PutUint32(out, uint32(t))
		return out, nil

	case float32:
		out := make([]byte, bit32Size)
		binary.BigEndian.PutUint32(out, math.Float32bits(t))
		return out, nil

	case int64:
		out := make([]byte, bit64Size)
		binary.BigEndian.PutUint64(out, uint64(t))
		return out, nil

	case float64:
		out := make([]byte, bit64Size)
		binary.BigEndian.PutUint64(out, math.Float64bits(t))
		return out, nil

	case Timetag:
		out := make([]byte, bit64Size)
		binary.BigEndian.PutUint64(out, uint64(t))
		return out, nil

	case Char:
		out := make([]byte, bit32Size)
		binary.BigEndian.PutUint32(out, uint32(t))
		return out, nil

	case Color:
		return t[:], nil

	case string:
		return paddedString(t), nil

	case TagList:
		if len(t) == 0 {
			return nil, nil
		}
		return paddedString("," + string(t)), nil

	case []byte:
		out := make([]byte, bit32Size, bit32Size+len(t)+bit32Size)
		binary.BigEndian.PutUint32(out, uint32(len(t)))
		out = append(out, t...)
		out = append(out, make([]byte, padBytesNeeded(len(out)))...)
		return out, nil

	default:
		return nil, fmt.Errorf("EncodeValue: %T: %w", t, ErrUnknownType)
	}
}

// FormatValue renders an argument in the canonical |tag:value| debug form.
func FormatValue(arg interface{}) string {
	tag := ToTypeTag(arg)
	flag := byte(tag)
	if tag == TypeInvalid {
		flag = '*'
	}

	var body string
	switch t := arg.(type) {
	case bool, nil, Bang:
		body = ""
	case int32:
		body = fmt.Sprintf("%d", t)
	case int64:
		body = fmt.Sprintf("%d", t)
	case float32:
		body = fmt.Sprintf("%v", t)
	case float64:
		body = fmt.Sprintf("%v", t)
	case Char:
		body = string(rune(t))
	case Color:
		body = fmt.Sprintf("[%d, %d, %d, %d]", t[0], t[1], t[2], t[3])
	case Timetag:
		body = fmt.Sprintf("[%d, %d]", t.SecondsSinceEpoch(), t.FractionalSecond())
	case string:
		body = paddedStringDebug(t)
	case TagList:
		if len(t) != 0 {
			body = paddedStringDebug("," + string(t))
		}
	case []byte:
		body = fmt.Sprintf("[~b:%d~]", len(t))
	}

	return fmt.Sprintf("|%c:%s|", flag, body)
}

// ToInt32 extracts an int32 or fails with a type conversion error.
func ToInt32(arg interface{}) (int32, error) {
	if v, ok := arg.(int32); ok {
		return v, nil
	}
	return 0, fmt.Errorf("ToInt32: %w", ErrTypeConversion)
}

// ToFloat32 extracts a float32 or fails with a type conversion error.
func ToFloat32(arg interface{}) (float32, error) {
	if v, ok := arg.(float32); ok {
		return v, nil
	}
	return 0, fmt.Errorf("ToFloat32: %w", ErrTypeConversion)
}

// ToString extracts a string or fails with a type conversion error.
func ToString(arg interface{}) (string, error) {
	if v, ok := arg.(string); ok {
		return v, nil
	}
	return "", fmt.Errorf("ToString: %w", ErrTypeConversion)
}

// ToBlob extracts a blob or fails with a type conversion error.
func ToBlob(arg interface{}) ([]byte, error) {
	if v, ok := arg.([]byte); ok {
		return v, nil
	}
	return nil, fmt.Errorf("ToBlob: %w", ErrTypeConversion)
}

// paddedString returns the string with at least one null terminator,
// padded to the next 4-byte boundary.
func paddedString(s string) []byte {
	out := make([]byte, len(s)+bit32Size-(len(s)%bit32Size))
	copy(out, s)
	return out
}

// paddedStringDebug renders a string in its padded wire form, nulls as '•'
// with the total wire length appended.
func paddedStringDebug(s string) string {
	padded := paddedString(s)
	out := make([]rune, 0, len(padded))
	for _, b := range padded {
		if b == 0 {
			out = append(out, '•')
		} else {
			out = append(out, rune(b))
		}
	}
	return fmt.Sprintf("%s[%d]", string(out), len(padded))
}

// trimNulls removes trailing null bytes.
func trimNulls(data []byte) []byte {
	for len(data) > 0 && data[len(data)-1] == 0 {
		data = data[:len(data)-1]
	}
	return data
}
