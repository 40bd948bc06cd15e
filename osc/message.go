// Copyright 2013 - 2015 Sebastian Ruml <sebastian.ruml@gmail.com>
// Copyright 2021 - 2022 Mendel Greenberg <mendel@chabad360.me>

package osc

import (
	"fmt"
	"strings"
)

// Message represents a single OSC message. It consists of an OSC address
// pattern and zero or more arguments.
//
// An argument-less message normally encodes without a type tag string at
// all. Some receivers (the X32 included) insist on the empty tag list ","
// instead; set ForceEmptyArgs to emit it. The flag round-trips: decoding a
// message that carries an empty tag list sets it.
type Message struct {
	Address        string
	Arguments      []interface{}
	ForceEmptyArgs bool
}

// Verify that Message implements the Packet interface.
var _ Packet = (*Message)(nil)

// NewMessage creates a new Message for the given address and arguments.
func NewMessage(address string, arguments ...interface{}) *Message {
	return &Message{Address: address, Arguments: arguments}
}

// Append appends the given arguments to the message, validating that each
// has an OSC representation.
func (m *Message) Append(arguments ...interface{}) error {
	for _, arg := range arguments {
		if ToTypeTag(arg) == TypeInvalid {
			return fmt.Errorf("Append: %T: %w", arg, ErrUnknownType)
		}
		m.Arguments = append(m.Arguments, arg)
	}
	return nil
}

// Equals returns true if the given message is structurally equal.
func (m *Message) Equals(other *Message) bool {
	if m.Address != other.Address || m.ForceEmptyArgs != other.ForceEmptyArgs {
		return false
	}
	if len(m.Arguments) != len(other.Arguments) {
		return false
	}
	for i, arg := range m.Arguments {
		if FormatValue(arg) != FormatValue(other.Arguments[i]) {
			return false
		}
	}
	return true
}

// TypeTags returns the type tag string for the message arguments, leading
// comma included.
func (m *Message) TypeTags() (string, error) {
	var sb strings.Builder
	sb.WriteByte(',')
	for _, arg := range m.Arguments {
		tag := ToTypeTag(arg)
		if tag == TypeInvalid {
			return "", fmt.Errorf("TypeTags: %T: %w", arg, ErrUnknownType)
		}
		sb.WriteByte(byte(tag))
	}
	return sb.String(), nil
}

// FirstInt32 returns the first argument as an int32, or def if the message
// has no arguments or the first one is of another type.
func (m *Message) FirstInt32(def int32) int32 {
	if len(m.Arguments) == 0 {
		return def
	}
	v, err := ToInt32(m.Arguments[0])
	if err != nil {
		return def
	}
	return v
}

// FirstFloat32 returns the first argument as a float32, or def.
func (m *Message) FirstFloat32(def float32) float32 {
	if len(m.Arguments) == 0 {
		return def
	}
	v, err := ToFloat32(m.Arguments[0])
	if err != nil {
		return def
	}
	return v
}

// FirstString returns the first argument as a string, or def.
func (m *Message) FirstString(def string) string {
	if len(m.Arguments) == 0 {
		return def
	}
	v, err := ToString(m.Arguments[0])
	if err != nil {
		return def
	}
	return v
}

// String implements fmt.Stringer and renders the message in the canonical
// debug form: the address followed by each argument as |tag:value|.
func (m *Message) String() string {
	var sb strings.Builder
	sb.WriteString(m.Address)
	for _, arg := range m.Arguments {
		sb.WriteByte(' ')
		sb.WriteString(FormatValue(arg))
	}
	return sb.String()
}

// MarshalBinary serializes the message to its wire form.
func (m *Message) MarshalBinary() ([]byte, error) {
	if err := validateAddress(m.Address); err != nil {
		return nil, err
	}

	out := Buffer(paddedString(m.Address))

	if len(m.Arguments) == 0 {
		if m.ForceEmptyArgs {
			out.Append(paddedString(","))
		}
		return out, nil
	}

	tags, err := m.TypeTags()
	if err != nil {
		return nil, err
	}
	out.Append(paddedString(tags))

	for _, arg := range m.Arguments {
		encoded, err := EncodeValue(arg)
		if err != nil {
			return nil, err
		}
		out.Append(encoded)
	}
	return out, nil
}

// UnmarshalBinary deserializes the wire form into the message, replacing
// its contents.
func (m *Message) UnmarshalBinary(data []byte) error {
	buf := Buffer(data)
	if !buf.IsValid() {
		return fmt.Errorf("UnmarshalBinary: %w", ErrNotFourByte)
	}

	raw, err := buf.NextString()
	if err != nil {
		return fmt.Errorf("UnmarshalBinary: address: %w", err)
	}
	address := string(trimNulls(raw))
	if err := validateAddress(address); err != nil {
		return fmt.Errorf("UnmarshalBinary: %w", err)
	}

	m.Address = address
	m.Arguments = nil
	m.ForceEmptyArgs = false

	if buf.IsEmpty() {
		return nil
	}

	raw, err = buf.NextString()
	if err != nil {
		return fmt.Errorf("UnmarshalBinary: type tags: %w", err)
	}
	if len(raw) == 0 || raw[0] != byte(TypeTagList) {
		return fmt.Errorf("UnmarshalBinary: type tags: %w", ErrInvalidMessage)
	}
	tags := trimNulls(raw)[1:]
	if len(tags) == 0 {
		m.ForceEmptyArgs = true
	}

	for _, tag := range tags {
		arg, err := readArgument(&buf, TypeTag(tag))
		if err != nil {
			return fmt.Errorf("UnmarshalBinary: %w", err)
		}
		m.Arguments = append(m.Arguments, arg)
	}

	if !buf.IsEmpty() {
		return fmt.Errorf("UnmarshalBinary: trailing bytes: %w", ErrInvalidMessage)
	}
	return nil
}

// readArgument consumes and decodes one argument of the given type.
func readArgument(buf *Buffer, tag TypeTag) (interface{}, error) {
	var (
		raw []byte
		err error
	)
	switch tag {
	case TypeTrue, TypeFalse, TypeNil, TypeBang:
		// zero width
	case TypeInt32, TypeFloat32, TypeChar, TypeColor:
		raw, err = buf.Next(bit32Size)
	case TypeInt64, TypeFloat64, TypeTimeTag:
		raw, err = buf.Next(bit64Size)
	case TypeString:
		raw, err = buf.NextString()
	case TypeBlob:
		raw, err = buf.NextBlockWithSize()
	default:
		return nil, fmt.Errorf("%q: %w", tag, ErrInvalidTypes)
	}
	if err != nil {
		return nil, err
	}
	return DecodeValue(raw, tag)
}

// validateAddress rejects an address that is empty or contains anything
// other than printable ASCII.
func validateAddress(address string) error {
	if len(address) == 0 {
		return fmt.Errorf("address: %w", ErrAddressContent)
	}
	for _, c := range []byte(address) {
		if c < 0x20 || c > 0x7e {
			return fmt.Errorf("address: %w", ErrAddressContent)
		}
	}
	return nil
}
