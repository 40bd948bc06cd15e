// Copyright 2013 - 2015 Sebastian Ruml <sebastian.ruml@gmail.com>
// Copyright 2021 - 2022 Mendel Greenberg <mendel@chabad360.me>

package osc

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Bundle represents an OSC bundle: a Timetag plus zero or more Packets,
// which may themselves be bundles.
type Bundle struct {
	Timetag  Timetag
	Elements []Packet
}

// Verify that Bundle implements the Packet interface.
var _ Packet = (*Bundle)(nil)

// NewBundle returns a bundle with the given time tag and elements.
func NewBundle(timetag Timetag, elements ...Packet) *Bundle {
	return &Bundle{Timetag: timetag, Elements: elements}
}

// Append appends a packet to the bundle.
func (b *Bundle) Append(pkt Packet) {
	b.Elements = append(b.Elements, pkt)
}

// String implements fmt.Stringer.
func (b *Bundle) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#bundle %s", b.Timetag)
	for _, elem := range b.Elements {
		fmt.Fprintf(&sb, " {%v}", elem)
	}
	return sb.String()
}

// MarshalBinary serializes the bundle: the "#bundle" tag, the time tag,
// then each element as a length-prefixed block.
func (b *Bundle) MarshalBinary() ([]byte, error) {
	out := Buffer(make([]byte, 0, 2*bit64Size))
	out.Append(bundleTag)

	tt, err := b.Timetag.MarshalBinary()
	if err != nil {
		return nil, err
	}
	out.Append(tt)

	for _, elem := range b.Elements {
		encoded, err := elem.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("MarshalBinary: %w", err)
		}
		size := make([]byte, bit32Size)
		binary.BigEndian.PutUint32(size, uint32(len(encoded)))
		out.Append(size)
		out.Append(encoded)
	}
	return out, nil
}

// UnmarshalBinary deserializes the wire form into the bundle, replacing
// its contents. A 16-byte bundle (tag plus time tag, no elements) is valid.
func (b *Bundle) UnmarshalBinary(data []byte) error {
	buf := Buffer(data)
	if !buf.IsValid() {
		return fmt.Errorf("UnmarshalBinary: %w", ErrNotFourByte)
	}

	tag, err := buf.Next(len(bundleTag))
	if err != nil || string(tag) != string(bundleTag) {
		return fmt.Errorf("UnmarshalBinary: bundle tag: %w", ErrInvalidBuffer)
	}

	raw, err := buf.Next(bit64Size)
	if err != nil {
		return fmt.Errorf("UnmarshalBinary: time tag: %w", ErrInvalidBuffer)
	}
	b.Timetag = Timetag(binary.BigEndian.Uint64(raw))
	b.Elements = nil

	for !buf.IsEmpty() {
		block, err := buf.NextBlock()
		if err != nil {
			return fmt.Errorf("UnmarshalBinary: element: %w", ErrInvalidBuffer)
		}
		pkt, err := ParsePacket(block)
		if err != nil {
			return fmt.Errorf("UnmarshalBinary: element: %w", ErrInvalidBuffer)
		}
		b.Elements = append(b.Elements, pkt)
	}
	return nil
}
