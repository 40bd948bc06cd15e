// Copyright 2013 - 2015 Sebastian Ruml <sebastian.ruml@gmail.com>
// Copyright 2021 - 2022 Mendel Greenberg <mendel@chabad360.me>

package osc

import (
	"encoding"
	"fmt"
)

// MaxPacketSize is the largest UDP payload a packet can occupy.
const MaxPacketSize = 65507

// Packet is the interface for Message and Bundle.
type Packet interface {
	encoding.BinaryMarshaler
}

// ParsePacket parses an OSC packet from a raw buffer, dispatching on the
// "#bundle" prefix.
func ParsePacket(data []byte) (Packet, error) {
	buf := Buffer(data)
	if !buf.IsValid() {
		return nil, fmt.Errorf("ParsePacket: %w", ErrNotFourByte)
	}
	if buf.IsEmpty() {
		return nil, fmt.Errorf("ParsePacket: %w", ErrUnderrun)
	}

	if buf.IsBundle() {
		b := &Bundle{}
		if err := b.UnmarshalBinary(data); err != nil {
			return nil, err
		}
		return b, nil
	}

	m := &Message{}
	if err := m.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return m, nil
}
