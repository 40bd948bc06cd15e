package osc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

const (
	bit32Size = 4
	bit64Size = 8
)

// bundleTag is the 8-byte prefix of every OSC bundle: "#bundle" plus a null.
var bundleTag = []byte{'#', 'b', 'u', 'n', 'd', 'l', 'e', 0}

// Buffer is an owned, consumable byte sequence. Reads remove a prefix from
// the buffer; Append adds to the end. Every read enforces the OSC 4-byte
// alignment rule before anything else.
type Buffer []byte

// Len returns the number of bytes remaining in the buffer.
func (b Buffer) Len() int { return len(b) }

// IsEmpty returns true if no bytes remain.
func (b Buffer) IsEmpty() bool { return len(b) == 0 }

// IsValid returns true if the buffer length is a multiple of four bytes.
func (b Buffer) IsValid() bool { return len(b)%bit32Size == 0 }

// IsBundle returns true if the buffer starts with the "#bundle" tag.
func (b Buffer) IsBundle() bool { return bytes.HasPrefix(b, bundleTag) }

// Append appends the contents of another buffer.
func (b *Buffer) Append(other Buffer) {
	*b = append(*b, other...)
}

// Next consumes and returns the next n raw bytes. n must itself be a
// multiple of four; n == 0 trivially succeeds on any buffer.
func (b *Buffer) Next(n int) ([]byte, error) {
	switch {
	case n == 0:
		return nil, nil
	case b.IsEmpty():
		return nil, fmt.Errorf("Next: %w", ErrUnderrun)
	case !b.IsValid() || n%bit32Size != 0:
		return nil, fmt.Errorf("Next: %w", ErrNotFourByte)
	case len(*b) < n:
		return nil, fmt.Errorf("Next: %w", ErrUnderrun)
	}

	out := make([]byte, n)
	copy(out, *b)
	*b = (*b)[n:]
	return out, nil
}

// NextString consumes 4-byte chunks until one ends with a null byte and
// returns the raw chunks, padding included. A string therefore always
// consumes a multiple of four bytes and the caller never needs to know its
// length up front.
func (b *Buffer) NextString() ([]byte, error) {
	if b.IsEmpty() {
		return nil, fmt.Errorf("NextString: %w", ErrUnderrun)
	}
	if !b.IsValid() {
		return nil, fmt.Errorf("NextString: %w", ErrNotFourByte)
	}

	var out []byte
	for len(out) == 0 || out[len(out)-1] != 0 {
		if len(*b) < bit32Size {
			return nil, fmt.Errorf("NextString: %w", ErrUnterminatedString)
		}
		out = append(out, (*b)[:bit32Size]...)
		*b = (*b)[bit32Size:]
	}
	return out, nil
}

// NextBlock consumes a length-prefixed block and returns its content
// without the 4-byte size prefix. The declared length is rounded up to the
// next 4-byte boundary to compute the bytes consumed.
func (b *Buffer) NextBlock() (Buffer, error) {
	content, total, err := b.peekBlock()
	if err != nil {
		return nil, fmt.Errorf("NextBlock: %w", err)
	}

	out := make(Buffer, len(content))
	copy(out, content)
	*b = (*b)[total:]
	return out, nil
}

// NextBlockWithSize consumes a length-prefixed block and returns it whole,
// size prefix and padding included.
func (b *Buffer) NextBlockWithSize() ([]byte, error) {
	_, total, err := b.peekBlock()
	if err != nil {
		return nil, fmt.Errorf("NextBlockWithSize: %w", err)
	}

	out := make([]byte, total)
	copy(out, *b)
	*b = (*b)[total:]
	return out, nil
}

// peekBlock validates a length-prefixed block without consuming it,
// returning the content slice and the total padded length including the
// size prefix.
func (b Buffer) peekBlock() ([]byte, int, error) {
	if len(b) < bit32Size {
		return nil, 0, ErrUnderrun
	}
	if !b.IsValid() {
		return nil, 0, ErrNotFourByte
	}

	declared := int(int32(binary.BigEndian.Uint32(b[:bit32Size])))
	if declared < 0 {
		return nil, 0, ErrUnderrun
	}
	total := bit32Size + declared + padBytesNeeded(declared)
	if len(b) < total {
		return nil, 0, ErrUnderrun
	}
	return b[bit32Size : bit32Size+declared], total, nil
}

// String renders the buffer as a hex/char dump, four bytes per row. Null
// bytes display as '•' and non-printable bytes as '�'.
func (b Buffer) String() string {
	var sb strings.Builder
	for i, item := range b {
		var ch rune
		switch {
		case item == 0:
			ch = '•'
		case item >= 32 && item <= 126:
			ch = rune(item)
		default:
			ch = '�'
		}

		sep := " | "
		if i%bit32Size == 3 {
			sep = "\n"
		}
		fmt.Fprintf(&sb, "%#04x '%c'%s", item, ch, sep)
	}
	return sb.String()
}

// padBytesNeeded determines how many bytes are needed to fill up to the
// next 4 byte length.
func padBytesNeeded(elementLen int) int {
	return (bit32Size - (elementLen % bit32Size)) % bit32Size
}
