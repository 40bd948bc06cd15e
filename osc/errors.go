package osc

import "errors"

// Buffer and framing errors. These are structural: they mean the bytes on
// the wire could not be carved up, not that a value inside them was bad.
var (
	// ErrNotFourByte reports a buffer (or a requested read length) that is
	// not a multiple of four bytes. It always fires before any other check.
	ErrNotFourByte = errors.New("buffer is not 4-byte aligned")

	// ErrUnderrun reports that fewer bytes remain than an operation needs.
	ErrUnderrun = errors.New("buffer not large enough for operation")

	// ErrUnterminatedString reports a buffer that ran out before a
	// null-terminated 4-byte chunk completed.
	ErrUnterminatedString = errors.New("string not terminated with null")

	// ErrInvalidBuffer reports bundle framing that could not be decoded.
	ErrInvalidBuffer = errors.New("buffer contains invalid data")

	// ErrInvalidMessage reports a buffer that could not be decoded as a
	// message, or a message that cannot be encoded.
	ErrInvalidMessage = errors.New("message conversion invalid")

	// ErrInvalidTypes reports a decoded argument list that does not match
	// the declared type tag string.
	ErrInvalidTypes = errors.New("arguments do not match type tag string")
)

// Value and type errors.
var (
	// ErrStringConversion reports bytes that are not valid UTF-8 (or not a
	// valid Unicode scalar for the char type).
	ErrStringConversion = errors.New("string conversion failed")

	// ErrAddressContent reports a message address that is empty or not ASCII.
	ErrAddressContent = errors.New("address is empty or not ascii")

	// ErrUnknownType reports an argument with no OSC type representation.
	ErrUnknownType = errors.New("unknown OSC type")

	// ErrInvalidTypeFlag reports an unrecognized type tag character.
	ErrInvalidTypeFlag = errors.New("unknown OSC type flag")

	// ErrTypeConversion reports a value that is not of the requested type.
	ErrTypeConversion = errors.New("type conversion invalid")

	// ErrTimeUnderflow reports an instant before the OSC epoch (1900-01-01).
	ErrTimeUnderflow = errors.New("time too early to represent")

	// ErrTimeOverflow reports an instant past the 32-bit seconds range.
	ErrTimeOverflow = errors.New("time too late to represent")
)
