package x32

import "errors"

// Protocol errors. ErrUnimplementedPacket is expected and frequent: the
// console emits far more address patterns than the mirror tracks.
var (
	// ErrInvalidFader reports an unknown fader bank or an index outside
	// the bank's capacity.
	ErrInvalidFader = errors.New("fader does not exist")

	// ErrUnimplementedPacket reports an address pattern the interpreter
	// does not track.
	ErrUnimplementedPacket = errors.New("packet not understood")

	// ErrMalformedPacket reports a recognized pattern with the wrong
	// argument count or a node message without its text payload.
	ErrMalformedPacket = errors.New("packet poorly formed")
)
