// Copyright 2013 - 2015 Sebastian Ruml <sebastian.ruml@gmail.com>
// Copyright 2021 - 2022 Mendel Greenberg <mendel@chabad360.me>

//Package osc provides an encoder and decoder for OpenSoundControl packets,
//plus a minimal UDP client and receive loop.
//
//This implementation is based on the Open Sound Control 1.0 Specification
//(http://opensoundcontrol.org/spec-1_0.html), extended with the type tags
//the Behringer X32 family of consoles emits.
//
//Supported argument type tags:
//
//	'i' (int32)
//	'f' (float32)
//	's' (string)
//	'b' ([]byte blob)
//	't' (Timetag)
//	'h' (int64)
//	'd' (float64)
//	'c' (Char, a 4-byte big-endian code point)
//	'r' (Color, RGBA)
//	'T' (true)
//	'F' (false)
//	'N' (nil)
//	'I' (Bang)
//
//Bundles are supported, including nested bundles and time tags.
//
//The unit of transmission is an OSC Packet: either a Message (an address
//pattern plus zero or more arguments) or a Bundle (a Timetag plus zero or
//more packets). A packet is always a contiguous, 32-bit aligned block of
//binary data; any buffer that is not a multiple of four bytes is rejected
//before interpretation.
//
//Address pattern matching and dispatching is deliberately not implemented;
//consumers such as the x32 package classify messages by exact address.
package osc
