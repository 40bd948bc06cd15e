// Copyright 2021 - 2022 Mendel Greenberg <mendel@chabad360.me>

//Package x32 interprets the OSC dialect spoken by Behringer X32 family
//consoles and mirrors the console state it describes.
//
//The package has three layers:
//
//	Interpret   classifies a raw osc.Message into a ConsoleMessage
//	Console     applies ConsoleMessages to a passive state mirror
//	ConsoleRequest builds the messages that make the console talk
//
//The mirror is passive: it never changes console state, it only tracks
//fader positions, scribble strip labels, mute states, colors, and the
//cue, scene, and snippet lists of the loaded show.
//
//Most traffic arrives on the "node" sub-protocol, where the console packs
//a whole record into one quoted text line. Interpret handles both that
//form and the typed single-value OSC form.
package x32
