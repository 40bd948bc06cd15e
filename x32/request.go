package x32

import (
	"github.com/chabad360/go-x32/osc"
)

// XRemote is the prebuilt /xremote buffer. Sending it (at least every ten
// seconds) makes the console stream state changes to the sender.
var XRemote = osc.Buffer{
	0x2f, 0x78, 0x72, 0x65, 0x6d, 0x6f, 0x74, 0x65, 0x00, 0x00, 0x00, 0x00,
}

// NodeKeepAlive is a prebuilt harmless node request ("-prefs/name") whose
// reply can be ignored; useful as a cheap liveness probe.
var NodeKeepAlive = osc.Buffer{
	0x2f, 0x6e, 0x6f, 0x64, 0x65, 0x00, 0x00, 0x00,
	0x2c, 0x73, 0x00, 0x00,
	0x2d, 0x70, 0x72, 0x65, 0x66, 0x73, 0x2f, 0x6e, 0x61, 0x6d, 0x65, 0x00,
}

// nodeRequest builds an encoded /node request for the given path.
func nodeRequest(path string) osc.Buffer {
	raw, err := osc.NewMessage("/node", path).MarshalBinary()
	if err != nil {
		return nil
	}
	return raw
}

// ShowInfoRequest asks the console to dump its cue, scene, and snippet
// lists.
func ShowInfoRequest() osc.Buffer {
	raw, err := osc.NewMessage("/showdata").MarshalBinary()
	if err != nil {
		return nil
	}
	return raw
}

// ShowModeRequest asks for the show control preference.
func ShowModeRequest() osc.Buffer {
	return nodeRequest("-prefs/show_control")
}

// CurrentCueRequest asks for the running cue index.
func CurrentCueRequest() osc.Buffer {
	return nodeRequest("-show/prepos/current")
}

// KeepAliveRequest returns a copy of the /xremote buffer.
func KeepAliveRequest() osc.Buffer {
	out := make(osc.Buffer, len(XRemote))
	copy(out, XRemote)
	return out
}

// FaderRequests returns the node requests that make the console report
// one fader's full state.
func FaderRequests(idx FaderIndex) []osc.Buffer {
	return idx.RequestMessages()
}

// FullUpdateRequests builds the fixed request sequence that refreshes
// everything the mirror tracks: show lists, show mode, running cue, then
// both mains and every aux, matrix, bus, DCA, and channel fader. The
// sequence is always 147 buffers.
func FullUpdateRequests() []osc.Buffer {
	buffers := []osc.Buffer{
		ShowInfoRequest(),
		ShowModeRequest(),
		CurrentCueRequest(),
	}

	appendBank := func(kind FaderKind) {
		for i := 1; i <= kind.capacity(); i++ {
			idx := FaderIndex{Kind: kind, Index: i}
			buffers = append(buffers, idx.RequestMessages()...)
		}
	}

	appendBank(FaderMain)
	appendBank(FaderAux)
	appendBank(FaderMatrix)
	appendBank(FaderBus)
	appendBank(FaderDca)
	appendBank(FaderChannel)

	return buffers
}
