package x32

import (
	"encoding/binary"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/chabad360/go-x32/osc"
)

// nodePattern tokenizes a node message payload: whitespace separated
// tokens, with double-quoted tokens kept whole (and possibly empty).
var nodePattern = regexp.MustCompile(`[^\s"]+|"([^"]*)"`)

// ShowMode is the cue tracking mode selected in the console's show
// control preferences.
type ShowMode int

const (
	ShowCues ShowMode = iota
	ShowScenes
	ShowSnippets
)

// ShowModeFromInt maps the console's integer preference to a ShowMode.
// Anything unrecognized tracks cues.
func ShowModeFromInt(v int32) ShowMode {
	switch v {
	case 1:
		return ShowScenes
	case 2:
		return ShowSnippets
	default:
		return ShowCues
	}
}

// ShowModeFromString maps the node form of the preference to a ShowMode.
func ShowModeFromString(s string) ShowMode {
	switch s {
	case "SCENES":
		return ShowScenes
	case "SNIPPETS":
		return ShowSnippets
	default:
		return ShowCues
	}
}

// String implements fmt.Stringer.
func (m ShowMode) String() string {
	switch m {
	case ShowScenes:
		return "Scenes"
	case ShowSnippets:
		return "Snippets"
	default:
		return "Cues"
	}
}

// ConsoleMessage is an update the console reported about its own state.
type ConsoleMessage interface {
	consoleMessage()
}

// FaderUpdate is a partial update of one fader. Nil fields were not part
// of the message.
type FaderUpdate struct {
	Source FaderIndex
	Label  *string
	Level  *float32
	On     *bool
	Color  *FaderColor
}

// CueUpdate is one row of the show's cue list. Scene and Snippet are the
// linked list indices, or -1 for unlinked.
type CueUpdate struct {
	Index   int
	Number  string
	Name    string
	Scene   int
	Snippet int
}

// SceneUpdate is one row of the show's scene list.
type SceneUpdate struct {
	Index int
	Name  string
}

// SnippetUpdate is one row of the show's snippet list.
type SnippetUpdate struct {
	Index int
	Name  string
}

// CurrentCueUpdate reports the running cue index, or -1 for none.
type CurrentCueUpdate struct {
	Index int
}

// ShowModeUpdate reports the selected show control mode.
type ShowModeUpdate struct {
	Mode ShowMode
}

// MeterUpdate carries one meter bank's samples. The first sample is
// whatever the console put there; it looks like a count but is passed
// through untouched so sample indices line up with the wire data.
type MeterUpdate struct {
	Bank    int
	Samples []float32
}

func (FaderUpdate) consoleMessage()      {}
func (CueUpdate) consoleMessage()        {}
func (SceneUpdate) consoleMessage()      {}
func (SnippetUpdate) consoleMessage()    {}
func (CurrentCueUpdate) consoleMessage() {}
func (ShowModeUpdate) consoleMessage()   {}
func (MeterUpdate) consoleMessage()      {}

// Interpret classifies a message from the console. Address patterns the
// mirror does not track fail with ErrUnimplementedPacket; that is routine,
// not corruption.
func Interpret(msg *osc.Message) (ConsoleMessage, error) {
	if strings.TrimPrefix(msg.Address, "/") == "node" {
		if len(msg.Arguments) == 0 {
			return nil, fmt.Errorf("Interpret: node payload: %w", ErrMalformedPacket)
		}
		payload, err := osc.ToString(msg.Arguments[0])
		if err != nil {
			return nil, fmt.Errorf("Interpret: node payload: %w", ErrMalformedPacket)
		}
		return interpretNode(payload)
	}
	return interpretStandard(msg)
}

// splitAddress splits an address (or address-like node token) into its
// first four segments, stripping a leading slash.
func splitAddress(s string) [4]string {
	s = strings.TrimPrefix(s, "/")

	var parts [4]string
	for i, seg := range strings.SplitN(s, "/", 5) {
		if i == len(parts) {
			break
		}
		parts[i] = seg
	}
	return parts
}

// splitNodeArgs splits a node payload into its address token and argument
// tokens. Quoted tokens become single arguments even when empty; a quoted
// first token is an argument, never the address.
func splitNodeArgs(s string) (string, []string) {
	var address string
	var args []string

	for i, match := range nodePattern.FindAllStringSubmatchIndex(s, -1) {
		if match[2] >= 0 {
			args = append(args, s[match[2]:match[3]])
		} else if i == 0 {
			address = s[match[0]:match[1]]
		} else {
			args = append(args, s[match[0]:match[1]])
		}
	}
	return address, args
}

// interpretStandard matches the single-value typed OSC patterns.
func interpretStandard(msg *osc.Message) (ConsoleMessage, error) {
	parts := splitAddress(msg.Address)

	switch {
	case parts[2] == "mix" && parts[3] == "fader",
		parts[0] == "dca" && parts[2] == "fader" && parts[3] == "":
		source, err := faderIndexFromStrings(parts[0], parts[1])
		if err != nil {
			return nil, err
		}
		level := msg.FirstFloat32(0)
		return FaderUpdate{Source: source, Level: &level}, nil

	case parts[2] == "mix" && parts[3] == "on",
		parts[0] == "dca" && parts[2] == "on" && parts[3] == "":
		source, err := faderIndexFromStrings(parts[0], parts[1])
		if err != nil {
			return nil, err
		}
		on := msg.FirstInt32(0) == 1
		return FaderUpdate{Source: source, On: &on}, nil

	case parts[2] == "config" && parts[3] == "name":
		source, err := faderIndexFromStrings(parts[0], parts[1])
		if err != nil {
			return nil, err
		}
		label := msg.FirstString("")
		return FaderUpdate{Source: source, Label: &label}, nil

	case parts[2] == "config" && parts[3] == "color":
		source, err := faderIndexFromStrings(parts[0], parts[1])
		if err != nil {
			return nil, err
		}
		color := ColorFromInt(msg.FirstInt32(1))
		return FaderUpdate{Source: source, Color: &color}, nil

	case parts[0] == "-show" && parts[1] == "prepos" && parts[2] == "current" && parts[3] == "":
		return CurrentCueUpdate{Index: int(msg.FirstInt32(-1))}, nil

	case parts[0] == "-prefs" && parts[1] == "show_control" && parts[2] == "" && parts[3] == "":
		return ShowModeUpdate{Mode: ShowModeFromInt(msg.FirstInt32(-1))}, nil

	case parts[0] == "meters" && parts[2] == "" && parts[3] == "":
		bank, err := strconv.Atoi(parts[1])
		if err != nil || bank < 0 {
			return nil, fmt.Errorf("interpretStandard: meter bank: %w", ErrUnimplementedPacket)
		}
		if len(msg.Arguments) == 0 {
			return nil, fmt.Errorf("interpretStandard: meter blob: %w", ErrUnimplementedPacket)
		}
		blob, err := osc.ToBlob(msg.Arguments[0])
		if err != nil {
			return nil, fmt.Errorf("interpretStandard: meter blob: %w", ErrUnimplementedPacket)
		}
		return MeterUpdate{Bank: bank, Samples: meterSamples(blob)}, nil

	default:
		return nil, fmt.Errorf("interpretStandard: %s: %w", msg.Address, ErrUnimplementedPacket)
	}
}

// meterSamples decodes the meter blob: little-endian 32-bit floats,
// unlike everything else on the wire. A trailing partial sample is
// dropped.
func meterSamples(blob []byte) []float32 {
	out := make([]float32, 0, len(blob)/4)
	for len(blob) >= 4 {
		out = append(out, math.Float32frombits(binary.LittleEndian.Uint32(blob[:4])))
		blob = blob[4:]
	}
	return out
}

// interpretNode matches the node sub-protocol patterns, where a whole
// record arrives as one quoted text line.
func interpretNode(payload string) (ConsoleMessage, error) {
	address, args := splitNodeArgs(payload)
	parts := splitAddress(address)

	switch {
	case parts[2] == "mix" && parts[3] == "",
		parts[0] == "dca" && parts[2] == "" && parts[3] == "":
		if len(args) < 2 {
			return nil, fmt.Errorf("interpretNode: %s: %w", address, ErrMalformedPacket)
		}
		source, err := faderIndexFromStrings(parts[0], parts[1])
		if err != nil {
			return nil, err
		}
		on := isOnFromString(args[0])
		level := LevelFromString(args[1])
		return FaderUpdate{Source: source, On: &on, Level: &level}, nil

	case parts[2] == "config" && parts[3] == "":
		if len(args) < 3 {
			return nil, fmt.Errorf("interpretNode: %s: %w", address, ErrMalformedPacket)
		}
		source, err := faderIndexFromStrings(parts[0], parts[1])
		if err != nil {
			return nil, err
		}
		label := args[0]
		color := ColorFromString(args[2])
		return FaderUpdate{Source: source, Label: &label, Color: &color}, nil

	case parts[0] == "-show" && parts[1] == "prepos" && parts[2] == "current" && parts[3] == "":
		if len(args) < 1 {
			return nil, fmt.Errorf("interpretNode: %s: %w", address, ErrMalformedPacket)
		}
		index, err := strconv.Atoi(args[0])
		if err != nil {
			index = -1
		}
		return CurrentCueUpdate{Index: index}, nil

	case parts[0] == "-prefs" && parts[1] == "show_control" && parts[2] == "" && parts[3] == "":
		if len(args) < 1 {
			return nil, fmt.Errorf("interpretNode: %s: %w", address, ErrMalformedPacket)
		}
		return ShowModeUpdate{Mode: ShowModeFromString(args[0])}, nil

	case parts[0] == "-show" && parts[1] == "showfile" && parts[2] == "cue":
		if len(args) < 5 {
			return nil, fmt.Errorf("interpretNode: %s: %w", address, ErrMalformedPacket)
		}
		return CueUpdate{
			Index:   listIndex(parts[3]),
			Number:  dottedCueNumber(args[0]),
			Name:    args[1],
			Scene:   listLink(args[3]),
			Snippet: listLink(args[4]),
		}, nil

	case parts[0] == "-show" && parts[1] == "showfile" && parts[2] == "scene":
		if len(args) < 1 {
			return nil, fmt.Errorf("interpretNode: %s: %w", address, ErrMalformedPacket)
		}
		return SceneUpdate{Index: listIndex(parts[3]), Name: args[0]}, nil

	case parts[0] == "-show" && parts[1] == "showfile" && parts[2] == "snippet":
		if len(args) < 1 {
			return nil, fmt.Errorf("interpretNode: %s: %w", address, ErrMalformedPacket)
		}
		return SnippetUpdate{Index: listIndex(parts[3]), Name: args[0]}, nil

	default:
		return nil, fmt.Errorf("interpretNode: %s: %w", address, ErrUnimplementedPacket)
	}
}

// dottedCueNumber renders the console's packed cue number as its dotted
// display form: the last two digits become the minor parts, so "100" is
// cue "1.0.0". Short input is zero padded first.
func dottedCueNumber(packed string) string {
	for len(packed) < 3 {
		packed = "0" + packed
	}
	n := len(packed)
	return packed[:n-2] + "." + packed[n-2:n-1] + "." + packed[n-1:]
}

// listIndex parses a cue/scene/snippet list index segment; anything
// unparseable maps to slot 0.
func listIndex(s string) int {
	idx, err := strconv.Atoi(s)
	if err != nil || idx < 0 {
		return 0
	}
	return idx
}

// listLink parses a scene or snippet link field; negative or unparseable
// means unlinked (-1).
func listLink(s string) int {
	idx, err := strconv.Atoi(s)
	if err != nil || idx < 0 {
		return -1
	}
	return idx
}
