package x32

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/chabad360/go-x32/osc"
)

// FaderKind is a fader bank on the console surface.
type FaderKind int

const (
	FaderUnknown FaderKind = iota
	// FaderAux are the aux inputs, 1-8 (the last two are typically USB).
	FaderAux
	// FaderMatrix are the matrix sends, 1-6.
	FaderMatrix
	// FaderMain is the stereo main (1) and mono/center (2).
	FaderMain
	// FaderChannel are the input channels, 1-32.
	FaderChannel
	// FaderDca are the DCA groups, 1-8.
	FaderDca
	// FaderBus are the mix buses, 1-16.
	FaderBus
)

// String implements fmt.Stringer with the names used in JSON output.
func (k FaderKind) String() string {
	switch k {
	case FaderAux:
		return "aux"
	case FaderMatrix:
		return "matrix"
	case FaderMain:
		return "main"
	case FaderChannel:
		return "channel"
	case FaderDca:
		return "dca"
	case FaderBus:
		return "bus"
	default:
		return "unknown"
	}
}

// capacity returns the number of faders in the bank.
func (k FaderKind) capacity() int {
	switch k {
	case FaderAux:
		return 8
	case FaderMatrix:
		return 6
	case FaderMain:
		return 2
	case FaderChannel:
		return 32
	case FaderDca:
		return 8
	case FaderBus:
		return 16
	default:
		return 0
	}
}

// faderKindFromBank maps the console's address segment to a bank.
func faderKindFromBank(bank string) FaderKind {
	switch bank {
	case "auxin":
		return FaderAux
	case "mtx":
		return FaderMatrix
	case "main":
		return FaderMain
	case "ch":
		return FaderChannel
	case "dca":
		return FaderDca
	case "bus":
		return FaderBus
	default:
		return FaderUnknown
	}
}

// FaderIndex identifies one fader: a bank plus a 1-based position.
type FaderIndex struct {
	Kind  FaderKind
	Index int
}

// NewFaderIndex builds a validated FaderIndex. Position 0, an unknown
// bank, or a position past the bank's capacity is an invalid fader; out of
// range never clamps.
func NewFaderIndex(kind FaderKind, index int) (FaderIndex, error) {
	if kind == FaderUnknown || index < 1 || index > kind.capacity() {
		return FaderIndex{}, fmt.Errorf("NewFaderIndex: %v %d: %w", kind, index, ErrInvalidFader)
	}
	return FaderIndex{Kind: kind, Index: index}, nil
}

// faderIndexFromStrings resolves the bank and index segments of a console
// address. The main bank is special cased: "m" is the mono bus, anything
// else ("st" included) is the stereo main.
func faderIndexFromStrings(bank, index string) (FaderIndex, error) {
	kind := faderKindFromBank(bank)
	if kind == FaderMain {
		if index == "m" {
			return NewFaderIndex(kind, 2)
		}
		return NewFaderIndex(kind, 1)
	}

	idx, err := strconv.Atoi(index)
	if err != nil {
		return FaderIndex{}, fmt.Errorf("faderIndexFromStrings: %q: %w", index, ErrInvalidFader)
	}
	return NewFaderIndex(kind, idx)
}

// DefaultLabel returns the label the console shows when the scribble
// strip is blank.
func (f FaderIndex) DefaultLabel() string {
	switch f.Kind {
	case FaderAux:
		return fmt.Sprintf("Aux%02d", f.Index)
	case FaderMatrix:
		return fmt.Sprintf("Mtx%02d", f.Index)
	case FaderMain:
		if f.Index == 2 {
			return "M/C"
		}
		return "Main"
	case FaderChannel:
		return fmt.Sprintf("Ch%02d", f.Index)
	case FaderDca:
		return fmt.Sprintf("DCA%d", f.Index)
	case FaderBus:
		return fmt.Sprintf("MixBus%02d", f.Index)
	default:
		return ""
	}
}

// Address returns the fader's console OSC address prefix.
func (f FaderIndex) Address() string {
	switch f.Kind {
	case FaderAux:
		return fmt.Sprintf("/auxin/%02d", f.Index)
	case FaderMatrix:
		return fmt.Sprintf("/mtx/%02d", f.Index)
	case FaderMain:
		if f.Index == 2 {
			return "/main/m"
		}
		return "/main/st"
	case FaderChannel:
		return fmt.Sprintf("/ch/%02d", f.Index)
	case FaderDca:
		return fmt.Sprintf("/dca/%d", f.Index)
	case FaderBus:
		return fmt.Sprintf("/bus/%02d", f.Index)
	default:
		return ""
	}
}

// MirrorAddress returns the address used on the mirror's own output
// surface. It differs from the console address only for the mains, which
// get numeric indices so consumers never parse "st" or "m".
func (f FaderIndex) MirrorAddress() string {
	if f.Kind == FaderMain {
		return fmt.Sprintf("/main/%02d", f.Index)
	}
	return f.Address()
}

// RequestMessages returns the encoded node requests that make the console
// report this fader's full state. DCAs keep level and mute on the bank
// root rather than under /mix.
func (f FaderIndex) RequestMessages() []osc.Buffer {
	if f.Kind == FaderUnknown {
		return nil
	}

	address := f.Address()
	first := address + "/mix"
	if f.Kind == FaderDca {
		first = address
	}

	out := make([]osc.Buffer, 0, 2)
	for _, arg := range []string{first, address + "/config"} {
		raw, err := osc.NewMessage("/node", arg).MarshalBinary()
		if err != nil {
			continue
		}
		out = append(out, raw)
	}
	return out
}

// MarshalJSON encodes the index with its bank name and default label.
func (f FaderIndex) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Index int    `json:"index"`
		Type  string `json:"type"`
		Name  string `json:"name"`
	}{f.Index, f.Kind.String(), f.DefaultLabel()})
}

// Fader is the tracked state of one fader strip.
type Fader struct {
	source FaderIndex
	label  string
	level  float32
	on     bool
	color  FaderColor
}

// NewFader returns a fader at the bottom of its travel, muted, with a
// blank label and the default White color.
func NewFader(source FaderIndex) Fader {
	return Fader{source: source, color: ColorWhite}
}

// Source returns the fader's index.
func (f *Fader) Source() FaderIndex { return f.source }

// Name returns the scribble strip label, or the bank default when the
// strip is blank.
func (f *Fader) Name() string {
	if f.label == "" {
		return f.source.DefaultLabel()
	}
	return f.label
}

// Level returns the fader position and its display string.
func (f *Fader) Level() (float32, string) {
	return f.level, LevelToString(f.level)
}

// IsOn returns the mute state and its display string.
func (f *Fader) IsOn() (bool, string) {
	if f.on {
		return true, "ON"
	}
	return false, "OFF"
}

// Color returns the scribble strip color.
func (f *Fader) Color() FaderColor { return f.color }

// apply merges a partial update. Absent fields keep their prior values.
func (f *Fader) apply(u FaderUpdate) {
	if u.Level != nil {
		f.level = *u.Level
	}
	if u.On != nil {
		f.on = *u.On
	}
	if u.Label != nil {
		f.label = *u.Label
	}
	if u.Color != nil {
		f.color = *u.Color
	}
}

// StatusMessage renders the fader as the single-line status message the
// mirror emits to its own consumers.
func (f *Fader) StatusMessage() *osc.Message {
	_, on := f.IsOn()
	_, level := f.Level()
	return osc.NewMessage(f.source.MirrorAddress(),
		fmt.Sprintf("[%02d] %3s %8s %s", f.source.Index, on, level, f.Name()))
}

// MarshalJSON encodes the fader's full display state.
func (f Fader) MarshalJSON() ([]byte, error) {
	_, level := f.Level()
	on, _ := f.IsOn()
	return json.Marshal(struct {
		Source FaderIndex `json:"source"`
		Color  FaderColor `json:"color"`
		Level  string     `json:"level"`
		IsOn   bool       `json:"is_on"`
		Label  string     `json:"label"`
	}{f.source, f.color, level, on, f.label})
}

// FaderBank is the full set of faders on the console surface.
type FaderBank struct {
	main    [2]Fader
	matrix  [6]Fader
	aux     [8]Fader
	dca     [8]Fader
	bus     [16]Fader
	channel [32]Fader
}

// NewFaderBank returns a bank with every fader in its initial state.
func NewFaderBank() FaderBank {
	var b FaderBank
	initBank := func(faders []Fader, kind FaderKind) {
		for i := range faders {
			faders[i] = NewFader(FaderIndex{Kind: kind, Index: i + 1})
		}
	}
	initBank(b.main[:], FaderMain)
	initBank(b.matrix[:], FaderMatrix)
	initBank(b.aux[:], FaderAux)
	initBank(b.dca[:], FaderDca)
	initBank(b.bus[:], FaderBus)
	initBank(b.channel[:], FaderChannel)
	return b
}

// Get returns the fader at the given index, or nil for an unknown or out
// of range index.
func (b *FaderBank) Get(idx FaderIndex) *Fader {
	var faders []Fader
	switch idx.Kind {
	case FaderAux:
		faders = b.aux[:]
	case FaderMatrix:
		faders = b.matrix[:]
	case FaderMain:
		faders = b.main[:]
	case FaderChannel:
		faders = b.channel[:]
	case FaderDca:
		faders = b.dca[:]
	case FaderBus:
		faders = b.bus[:]
	default:
		return nil
	}

	i := idx.Index - 1
	if i < 0 || i >= len(faders) {
		return nil
	}
	return &faders[i]
}

// Update merges a partial update into its fader. Updates addressed to a
// fader that does not exist are dropped.
func (b *FaderBank) Update(u FaderUpdate) *Fader {
	fader := b.Get(u.Source)
	if fader == nil {
		return nil
	}
	fader.apply(u)
	return fader
}

// Reset blanks every label and returns every fader to the bottom of its
// travel, muted. Colors are left alone: the scribble strip keeps its color
// across a show change on the console itself.
func (b *FaderBank) Reset() {
	for _, faders := range [][]Fader{
		b.main[:], b.matrix[:], b.aux[:], b.dca[:], b.bus[:], b.channel[:],
	} {
		for i := range faders {
			faders[i].label = ""
			faders[i].level = 0
			faders[i].on = false
		}
	}
}
