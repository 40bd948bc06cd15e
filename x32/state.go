package x32

import (
	"fmt"

	"github.com/chabad360/go-x32/osc"
)

// List capacities fixed by the console's own addressable ID space.
const (
	cueListSize     = 500
	sceneListSize   = 100
	snippetListSize = 100
)

// ShowCue is one stored row of the cue list. Scene and Snippet are linked
// list indices, or -1 for unlinked.
type ShowCue struct {
	Number  string
	Name    string
	Scene   int
	Snippet int
}

// ResultKind classifies what a processed packet changed.
type ResultKind int

const (
	// NoOperation means the packet changed nothing a host would display
	// directly. List rows and show mode updates land here: they are
	// applied, but only matter once the running cue moves.
	NoOperation ResultKind = iota
	// FaderChanged means a fader's state was updated.
	FaderChanged
	// CueChanged means the running cue moved.
	CueChanged
	// MeterSamples means a meter packet arrived; meters are not stored.
	MeterSamples
)

// ProcessResult reports what one processed packet did, so hosts can react
// to just the updates they display.
type ProcessResult struct {
	Kind ResultKind

	// Fader is the updated fader, for FaderChanged.
	Fader *Fader
	// Display is the refreshed active cue line, for CueChanged.
	Display string
	// Meters carries the samples of a MeterSamples result.
	Meters MeterUpdate
}

// Console is a passive mirror of one X32's mixer surface and show state.
// It never commands the console; it only applies what the console reports.
type Console struct {
	Faders FaderBank

	cues     [cueListSize]*ShowCue
	scenes   [sceneListSize]*string
	snippets [snippetListSize]*string

	showMode   ShowMode
	currentCue int
}

// NewConsole returns an empty mirror: blank faders, empty lists, cue
// tracking, no running cue.
func NewConsole() *Console {
	return &Console{
		Faders:     NewFaderBank(),
		currentCue: -1,
	}
}

// ProcessBytes parses a raw packet and applies it.
func (c *Console) ProcessBytes(data []byte) []ProcessResult {
	pkt, err := osc.ParsePacket(data)
	if err != nil {
		return nil
	}
	return c.Process(pkt)
}

// Process applies a packet, recursing through bundles, and reports what
// changed. Packets the interpreter rejects are dropped: unimplemented
// patterns are routine console chatter.
func (c *Console) Process(pkt osc.Packet) []ProcessResult {
	switch p := pkt.(type) {
	case *osc.Message:
		update, err := Interpret(p)
		if err != nil {
			return nil
		}
		return []ProcessResult{c.Apply(update)}
	case *osc.Bundle:
		var results []ProcessResult
		for _, elem := range p.Elements {
			results = append(results, c.Process(elem)...)
		}
		return results
	default:
		return nil
	}
}

// Apply merges one interpreted update into the mirror.
func (c *Console) Apply(update ConsoleMessage) ProcessResult {
	switch u := update.(type) {
	case FaderUpdate:
		fader := c.Faders.Update(u)
		if fader == nil {
			return ProcessResult{Kind: NoOperation}
		}
		return ProcessResult{Kind: FaderChanged, Fader: fader}

	case CurrentCueUpdate:
		if u.Index < 0 {
			c.currentCue = -1
		} else {
			c.currentCue = u.Index
		}
		return ProcessResult{Kind: CueChanged, Display: c.ActiveCue()}

	case ShowModeUpdate:
		c.showMode = u.Mode
		return ProcessResult{Kind: NoOperation}

	case CueUpdate:
		if u.Index < cueListSize {
			c.cues[u.Index] = &ShowCue{
				Number:  u.Number,
				Name:    u.Name,
				Scene:   u.Scene,
				Snippet: u.Snippet,
			}
		}
		return ProcessResult{Kind: NoOperation}

	case SceneUpdate:
		if u.Index < sceneListSize {
			name := u.Name
			c.scenes[u.Index] = &name
		}
		return ProcessResult{Kind: NoOperation}

	case SnippetUpdate:
		if u.Index < snippetListSize {
			name := u.Name
			c.snippets[u.Index] = &name
		}
		return ProcessResult{Kind: NoOperation}

	case MeterUpdate:
		return ProcessResult{Kind: MeterSamples, Meters: u}

	default:
		return ProcessResult{Kind: NoOperation}
	}
}

// Fader returns the tracked fader at the given index, or nil.
func (c *Console) Fader(idx FaderIndex) *Fader {
	return c.Faders.Get(idx)
}

// ShowMode returns the tracked show control mode.
func (c *Console) ShowMode() ShowMode { return c.showMode }

// CurrentCue returns the running cue index, or -1 for none.
func (c *Console) CurrentCue() int { return c.currentCue }

// ActiveCue renders the running cue, scene, or snippet as the display
// line the mirror publishes.
func (c *Console) ActiveCue() string {
	switch c.showMode {
	case ShowScenes:
		return fmt.Sprintf("Scene: %s", c.sceneName(c.currentCue))
	case ShowSnippets:
		return fmt.Sprintf("Snippet: %s", c.snippetName(c.currentCue))
	default:
		return fmt.Sprintf("Cue: %s", c.cueName(c.currentCue))
	}
}

// ListCounts returns the number of stored cues, scenes, and snippets.
func (c *Console) ListCounts() (cues, scenes, snippets int) {
	for _, cue := range c.cues {
		if cue != nil {
			cues++
		}
	}
	for _, scene := range c.scenes {
		if scene != nil {
			scenes++
		}
	}
	for _, snippet := range c.snippets {
		if snippet != nil {
			snippets++
		}
	}
	return cues, scenes, snippets
}

// Reset clears the show lists and blanks the faders, as after a console
// show change.
func (c *Console) Reset() {
	c.ClearLists()
	c.Faders.Reset()
}

// ClearLists drops every stored cue, scene, and snippet.
func (c *Console) ClearLists() {
	c.cues = [cueListSize]*ShowCue{}
	c.scenes = [sceneListSize]*string{}
	c.snippets = [snippetListSize]*string{}
}

func (c *Console) cueName(index int) string {
	if index < 0 || index >= cueListSize || c.cues[index] == nil {
		return "0.0.0 :: -- [--] [--]"
	}
	cue := c.cues[index]
	return fmt.Sprintf("%s :: %s [%s] [%s]",
		cue.Number, cue.Name, c.sceneName(cue.Scene), c.snippetName(cue.Snippet))
}

func (c *Console) sceneName(index int) string {
	if index < 0 || index >= sceneListSize || c.scenes[index] == nil {
		return "--"
	}
	return fmt.Sprintf("%02d:%s", index, *c.scenes[index])
}

func (c *Console) snippetName(index int) string {
	if index < 0 || index >= snippetListSize || c.snippets[index] == nil {
		return "--"
	}
	return fmt.Sprintf("%02d:%s", index, *c.snippets[index])
}
