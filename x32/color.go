package x32

import "fmt"

// FaderColor is a scribble strip color. The console encodes the eight base
// colors as 0-7 and their inverted (dark text on lit background) variants
// as 8-15.
type FaderColor uint8

const (
	ColorOff FaderColor = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOffInverted
	ColorRedInverted
	ColorGreenInverted
	ColorYellowInverted
	ColorBlueInverted
	ColorMagentaInverted
	ColorCyanInverted
	ColorWhiteInverted
)

var colorNames = [...]string{
	"Off", "Red", "Green", "Yellow", "Blue", "Magenta", "Cyan", "White",
	"OffInverted", "RedInverted", "GreenInverted", "YellowInverted",
	"BlueInverted", "MagentaInverted", "CyanInverted", "WhiteInverted",
}

// colorTokens are the console's short string codes, in integer-code order.
var colorTokens = [...]string{"OFF", "RD", "GN", "YE", "BL", "MG", "CY", "WH"}

// ColorFromInt maps a console color code to a FaderColor. Codes outside
// 0-15 map to White.
func ColorFromInt(v int32) FaderColor {
	if v < 0 || v > 15 {
		return ColorWhite
	}
	return FaderColor(v)
}

// ColorFromString maps a console color token (such as "RD" or "GNi") to a
// FaderColor. Unrecognized tokens map to White.
func ColorFromString(s string) FaderColor {
	inverted := false
	if len(s) > 1 && s[len(s)-1] == 'i' {
		inverted = true
		s = s[:len(s)-1]
	}
	for i, token := range colorTokens {
		if s == token {
			c := FaderColor(i)
			if inverted {
				c += ColorOffInverted
			}
			return c
		}
	}
	return ColorWhite
}

// String implements fmt.Stringer.
func (c FaderColor) String() string {
	if int(c) >= len(colorNames) {
		return "White"
	}
	return colorNames[c]
}

// MarshalJSON encodes the color as its name.
func (c FaderColor) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", c.String())), nil
}
