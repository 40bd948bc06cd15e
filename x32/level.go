package x32

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// levelPattern extracts the leading numeric token of a node level field,
// such as the "-10.2" of "-10.2 dB".
var levelPattern = regexp.MustCompile(`^[+\-0-9.]+`)

// LevelToString renders a fader position in 0.0-1.0 as the dB string the
// console displays. The taper is piecewise linear in four ranges; the
// arithmetic stays in 32-bit floats to match the console's own rounding.
func LevelToString(v float32) string {
	var db float32
	switch {
	case v >= 0.5:
		db = v*40 - 30
	case v >= 0.25:
		db = v*80 - 50
	case v >= 0.0625:
		db = v*160 - 70
	default:
		db = v*480 - 90
	}

	switch {
	case db >= -0.05 && db <= 0.05:
		return "+0.0 dB"
	case db <= -89.9:
		return "-oo dB"
	case db < 0:
		return fmt.Sprintf("%.1f dB", db)
	default:
		return fmt.Sprintf("+%.1f dB", db)
	}
}

// LevelFromString parses a console dB string back to a fader position.
// The result is quantized to the fader's 1024 physical steps and then
// rounded to four decimal places, matching what the console itself would
// report for the same position. Unparseable input maps to 0.
func LevelFromString(input string) float32 {
	if strings.HasPrefix(input, "-oo") {
		return 0
	}

	token := levelPattern.FindString(input)
	if token == "" {
		return 0
	}

	var lvl float32
	if d, err := strconv.ParseFloat(token, 32); err == nil {
		db := float32(d)
		switch {
		case db < -60:
			lvl = (db + 90) / 480
		case db < -30:
			lvl = (db + 70) / 160
		case db < -10:
			lvl = (db + 50) / 80
		default:
			lvl = (db + 30) / 40
		}
	}

	lvl = float32(math.Trunc(float64(lvl*1023.5))) / 1023
	return float32(math.Round(float64(lvl*10000))) / 10000
}

// isOnFromString maps the console's mute field to a bool. Anything other
// than "ON" is off.
func isOnFromString(v string) bool { return v == "ON" }
