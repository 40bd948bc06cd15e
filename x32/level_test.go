package x32

import "testing"

// knownLevels pairs fader positions (quantized to the fader's 1024 steps
// and four decimals) with their display strings. The table covers all
// four taper ranges and both signs of the dB axis.
var knownLevels = []struct {
	level   float32
	display string
}{
	{0.0000, "-oo dB"},
	{0.0010, "-89.5 dB"},
	{0.0196, "-80.6 dB"},
	{0.0411, "-70.3 dB"},
	{0.0518, "-65.1 dB"},
	{0.0616, "-60.4 dB"},
	{0.0899, "-55.6 dB"},
	{0.1232, "-50.3 dB"},
	{0.1505, "-45.9 dB"},
	{0.1867, "-40.1 dB"},
	{0.2141, "-35.7 dB"},
	{0.2454, "-30.7 dB"},
	{0.3060, "-25.5 dB"},
	{0.3734, "-20.1 dB"},
	{0.4301, "-15.6 dB"},
	{0.4946, "-10.4 dB"},
	{0.6197, "-5.2 dB"},
	{0.7478, "-0.1 dB"},
	{0.7498, "+0.0 dB"},
	{0.7527, "+0.1 dB"},
	{0.7752, "+1.0 dB"},
	{0.7996, "+2.0 dB"},
	{0.8250, "+3.0 dB"},
	{0.8495, "+4.0 dB"},
	{0.8749, "+5.0 dB"},
	{0.9003, "+6.0 dB"},
	{0.9746, "+9.0 dB"},
	{1.0000, "+10.0 dB"},
}

func TestLevelConversion(t *testing.T) {
	for _, tt := range knownLevels {
		if got := LevelToString(tt.level); got != tt.display {
			t.Errorf("LevelToString(%v) = %q, want %q", tt.level, got, tt.display)
		}
		if got := LevelFromString(tt.display); got != tt.level {
			t.Errorf("LevelFromString(%q) = %v, want %v", tt.display, got, tt.level)
		}
	}
}

func TestLevelFromStringEdgeCases(t *testing.T) {
	for _, tt := range []struct {
		input string
		want  float32
	}{
		{"-oo dB", 0},
		{"-oo", 0},
		{"garbage", 0},
		{"", 0},
		{"+0.0 dB", 0.7498},
		{"-10.2 trailing text", 0.4976},
	} {
		if got := LevelFromString(tt.input); got != tt.want {
			t.Errorf("LevelFromString(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsOnFromString(t *testing.T) {
	if !isOnFromString("ON") {
		t.Error(`isOnFromString("ON") = false`)
	}
	for _, s := range []string{"OFF", "on", ""} {
		if isOnFromString(s) {
			t.Errorf("isOnFromString(%q) = true", s)
		}
	}
}
