package osc

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

const (
	// Seconds between 1900-01-01T00:00:00 (the NTP/OSC epoch) and
	// 1970-01-01T00:00:00 (the Unix epoch).
	secondsFrom1900To1970 = 2208988800

	// nanosPerSecond is the denominator for the fractional part.
	nanosPerSecond = 1e9
)

// Timetag is an OSC time tag per RFC 5905: the upper 32 bits count seconds
// since 1900-01-01, the lower 32 bits are a fraction of a second with a
// resolution of 1/2^32.
//
// The special value 1 means "immediately".
type Timetag uint64

// NewTimetag builds a time tag from its two raw halves.
func NewTimetag(seconds, fraction uint32) Timetag {
	return Timetag(uint64(seconds)<<32 | uint64(fraction))
}

// TimetagFromTime converts an instant to a time tag. Instants before 1900
// or past the 32-bit seconds range cannot be represented and fail.
func TimetagFromTime(t time.Time) (Timetag, error) {
	secs := t.Unix() + secondsFrom1900To1970
	if secs < 0 {
		return 0, fmt.Errorf("TimetagFromTime: %w", ErrTimeUnderflow)
	}
	if secs > math.MaxUint32 {
		return 0, fmt.Errorf("TimetagFromTime: %w", ErrTimeOverflow)
	}

	frac := uint64(math.Round(float64(t.Nanosecond()) * (1 << 32) / nanosPerSecond))
	if frac > math.MaxUint32 {
		secs++
		frac = 0
		if secs > math.MaxUint32 {
			return 0, fmt.Errorf("TimetagFromTime: %w", ErrTimeOverflow)
		}
	}
	return NewTimetag(uint32(secs), uint32(frac)), nil
}

// TimetagNow returns a time tag for the current instant. The current time
// is always in range so the conversion cannot fail.
func TimetagNow() Timetag {
	tt, _ := TimetagFromTime(time.Now())
	return tt
}

// TimetagFuture returns a time tag the given number of milliseconds from
// now, or the zero tag if the result would not be representable.
func TimetagFuture(ms uint64) Timetag {
	target := time.Now().Add(time.Duration(ms) * time.Millisecond)
	tt, err := TimetagFromTime(target)
	if err != nil {
		return 0
	}
	return tt
}

// SecondsSinceEpoch returns the whole seconds since 1900-01-01.
func (t Timetag) SecondsSinceEpoch() uint32 {
	return uint32(t >> 32)
}

// FractionalSecond returns the raw sub-second half, in units of 1/2^32.
func (t Timetag) FractionalSecond() uint32 {
	return uint32(t)
}

// Time converts the time tag back to a time.Time.
func (t Timetag) Time() time.Time {
	secs := int64(t.SecondsSinceEpoch()) - secondsFrom1900To1970
	nanos := int64(math.Round(float64(t.FractionalSecond()) * nanosPerSecond / (1 << 32)))
	return time.Unix(secs, nanos)
}

// MarshalBinary returns the 8-byte big-endian wire form.
func (t Timetag) MarshalBinary() ([]byte, error) {
	out := make([]byte, bit64Size)
	binary.BigEndian.PutUint64(out, uint64(t))
	return out, nil
}

// String implements fmt.Stringer.
func (t Timetag) String() string {
	return fmt.Sprintf("[%d, %d]", t.SecondsSinceEpoch(), t.FractionalSecond())
}
