package osc

import (
	"errors"
	"reflect"
	"testing"
)

func TestParsePacket(t *testing.T) {
	for _, tt := range []struct {
		name    string
		raw     []byte
		want    Packet
		wantErr error
	}{
		{
			"message",
			[]byte("/s\x00\x00,s\x00\x00abc\x00"),
			NewMessage("/s", "abc"),
			nil,
		},
		{
			"bundle",
			append([]byte("#bundle\x00"), 0, 0, 0, 0, 0, 0, 0, 1),
			&Bundle{Timetag: 1},
			nil,
		},
		{
			"empty",
			nil,
			nil,
			ErrUnderrun,
		},
		{
			"misaligned",
			[]byte("/s\x00"),
			nil,
			ErrNotFourByte,
		},
		{
			"bundle prefix with bad framing",
			append([]byte("#bundle\x00"), 0, 0, 0, 1),
			nil,
			ErrInvalidBuffer,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePacket(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParsePacket() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParsePacket() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func FuzzParsePacket(f *testing.F) {
	f.Add([]byte("/s\x00\x00,s\x00\x00abc\x00"))
	f.Add([]byte("/status\x00"))
	f.Add(append([]byte("#bundle\x00"), 0, 0, 0, 0, 0, 0, 0, 1))
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		pkt, err := ParsePacket(data)
		if err != nil {
			return
		}
		raw, err := pkt.MarshalBinary()
		if err != nil {
			t.Fatalf("MarshalBinary() after successful parse: %v", err)
		}
		reparsed, err := ParsePacket(raw)
		if err != nil {
			t.Fatalf("ParsePacket() of re-encoded packet: %v", err)
		}
		if !reflect.DeepEqual(pkt, reparsed) {
			t.Errorf("re-encode round trip mismatch: %+v != %+v", pkt, reparsed)
		}
	})
}
