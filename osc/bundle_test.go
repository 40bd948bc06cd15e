package osc

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func TestBundleMarshalBinary(t *testing.T) {
	for _, tt := range []struct {
		name   string
		bundle *Bundle
		want   []byte
	}{
		{
			"empty bundle",
			NewBundle(Timetag(1)),
			append([]byte("#bundle\x00"), 0, 0, 0, 0, 0, 0, 0, 1),
		},
		{
			"single message",
			NewBundle(Timetag(1), NewMessage("/test/a", int32(5))),
			append(append([]byte("#bundle\x00"),
				0, 0, 0, 0, 0, 0, 0, 1,
				0, 0, 0, 16),
				[]byte("/test/a\x00,i\x00\x00\x00\x00\x00\x05")...),
		},
		{
			"two messages",
			NewBundle(Timetag(1), NewMessage("/test/a", int32(5)), NewMessage("/status")),
			append(append(append([]byte("#bundle\x00"),
				0, 0, 0, 0, 0, 0, 0, 1,
				0, 0, 0, 16),
				[]byte("/test/a\x00,i\x00\x00\x00\x00\x00\x05")...),
				0, 0, 0, 8, '/', 's', 't', 'a', 't', 'u', 's', 0),
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.bundle.MarshalBinary()
			if err != nil {
				t.Fatalf("MarshalBinary() error = %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("MarshalBinary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBundleUnmarshalBinary(t *testing.T) {
	for _, tt := range []struct {
		name    string
		raw     []byte
		want    *Bundle
		wantErr error
	}{
		{
			"empty bundle",
			append([]byte("#bundle\x00"), 0, 0, 0, 0, 0, 0, 0, 1),
			&Bundle{Timetag: 1},
			nil,
		},
		{
			"single message",
			append(append([]byte("#bundle\x00"),
				0, 0, 0, 0, 0, 0, 0, 1,
				0, 0, 0, 16),
				[]byte("/test/a\x00,i\x00\x00\x00\x00\x00\x05")...),
			NewBundle(Timetag(1), NewMessage("/test/a", int32(5))),
			nil,
		},
		{
			"misaligned",
			[]byte("#bundle\x00\x00"),
			nil,
			ErrNotFourByte,
		},
		{
			"wrong tag",
			append([]byte("#bundlee"), 0, 0, 0, 0, 0, 0, 0, 1),
			nil,
			ErrInvalidBuffer,
		},
		{
			"missing timetag",
			append([]byte("#bundle\x00"), 0, 0, 0, 1),
			nil,
			ErrInvalidBuffer,
		},
		{
			"truncated element",
			append([]byte("#bundle\x00"), 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 16),
			nil,
			ErrInvalidBuffer,
		},
		{
			"element is not a packet",
			append([]byte("#bundle\x00"), 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 4, 0, 0, 0, 0),
			nil,
			ErrInvalidBuffer,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got := &Bundle{}
			err := got.UnmarshalBinary(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("UnmarshalBinary() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("UnmarshalBinary() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBundleNestedRoundTrip(t *testing.T) {
	inner := NewBundle(Timetag(2), NewMessage("/inner", "deep"))
	want := NewBundle(Timetag(1), NewMessage("/outer", int32(1)), inner)

	raw, err := want.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}
	got := &Bundle{}
	if err := got.UnmarshalBinary(raw); err != nil {
		t.Fatalf("UnmarshalBinary() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestBundleAppend(t *testing.T) {
	b := NewBundle(Timetag(1))
	b.Append(NewMessage("/a"))
	b.Append(NewBundle(Timetag(2)))
	if len(b.Elements) != 2 {
		t.Errorf("len(Elements) = %d, want 2", len(b.Elements))
	}
}
