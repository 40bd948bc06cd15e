package osc

import (
	"bytes"
	"errors"
	"testing"
)

func TestBufferNext(t *testing.T) {
	for _, tt := range []struct {
		name    string
		buf     Buffer
		n       int
		want    []byte
		rest    int
		wantErr error
	}{
		{"zero read on empty", Buffer{}, 0, nil, 0, nil},
		{"zero read leaves buffer", Buffer{1, 2, 3, 4}, 0, nil, 4, nil},
		{"exact", Buffer{1, 2, 3, 4}, 4, []byte{1, 2, 3, 4}, 0, nil},
		{"prefix", Buffer{1, 2, 3, 4, 5, 6, 7, 8}, 4, []byte{1, 2, 3, 4}, 4, nil},
		{"empty", Buffer{}, 4, nil, 0, ErrUnderrun},
		{"misaligned buffer", Buffer{1, 2, 3}, 4, nil, 3, ErrNotFourByte},
		{"misaligned length", Buffer{1, 2, 3, 4}, 3, nil, 4, ErrNotFourByte},
		{"short", Buffer{1, 2, 3, 4}, 8, nil, 4, ErrUnderrun},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.buf.Next(tt.n)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Next() error = %v, want %v", err, tt.wantErr)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Next() = %v, want %v", got, tt.want)
			}
			if tt.buf.Len() != tt.rest {
				t.Errorf("Len() after Next = %d, want %d", tt.buf.Len(), tt.rest)
			}
		})
	}
}

func TestBufferNextString(t *testing.T) {
	for _, tt := range []struct {
		name    string
		buf     Buffer
		want    []byte
		rest    int
		wantErr error
	}{
		{"single chunk", Buffer("abc\x00"), []byte("abc\x00"), 0, nil},
		{"all nulls chunk", Buffer{0, 0, 0, 0}, []byte{0, 0, 0, 0}, 0, nil},
		{"two chunks", Buffer("abcdef\x00\x00ZZZZ"), []byte("abcdef\x00\x00"), 4, nil},
		{"full pad chunk", Buffer("abcd\x00\x00\x00\x00"), []byte("abcd\x00\x00\x00\x00"), 0, nil},
		{"empty", Buffer{}, nil, 0, ErrUnderrun},
		{"misaligned", Buffer("ab\x00"), nil, 3, ErrNotFourByte},
		{"unterminated", Buffer("abcdefgh"), nil, 0, ErrUnterminatedString},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.buf.NextString()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NextString() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("NextString() = %q, want %q", got, tt.want)
			}
			if tt.buf.Len() != tt.rest {
				t.Errorf("Len() after NextString = %d, want %d", tt.buf.Len(), tt.rest)
			}
		})
	}
}

func TestBufferNextBlock(t *testing.T) {
	for _, tt := range []struct {
		name    string
		buf     Buffer
		want    Buffer
		rest    int
		wantErr error
	}{
		{"aligned content", Buffer{0, 0, 0, 4, 1, 2, 3, 4}, Buffer{1, 2, 3, 4}, 0, nil},
		{"padded content", Buffer{0, 0, 0, 3, 1, 2, 3, 0}, Buffer{1, 2, 3}, 0, nil},
		{"empty block", Buffer{0, 0, 0, 0, 9, 9, 9, 9}, Buffer{}, 4, nil},
		{"trailing data", Buffer{0, 0, 0, 4, 1, 2, 3, 4, 5, 6, 7, 8}, Buffer{1, 2, 3, 4}, 4, nil},
		{"short prefix", Buffer{}, nil, 0, ErrUnderrun},
		{"misaligned", Buffer{0, 0, 0, 4, 1, 2, 3}, nil, 7, ErrNotFourByte},
		{"declared too long", Buffer{0, 0, 0, 8, 1, 2, 3, 4}, nil, 8, ErrUnderrun},
		{"negative length", Buffer{0xff, 0xff, 0xff, 0xff, 1, 2, 3, 4}, nil, 8, ErrUnderrun},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.buf.NextBlock()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NextBlock() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("NextBlock() = %v, want %v", got, tt.want)
			}
			if tt.buf.Len() != tt.rest {
				t.Errorf("Len() after NextBlock = %d, want %d", tt.buf.Len(), tt.rest)
			}
		})
	}
}

func TestBufferNextBlockWithSize(t *testing.T) {
	buf := Buffer{0, 0, 0, 3, 1, 2, 3, 0, 0xde, 0xad, 0xbe, 0xef}
	got, err := buf.NextBlockWithSize()
	if err != nil {
		t.Fatalf("NextBlockWithSize() error = %v", err)
	}
	if want := []byte{0, 0, 0, 3, 1, 2, 3, 0}; !bytes.Equal(got, want) {
		t.Errorf("NextBlockWithSize() = %v, want %v", got, want)
	}
	if buf.Len() != 4 {
		t.Errorf("Len() after NextBlockWithSize = %d, want 4", buf.Len())
	}
}

func TestBufferIsBundle(t *testing.T) {
	if !Buffer("#bundle\x00\x00\x00\x00\x00\x00\x00\x00\x01").IsBundle() {
		t.Error("IsBundle() = false for bundle buffer")
	}
	if Buffer("/status\x00").IsBundle() {
		t.Error("IsBundle() = true for message buffer")
	}
}

func TestBufferAppend(t *testing.T) {
	buf := Buffer{1, 2, 3, 4}
	buf.Append(Buffer{5, 6, 7, 8})
	want := Buffer{1, 2, 3, 4, 5, 6, 7, 8}
	if !bytes.Equal(buf, want) {
		t.Errorf("Append() = %v, want %v", buf, want)
	}
}

func TestPadBytesNeeded(t *testing.T) {
	for n, want := range map[int]int{0: 0, 1: 3, 2: 2, 3: 1, 4: 0, 5: 3, 8: 0} {
		if got := padBytesNeeded(n); got != want {
			t.Errorf("padBytesNeeded(%d) = %d, want %d", n, got, want)
		}
	}
}
