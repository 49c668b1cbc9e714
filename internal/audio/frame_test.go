package audio

import (
	"testing"
	"time"
)

func TestFrame_Duration(t *testing.T) {
	f := Frame{SampleRate: 48000, SamplesPerChannel: 480}
	if got := f.Duration(); got != 10*time.Millisecond {
		t.Fatalf("expected 10ms, got %v", got)
	}
	var zero Frame
	if zero.Duration() != 0 {
		t.Fatalf("expected zero duration for empty frame")
	}
}

func TestFromPCM16LE(t *testing.T) {
	// 0x0100 = 256, 0xFF7F = 32767
	f := FromPCM16LE([]byte{0x00, 0x01, 0xFF, 0x7F}, 48000, 1)
	if len(f.Data) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(f.Data))
	}
	if f.Data[0] != 256 || f.Data[1] != 32767 {
		t.Fatalf("unexpected samples: %v", f.Data)
	}
	if f.SamplesPerChannel != 2 {
		t.Fatalf("expected 2 samples per channel, got %d", f.SamplesPerChannel)
	}
}

func TestFromPCM16LE_OddTrailingByte(t *testing.T) {
	f := FromPCM16LE([]byte{0x01, 0x00, 0x7F}, 16000, 1)
	if len(f.Data) != 1 {
		t.Fatalf("expected trailing byte dropped, got %d samples", len(f.Data))
	}
}

func TestTone(t *testing.T) {
	f := Tone(440, 500*time.Millisecond, 48000)
	if len(f.Data) != 24000 {
		t.Fatalf("expected 24000 samples, got %d", len(f.Data))
	}
	if f.Duration() != 500*time.Millisecond {
		t.Fatalf("expected 500ms tone, got %v", f.Duration())
	}
	var peak int16
	for _, s := range f.Data {
		if s > peak {
			peak = s
		}
	}
	// full-scale sine should come close to the int16 ceiling
	if peak < 30000 {
		t.Fatalf("expected near full-scale peak, got %d", peak)
	}
}
