package vad

import (
	"testing"

	"github.com/Ajayyy18/livekit-voice-agent/internal/audio"
)

func frameWithLevel(level int16, n int) audio.Frame {
	data := make([]int16, n)
	for i := range data {
		if i%2 == 0 {
			data[i] = level
		} else {
			data[i] = -level
		}
	}
	return audio.Frame{Data: data, SampleRate: 48000, NumChannels: 1, SamplesPerChannel: n}
}

func TestDetector_Classify(t *testing.T) {
	d := NewDetector(500)
	if !d.Classify(frameWithLevel(1000, 480)) {
		t.Fatalf("expected speech at level 1000")
	}
	if d.Classify(frameWithLevel(100, 480)) {
		t.Fatalf("expected silence at level 100")
	}
	// mean exactly at the threshold is not speech
	if d.Classify(frameWithLevel(500, 480)) {
		t.Fatalf("expected silence at the exact threshold")
	}
}

func TestDetector_EmptyAndZeroFrames(t *testing.T) {
	d := NewDetector(500)
	if d.Classify(audio.Frame{}) {
		t.Fatalf("expected empty frame to be silence")
	}
	if d.Classify(frameWithLevel(0, 480)) {
		t.Fatalf("expected all-zero frame to be silence")
	}
}
