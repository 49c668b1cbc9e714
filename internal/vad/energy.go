// Package vad provides energy-based voice activity detection over PCM frames.
package vad

import "github.com/Ajayyy18/livekit-voice-agent/internal/audio"

// DefaultEnergyThreshold is the mean absolute amplitude above which a frame
// counts as speech, on the 16-bit signed PCM scale.
const DefaultEnergyThreshold = 500

// Detector classifies frames as speech or silence by mean absolute sample
// magnitude. It is stateless and safe for concurrent use.
type Detector struct {
	threshold float64
}

// NewDetector returns a Detector with the given energy threshold.
func NewDetector(threshold float64) *Detector {
	return &Detector{threshold: threshold}
}

// Classify reports whether the frame contains speech. Empty or all-zero
// frames always classify as silence.
func (d *Detector) Classify(f audio.Frame) bool {
	if len(f.Data) == 0 {
		return false
	}
	var sum float64
	for _, s := range f.Data {
		v := float64(s)
		if v < 0 {
			v = -v
		}
		sum += v
	}
	mean := sum / float64(len(f.Data))
	return mean > d.threshold
}
