package audio

import (
	"math"
	"time"
)

// Frame is a single immutable chunk of PCM audio as it arrives from or is
// handed to a transport track. Data holds interleaved 16-bit samples.
type Frame struct {
	Data              []int16
	SampleRate        int
	NumChannels       int
	SamplesPerChannel int
}

// Duration returns the playout time of the frame at its own sample rate.
func (f Frame) Duration() time.Duration {
	if f.SampleRate <= 0 || f.SamplesPerChannel <= 0 {
		return 0
	}
	return time.Duration(f.SamplesPerChannel) * time.Second / time.Duration(f.SampleRate)
}

// Empty reports whether the frame carries no samples.
func (f Frame) Empty() bool { return len(f.Data) == 0 }

// FromPCM16LE decodes little-endian 16-bit PCM bytes into a Frame.
// A trailing odd byte is dropped rather than rejected.
func FromPCM16LE(b []byte, sampleRate, numChannels int) Frame {
	if numChannels <= 0 {
		numChannels = 1
	}
	n := len(b) / 2
	data := make([]int16, n)
	for i := 0; i < n; i++ {
		data[i] = int16(uint16(b[2*i]) | uint16(b[2*i+1])<<8)
	}
	return Frame{
		Data:              data,
		SampleRate:        sampleRate,
		NumChannels:       numChannels,
		SamplesPerChannel: n / numChannels,
	}
}

// Tone synthesizes a mono sine frame at full 16-bit scale.
func Tone(frequency float64, duration time.Duration, sampleRate int) Frame {
	samples := int(float64(sampleRate) * duration.Seconds())
	if samples < 0 {
		samples = 0
	}
	data := make([]int16, samples)
	phaseInc := 2 * math.Pi * frequency / float64(sampleRate)
	phase := 0.0
	for i := range data {
		data[i] = int16(math.Sin(phase) * 32767)
		phase += phaseInc
	}
	return Frame{
		Data:              data,
		SampleRate:        sampleRate,
		NumChannels:       1,
		SamplesPerChannel: samples,
	}
}
