package agent

import (
	"errors"
	"fmt"
	"time"

	"github.com/Ajayyy18/livekit-voice-agent/internal/vad"
)

// Options holds the timing and detection parameters for the echo agent.
// The zero value is not usable; start from DefaultOptions.
type Options struct {
	// EnergyThreshold is the mean absolute amplitude above which an inbound
	// frame counts as speech.
	EnergyThreshold float64
	// SilenceThreshold is the gap without speech after which an in-progress
	// capture is finalized.
	SilenceThreshold time.Duration
	// EchoDelay is the wait between finalizing a segment and starting its
	// playback.
	EchoDelay time.Duration
	// ReminderThreshold is the idle time after which a reminder tone is
	// emitted.
	ReminderThreshold time.Duration
	// ReminderInterval is how often the reminder loop checks for inactivity.
	ReminderInterval time.Duration
	// MonitorInterval is how often the monitor loop checks for end of speech.
	MonitorInterval time.Duration

	ToneFrequency  float64
	ToneDuration   time.Duration
	ToneSampleRate int
}

// DefaultOptions returns the stock echo agent parameters.
func DefaultOptions() Options {
	return Options{
		EnergyThreshold:   vad.DefaultEnergyThreshold,
		SilenceThreshold:  time.Second,
		EchoDelay:         500 * time.Millisecond,
		ReminderThreshold: 20 * time.Second,
		ReminderInterval:  2 * time.Second,
		MonitorInterval:   100 * time.Millisecond,
		ToneFrequency:     440,
		ToneDuration:      500 * time.Millisecond,
		ToneSampleRate:    48000,
	}
}

func (o Options) validate() error {
	if o.EnergyThreshold <= 0 {
		return fmt.Errorf("energy threshold must be positive, got %v", o.EnergyThreshold)
	}
	for name, d := range map[string]time.Duration{
		"silence threshold":  o.SilenceThreshold,
		"echo delay":         o.EchoDelay,
		"reminder threshold": o.ReminderThreshold,
		"reminder interval":  o.ReminderInterval,
		"monitor interval":   o.MonitorInterval,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %v", name, d)
		}
	}
	if o.MonitorInterval > o.SilenceThreshold {
		return errors.New("monitor interval must not exceed silence threshold")
	}
	if o.ToneFrequency <= 0 || o.ToneDuration <= 0 || o.ToneSampleRate <= 0 {
		return errors.New("tone parameters must be positive")
	}
	return nil
}
