package agent

import (
	"time"

	"github.com/Ajayyy18/livekit-voice-agent/internal/audio"
)

// FrameSink consumes outbound audio frames and performs delivery (e.g., Opus
// encode onto a published track). Implementations must accept frames in the
// order submitted. Reset drops any queued audio immediately so an
// interruption is audible right away.
type FrameSink interface {
	Emit(f audio.Frame) error
	Reset()
}

// EventKind labels agent lifecycle events for observers.
type EventKind string

const (
	EventSpeech              EventKind = "speech"
	EventSegmentFinalized    EventKind = "segment_finalized"
	EventPlaybackStarted     EventKind = "playback_started"
	EventPlaybackFinished    EventKind = "playback_finished"
	EventPlaybackInterrupted EventKind = "playback_interrupted"
	EventReminder            EventKind = "reminder"
)

// Event describes a state transition in the echo agent. Frames carries the
// buffer or segment length where that is meaningful, zero otherwise.
type Event struct {
	Kind   EventKind `json:"kind"`
	At     time.Time `json:"at"`
	Frames int       `json:"frames,omitempty"`
}

// Snapshot is a point-in-time view of the agent state for the ops surface.
type Snapshot struct {
	Collecting             bool    `json:"collecting"`
	BufferedFrames         int     `json:"bufferedFrames"`
	PlaybackActive         bool    `json:"playbackActive"`
	SecondsSinceLastSpeech float64 `json:"secondsSinceLastSpeech"`
}
