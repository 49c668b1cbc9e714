// Package agent implements the speech-segmentation and echo-playback state
// machine: energy VAD on inbound frames, silence-triggered segment
// finalization, delayed cancellable playback, interruption on new speech, and
// a periodic silence reminder.
package agent

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Ajayyy18/livekit-voice-agent/internal/audio"
	"github.com/Ajayyy18/livekit-voice-agent/internal/vad"
)

// playback is the handle for one scheduled echo run. At most one exists at a
// time; cancelling it stops the pre-playback delay or the emission loop at
// the next frame boundary.
type playback struct {
	cancel context.CancelFunc
}

// Agent owns the live speech buffer and drives the echo lifecycle. All shared
// state is guarded by one mutex; no lock is held across sleeps or sink calls.
type Agent struct {
	det     *vad.Detector
	sink    FrameSink
	opts    Options
	onEvent func(Event)

	mu         sync.Mutex
	buffer     []audio.Frame
	collecting bool
	lastSpeech time.Time
	active     *playback
	playing    bool
}

// New constructs an Agent. onEvent may be nil; when set it is invoked inline
// on state transitions and must not block.
func New(opts Options, sink FrameSink, onEvent func(Event)) (*Agent, error) {
	if sink == nil {
		return nil, errors.New("agent: sink is required")
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Agent{
		det:        vad.NewDetector(opts.EnergyThreshold),
		sink:       sink,
		opts:       opts,
		onEvent:    onEvent,
		lastSpeech: time.Now(),
	}, nil
}

// Start launches the monitor and reminder loops. They run until ctx is done.
func (a *Agent) Start(ctx context.Context) {
	go a.monitorLoop(ctx)
	go a.reminderLoop(ctx)
}

// OnFrame is the inbound boundary: one call per frame arriving from the
// transport. Silence frames are ignored; speech frames interrupt any active
// playback before being buffered.
func (a *Agent) OnFrame(f audio.Frame) {
	if !a.det.Classify(f) {
		return
	}

	a.mu.Lock()
	cancelled := false
	if p := a.active; p != nil {
		a.active = nil
		p.cancel()
		cancelled = true
	}
	a.buffer = append(a.buffer, f)
	a.collecting = true
	a.lastSpeech = time.Now()
	n := len(a.buffer)
	a.mu.Unlock()

	if cancelled {
		// drop queued outbound audio so the interruption is heard immediately
		a.sink.Reset()
	}
	a.emit(Event{Kind: EventSpeech, At: time.Now(), Frames: n})
}

// Snapshot returns the current agent state for the ops surface.
func (a *Agent) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Snapshot{
		Collecting:             a.collecting,
		BufferedFrames:         len(a.buffer),
		PlaybackActive:         a.playing,
		SecondsSinceLastSpeech: time.Since(a.lastSpeech).Seconds(),
	}
}

// monitorLoop finalizes the live buffer once speech has stopped for longer
// than the silence threshold.
func (a *Agent) monitorLoop(ctx context.Context) {
	ticker := time.NewTicker(a.opts.MonitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		a.mu.Lock()
		if !a.collecting || len(a.buffer) == 0 || time.Since(a.lastSpeech) <= a.opts.SilenceThreshold {
			a.mu.Unlock()
			continue
		}
		// atomic snapshot+clear: no frame can be both replayed and retained
		segment := a.buffer
		a.buffer = nil
		a.collecting = false
		playCtx, cancel := context.WithCancel(ctx)
		p := &playback{cancel: cancel}
		a.active = p
		a.mu.Unlock()

		log.Printf("speech ended | segment: %d frames", len(segment))
		a.emit(Event{Kind: EventSegmentFinalized, At: time.Now(), Frames: len(segment)})
		go a.play(playCtx, p, segment)
	}
}

// play waits out the echo delay, then emits the segment frame by frame, each
// paced by its own duration. Cancellation is checked between frames only.
func (a *Agent) play(ctx context.Context, p *playback, segment []audio.Frame) {
	defer p.cancel()

	select {
	case <-ctx.Done():
		a.finishPlayback(p)
		return
	case <-time.After(a.opts.EchoDelay):
	}

	a.mu.Lock()
	interrupted := a.active != p
	if !interrupted {
		a.playing = true
	}
	a.mu.Unlock()
	if interrupted {
		return
	}

	log.Printf("playing %d frames", len(segment))
	a.emit(Event{Kind: EventPlaybackStarted, At: time.Now(), Frames: len(segment)})

	for _, f := range segment {
		select {
		case <-ctx.Done():
			a.finishPlayback(p)
			log.Printf("playback interrupted")
			a.emit(Event{Kind: EventPlaybackInterrupted, At: time.Now()})
			return
		default:
		}
		if err := a.sink.Emit(f); err != nil {
			a.finishPlayback(p)
			log.Printf("playback sink error: %v", err)
			return
		}
		select {
		case <-ctx.Done():
			a.finishPlayback(p)
			log.Printf("playback interrupted")
			a.emit(Event{Kind: EventPlaybackInterrupted, At: time.Now()})
			return
		case <-time.After(f.Duration()):
		}
	}

	a.finishPlayback(p)
	log.Printf("playback finished")
	a.emit(Event{Kind: EventPlaybackFinished, At: time.Now(), Frames: len(segment)})
}

// finishPlayback clears the handle and PlaybackActive, but only if the handle
// still belongs to this run; a newer run may already have replaced it.
func (a *Agent) finishPlayback(p *playback) {
	a.mu.Lock()
	if a.active == p {
		a.active = nil
	}
	a.playing = false
	a.mu.Unlock()
}

// reminderLoop nudges a silent participant with a synthesized tone.
func (a *Agent) reminderLoop(ctx context.Context) {
	ticker := time.NewTicker(a.opts.ReminderInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		a.mu.Lock()
		due := !a.collecting && time.Since(a.lastSpeech) > a.opts.ReminderThreshold
		a.mu.Unlock()
		if !due {
			continue
		}

		tone := audio.Tone(a.opts.ToneFrequency, a.opts.ToneDuration, a.opts.ToneSampleRate)
		if err := a.sink.Emit(tone); err != nil {
			log.Printf("reminder sink error: %v", err)
			continue
		}
		a.mu.Lock()
		a.lastSpeech = time.Now()
		a.mu.Unlock()
		log.Printf("silence reminder emitted")
		a.emit(Event{Kind: EventReminder, At: time.Now()})
	}
}

func (a *Agent) emit(ev Event) {
	if a.onEvent != nil {
		a.onEvent(ev)
	}
}
