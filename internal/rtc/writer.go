package rtc

import (
	"fmt"
	"sync"
	"time"

	"github.com/hraban/opus"
	lksdk "github.com/livekit/server-sdk-go/v2"
	"github.com/pion/webrtc/v4/pkg/media"

	"github.com/Ajayyy18/livekit-voice-agent/internal/audio"
)

const (
	trackSampleRate = 48000
	frameSamples    = 960 // 20ms at 48kHz
	pacerInterval   = 20 * time.Millisecond
)

// SampleTrack is the subset of the published track the writer needs.
type SampleTrack interface {
	WriteSample(sample media.Sample, opts *lksdk.SampleWriteOptions) error
}

// OpusTrackWriter encodes 48kHz mono PCM frames to Opus and writes them paced
// to a published LiveKit track. It implements agent.FrameSink.
type OpusTrackWriter struct {
	enc     *opus.Encoder
	track   SampleTrack
	pcmBuf  []int16
	frames  chan []byte
	stopCh  chan struct{}
	stopped bool
	mu      sync.Mutex
}

// NewOpusTrackWriter constructs a paced writer with 20ms frames at 48kHz mono.
func NewOpusTrackWriter(track SampleTrack) (*OpusTrackWriter, error) {
	enc, err := opus.NewEncoder(trackSampleRate, 1, opus.AppVoIP)
	if err != nil {
		return nil, err
	}
	w := &OpusTrackWriter{
		enc:    enc,
		track:  track,
		frames: make(chan []byte, 512),
		stopCh: make(chan struct{}),
	}
	go w.pacer()
	return w, nil
}

// Emit buffers a PCM frame and enqueues encoded Opus packets for paced
// delivery. Frames must be 48kHz mono; anything else is a caller bug and is
// reported as an error rather than resampled.
func (w *OpusTrackWriter) Emit(f audio.Frame) error {
	if f.Empty() {
		return nil
	}
	if f.SampleRate != trackSampleRate || f.NumChannels != 1 {
		return fmt.Errorf("unsupported frame format: %dHz/%dch", f.SampleRate, f.NumChannels)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pcmBuf = append(w.pcmBuf, f.Data...)

	opusBuf := make([]byte, 4000)
	for len(w.pcmBuf) >= frameSamples {
		n, err := w.enc.Encode(w.pcmBuf[:frameSamples], opusBuf)
		if err != nil {
			return err
		}
		if n > 0 {
			pkt := make([]byte, n)
			copy(pkt, opusBuf[:n])
			w.pushFrame(pkt)
		}
		copy(w.pcmBuf, w.pcmBuf[frameSamples:])
		w.pcmBuf = w.pcmBuf[:len(w.pcmBuf)-frameSamples]
	}
	return nil
}

// Flush pads any remaining PCM to a full frame and appends a short silence
// tail to avoid clipping the end of a playback run.
func (w *OpusTrackWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	opusBuf := make([]byte, 4000)
	if len(w.pcmBuf) > 0 {
		pad := make([]int16, frameSamples)
		copy(pad, w.pcmBuf)
		n, err := w.enc.Encode(pad, opusBuf)
		if err == nil && n > 0 {
			pkt := make([]byte, n)
			copy(pkt, opusBuf[:n])
			w.pushFrame(pkt)
		}
		w.pcmBuf = w.pcmBuf[:0]
	}
	// ~100ms of silence
	silence := make([]int16, frameSamples)
	for i := 0; i < 5; i++ {
		n, err := w.enc.Encode(silence, opusBuf)
		if err == nil && n > 0 {
			pkt := make([]byte, n)
			copy(pkt, opusBuf[:n])
			w.pushFrame(pkt)
		}
	}
}

// Reset drops all queued audio immediately so an interruption is audible
// right away.
func (w *OpusTrackWriter) Reset() {
	w.mu.Lock()
	for {
		select {
		case <-w.frames:
		default:
			w.pcmBuf = w.pcmBuf[:0]
			w.mu.Unlock()
			return
		}
	}
}

// Close stops the pacer.
func (w *OpusTrackWriter) Close() {
	w.mu.Lock()
	if !w.stopped {
		w.stopped = true
		close(w.stopCh)
	}
	w.mu.Unlock()
}

func (w *OpusTrackWriter) pacer() {
	ticker := time.NewTicker(pacerInterval)
	defer ticker.Stop()
	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			select {
			case frame := <-w.frames:
				_ = w.track.WriteSample(media.Sample{Data: frame, Duration: pacerInterval}, nil)
			default:
			}
		}
	}
}

// pushFrame enqueues a packet, blocking until space is available or stopped.
func (w *OpusTrackWriter) pushFrame(pkt []byte) {
	for {
		select {
		case <-w.stopCh:
			return
		case w.frames <- pkt:
			return
		}
	}
}
