// Package rtc connects the echo core to LiveKit: subscribed audio tracks are
// decoded to PCM frames for the inbound boundary, and outbound frames are
// opus-encoded onto a published track.
package rtc

import (
	"fmt"
	"log"

	"github.com/hraban/opus"
	"github.com/livekit/protocol/livekit"
	lksdk "github.com/livekit/server-sdk-go/v2"
	"github.com/pion/webrtc/v4"

	"github.com/Ajayyy18/livekit-voice-agent/internal/audio"
	"github.com/Ajayyy18/livekit-voice-agent/internal/config"
)

// Room is a connected LiveKit session with one published echo track.
type Room struct {
	room    *lksdk.Room
	writer  *OpusTrackWriter
	agentID string
	onFrame func(audio.Frame)
}

// Connect joins the configured room, publishes the echo track and begins
// decoding subscribed audio tracks into onFrame calls.
func Connect(cfg config.Config, onFrame func(audio.Frame)) (*Room, error) {
	r := &Room{agentID: cfg.AgentName, onFrame: onFrame}

	cb := &lksdk.RoomCallback{
		ParticipantCallback: lksdk.ParticipantCallback{
			OnTrackSubscribed: r.onTrackSubscribed,
		},
		OnParticipantConnected: func(rp *lksdk.RemoteParticipant) {
			log.Printf("participant connected: %s", rp.Identity())
		},
		OnParticipantDisconnected: func(rp *lksdk.RemoteParticipant) {
			log.Printf("participant disconnected: %s", rp.Identity())
		},
		OnDisconnected: func() {
			log.Printf("room disconnected")
		},
	}

	room, err := lksdk.ConnectToRoom(cfg.LiveKitURL, lksdk.ConnectInfo{
		APIKey:              cfg.LiveKitAPIKey,
		APISecret:           cfg.LiveKitAPISecret,
		RoomName:            cfg.RoomName,
		ParticipantIdentity: cfg.AgentName,
		ParticipantName:     cfg.AgentName,
	}, cb, lksdk.WithAutoSubscribe(true))
	if err != nil {
		return nil, fmt.Errorf("connect to room: %w", err)
	}
	r.room = room

	track, err := lksdk.NewLocalSampleTrack(webrtc.RTPCodecCapability{
		MimeType:  webrtc.MimeTypeOpus,
		ClockRate: trackSampleRate,
		Channels:  1,
	})
	if err != nil {
		room.Disconnect()
		return nil, fmt.Errorf("create echo track: %w", err)
	}
	writer, err := NewOpusTrackWriter(track)
	if err != nil {
		room.Disconnect()
		return nil, fmt.Errorf("opus encoder: %w", err)
	}
	if _, err := room.LocalParticipant.PublishTrack(track, &lksdk.TrackPublicationOptions{
		Name:   "echo-track",
		Source: livekit.TrackSource_MICROPHONE,
	}); err != nil {
		writer.Close()
		room.Disconnect()
		return nil, fmt.Errorf("publish echo track: %w", err)
	}
	r.writer = writer

	log.Printf("connected to room %q as %q", cfg.RoomName, cfg.AgentName)
	return r, nil
}

// Writer returns the outbound sink bound to the published echo track.
func (r *Room) Writer() *OpusTrackWriter { return r.writer }

// Close stops the writer and leaves the room.
func (r *Room) Close() {
	r.writer.Close()
	r.room.Disconnect()
}

func (r *Room) onTrackSubscribed(track *webrtc.TrackRemote, pub *lksdk.RemoteTrackPublication, rp *lksdk.RemoteParticipant) {
	if rp.Identity() == r.agentID {
		log.Printf("ignoring agent's own track")
		return
	}
	if track.Kind() != webrtc.RTPCodecTypeAudio {
		return
	}
	log.Printf("audio track subscribed from %s (%s)", rp.Identity(), track.Codec().MimeType)
	go r.readTrack(track, rp)
}

// readTrack decodes one subscribed opus track into PCM frames until the
// track ends.
func (r *Room) readTrack(track *webrtc.TrackRemote, rp *lksdk.RemoteParticipant) {
	dec, err := opus.NewDecoder(trackSampleRate, 1)
	if err != nil {
		log.Printf("opus decoder error: %v", err)
		return
	}
	pcm := make([]int16, frameSamples*2)
	for {
		pkt, _, err := track.ReadRTP()
		if err != nil {
			log.Printf("track from %s ended: %v", rp.Identity(), err)
			return
		}
		if len(pkt.Payload) == 0 {
			continue
		}
		n, err := dec.Decode(pkt.Payload, pcm)
		if err != nil {
			log.Printf("opus decode error: %v", err)
			continue
		}
		data := make([]int16, n)
		copy(data, pcm[:n])
		r.onFrame(audio.Frame{
			Data:              data,
			SampleRate:        trackSampleRate,
			NumChannels:       1,
			SamplesPerChannel: n,
		})
	}
}
