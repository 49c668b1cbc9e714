package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/Ajayyy18/livekit-voice-agent/internal/agent"
	"github.com/Ajayyy18/livekit-voice-agent/internal/audio"
	"github.com/Ajayyy18/livekit-voice-agent/internal/config"
	"github.com/Ajayyy18/livekit-voice-agent/internal/httpserver"
	"github.com/Ajayyy18/livekit-voice-agent/internal/rtc"
)

func main() {
	// Include sub-second precision in all log timestamps
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := httpserver.NewHub()

	// The room delivers frames before the echo core exists, so route them
	// through an atomic pointer that is set once construction completes.
	var core atomic.Pointer[agent.Agent]
	room, err := rtc.Connect(cfg, func(f audio.Frame) {
		if a := core.Load(); a != nil {
			a.OnFrame(f)
		}
	})
	if err != nil {
		log.Fatalf("livekit: %v", err)
	}
	defer room.Close()

	a, err := agent.New(cfg.Agent, room.Writer(), func(ev agent.Event) {
		hub.Publish(ev)
		if ev.Kind == agent.EventPlaybackFinished {
			room.Writer().Flush()
		}
	})
	if err != nil {
		log.Fatalf("agent: %v", err)
	}
	core.Store(a)
	a.Start(ctx)
	log.Printf("echo agent running in room %q", cfg.RoomName)

	server := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           httpserver.New(a, hub),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in background
	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("server listening on %s", cfg.HTTPAddress)
		serverErrors <- server.ListenAndServe()
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	case sig := <-sigChan:
		log.Printf("shutdown signal received: %v", sig)
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		_ = server.Close()
	}
}
