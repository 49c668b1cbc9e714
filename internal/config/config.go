package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Ajayyy18/livekit-voice-agent/internal/agent"
)

// Config holds application configuration.
type Config struct {
	LiveKitURL       string
	LiveKitAPIKey    string
	LiveKitAPISecret string
	RoomName         string
	AgentName        string
	HTTPAddress      string

	Agent agent.Options
}

// Load reads environment variables and returns Config with sane defaults.
// The LiveKit credentials are required; threshold overrides are validated so
// that a bad value fails startup instead of breaking segmentation silently.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded")
	}

	cfg := Config{
		LiveKitURL:       os.Getenv("LIVEKIT_SERVER_URL"),
		LiveKitAPIKey:    os.Getenv("LIVEKIT_API_KEY"),
		LiveKitAPISecret: os.Getenv("LIVEKIT_API_SECRET"),
		RoomName:         getenvDefault("ROOM_NAME", "Voice-agent"),
		AgentName:        getenvDefault("VOICE_AGENT_NAME", "Echo Agent"),
		HTTPAddress:      getenvDefault("HTTP_ADDRESS", ":8080"),
		Agent:            agent.DefaultOptions(),
	}

	if cfg.LiveKitURL == "" || cfg.LiveKitAPIKey == "" || cfg.LiveKitAPISecret == "" {
		return Config{}, fmt.Errorf("LIVEKIT_SERVER_URL, LIVEKIT_API_KEY and LIVEKIT_API_SECRET must be set")
	}

	var err error
	if cfg.Agent.EnergyThreshold, err = floatEnv("ENERGY_THRESHOLD", cfg.Agent.EnergyThreshold); err != nil {
		return Config{}, err
	}
	if cfg.Agent.SilenceThreshold, err = durationEnv("SILENCE_THRESHOLD", cfg.Agent.SilenceThreshold); err != nil {
		return Config{}, err
	}
	if cfg.Agent.EchoDelay, err = durationEnv("ECHO_DELAY", cfg.Agent.EchoDelay); err != nil {
		return Config{}, err
	}
	if cfg.Agent.ReminderThreshold, err = durationEnv("REMINDER_THRESHOLD", cfg.Agent.ReminderThreshold); err != nil {
		return Config{}, err
	}
	if cfg.Agent.ReminderInterval, err = durationEnv("REMINDER_INTERVAL", cfg.Agent.ReminderInterval); err != nil {
		return Config{}, err
	}

	log.Printf("config: room=%s agent=%s http=%s", cfg.RoomName, cfg.AgentName, cfg.HTTPAddress)
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func floatEnv(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
