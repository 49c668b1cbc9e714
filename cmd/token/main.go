package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Ajayyy18/livekit-voice-agent/internal/rtc"
)

func main() {
	room := flag.String("room", "Voice-agent", "room to join")
	identity := flag.String("identity", "test-user", "participant identity")
	ttl := flag.Duration("ttl", 6*time.Hour, "token validity")
	flag.Parse()

	_ = godotenv.Load()

	apiKey := os.Getenv("LIVEKIT_API_KEY")
	apiSecret := os.Getenv("LIVEKIT_API_SECRET")
	if apiKey == "" || apiSecret == "" {
		log.Fatal("LIVEKIT_API_KEY and LIVEKIT_API_SECRET must be set")
	}

	token, err := rtc.BuildToken(apiKey, apiSecret, *room, *identity, *ttl)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	fmt.Printf("room:     %s\n", *room)
	fmt.Printf("identity: %s\n", *identity)
	if url := os.Getenv("LIVEKIT_SERVER_URL"); url != "" {
		fmt.Printf("server:   %s\n", url)
	}
	fmt.Printf("token:    %s\n", token)
}
