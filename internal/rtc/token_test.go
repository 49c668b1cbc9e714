package rtc

import (
	"strings"
	"testing"
	"time"
)

func TestBuildToken(t *testing.T) {
	tok, err := BuildToken("api-key", "api-secret-api-secret-api-secret", "Voice-agent", "test-user", time.Hour)
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	if parts := strings.Split(tok, "."); len(parts) != 3 {
		t.Fatalf("expected a JWT with 3 segments, got %d", len(parts))
	}
}

func TestBuildToken_DistinctIdentities(t *testing.T) {
	a, err := BuildToken("api-key", "api-secret-api-secret-api-secret", "Voice-agent", "alice", time.Hour)
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	b, err := BuildToken("api-key", "api-secret-api-secret-api-secret", "Voice-agent", "bob", time.Hour)
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct tokens for distinct identities")
	}
}
