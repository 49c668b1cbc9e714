package rtc

import (
	"time"

	"github.com/livekit/protocol/auth"
)

// BuildToken mints a LiveKit join token with publish, subscribe and
// publish-data grants for the given room and identity.
func BuildToken(apiKey, apiSecret, room, identity string, ttl time.Duration) (string, error) {
	grant := &auth.VideoGrant{RoomJoin: true, Room: room}
	grant.SetCanPublish(true)
	grant.SetCanSubscribe(true)
	grant.SetCanPublishData(true)

	at := auth.NewAccessToken(apiKey, apiSecret).
		SetVideoGrant(grant).
		SetIdentity(identity).
		SetName(identity).
		SetValidFor(ttl)
	return at.ToJWT()
}
