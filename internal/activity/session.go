package activity

import (
	"strings"

	"github.com/google/uuid"
)

// SessionHeader carries the anonymous session token in both directions
const SessionHeader = "X-Session-ID"

// Session identifies an anonymous browsing session
type Session struct {
	Token string
	// Minted is true when the server generated Token for this request; the
	// caller must then hand it back to the client.
	Minted bool
}

// ResolveSession returns the client's session, minting a new random token
// when none was presented.
func ResolveSession(token string) Session {
	token = strings.TrimSpace(token)
	if token != "" {
		return Session{Token: token}
	}
	return Session{Token: uuid.NewString(), Minted: true}
}
