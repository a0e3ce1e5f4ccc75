package auth

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/tiaraw/portfolio-backend/errs"
)

// SessionLifetime bounds how long a login stays valid.
const SessionLifetime = 2 * time.Hour

// Gate manages one authenticated session over a SessionStore. Two persistent
// states, anonymous and authenticated; expiry is derived from the stored
// login timestamp on every check. All storage failures degrade to "not
// authenticated", never a panic.
type Gate struct {
	store SessionStore
	now   func() time.Time
}

func NewGate(store SessionStore) *Gate {
	return &Gate{store: store, now: time.Now}
}

// NewGateAt builds a gate with an injected clock.
func NewGateAt(store SessionStore, now func() time.Time) *Gate {
	return &Gate{store: store, now: now}
}

// Login starts a fresh session: any existing one is cleared first, then the
// authenticated flag, the login timestamp and a random session token are
// written. The three fields are read back and compared before success is
// reported, guarding against storage writes that silently fail.
func (g *Gate) Login() error {
	g.Logout()

	authTime := strconv.FormatInt(g.now().UnixMilli(), 10)
	sessionID := uuid.NewString()

	writes := map[string]string{
		FieldAuthenticated: "true",
		FieldAuthTime:      authTime,
		FieldSessionID:     sessionID,
	}
	for field, value := range writes {
		if err := g.store.Set(field, value); err != nil {
			return errs.NewSessionWriteError(err)
		}
	}

	// Read-back verification.
	for field, want := range writes {
		if g.store.Get(field) != want {
			return errs.NewSessionVerifyError()
		}
	}
	return nil
}

// Logout unconditionally clears all session fields.
func (g *Gate) Logout() {
	g.store.Clear()
}

// IsAuthenticated reports whether the session is live. A present-but-expired
// session is actively cleared (side-effecting read); a session with any field
// missing reads as anonymous without side effects.
func (g *Gate) IsAuthenticated() bool {
	if g.store.Get(FieldAuthenticated) != "true" {
		return false
	}
	authTime := g.store.Get(FieldAuthTime)
	if authTime == "" || g.store.Get(FieldSessionID) == "" {
		return false
	}

	loginMillis, err := strconv.ParseInt(authTime, 10, 64)
	if err != nil {
		return false
	}

	elapsed := g.now().Sub(time.UnixMilli(loginMillis))
	if elapsed > SessionLifetime {
		g.Logout()
		return false
	}
	return true
}

// SessionID returns the stored session token, empty when anonymous.
func (g *Gate) SessionID() string {
	return g.store.Get(FieldSessionID)
}

// TimeRemaining returns the minutes left before expiry, floored at 0. Does
// not mutate session state.
func (g *Gate) TimeRemaining() int {
	authTime := g.store.Get(FieldAuthTime)
	if authTime == "" {
		return 0
	}
	loginMillis, err := strconv.ParseInt(authTime, 10, 64)
	if err != nil {
		return 0
	}

	remaining := SessionLifetime - g.now().Sub(time.UnixMilli(loginMillis))
	if remaining < 0 {
		return 0
	}
	return int(remaining / time.Minute)
}
