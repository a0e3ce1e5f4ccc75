package auth

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// challengeTTL bounds how long an issued captcha stays answerable.
const challengeTTL = 5 * time.Minute

// Challenge is one issued captcha: a simple addition question, identified by
// an opaque id. The answer never leaves the server.
type Challenge struct {
	ID       string `json:"id"`
	Question string `json:"question"`
}

type pendingChallenge struct {
	answer   string
	issuedAt time.Time
}

// Captcha issues and checks the login form's math challenges. Each challenge
// is single-use: checking it, right or wrong, consumes it, and the login
// surface issues a fresh one after every failed attempt.
type Captcha struct {
	mu      sync.Mutex
	pending map[string]pendingChallenge
	now     func() time.Time
}

func NewCaptcha() *Captcha {
	return &Captcha{pending: make(map[string]pendingChallenge), now: time.Now}
}

// Issue creates a new challenge of the form "a + b = ?" with a and b in
// 1..10.
func (c *Captcha) Issue() Challenge {
	a := rand.IntN(10) + 1
	b := rand.IntN(10) + 1

	challenge := Challenge{
		ID:       uuid.NewString(),
		Question: fmt.Sprintf("%d + %d = ?", a, b),
	}

	c.mu.Lock()
	c.prune()
	c.pending[challenge.ID] = pendingChallenge{
		answer:   fmt.Sprintf("%d", a+b),
		issuedAt: c.now(),
	}
	c.mu.Unlock()

	return challenge
}

// Check consumes the challenge and reports whether the answer matches.
// Unknown ids and expired challenges fail.
func (c *Captcha) Check(id, answer string) bool {
	c.mu.Lock()
	challenge, ok := c.pending[id]
	delete(c.pending, id)
	c.mu.Unlock()

	if !ok || c.now().Sub(challenge.issuedAt) > challengeTTL {
		return false
	}
	return strings.TrimSpace(answer) == challenge.answer
}

// prune drops expired challenges. Caller holds the lock.
func (c *Captcha) prune() {
	for id, challenge := range c.pending {
		if c.now().Sub(challenge.issuedAt) > challengeTTL {
			delete(c.pending, id)
		}
	}
}
