// Package auth implements the admin login gate: fixed-pair credential
// verification, a time-boxed session over an injectable field store, and the
// math captcha the login form shows.
package auth

import (
	"encoding/base64"

	"github.com/tiaraw/portfolio-backend/config"
)

// Built-in defaults, base64-encoded. This is obfuscation, not protection:
// anyone with the binary can decode them in seconds. The encoding only keeps
// the plaintext out of casual string dumps; any real security boundary has to
// live elsewhere. Override with ADMIN_USER / ADMIN_PASS.
const (
	defaultUsernameEncoded = "dGlhcmFhYWRtaW4="
	defaultPasswordEncoded = "VGlhcmFQb3J0Zm9saW8yMDI1IQ=="
)

// Credentials is the configured admin pair.
type Credentials struct {
	username string
	password string
}

// NewCredentials builds the admin pair from configuration, falling back to
// the encoded built-in defaults when ADMIN_USER / ADMIN_PASS are absent.
func NewCredentials(cfg map[string]string) Credentials {
	return Credentials{
		username: config.GetString(cfg, "ADMIN_USER", decode(defaultUsernameEncoded)),
		password: config.GetString(cfg, "ADMIN_PASS", decode(defaultPasswordEncoded)),
	}
}

// Verify compares the candidate pair against the configured pair. Pure, no
// I/O.
func (c Credentials) Verify(username, password string) bool {
	return username == c.username && password == c.password
}

func decode(encoded string) string {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		// Encoded constants are fixed at build time; this cannot happen for
		// well-formed builds.
		return ""
	}
	return string(decoded)
}
