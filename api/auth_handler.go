package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tiaraw/portfolio-backend/auth"
	"github.com/tiaraw/portfolio-backend/errs"
)

type authHandler struct {
	responder   Responder
	logger      zerolog.Logger
	credentials auth.Credentials
	sessions    *auth.Manager
	captcha     *auth.Captcha
}

func newAuthHandler(credentials auth.Credentials, sessions *auth.Manager, captcha *auth.Captcha) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		credentials: credentials,
		sessions:    sessions,
		captcha:     captcha,
	}
}

// loginRequest is the login form submission. The captcha fields refer to a
// challenge previously issued by getCaptcha.
type loginRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	CaptchaID     string `json:"captcha_id"`
	CaptchaAnswer string `json:"captcha_answer"`
}

// getCaptcha issues a fresh math challenge for the login form. The client
// requests a new one after every failed login attempt; failed attempts
// consume the old challenge either way.
func (h authHandler) getCaptcha() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.captcha.Issue())
	}
}

// login validates the captcha, then the credential pair, then starts a
// session. Each failure class gets its own message so the form can react
// appropriately (clear the password, refresh the captcha).
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if !h.captcha.Check(req.CaptchaID, req.CaptchaAnswer) {
			h.responder.WriteError(w, errs.NewWrongCaptchaError())
			return
		}

		if !h.credentials.Verify(req.Username, req.Password) {
			h.responder.WriteError(w, errs.NewWrongCredentialsError())
			return
		}

		sessionID, err := h.sessions.Login()
		if err != nil {
			// Session write or read-back verification failed; the error
			// carries which.
			h.responder.WriteError(w, err)
			return
		}

		gate, ok := h.sessions.Gate(sessionID)
		if !ok {
			h.responder.WriteError(w, errs.NewSessionVerifyError())
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    sessionID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		h.responder.WriteJSON(w, map[string]any{
			"status":            "success",
			"minutes_remaining": gate.TimeRemaining(),
		})
	}
}

// logout ends the session named by the cookie, if any, and expires the
// cookie. Safe to call anonymously.
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			h.sessions.Logout(cookie.Value)
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})

		h.responder.WriteJSON(w, map[string]string{"status": "success"})
	}
}

// getSession reports whether the caller holds a live session and how long it
// has left. An expired session reads as anonymous; its server-side state is
// dropped during the check.
func (h authHandler) getSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			h.responder.WriteJSON(w, map[string]any{"authenticated": false, "minutes_remaining": 0})
			return
		}

		gate, ok := h.sessions.Gate(cookie.Value)
		if !ok {
			h.responder.WriteJSON(w, map[string]any{"authenticated": false, "minutes_remaining": 0})
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"authenticated":     true,
			"minutes_remaining": gate.TimeRemaining(),
		})
	}
}
