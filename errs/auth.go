package errs

import (
	"errors"
	"net/http"
)

// Login failures are split into distinct classes so the login surface can show
// a specific message and decide whether to issue a fresh captcha challenge.
var (
	ErrWrongCaptcha        = errors.New("incorrect captcha answer")
	ErrWrongCredentials    = errors.New("invalid username or password")
	ErrSessionWriteFailed  = errors.New("failed to save session")
	ErrSessionVerifyFailed = errors.New("session verification failed")
)

func NewWrongCaptchaError() *ApiErr {
	return &ApiErr{StatusCode: http.StatusUnauthorized, err: ErrWrongCaptcha}
}

func NewWrongCredentialsError() *ApiErr {
	return &ApiErr{StatusCode: http.StatusUnauthorized, err: ErrWrongCredentials}
}

func NewSessionWriteError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrSessionWriteFailed,
		Details:    "Please try again",
		Cause:      cause,
	}
}

func NewSessionVerifyError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrSessionVerifyFailed,
		Details:    "Please try again",
	}
}

func IsWrongCaptcha(err error) bool {
	return errors.Is(err, ErrWrongCaptcha)
}

func IsWrongCredentials(err error) bool {
	return errors.Is(err, ErrWrongCredentials)
}
