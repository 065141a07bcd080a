package auth

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrAccountLocked                = errors.New("account is temporarily locked")
	ErrRateLimited                  = errors.New("too many login attempts")
	ErrInvalidCredentials           = errors.New("invalid credentials")
	ErrAccountNotUsable             = errors.New("account is not active")
	ErrInvalidOrExpiredRefreshToken = errors.New("invalid or expired refresh token")
	ErrReuseDetected                = errors.New("refresh token reuse detected")
	ErrInvalidToken                 = errors.New("invalid token")
	// ErrTokenRevoked is error that indicates access token was revoked.
	ErrTokenRevoked = errors.New("token revoked")
)

const (
	KindAccountLocked                = "account_locked"
	KindRateLimited                  = "rate_limited"
	KindInvalidCredentials           = "invalid_credentials"
	KindAccountNotUsable             = "account_not_usable"
	KindInvalidOrExpiredRefreshToken = "invalid_or_expired_refresh_token"
	KindInvalidToken                 = "invalid_token"
	KindInternal                     = "internal"
)

// RetryError carries the time left until the rejected identity may try again.
type RetryError struct {
	Err        error
	RetryAfter time.Duration
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("%s, try again in %d seconds", e.Err.Error(), e.Seconds())
}

func (e *RetryError) Unwrap() error {
	return e.Err
}

// Seconds rounds the remaining time up so a client never retries too early.
func (e *RetryError) Seconds() int64 {
	if e.RetryAfter <= 0 {
		return 0
	}
	return int64(math.Ceil(e.RetryAfter.Seconds()))
}

func RetryAfter(err error) (int64, bool) {
	var re *RetryError
	if errors.As(err, &re) {
		return re.Seconds(), true
	}
	return 0, false
}

// reuseError looks exactly like ErrInvalidOrExpiredRefreshToken to callers
// while still matching ErrReuseDetected for code that needs to know.
type reuseError struct{}

func (reuseError) Error() string {
	return ErrInvalidOrExpiredRefreshToken.Error()
}

func (reuseError) Is(target error) bool {
	return target == ErrInvalidOrExpiredRefreshToken || target == ErrReuseDetected
}

func ReuseDetected() error {
	return reuseError{}
}

// Kind maps an error onto its machine-readable kind. Anything outside the
// taxonomy is an infrastructure failure.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAccountLocked):
		return KindAccountLocked
	case errors.Is(err, ErrRateLimited):
		return KindRateLimited
	case errors.Is(err, ErrInvalidCredentials):
		return KindInvalidCredentials
	case errors.Is(err, ErrAccountNotUsable):
		return KindAccountNotUsable
	case errors.Is(err, ErrInvalidOrExpiredRefreshToken):
		return KindInvalidOrExpiredRefreshToken
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrTokenRevoked):
		return KindInvalidToken
	default:
		return KindInternal
	}
}
