package captcha

import "errors"

var ErrVerificationFailed = errors.New("captcha verification request failed")
