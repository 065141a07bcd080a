package hdl

import "errors"

var ErrInternal = errors.New("internal error")
var ErrDecodeRequest = errors.New("decode request")
var ErrNoDeviceInfo = errors.New("no device info")
var ErrCaptchaFailed = errors.New("captcha verification failed")

var ErrToRetrievePathArg = errors.New("error to retrieve path argument")
var ErrFailedToGetUUID = errors.New("failed to get uid from context")
var ErrMissingToken = errors.New("missing access token")
