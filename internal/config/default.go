package config

import "time"

type ctxKey string

const (
	UidKey    ctxKey = "uid"
	ClaimsKey ctxKey = "claims"
	IpKey     ctxKey = "ip"
	UaKey     ctxKey = "ua"
)

const ErrorSpanTag = "error"

const (
	AccessCookieName  = "access"
	RefreshCookieName = "refresh"
)

const (
	DefaultShutdownTimeout = 10 * time.Second
	DefaultRequestTimeout  = 15 * time.Second
)
