package interceptors

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/JMURv/auth-guard/internal/auth/jwt"
	"github.com/JMURv/auth-guard/internal/config"
	metrics "github.com/JMURv/auth-guard/internal/observability/metrics/prometheus"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// Auth attaches the caller's claims when a valid, unrevoked bearer token is
// present. Methods that need a caller check for the uid themselves.
func Auth(au jwt.Port) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			zap.L().Debug("missing metadata")
			return handler(ctx, req)
		}

		authHeaders := md.Get("authorization")
		if len(authHeaders) == 0 {
			zap.L().Debug("missing authorization token")
			return handler(ctx, req)
		}

		tokenStr := strings.TrimPrefix(authHeaders[0], "Bearer ")
		claims, err := au.ParseClaims(ctx, tokenStr)
		if err != nil {
			return handler(ctx, req)
		}

		revoked, err := au.IsRevoked(ctx, claims)
		if err != nil {
			zap.L().Error("failed to check access token", zap.String("jti", claims.ID), zap.Error(err))
			return nil, status.Error(codes.Internal, "internal error")
		}
		if revoked {
			return handler(ctx, req)
		}

		ctx = context.WithValue(ctx, config.UidKey, claims.UID)
		ctx = context.WithValue(ctx, config.ClaimsKey, claims)
		return handler(ctx, req)
	}
}

// Device stores the client address and user agent. x-real-ip is honoured
// only when trustProxy is set; otherwise the peer address is used.
func Device(trustProxy bool) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		var ip, ua string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if v := md.Get("x-real-ip"); trustProxy && len(v) > 0 {
				ip = v[0]
			}
			if v := md.Get("user-agent"); len(v) > 0 {
				ua = v[0]
			}
		}

		if ip == "" {
			if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
				ip = p.Addr.String()
				if host, _, err := net.SplitHostPort(ip); err == nil {
					ip = host
				}
			}
		}

		ctx = context.WithValue(ctx, config.IpKey, ip)
		ctx = context.WithValue(ctx, config.UaKey, ua)
		return handler(ctx, req)
	}
}

func LogTraceMetrics() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		s := time.Now()
		span, ctx := opentracing.StartSpanFromContext(ctx, info.FullMethod)
		defer span.Finish()

		res, err := handler(ctx, req)
		statusCode := status.Code(err)
		metrics.ObserveRequest(time.Since(s), int(statusCode), info.FullMethod)
		if statusCode == codes.Internal {
			span.SetTag(config.ErrorSpanTag, true)
		}

		zap.L().Info(
			"<--",
			zap.String("method", info.FullMethod),
			zap.Int("status", int(statusCode)),
			zap.Duration("duration", time.Since(s)),
			zap.Error(err),
		)

		return res, err
	}
}
