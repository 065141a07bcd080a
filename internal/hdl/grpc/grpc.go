package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/JMURv/auth-guard/internal/auth"
	"github.com/JMURv/auth-guard/internal/auth/jwt"
	"github.com/JMURv/auth-guard/internal/config"
	"github.com/JMURv/auth-guard/internal/ctrl"
	"github.com/JMURv/auth-guard/internal/dto"
	"github.com/JMURv/auth-guard/internal/hdl/grpc/interceptors"
	metrics "github.com/JMURv/auth-guard/internal/observability/metrics/prometheus"
	"github.com/JMURv/auth-guard/internal/observability/sentry"
	"github.com/google/uuid"
	pm "github.com/grpc-ecosystem/go-grpc-middleware/providers/prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrMissingRefresh     = errors.New("refresh token is required")
	ErrUnauthenticated    = errors.New("missing or invalid access token")
)

type Handler struct {
	srv  *grpc.Server
	hsrv *health.Server
	ctrl ctrl.AppCtrl
}

func New(name string, au jwt.Port, ctrl ctrl.AppCtrl, trustProxy bool) *Handler {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			sentry.RecoverUnaryInterceptor(),
			interceptors.LogTraceMetrics(),
			metrics.SrvMetrics.UnaryServerInterceptor(
				pm.WithExemplarFromContext(metrics.Exemplar),
			),
			interceptors.Device(trustProxy),
			interceptors.Auth(au),
		),
		grpc.ChainStreamInterceptor(
			metrics.SrvMetrics.StreamServerInterceptor(
				pm.WithExemplarFromContext(metrics.Exemplar),
			),
		),
	)

	h := &Handler{
		ctrl: ctrl,
		srv:  srv,
		hsrv: health.NewServer(),
	}

	RegisterAuthServer(srv, h)
	grpc_health_v1.RegisterHealthServer(srv, h.hsrv)
	reflection.Register(srv)
	metrics.SrvMetrics.InitializeMetrics(srv)

	h.hsrv.SetServingStatus(name, grpc_health_v1.HealthCheckResponse_SERVING)
	h.hsrv.SetServingStatus(serviceName, grpc_health_v1.HealthCheckResponse_SERVING)
	return h
}

func (h *Handler) Start(port int) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%v", port))
	if err != nil {
		zap.L().Fatal("failed to listen", zap.Error(err))
	}

	zap.L().Info("Starting gRPC server", zap.String("addr", lis.Addr().String()))
	if err = h.Serve(lis); err != nil {
		zap.L().Fatal("failed to serve", zap.Error(err))
	}
}

func (h *Handler) Serve(lis net.Listener) error {
	if err := h.srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

func (h *Handler) Close() error {
	h.hsrv.Shutdown()
	h.srv.GracefulStop()
	return nil
}

func (h *Handler) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "auth.Login.hdl"
	email, password := stringField(req, "email"), stringField(req, "password")
	if email == "" || password == "" {
		return nil, status.Error(codes.InvalidArgument, ErrMissingCredentials.Error())
	}

	res, err := h.ctrl.Login(
		ctx, device(ctx), &dto.EmailAndPasswordRequest{
			Email:    email,
			Password: password,
		},
	)
	if err != nil {
		return nil, statusError(ctx, op, err)
	}
	return pairStruct(res)
}

func (h *Handler) Refresh(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "auth.Refresh.hdl"
	secret := stringField(req, "refresh")
	if secret == "" {
		return nil, status.Error(codes.InvalidArgument, ErrMissingRefresh.Error())
	}

	res, err := h.ctrl.Refresh(ctx, device(ctx), &dto.RefreshRequest{Refresh: secret})
	if err != nil {
		return nil, statusError(ctx, op, err)
	}
	return pairStruct(res)
}

func (h *Handler) Logout(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "auth.Logout.hdl"
	uid, ok := ctx.Value(config.UidKey).(uuid.UUID)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, ErrUnauthenticated.Error())
	}
	claims, _ := ctx.Value(config.ClaimsKey).(jwt.Claims)

	if err := h.ctrl.Logout(ctx, uid, claims, stringField(req, "refresh")); err != nil {
		return nil, statusError(ctx, op, err)
	}
	return &structpb.Struct{}, nil
}

func stringField(s *structpb.Struct, key string) string {
	if s == nil {
		return ""
	}
	return s.GetFields()[key].GetStringValue()
}

func device(ctx context.Context) *dto.DeviceRequest {
	ip, _ := ctx.Value(config.IpKey).(string)
	ua, _ := ctx.Value(config.UaKey).(string)
	return &dto.DeviceRequest{IP: ip, UA: ua}
}

func pairStruct(p *dto.TokenPair) (*structpb.Struct, error) {
	res, err := structpb.NewStruct(
		map[string]any{
			"access":    p.Access,
			"refresh":   p.Refresh,
			"expiresIn": p.ExpiresIn,
		},
	)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	return res, nil
}

// statusError maps the error kind onto a status code. The kind and the
// retry delay travel in the response header.
func statusError(ctx context.Context, op string, err error) error {
	kind := auth.Kind(err)
	md := metadata.Pairs("x-error-kind", kind)
	if secs, ok := auth.RetryAfter(err); ok {
		md.Set("retry-after", strconv.FormatInt(secs, 10))
	}
	if herr := grpc.SetHeader(ctx, md); herr != nil {
		zap.L().Debug("failed to set header", zap.String("op", op), zap.Error(herr))
	}

	switch kind {
	case auth.KindAccountLocked, auth.KindRateLimited:
		return status.Error(codes.ResourceExhausted, err.Error())
	case auth.KindInvalidCredentials, auth.KindInvalidOrExpiredRefreshToken, auth.KindInvalidToken:
		return status.Error(codes.Unauthenticated, err.Error())
	case auth.KindAccountNotUsable:
		return status.Error(codes.PermissionDenied, err.Error())
	}

	zap.L().Error("request failed", zap.String("op", op), zap.Error(err))
	sentry.CaptureError(err)
	return status.Error(codes.Internal, "internal error")
}
