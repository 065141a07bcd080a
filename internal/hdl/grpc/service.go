package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const serviceName = "authguard.v1.Auth"

const (
	LoginMethod   = "/" + serviceName + "/Login"
	RefreshMethod = "/" + serviceName + "/Refresh"
	LogoutMethod  = "/" + serviceName + "/Logout"
)

// AuthServer carries loosely typed payloads so clients need no generated
// stubs: Login takes {email, password}, Refresh {refresh}, Logout {refresh?}.
type AuthServer interface {
	Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Refresh(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Logout(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var authServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Login", Handler: unary(LoginMethod, AuthServer.Login)},
		{MethodName: "Refresh", Handler: unary(RefreshMethod, AuthServer.Refresh)},
		{MethodName: "Logout", Handler: unary(LogoutMethod, AuthServer.Logout)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "authguard/v1/auth.proto",
}

func RegisterAuthServer(s grpc.ServiceRegistrar, srv AuthServer) {
	s.RegisterService(&authServiceDesc, srv)
}

type method func(AuthServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(fullMethod string, call method) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AuthServer), ctx, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AuthServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}
