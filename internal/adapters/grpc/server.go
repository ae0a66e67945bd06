package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/carewell/provider-portal/internal/application"
)

// SessionInternalService lets sibling services resolve portal session tokens
// without sharing signing material or the sessions table.
type SessionInternalService interface {
	ResolveSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetPublicKey(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

type SessionInternalServer struct {
	service   *application.Service
	publicPEM []byte
	keyID     string
}

func NewSessionInternalServer(service *application.Service, publicPEM []byte, keyID string) *SessionInternalServer {
	return &SessionInternalServer{service: service, publicPEM: publicPEM, keyID: keyID}
}

func Register(server grpc.ServiceRegistrar, svc SessionInternalService) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: "carewell.portal.v1.SessionInternalService",
		HandlerType: (*SessionInternalService)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "ResolveSession",
				Handler:    resolveSessionHandler(svc),
			},
			{
				MethodName: "GetPublicKey",
				Handler:    getPublicKeyHandler(svc),
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "carewell/portal/v1/session_internal.proto",
	}, svc)
}

func (s *SessionInternalServer) ResolveSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	tokenVal := req.GetFields()["token"]
	if tokenVal == nil {
		return nil, status.Error(codes.InvalidArgument, "missing token")
	}
	token := tokenVal.GetStringValue()
	if token == "" {
		return nil, status.Error(codes.InvalidArgument, "missing token")
	}

	identity, err := s.service.ResolveSession(ctx, token)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid session")
	}

	resp, err := structpb.NewStruct(map[string]any{
		"valid":       true,
		"provider_id": identity.ProviderID.String(),
		"email":       identity.Email,
		"session_id":  identity.SessionID.String(),
		"expires_at":  identity.ExpiresAt.Unix(),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "build response: %v", err)
	}
	return resp, nil
}

func (s *SessionInternalServer) GetPublicKey(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	resp, err := structpb.NewStruct(map[string]any{
		"kid":        s.keyID,
		"public_pem": string(s.publicPEM),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "build response: %v", err)
	}
	return resp, nil
}

func resolveSessionHandler(svc SessionInternalService) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		req := &structpb.Struct{}
		if err := dec(req); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return svc.ResolveSession(ctx, req)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/carewell.portal.v1.SessionInternalService/ResolveSession",
		}
		handler := func(ctx context.Context, req any) (any, error) {
			typed, ok := req.(*structpb.Struct)
			if !ok {
				return nil, status.Error(codes.InvalidArgument, "invalid request type")
			}
			return svc.ResolveSession(ctx, typed)
		}
		return interceptor(ctx, req, info, handler)
	}
}

func getPublicKeyHandler(svc SessionInternalService) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		req := &emptypb.Empty{}
		if err := dec(req); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return svc.GetPublicKey(ctx, req)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/carewell.portal.v1.SessionInternalService/GetPublicKey",
		}
		handler := func(ctx context.Context, req any) (any, error) {
			typed, ok := req.(*emptypb.Empty)
			if !ok {
				return nil, status.Error(codes.InvalidArgument, "invalid request type")
			}
			return svc.GetPublicKey(ctx, typed)
		}
		return interceptor(ctx, req, info, handler)
	}
}
