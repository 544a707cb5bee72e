package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/server/auth"
	"github.com/dmitrijs2005/jobportal/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const actorKey ctxKey = "actor"

// publicMethods need no access token.
var publicMethods = map[string]bool{
	FullMethod("Ping"):            true,
	FullMethod("Register"):        true,
	FullMethod("Login"):           true,
	FullMethod("RefreshToken"):    true,
	FullMethod("Logout"):          true,
	FullMethod("GetJob"):          true,
	FullMethod("ListOpenJobs"):    true,
	FullMethod("RecommendedJobs"): true,
}

// accessTokenInterceptor verifies the access token of non-public methods and
// stores the resolved actor in the context.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
			accessToken = values[0]
		}
	}
	if accessToken == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	claims, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, "token expired")
		}
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	actor, err := s.svc.Identity.Resolve(ctx, claims.UserID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return handler(context.WithValue(ctx, actorKey, actor), req)
}

func actorFrom(ctx context.Context) (*services.Actor, error) {
	a, ok := ctx.Value(actorKey).(*services.Actor)
	if !ok || a == nil {
		return nil, common.ErrorUnauthorized
	}
	return a, nil
}

func (s *GRPCServer) metricsInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	done := s.metrics.RPCStarted()
	defer done()

	start := time.Now()
	resp, err := handler(ctx, req)
	s.metrics.ObserveRPC(info.FullMethod, status.Code(err).String(), time.Since(start).Seconds())
	return resp, err
}
