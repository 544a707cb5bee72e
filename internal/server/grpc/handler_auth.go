package grpc

import (
	"context"

	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/dmitrijs2005/jobportal/internal/server/services"
)

func (s *GRPCServer) Ping(ctx context.Context, req *PingRequest) (*PingResponse, error) {
	return &PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	s.logger.Info(ctx, "Registration request", "role", req.Role)

	user, err := s.svc.Auth.Register(ctx, services.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		Role:        models.Role(req.Role),
		CompanyName: req.CompanyName,
	})
	if err != nil {
		return nil, err
	}
	return userFrom(user), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	tokens, err := s.svc.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *RefreshTokenRequest) (*TokenResponse, error) {
	tokens, err := s.svc.Auth.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, req *RefreshTokenRequest) (*Empty, error) {
	if err := s.svc.Auth.Logout(ctx, req.RefreshToken); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

// Me returns the caller's own account.
func (s *GRPCServer) Me(ctx context.Context, _ *Empty) (*User, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	return userFrom(actor.User()), nil
}
