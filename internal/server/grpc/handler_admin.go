package grpc

import (
	"context"
)

func (s *GRPCServer) ListUsers(ctx context.Context, req *PageRequest) (*UserList, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.svc.Admin.ListUsers(ctx, actor, req.page())
	if err != nil {
		return nil, err
	}
	return userList(users), nil
}

func (s *GRPCServer) ListPendingEmployers(ctx context.Context, _ *Empty) (*UserList, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.svc.Admin.ListPendingEmployers(ctx, actor)
	if err != nil {
		return nil, err
	}
	return userList(users), nil
}

func (s *GRPCServer) ApproveEmployer(ctx context.Context, req *UserRequest) (*Company, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.svc.Admin.ApproveEmployer(ctx, actor, req.UserID)
	if err != nil {
		return nil, err
	}
	return companyFrom(c), nil
}

func (s *GRPCServer) RejectEmployer(ctx context.Context, req *RejectEmployerRequest) (*Company, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.svc.Admin.RejectEmployer(ctx, actor, req.UserID, req.Notes)
	if err != nil {
		return nil, err
	}
	return companyFrom(c), nil
}

func (s *GRPCServer) SetUserActive(ctx context.Context, req *SetUserActiveRequest) (*Empty, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.svc.Admin.SetUserActive(ctx, actor, req.UserID, req.Active); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (s *GRPCServer) DeleteUser(ctx context.Context, req *UserRequest) (*Empty, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.svc.Admin.DeleteUser(ctx, actor, req.UserID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (s *GRPCServer) AssignRole(ctx context.Context, req *AssignRoleRequest) (*User, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.svc.Admin.AssignRole(ctx, actor, req.UserID, req.Role)
	if err != nil {
		return nil, err
	}
	return userFrom(u), nil
}
