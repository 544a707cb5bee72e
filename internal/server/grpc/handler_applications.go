package grpc

import (
	"context"

	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/dmitrijs2005/jobportal/internal/server/services"
)

func (s *GRPCServer) ApplyForJob(ctx context.Context, req *ApplyRequest) (*Application, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	app, err := s.svc.Applications.Apply(ctx, actor, services.ApplyInput{
		JobID:       req.JobID,
		CoverLetter: req.CoverLetter,
		CVID:        req.CVID,
	})
	if err != nil {
		return nil, err
	}
	return applicationFrom(app), nil
}

func (s *GRPCServer) SetApplicationStatus(ctx context.Context, req *SetApplicationStatusRequest) (*Application, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	app, err := s.svc.Applications.UpdateStatus(ctx, actor, req.ApplicationID,
		models.ApplicationStatus(req.Status), req.Notes)
	if err != nil {
		return nil, err
	}
	return applicationFrom(app), nil
}

func (s *GRPCServer) WithdrawApplication(ctx context.Context, req *ApplicationRequest) (*Empty, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.svc.Applications.Withdraw(ctx, actor, req.ApplicationID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (s *GRPCServer) GetApplicationCV(ctx context.Context, req *ApplicationRequest) (*CV, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	cv, err := s.svc.Applications.GetApplicationCV(ctx, actor, req.ApplicationID)
	if err != nil {
		return nil, err
	}
	return cvFrom(cv), nil
}

func (s *GRPCServer) ListMyApplications(ctx context.Context, req *PageRequest) (*ApplicationList, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	apps, err := s.svc.Applications.ListMyApplications(ctx, actor, req.page())
	if err != nil {
		return nil, err
	}
	return applicationList(apps), nil
}

func (s *GRPCServer) ListJobApplications(ctx context.Context, req *ListJobApplicationsRequest) (*ApplicationList, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	apps, err := s.svc.Applications.ListJobApplications(ctx, actor, req.JobID, req.page())
	if err != nil {
		return nil, err
	}
	return applicationList(apps), nil
}

func (s *GRPCServer) RecentApplications(ctx context.Context, _ *Empty) (*ApplicationList, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	apps, err := s.svc.Applications.RecentApplications(ctx, actor)
	if err != nil {
		return nil, err
	}
	return applicationList(apps), nil
}
