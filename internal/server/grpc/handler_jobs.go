package grpc

import (
	"context"

	"github.com/dmitrijs2005/jobportal/internal/server/models"
)

func (s *GRPCServer) GetJob(ctx context.Context, req *JobRequest) (*Job, error) {
	job, err := s.svc.Jobs.GetJob(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	return jobFrom(job), nil
}

func (s *GRPCServer) ListOpenJobs(ctx context.Context, req *PageRequest) (*JobList, error) {
	jobs, err := s.svc.Jobs.ListOpenJobs(ctx, req.page())
	if err != nil {
		return nil, err
	}
	return jobList(jobs), nil
}

func (s *GRPCServer) RecommendedJobs(ctx context.Context, _ *Empty) (*JobList, error) {
	jobs, err := s.svc.Jobs.RecommendedJobs(ctx)
	if err != nil {
		return nil, err
	}
	return jobList(jobs), nil
}

func (s *GRPCServer) CreateJob(ctx context.Context, req *CreateJobRequest) (*Job, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	job, err := s.svc.Jobs.CreateJob(ctx, actor, req.input())
	if err != nil {
		return nil, err
	}
	return jobFrom(job), nil
}

func (s *GRPCServer) UpdateJob(ctx context.Context, req *UpdateJobRequest) (*Job, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	job, err := s.svc.Jobs.UpdateJob(ctx, actor, req.JobID, req.input())
	if err != nil {
		return nil, err
	}
	return jobFrom(job), nil
}

func (s *GRPCServer) DeleteJob(ctx context.Context, req *JobRequest) (*Empty, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.svc.Jobs.DeleteJob(ctx, actor, req.JobID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (s *GRPCServer) SetJobStatus(ctx context.Context, req *SetJobStatusRequest) (*Job, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	job, err := s.svc.Jobs.SetJobStatus(ctx, actor, req.JobID, models.JobStatus(req.Status))
	if err != nil {
		return nil, err
	}
	return jobFrom(job), nil
}

func (s *GRPCServer) ApproveJob(ctx context.Context, req *JobRequest) (*Job, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	job, err := s.svc.Jobs.ApproveJob(ctx, actor, req.JobID)
	if err != nil {
		return nil, err
	}
	return jobFrom(job), nil
}

func (s *GRPCServer) RejectJob(ctx context.Context, req *JobRequest) (*Job, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	job, err := s.svc.Jobs.RejectJob(ctx, actor, req.JobID)
	if err != nil {
		return nil, err
	}
	return jobFrom(job), nil
}

func (s *GRPCServer) ListPendingJobs(ctx context.Context, req *PageRequest) (*JobList, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	jobs, err := s.svc.Jobs.ListPendingJobs(ctx, actor, req.page())
	if err != nil {
		return nil, err
	}
	return jobList(jobs), nil
}

func (s *GRPCServer) ListEmployerJobs(ctx context.Context, req *PageRequest) (*JobList, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	jobs, err := s.svc.Jobs.ListEmployerJobs(ctx, actor, req.page())
	if err != nil {
		return nil, err
	}
	return jobList(jobs), nil
}
