package grpc

import (
	"context"
)

func (s *GRPCServer) SaveJob(ctx context.Context, req *JobRequest) (*SavedJob, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	saved, err := s.svc.SavedJobs.SaveJob(ctx, actor, req.JobID)
	if err != nil {
		return nil, err
	}
	return savedJobFrom(saved), nil
}

func (s *GRPCServer) UnsaveJob(ctx context.Context, req *JobRequest) (*Empty, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.svc.SavedJobs.UnsaveJob(ctx, actor, req.JobID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (s *GRPCServer) ListSavedJobs(ctx context.Context, req *PageRequest) (*SavedJobList, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.svc.SavedJobs.ListSavedJobs(ctx, actor, req.page())
	if err != nil {
		return nil, err
	}
	out := &SavedJobList{SavedJobs: make([]*SavedJob, 0, len(list))}
	for i := range list {
		out.SavedJobs = append(out.SavedJobs, savedJobFrom(&list[i]))
	}
	return out, nil
}

func (s *GRPCServer) ListNotifications(ctx context.Context, req *PageRequest) (*NotificationList, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.svc.Notifications.List(ctx, actor, req.page())
	if err != nil {
		return nil, err
	}
	out := &NotificationList{Notifications: make([]*Notification, 0, len(list))}
	for i := range list {
		out.Notifications = append(out.Notifications, notificationFrom(&list[i]))
	}
	return out, nil
}

func (s *GRPCServer) CountUnreadNotifications(ctx context.Context, _ *Empty) (*CountResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	n, err := s.svc.Notifications.CountUnread(ctx, actor)
	if err != nil {
		return nil, err
	}
	return &CountResponse{Count: n}, nil
}

func (s *GRPCServer) MarkNotificationRead(ctx context.Context, req *NotificationRequest) (*Empty, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.svc.Notifications.MarkRead(ctx, actor, req.NotificationID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (s *GRPCServer) MarkAllNotificationsRead(ctx context.Context, _ *Empty) (*CountResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	n, err := s.svc.Notifications.MarkAllRead(ctx, actor)
	if err != nil {
		return nil, err
	}
	return &CountResponse{Count: n}, nil
}

func (s *GRPCServer) GetDashboardStats(ctx context.Context, _ *Empty) (*DashboardStats, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	st, err := s.svc.Dashboard.AdminStats(ctx, actor)
	if err != nil {
		return nil, err
	}
	return dashboardStatsFrom(st), nil
}

func (s *GRPCServer) GetEmployerStats(ctx context.Context, _ *Empty) (*EmployerStats, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	st, err := s.svc.Dashboard.EmployerStats(ctx, actor)
	if err != nil {
		return nil, err
	}
	return &EmployerStats{
		TotalPosted:     st.TotalPosted,
		ActiveJobs:      st.ActiveJobs,
		ClosedJobs:      st.ClosedJobs,
		TotalApplicants: st.TotalApplicants,
	}, nil
}

func (s *GRPCServer) GetJobSeekerStats(ctx context.Context, _ *Empty) (*JobSeekerStats, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	st, err := s.svc.Dashboard.JobSeekerStats(ctx, actor)
	if err != nil {
		return nil, err
	}
	return &JobSeekerStats{
		TotalApplied:        st.TotalApplied,
		SavedJobs:           st.SavedJobs,
		UnreadNotifications: st.UnreadNotifications,
		TotalJobs:           st.TotalJobs,
		TotalCompanies:      st.TotalCompanies,
		RemoteJobs:          st.RemoteJobs,
		CategoryCounts:      st.CategoryCounts,
	}, nil
}
