package grpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "jobportal.v1.JobPortal"

// FullMethod returns the gRPC method path of name, e.g. "/jobportal.v1.JobPortal/Login".
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// JobPortalServer is the method set registered under ServiceName.
type JobPortalServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)

	Register(context.Context, *RegisterRequest) (*User, error)
	Login(context.Context, *LoginRequest) (*TokenResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*TokenResponse, error)
	Logout(context.Context, *RefreshTokenRequest) (*Empty, error)
	Me(context.Context, *Empty) (*User, error)

	GetJob(context.Context, *JobRequest) (*Job, error)
	ListOpenJobs(context.Context, *PageRequest) (*JobList, error)
	RecommendedJobs(context.Context, *Empty) (*JobList, error)
	CreateJob(context.Context, *CreateJobRequest) (*Job, error)
	UpdateJob(context.Context, *UpdateJobRequest) (*Job, error)
	DeleteJob(context.Context, *JobRequest) (*Empty, error)
	SetJobStatus(context.Context, *SetJobStatusRequest) (*Job, error)
	ApproveJob(context.Context, *JobRequest) (*Job, error)
	RejectJob(context.Context, *JobRequest) (*Job, error)
	ListPendingJobs(context.Context, *PageRequest) (*JobList, error)
	ListEmployerJobs(context.Context, *PageRequest) (*JobList, error)

	ApplyForJob(context.Context, *ApplyRequest) (*Application, error)
	SetApplicationStatus(context.Context, *SetApplicationStatusRequest) (*Application, error)
	WithdrawApplication(context.Context, *ApplicationRequest) (*Empty, error)
	GetApplicationCV(context.Context, *ApplicationRequest) (*CV, error)
	ListMyApplications(context.Context, *PageRequest) (*ApplicationList, error)
	ListJobApplications(context.Context, *ListJobApplicationsRequest) (*ApplicationList, error)
	RecentApplications(context.Context, *Empty) (*ApplicationList, error)

	SaveCV(context.Context, *CVFields) (*CV, error)
	RequestCVUpload(context.Context, *CVFields) (*CVUploadResponse, error)
	UpdateCV(context.Context, *UpdateCVRequest) (*CV, error)
	DeleteCV(context.Context, *CVRequest) (*Empty, error)
	ListCVs(context.Context, *Empty) (*CVList, error)
	GetCVDownloadURL(context.Context, *CVRequest) (*URLResponse, error)

	SaveJob(context.Context, *JobRequest) (*SavedJob, error)
	UnsaveJob(context.Context, *JobRequest) (*Empty, error)
	ListSavedJobs(context.Context, *PageRequest) (*SavedJobList, error)

	ListNotifications(context.Context, *PageRequest) (*NotificationList, error)
	CountUnreadNotifications(context.Context, *Empty) (*CountResponse, error)
	MarkNotificationRead(context.Context, *NotificationRequest) (*Empty, error)
	MarkAllNotificationsRead(context.Context, *Empty) (*CountResponse, error)

	GetDashboardStats(context.Context, *Empty) (*DashboardStats, error)
	GetEmployerStats(context.Context, *Empty) (*EmployerStats, error)
	GetJobSeekerStats(context.Context, *Empty) (*JobSeekerStats, error)

	ListUsers(context.Context, *PageRequest) (*UserList, error)
	ListPendingEmployers(context.Context, *Empty) (*UserList, error)
	ApproveEmployer(context.Context, *UserRequest) (*Company, error)
	RejectEmployer(context.Context, *RejectEmployerRequest) (*Company, error)
	SetUserActive(context.Context, *SetUserActiveRequest) (*Empty, error)
	DeleteUser(context.Context, *UserRequest) (*Empty, error)
	AssignRole(context.Context, *AssignRoleRequest) (*User, error)
}

var _ JobPortalServer = (*GRPCServer)(nil)

// unary adapts a typed handler to grpc.MethodDesc. Service errors are
// converted to statuses before interceptors see the result.
func unary[Req, Resp any](name string, fn func(*GRPCServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(*GRPCServer)
			call := func(ctx context.Context, req any) (any, error) {
				resp, err := fn(s, ctx, req.(*Req))
				if err != nil {
					return nil, s.toStatus(ctx, err)
				}
				return resp, nil
			}
			if interceptor == nil {
				return call(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			return interceptor(ctx, in, info, call)
		},
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*JobPortalServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ping", (*GRPCServer).Ping),

		unary("Register", (*GRPCServer).Register),
		unary("Login", (*GRPCServer).Login),
		unary("RefreshToken", (*GRPCServer).RefreshToken),
		unary("Logout", (*GRPCServer).Logout),
		unary("Me", (*GRPCServer).Me),

		unary("GetJob", (*GRPCServer).GetJob),
		unary("ListOpenJobs", (*GRPCServer).ListOpenJobs),
		unary("RecommendedJobs", (*GRPCServer).RecommendedJobs),
		unary("CreateJob", (*GRPCServer).CreateJob),
		unary("UpdateJob", (*GRPCServer).UpdateJob),
		unary("DeleteJob", (*GRPCServer).DeleteJob),
		unary("SetJobStatus", (*GRPCServer).SetJobStatus),
		unary("ApproveJob", (*GRPCServer).ApproveJob),
		unary("RejectJob", (*GRPCServer).RejectJob),
		unary("ListPendingJobs", (*GRPCServer).ListPendingJobs),
		unary("ListEmployerJobs", (*GRPCServer).ListEmployerJobs),

		unary("ApplyForJob", (*GRPCServer).ApplyForJob),
		unary("SetApplicationStatus", (*GRPCServer).SetApplicationStatus),
		unary("WithdrawApplication", (*GRPCServer).WithdrawApplication),
		unary("GetApplicationCV", (*GRPCServer).GetApplicationCV),
		unary("ListMyApplications", (*GRPCServer).ListMyApplications),
		unary("ListJobApplications", (*GRPCServer).ListJobApplications),
		unary("RecentApplications", (*GRPCServer).RecentApplications),

		unary("SaveCV", (*GRPCServer).SaveCV),
		unary("RequestCVUpload", (*GRPCServer).RequestCVUpload),
		unary("UpdateCV", (*GRPCServer).UpdateCV),
		unary("DeleteCV", (*GRPCServer).DeleteCV),
		unary("ListCVs", (*GRPCServer).ListCVs),
		unary("GetCVDownloadURL", (*GRPCServer).GetCVDownloadURL),

		unary("SaveJob", (*GRPCServer).SaveJob),
		unary("UnsaveJob", (*GRPCServer).UnsaveJob),
		unary("ListSavedJobs", (*GRPCServer).ListSavedJobs),

		unary("ListNotifications", (*GRPCServer).ListNotifications),
		unary("CountUnreadNotifications", (*GRPCServer).CountUnreadNotifications),
		unary("MarkNotificationRead", (*GRPCServer).MarkNotificationRead),
		unary("MarkAllNotificationsRead", (*GRPCServer).MarkAllNotificationsRead),

		unary("GetDashboardStats", (*GRPCServer).GetDashboardStats),
		unary("GetEmployerStats", (*GRPCServer).GetEmployerStats),
		unary("GetJobSeekerStats", (*GRPCServer).GetJobSeekerStats),

		unary("ListUsers", (*GRPCServer).ListUsers),
		unary("ListPendingEmployers", (*GRPCServer).ListPendingEmployers),
		unary("ApproveEmployer", (*GRPCServer).ApproveEmployer),
		unary("RejectEmployer", (*GRPCServer).RejectEmployer),
		unary("SetUserActive", (*GRPCServer).SetUserActive),
		unary("DeleteUser", (*GRPCServer).DeleteUser),
		unary("AssignRole", (*GRPCServer).AssignRole),
	},
}
