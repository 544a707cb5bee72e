package models

// DashboardStats is the platform-wide admin view.
type DashboardStats struct {
	TotalUsers           int64
	TotalJobs            int64
	ActiveJobs           int64
	ClosedJobs           int64
	TotalCompanies       int64
	TotalApplicants      int64
	TotalApplications    int64
	PendingUsers         int64
	PendingJobs          int64
	ApplicationsByStatus map[ApplicationStatus]int64
}

type EmployerStats struct {
	TotalPosted     int64
	ActiveJobs      int64
	ClosedJobs      int64
	TotalApplicants int64
}

type JobSeekerStats struct {
	TotalApplied        int64
	SavedJobs           int64
	UnreadNotifications int64
	TotalJobs           int64
	TotalCompanies      int64
	RemoteJobs          int64
	CategoryCounts      map[string]int64
}

// Page is a limit/offset window. Zero Limit means the caller's default.
type Page struct {
	Limit  int
	Offset int
}
