package grpc

import (
	"time"

	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/dmitrijs2005/jobportal/internal/server/services"
)

// Requests

type Empty struct{}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type PageRequest struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

func (p PageRequest) page() models.Page {
	return models.Page{Limit: p.Limit, Offset: p.Offset}
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Role        string `json:"role,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type JobFields struct {
	CompanyID           string     `json:"company_id,omitempty"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Requirements        string     `json:"requirements,omitempty"`
	Responsibilities    string     `json:"responsibilities,omitempty"`
	Location            string     `json:"location,omitempty"`
	JobType             string     `json:"job_type,omitempty"`
	WorkMode            string     `json:"work_mode,omitempty"`
	Category            string     `json:"category,omitempty"`
	ExperienceLevel     string     `json:"experience_level,omitempty"`
	SalaryMin           *float64   `json:"salary_min,omitempty"`
	SalaryMax           *float64   `json:"salary_max,omitempty"`
	SalaryCurrency      string     `json:"salary_currency,omitempty"`
	Openings            int        `json:"openings,omitempty"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`
	Status              string     `json:"status,omitempty"`
}

func (f JobFields) input() services.JobInput {
	return services.JobInput{
		CompanyID:           f.CompanyID,
		Title:               f.Title,
		Description:         f.Description,
		Requirements:        f.Requirements,
		Responsibilities:    f.Responsibilities,
		Location:            f.Location,
		JobType:             f.JobType,
		WorkMode:            models.WorkMode(f.WorkMode),
		Category:            f.Category,
		ExperienceLevel:     f.ExperienceLevel,
		SalaryMin:           f.SalaryMin,
		SalaryMax:           f.SalaryMax,
		SalaryCurrency:      f.SalaryCurrency,
		Openings:            f.Openings,
		ApplicationDeadline: f.ApplicationDeadline,
		Status:              models.JobStatus(f.Status),
	}
}

type CreateJobRequest struct {
	JobFields
}

type UpdateJobRequest struct {
	JobID string `json:"job_id"`
	JobFields
}

type JobRequest struct {
	JobID string `json:"job_id"`
}

type SetJobStatusRequest struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

type ApplyRequest struct {
	JobID       string `json:"job_id"`
	CoverLetter string `json:"cover_letter,omitempty"`
	CVID        string `json:"cv_id,omitempty"`
}

type ApplicationRequest struct {
	ApplicationID string `json:"application_id"`
}

type SetApplicationStatusRequest struct {
	ApplicationID string `json:"application_id"`
	Status        string `json:"status"`
	Notes         string `json:"notes,omitempty"`
}

type ListJobApplicationsRequest struct {
	JobID string `json:"job_id"`
	PageRequest
}

type CVFields struct {
	Title     string `json:"title,omitempty"`
	Summary   string `json:"summary,omitempty"`
	Skills    string `json:"skills,omitempty"`
	FileName  string `json:"file_name,omitempty"`
	IsDefault bool   `json:"is_default,omitempty"`
}

func (f CVFields) input() services.CVInput {
	return services.CVInput{
		Title:     f.Title,
		Summary:   f.Summary,
		Skills:    f.Skills,
		FileName:  f.FileName,
		IsDefault: f.IsDefault,
	}
}

type UpdateCVRequest struct {
	CVID string `json:"cv_id"`
	CVFields
}

type CVRequest struct {
	CVID string `json:"cv_id"`
}

type NotificationRequest struct {
	NotificationID string `json:"notification_id"`
}

type UserRequest struct {
	UserID string `json:"user_id"`
}

type RejectEmployerRequest struct {
	UserID string `json:"user_id"`
	Notes  string `json:"notes,omitempty"`
}

type SetUserActiveRequest struct {
	UserID string `json:"user_id"`
	Active bool   `json:"active"`
}

type AssignRoleRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Responses

type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name,omitempty"`
	LastName   string    `json:"last_name,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Roles      []string  `json:"roles"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

func userFrom(u *models.User) *User {
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, string(r))
	}
	return &User{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Phone:      u.Phone,
		Roles:      roles,
		Role:       string(models.PrimaryRole(u.Roles)),
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}

type UserList struct {
	Users []*User `json:"users"`
}

func userList(in []models.User) *UserList {
	out := &UserList{Users: make([]*User, 0, len(in))}
	for i := range in {
		out.Users = append(out.Users, userFrom(&in[i]))
	}
	return out
}

type Company struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	Name               string     `json:"name"`
	IsVerified         bool       `json:"is_verified"`
	VerificationStatus string     `json:"verification_status"`
	VerificationNotes  string     `json:"verification_notes,omitempty"`
	VerifiedAt         *time.Time `json:"verified_at,omitempty"`
}

func companyFrom(c *models.Company) *Company {
	return &Company{
		ID:                 c.ID,
		UserID:             c.UserID,
		Name:               c.Name,
		IsVerified:         c.IsVerified,
		VerificationStatus: string(c.VerificationStatus),
		VerificationNotes:  c.VerificationNotes,
		VerifiedAt:         c.VerifiedAt,
	}
}

type Job struct {
	ID string `json:"id"`
	JobFields
	CompanyName      string     `json:"company_name"`
	IsActive         bool       `json:"is_active"`
	ViewCount        int64      `json:"view_count"`
	ApplicationCount int64      `json:"application_count"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
	ClosedAt         *time.Time `json:"closed_at,omitempty"`
}

func jobFrom(j *models.Job) *Job {
	return &Job{
		ID: j.ID,
		JobFields: JobFields{
			CompanyID:           j.CompanyID,
			Title:               j.Title,
			Description:         j.Description,
			Requirements:        j.Requirements,
			Responsibilities:    j.Responsibilities,
			Location:            j.Location,
			JobType:             j.JobType,
			WorkMode:            string(j.WorkMode),
			Category:            j.Category,
			ExperienceLevel:     j.ExperienceLevel,
			SalaryMin:           j.SalaryMin,
			SalaryMax:           j.SalaryMax,
			SalaryCurrency:      j.SalaryCurrency,
			Openings:            j.Openings,
			ApplicationDeadline: j.ApplicationDeadline,
			Status:              string(j.Status),
		},
		CompanyName:      j.CompanyName,
		IsActive:         j.IsActive,
		ViewCount:        j.ViewCount,
		ApplicationCount: j.ApplicationCount,
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
		PublishedAt:      j.PublishedAt,
		ClosedAt:         j.ClosedAt,
	}
}

type JobList struct {
	Jobs []*Job `json:"jobs"`
}

func jobList(in []models.Job) *JobList {
	out := &JobList{Jobs: make([]*Job, 0, len(in))}
	for i := range in {
		out.Jobs = append(out.Jobs, jobFrom(&in[i]))
	}
	return out
}

type Application struct {
	ID             string     `json:"id"`
	JobID          string     `json:"job_id"`
	JobTitle       string     `json:"job_title"`
	CompanyName    string     `json:"company_name"`
	ApplicantID    string     `json:"applicant_id"`
	ApplicantEmail string     `json:"applicant_email"`
	CVID           *string    `json:"cv_id,omitempty"`
	CoverLetter    string     `json:"cover_letter,omitempty"`
	Status         string     `json:"status"`
	IsShortlisted  bool       `json:"is_shortlisted"`
	IsRejected     bool       `json:"is_rejected"`
	EmployerNotes  string     `json:"employer_notes,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func applicationFrom(a *models.Application) *Application {
	return &Application{
		ID:             a.ID,
		JobID:          a.JobID,
		JobTitle:       a.JobTitle,
		CompanyName:    a.CompanyName,
		ApplicantID:    a.ApplicantID,
		ApplicantEmail: a.ApplicantEmail,
		CVID:           a.CVID,
		CoverLetter:    a.CoverLetter,
		Status:         string(a.Status),
		IsShortlisted:  a.IsShortlisted(),
		IsRejected:     a.IsRejected(),
		EmployerNotes:  a.EmployerNotes,
		ReviewedAt:     a.ReviewedAt,
		CreatedAt:      a.CreatedAt,
	}
}

type ApplicationList struct {
	Applications []*Application `json:"applications"`
}

func applicationList(in []models.Application) *ApplicationList {
	out := &ApplicationList{Applications: make([]*Application, 0, len(in))}
	for i := range in {
		out.Applications = append(out.Applications, applicationFrom(&in[i]))
	}
	return out
}

type CV struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary,omitempty"`
	Skills    string    `json:"skills,omitempty"`
	FileName  string    `json:"file_name,omitempty"`
	HasFile   bool      `json:"has_file"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func cvFrom(c *models.CV) *CV {
	return &CV{
		ID:        c.ID,
		UserID:    c.UserID,
		Title:     c.Title,
		Summary:   c.Summary,
		Skills:    c.Skills,
		FileName:  c.FileName,
		HasFile:   c.StorageKey != "",
		IsDefault: c.IsDefault,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type CVList struct {
	CVs []*CV `json:"cvs"`
}

type CVUploadResponse struct {
	CV        *CV    `json:"cv"`
	UploadURL string `json:"upload_url"`
}

type URLResponse struct {
	URL string `json:"url"`
}

type SavedJob struct {
	ID          string    `json:"id"`
	JobID       string    `json:"job_id"`
	JobTitle    string    `json:"job_title"`
	CompanyName string    `json:"company_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func savedJobFrom(s *models.SavedJob) *SavedJob {
	return &SavedJob{
		ID:          s.ID,
		JobID:       s.JobID,
		JobTitle:    s.JobTitle,
		CompanyName: s.CompanyName,
		CreatedAt:   s.CreatedAt,
	}
}

type SavedJobList struct {
	SavedJobs []*SavedJob `json:"saved_jobs"`
}

type Notification struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	Type       string     `json:"type"`
	RelatedURL string     `json:"related_url,omitempty"`
	IsRead     bool       `json:"is_read"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func notificationFrom(n *models.Notification) *Notification {
	return &Notification{
		ID:         n.ID,
		Title:      n.Title,
		Message:    n.Message,
		Type:       string(n.Type),
		RelatedURL: n.RelatedURL,
		IsRead:     n.IsRead,
		ReadAt:     n.ReadAt,
		CreatedAt:  n.CreatedAt,
	}
}

type NotificationList struct {
	Notifications []*Notification `json:"notifications"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type DashboardStats struct {
	TotalUsers           int64            `json:"total_users"`
	TotalJobs            int64            `json:"total_jobs"`
	ActiveJobs           int64            `json:"active_jobs"`
	ClosedJobs           int64            `json:"closed_jobs"`
	PendingJobs          int64            `json:"pending_jobs"`
	TotalCompanies       int64            `json:"total_companies"`
	TotalApplicants      int64            `json:"total_applicants"`
	TotalApplications    int64            `json:"total_applications"`
	PendingUsers         int64            `json:"pending_users"`
	ApplicationsByStatus map[string]int64 `json:"applications_by_status"`
}

func dashboardStatsFrom(s *models.DashboardStats) *DashboardStats {
	byStatus := make(map[string]int64, len(s.ApplicationsByStatus))
	for k, v := range s.ApplicationsByStatus {
		byStatus[string(k)] = v
	}
	return &DashboardStats{
		TotalUsers:           s.TotalUsers,
		TotalJobs:            s.TotalJobs,
		ActiveJobs:           s.ActiveJobs,
		ClosedJobs:           s.ClosedJobs,
		PendingJobs:          s.PendingJobs,
		TotalCompanies:       s.TotalCompanies,
		TotalApplicants:      s.TotalApplicants,
		TotalApplications:    s.TotalApplications,
		PendingUsers:         s.PendingUsers,
		ApplicationsByStatus: byStatus,
	}
}

type EmployerStats struct {
	TotalPosted     int64 `json:"total_posted"`
	ActiveJobs      int64 `json:"active_jobs"`
	ClosedJobs      int64 `json:"closed_jobs"`
	TotalApplicants int64 `json:"total_applicants"`
}

type JobSeekerStats struct {
	TotalApplied        int64            `json:"total_applied"`
	SavedJobs           int64            `json:"saved_jobs"`
	UnreadNotifications int64            `json:"unread_notifications"`
	TotalJobs           int64            `json:"total_jobs"`
	TotalCompanies      int64            `json:"total_companies"`
	RemoteJobs          int64            `json:"remote_jobs"`
	CategoryCounts      map[string]int64 `json:"category_counts"`
}
