package grpc

import (
	"errors"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func wantCode(t *testing.T, err error, code codes.Code) {
	t.Helper()
	if got := status.Code(err); got != code {
		t.Fatalf("expected %v, got %v (%v)", code, got, err)
	}
}

func TestRegisterLoginMe(t *testing.T) {
	e := newTestEnv(t)

	user, token := e.signUp("Seeker@Example.com", "", "")
	if user.Email != "seeker@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}

	var me User
	e.mustCall(token, "Me", &Empty{}, &me)
	if me.ID != user.ID {
		t.Fatalf("Me returned %s, want %s", me.ID, user.ID)
	}
	if len(me.Roles) != 1 || me.Roles[0] != "JOBSEEKER" {
		t.Fatalf("unexpected roles %v", me.Roles)
	}

	err := e.call("", "Register", &RegisterRequest{Email: "seeker@example.com", Password: "another-pass"}, &User{})
	wantCode(t, err, codes.AlreadyExists)

	err = e.call("", "Register", &RegisterRequest{Email: "boss@example.com", Password: "boss-pass", Role: "ADMIN"}, &User{})
	wantCode(t, err, codes.InvalidArgument)

	err = e.call("", "Login", &LoginRequest{Email: "seeker@example.com", Password: "wrong"}, &TokenResponse{})
	wantCode(t, err, codes.Unauthenticated)
}

func TestRefreshAndLogout(t *testing.T) {
	e := newTestEnv(t)
	e.signUp("s@example.com", "", "")

	var first TokenResponse
	e.mustCall("", "Login", &LoginRequest{Email: "s@example.com", Password: "pass-s@example.com"}, &first)

	var second TokenResponse
	e.mustCall("", "RefreshToken", &RefreshTokenRequest{RefreshToken: first.RefreshToken}, &second)
	if second.RefreshToken == first.RefreshToken {
		t.Fatal("refresh token was not rotated")
	}

	err := e.call("", "RefreshToken", &RefreshTokenRequest{RefreshToken: first.RefreshToken}, &TokenResponse{})
	wantCode(t, err, codes.Unauthenticated)

	e.mustCall("", "Logout", &RefreshTokenRequest{RefreshToken: second.RefreshToken}, &Empty{})
	err = e.call("", "RefreshToken", &RefreshTokenRequest{RefreshToken: second.RefreshToken}, &TokenResponse{})
	wantCode(t, err, codes.Unauthenticated)
}

func TestInternalErrorsAreMasked(t *testing.T) {
	e := newTestEnv(t)
	e.store.FailOn("jobs.GetByID", errors.New("disk on fire"))

	err := e.call("", "GetJob", &JobRequest{JobID: "j1"}, &Job{})
	wantCode(t, err, codes.Internal)
	if msg := status.Convert(err).Message(); msg != "internal error" {
		t.Fatalf("internal detail leaked: %q", msg)
	}
}

func TestHiringWorkflow(t *testing.T) {
	e := newTestEnv(t)
	admin := e.adminToken()

	employer, employerToken := e.signUp("hr@example.com", "EMPLOYER", "Acme")
	_, seekerToken := e.signUp("dev@example.com", "", "")

	// Unverified employers cannot post.
	post := &CreateJobRequest{JobFields: JobFields{Title: "Go Engineer", Description: "Build services", WorkMode: "REMOTE"}}
	err := e.call(employerToken, "CreateJob", post, &Job{})
	wantCode(t, err, codes.FailedPrecondition)

	var pending UserList
	e.mustCall(admin, "ListPendingEmployers", &Empty{}, &pending)
	if len(pending.Users) != 1 || pending.Users[0].ID != employer.ID {
		t.Fatalf("unexpected pending employers: %+v", pending.Users)
	}

	var company Company
	e.mustCall(admin, "ApproveEmployer", &UserRequest{UserID: employer.ID}, &company)
	if !company.IsVerified || company.VerificationStatus != "APPROVED" || company.Name != "Acme" {
		t.Fatalf("unexpected company after approval: %+v", company)
	}

	var job Job
	e.mustCall(employerToken, "CreateJob", post, &job)
	if job.Status != "PENDING_APPROVAL" || job.IsActive {
		t.Fatalf("new employer job should await approval: %+v", job)
	}

	var open JobList
	e.mustCall("", "ListOpenJobs", &PageRequest{}, &open)
	if len(open.Jobs) != 0 {
		t.Fatalf("pending job is listed publicly: %+v", open.Jobs)
	}

	err = e.call(seekerToken, "ApproveJob", &JobRequest{JobID: job.ID}, &Job{})
	wantCode(t, err, codes.PermissionDenied)

	e.mustCall(admin, "ApproveJob", &JobRequest{JobID: job.ID}, &job)
	if job.Status != "OPEN" || !job.IsActive || job.PublishedAt == nil {
		t.Fatalf("approved job should be open: %+v", job)
	}

	e.mustCall("", "ListOpenJobs", &PageRequest{}, &open)
	if len(open.Jobs) != 1 || open.Jobs[0].ID != job.ID {
		t.Fatalf("open jobs: %+v", open.Jobs)
	}

	var cv CV
	e.mustCall(seekerToken, "SaveCV", &CVFields{Title: "Backend", Skills: "go, sql"}, &cv)
	if !cv.IsDefault {
		t.Fatal("first CV should become the default")
	}

	var app Application
	e.mustCall(seekerToken, "ApplyForJob", &ApplyRequest{JobID: job.ID, CoverLetter: "hello"}, &app)
	if app.Status != "SUBMITTED" || app.CVID == nil || *app.CVID != cv.ID {
		t.Fatalf("unexpected application: %+v", app)
	}

	err = e.call(seekerToken, "ApplyForJob", &ApplyRequest{JobID: job.ID}, &Application{})
	wantCode(t, err, codes.AlreadyExists)

	var got Job
	e.mustCall("", "GetJob", &JobRequest{JobID: job.ID}, &got)
	if got.ApplicationCount != 1 {
		t.Fatalf("application count = %d, want 1", got.ApplicationCount)
	}

	var received ApplicationList
	e.mustCall(employerToken, "ListJobApplications", &ListJobApplicationsRequest{JobID: job.ID}, &received)
	if len(received.Applications) != 1 || received.Applications[0].ApplicantEmail != "dev@example.com" {
		t.Fatalf("employer applications: %+v", received.Applications)
	}

	var attached CV
	e.mustCall(employerToken, "GetApplicationCV", &ApplicationRequest{ApplicationID: app.ID}, &attached)
	if attached.ID != cv.ID {
		t.Fatalf("attached CV = %s, want %s", attached.ID, cv.ID)
	}

	e.mustCall(employerToken, "SetApplicationStatus", &SetApplicationStatusRequest{
		ApplicationID: app.ID, Status: "SHORTLISTED", Notes: "strong",
	}, &app)
	if !app.IsShortlisted || app.IsRejected || app.EmployerNotes != "strong" || app.ReviewedAt == nil {
		t.Fatalf("unexpected reviewed application: %+v", app)
	}

	var unread CountResponse
	e.mustCall(seekerToken, "CountUnreadNotifications", &Empty{}, &unread)
	if unread.Count != 1 {
		t.Fatalf("unread = %d, want 1", unread.Count)
	}

	var notes NotificationList
	e.mustCall(seekerToken, "ListNotifications", &PageRequest{}, &notes)
	if len(notes.Notifications) != 1 || notes.Notifications[0].Type != "APPLICATION_STATUS" {
		t.Fatalf("notifications: %+v", notes.Notifications)
	}
	e.mustCall(seekerToken, "MarkNotificationRead", &NotificationRequest{NotificationID: notes.Notifications[0].ID}, &Empty{})
	e.mustCall(seekerToken, "CountUnreadNotifications", &Empty{}, &unread)
	if unread.Count != 0 {
		t.Fatalf("unread after mark = %d", unread.Count)
	}

	var employerStats EmployerStats
	e.mustCall(employerToken, "GetEmployerStats", &Empty{}, &employerStats)
	if employerStats.TotalPosted != 1 || employerStats.ActiveJobs != 1 || employerStats.TotalApplicants != 1 {
		t.Fatalf("employer stats: %+v", employerStats)
	}

	err = e.call(seekerToken, "GetDashboardStats", &Empty{}, &DashboardStats{})
	wantCode(t, err, codes.PermissionDenied)

	e.mustCall(seekerToken, "WithdrawApplication", &ApplicationRequest{ApplicationID: app.ID}, &Empty{})
	var mine ApplicationList
	e.mustCall(seekerToken, "ListMyApplications", &PageRequest{}, &mine)
	if len(mine.Applications) != 0 {
		t.Fatalf("withdrawn application still listed: %+v", mine.Applications)
	}
}

func TestSavedJobs(t *testing.T) {
	e := newTestEnv(t)
	admin := e.adminToken()
	employer, _ := e.signUp("hr@example.com", "EMPLOYER", "Acme")

	var company Company
	e.mustCall(admin, "ApproveEmployer", &UserRequest{UserID: employer.ID}, &company)

	var job Job
	e.mustCall(admin, "CreateJob", &CreateJobRequest{JobFields: JobFields{
		CompanyID: company.ID, Title: "SRE", Description: "Keep it up",
	}}, &job)
	if job.Status != "OPEN" {
		t.Fatalf("admin-created job defaults to OPEN, got %s", job.Status)
	}

	_, seeker := e.signUp("s@example.com", "", "")

	var saved SavedJob
	e.mustCall(seeker, "SaveJob", &JobRequest{JobID: job.ID}, &saved)
	if saved.JobID != job.ID {
		t.Fatalf("saved job: %+v", saved)
	}
	wantCode(t, e.call(seeker, "SaveJob", &JobRequest{JobID: job.ID}, &SavedJob{}), codes.AlreadyExists)

	var list SavedJobList
	e.mustCall(seeker, "ListSavedJobs", &PageRequest{}, &list)
	if len(list.SavedJobs) != 1 || list.SavedJobs[0].JobTitle != "SRE" || list.SavedJobs[0].CompanyName != "Acme" {
		t.Fatalf("saved jobs: %+v", list.SavedJobs)
	}

	e.mustCall(seeker, "UnsaveJob", &JobRequest{JobID: job.ID}, &Empty{})
	e.mustCall(seeker, "ListSavedJobs", &PageRequest{}, &list)
	if len(list.SavedJobs) != 0 {
		t.Fatalf("saved jobs after unsave: %+v", list.SavedJobs)
	}
}

func TestAdminUserManagement(t *testing.T) {
	e := newTestEnv(t)
	admin := e.adminToken()
	user, _ := e.signUp("s@example.com", "", "")

	var updated User
	e.mustCall(admin, "AssignRole", &AssignRoleRequest{UserID: user.ID, Role: "EMPLOYER"}, &updated)
	if len(updated.Roles) != 2 {
		t.Fatalf("roles after assign: %v", updated.Roles)
	}
	wantCode(t, e.call(admin, "AssignRole", &AssignRoleRequest{UserID: user.ID, Role: "WIZARD"}, &User{}), codes.InvalidArgument)

	var users UserList
	e.mustCall(admin, "ListUsers", &PageRequest{}, &users)
	if len(users.Users) != 2 {
		t.Fatalf("users: %d", len(users.Users))
	}

	var me User
	e.mustCall(admin, "Me", &Empty{}, &me)
	wantCode(t, e.call(admin, "DeleteUser", &UserRequest{UserID: me.ID}, &Empty{}), codes.InvalidArgument)

	e.mustCall(admin, "DeleteUser", &UserRequest{UserID: user.ID}, &Empty{})
	wantCode(t, e.call("", "Login", &LoginRequest{Email: "s@example.com", Password: "pass-s@example.com"}, &TokenResponse{}), codes.Unauthenticated)
}
