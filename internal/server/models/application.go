package models

import "time"

type ApplicationStatus string

const (
	ApplicationSubmitted          ApplicationStatus = "SUBMITTED"
	ApplicationReviewed           ApplicationStatus = "REVIEWED"
	ApplicationShortlisted        ApplicationStatus = "SHORTLISTED"
	ApplicationInterviewScheduled ApplicationStatus = "INTERVIEW_SCHEDULED"
	ApplicationInterviewed        ApplicationStatus = "INTERVIEWED"
	ApplicationOffered            ApplicationStatus = "OFFERED"
	ApplicationAccepted           ApplicationStatus = "ACCEPTED"
	ApplicationRejected           ApplicationStatus = "REJECTED"
	ApplicationWithdrawn          ApplicationStatus = "WITHDRAWN"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationSubmitted, ApplicationReviewed, ApplicationShortlisted,
		ApplicationInterviewScheduled, ApplicationInterviewed, ApplicationOffered,
		ApplicationAccepted, ApplicationRejected, ApplicationWithdrawn:
		return true
	}
	return false
}

type Application struct {
	ID            string
	JobID         string
	ApplicantID   string
	CVID          *string
	CoverLetter   string
	Status        ApplicationStatus
	EmployerNotes string
	ReviewedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Filled from joins on reads.
	JobTitle       string
	CompanyName    string
	EmployerID     string
	ApplicantEmail string
}

// IsShortlisted is derived from Status and never stored.
func (a *Application) IsShortlisted() bool {
	return a.Status == ApplicationShortlisted
}

// IsRejected is derived from Status and never stored.
func (a *Application) IsRejected() bool {
	return a.Status == ApplicationRejected
}
