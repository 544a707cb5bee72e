package models

import "time"

type JobStatus string

const (
	JobDraft           JobStatus = "DRAFT"
	JobPendingApproval JobStatus = "PENDING_APPROVAL"
	JobOpen            JobStatus = "OPEN"
	JobClosed          JobStatus = "CLOSED"
	JobFilled          JobStatus = "FILLED"
	JobCancelled       JobStatus = "CANCELLED"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobDraft, JobPendingApproval, JobOpen, JobClosed, JobFilled, JobCancelled:
		return true
	}
	return false
}

type WorkMode string

const (
	WorkOnsite WorkMode = "ONSITE"
	WorkRemote WorkMode = "REMOTE"
	WorkHybrid WorkMode = "HYBRID"
)

func (m WorkMode) Valid() bool {
	switch m {
	case WorkOnsite, WorkRemote, WorkHybrid:
		return true
	}
	return false
}

type Job struct {
	ID                  string
	CompanyID           string
	Title               string
	Description         string
	Requirements        string
	Responsibilities    string
	Location            string
	JobType             string
	WorkMode            WorkMode
	Category            string
	ExperienceLevel     string
	SalaryMin           *float64
	SalaryMax           *float64
	SalaryCurrency      string
	Openings            int
	ApplicationDeadline *time.Time
	IsActive            bool
	Status              JobStatus
	ViewCount           int64
	ApplicationCount    int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
	PublishedAt         *time.Time
	ClosedAt            *time.Time

	// Filled from the company join on reads.
	CompanyName string
	OwnerID     string
}
