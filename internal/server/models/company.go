package models

import "time"

type VerificationStatus string

const (
	VerificationPending          VerificationStatus = "PENDING"
	VerificationApproved         VerificationStatus = "APPROVED"
	VerificationRejected         VerificationStatus = "REJECTED"
	VerificationResubmitRequired VerificationStatus = "RESUBMIT_REQUIRED"
)

// Company is the single employer profile of an EMPLOYER user.
type Company struct {
	ID                 string
	UserID             string
	Name               string
	Description        string
	Industry           string
	Website            string
	City               string
	IsVerified         bool
	VerificationStatus VerificationStatus
	VerificationNotes  string
	VerifiedAt         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
