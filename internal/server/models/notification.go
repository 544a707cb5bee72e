package models

import "time"

type NotificationType string

const (
	NotificationJobApplication    NotificationType = "JOB_APPLICATION"
	NotificationApplicationStatus NotificationType = "APPLICATION_STATUS"
	NotificationNewJobMatch       NotificationType = "NEW_JOB_MATCH"
	NotificationInterview         NotificationType = "INTERVIEW_SCHEDULED"
	NotificationMessage           NotificationType = "MESSAGE"
	NotificationSystemAlert       NotificationType = "SYSTEM_ALERT"
	NotificationCompanyVerified   NotificationType = "COMPANY_VERIFIED"
	NotificationProfileView       NotificationType = "PROFILE_VIEW"
)

type Notification struct {
	ID         string
	UserID     string
	Title      string
	Message    string
	Type       NotificationType
	RelatedURL string
	IsRead     bool
	ReadAt     *time.Time
	CreatedAt  time.Time
}
