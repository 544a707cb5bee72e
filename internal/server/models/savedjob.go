package models

import "time"

type SavedJob struct {
	ID        string
	UserID    string
	JobID     string
	CreatedAt time.Time

	JobTitle    string
	CompanyName string
}
