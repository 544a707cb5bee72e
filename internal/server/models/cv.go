package models

import "time"

type CV struct {
	ID         string
	UserID     string
	Title      string
	Summary    string
	Skills     string
	FileName   string
	StorageKey string
	IsDefault  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
