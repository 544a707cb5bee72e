package models

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	Roles        []Role
	IsActive     bool
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) HasRole(r Role) bool {
	return HasRole(u.Roles, r)
}
