// Package models holds the persistent entities of the job portal and the
// enumerations that drive their lifecycles.
package models

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleJobSeeker Role = "JOBSEEKER"
	RoleEmployer  Role = "EMPLOYER"
	RoleAdmin     Role = "ADMIN"
)

// rolePriority orders roles for PrimaryRole; lower wins.
var rolePriority = map[Role]int{
	RoleAdmin:     0,
	RoleEmployer:  1,
	RoleJobSeeker: 2,
}

func (r Role) Valid() bool {
	_, ok := rolePriority[r]
	return ok
}

// ParseRole accepts "ADMIN", "admin" and "ROLE_ADMIN" spellings.
func ParseRole(s string) (Role, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "ROLE_")
	r := Role(name)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// PrimaryRole picks one role from a set deterministically:
// ADMIN over EMPLOYER over JOBSEEKER. It returns "" for an empty set.
func PrimaryRole(roles []Role) Role {
	var best Role
	for _, r := range roles {
		p, ok := rolePriority[r]
		if !ok {
			continue
		}
		if best == "" || p < rolePriority[best] {
			best = r
		}
	}
	return best
}

// HasRole reports whether roles contains r.
func HasRole(roles []Role, r Role) bool {
	for _, x := range roles {
		if x == r {
			return true
		}
	}
	return false
}
