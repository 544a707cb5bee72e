// Package services contains the job portal business logic: the job and
// application lifecycles, the CV default policy, saved jobs, dashboards,
// notifications, authentication and account administration.
//
// Every state-changing operation takes an *Actor produced by
// IdentityService.Resolve, so roles are loaded from storage once per request
// and never taken from the token.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/repomanager"
)

// Actor is the resolved principal of a request.
type Actor struct {
	user models.User
}

// UserID returns the id of the resolved user.
func (a *Actor) UserID() string { return a.user.ID }

// Email returns the normalised email of the resolved user.
func (a *Actor) Email() string { return a.user.Email }

// User returns a copy of the resolved user record.
func (a *Actor) User() *models.User {
	u := a.user
	u.Roles = a.Roles()
	return &u
}

// Roles returns a copy of the actor's role set.
func (a *Actor) Roles() []models.Role {
	return append([]models.Role(nil), a.user.Roles...)
}

// Role is the primary role (ADMIN over EMPLOYER over JOBSEEKER).
func (a *Actor) Role() models.Role {
	return models.PrimaryRole(a.user.Roles)
}

// Has reports whether the actor holds role r.
func (a *Actor) Has(r models.Role) bool { return a.user.HasRole(r) }

// IsAdmin reports whether the actor holds the ADMIN role.
func (a *Actor) IsAdmin() bool { return a.Has(models.RoleAdmin) }

// IsVerified reports whether the actor's account has been approved.
func (a *Actor) IsVerified() bool { return a.user.IsVerified }

// Owns reports whether the actor is the user identified by userID.
func (a *Actor) Owns(userID string) bool { return userID != "" && a.user.ID == userID }

type IdentityService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewIdentityService(db *sql.DB, repomanager repomanager.RepositoryManager) *IdentityService {
	return &IdentityService{db: db, repomanager: repomanager}
}

// Resolve loads the user behind an authenticated principal. A principal
// without a user record is an authentication-layer inconsistency and yields
// ErrorNotFound; deactivated accounts yield ErrorAccessDenied.
func (s *IdentityService) Resolve(ctx context.Context, userID string) (*Actor, error) {
	u, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: no user for principal %q", common.ErrorNotFound, userID)
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, fmt.Errorf("%w: account is deactivated", common.ErrorAccessDenied)
	}
	return &Actor{user: *u}, nil
}

func requireRole(a *Actor, r models.Role) error {
	if !a.Has(r) {
		return fmt.Errorf("%w: %s role required", common.ErrorAccessDenied, r)
	}
	return nil
}

func requireAdmin(a *Actor) error {
	return requireRole(a, models.RoleAdmin)
}

func normalizePage(p models.Page) models.Page {
	if p.Limit <= 0 {
		p.Limit = common.DefaultListLimit
	}
	if p.Limit > common.MaxListLimit {
		p.Limit = common.MaxListLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
