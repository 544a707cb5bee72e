package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/dbx"
	"github.com/dmitrijs2005/jobportal/internal/logging"
	"github.com/dmitrijs2005/jobportal/internal/server/auth"
	"github.com/dmitrijs2005/jobportal/internal/server/metrics"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/dmitrijs2005/jobportal/internal/server/notify"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/repomanager"
)

const employerDashboardURL = "/dashboard/employer"

type AdminService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sink        notify.Sink
	metrics     *metrics.Metrics
	log         logging.Logger
	now         func() time.Time
}

func NewAdminService(db *sql.DB, repomanager repomanager.RepositoryManager, sink notify.Sink,
	m *metrics.Metrics, log logging.Logger) *AdminService {
	return &AdminService{
		db:          db,
		repomanager: repomanager,
		sink:        sink,
		metrics:     m,
		log:         log.With("module", "admin"),
		now:         time.Now,
	}
}

func (s *AdminService) ListUsers(ctx context.Context, actor *Actor, page models.Page) ([]models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.repomanager.Users(s.db).List(ctx, normalizePage(page))
}

// ListPendingEmployers returns EMPLOYER accounts awaiting verification,
// oldest first.
func (s *AdminService) ListPendingEmployers(ctx context.Context, actor *Actor) ([]models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.repomanager.Users(s.db).ListPendingEmployers(ctx)
}

// setVerification updates the employer account and its company together.
func (s *AdminService) setVerification(ctx context.Context, userID string, status models.VerificationStatus, notes string) (*models.Company, error) {
	var company *models.Company
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if !user.HasRole(models.RoleEmployer) {
			return fmt.Errorf("%w: user is not an employer", common.ErrorValidation)
		}

		company, err = s.repomanager.Companies(tx).GetByUserID(ctx, userID)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		approved := status == models.VerificationApproved
		if err := s.repomanager.Users(tx).SetVerified(ctx, userID, approved, now); err != nil {
			return err
		}

		company.IsVerified = approved
		company.VerificationStatus = status
		company.VerificationNotes = notes
		company.UpdatedAt = now
		company.VerifiedAt = nil
		if approved {
			company.VerifiedAt = &now
		}
		return s.repomanager.Companies(tx).UpdateVerification(ctx, company)
	})
	if err != nil {
		return nil, err
	}
	return company, nil
}

func (s *AdminService) ApproveEmployer(ctx context.Context, actor *Actor, userID string) (*models.Company, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	company, err := s.setVerification(ctx, userID, models.VerificationApproved, "")
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "employer approved", "user_id", userID, "company_id", company.ID, "admin_id", actor.UserID())
	s.notify(ctx, &models.Notification{
		UserID:     userID,
		Title:      "Company Verified",
		Message:    fmt.Sprintf("Your company '%s' has been verified. You can now post jobs.", company.Name),
		Type:       models.NotificationCompanyVerified,
		RelatedURL: employerDashboardURL,
	})
	return company, nil
}

func (s *AdminService) RejectEmployer(ctx context.Context, actor *Actor, userID, notes string) (*models.Company, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	company, err := s.setVerification(ctx, userID, models.VerificationRejected, notes)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "employer rejected", "user_id", userID, "company_id", company.ID, "admin_id", actor.UserID())
	msg := fmt.Sprintf("Verification of your company '%s' was declined.", company.Name)
	if notes != "" {
		msg += " Notes: " + notes
	}
	s.notify(ctx, &models.Notification{
		UserID:     userID,
		Title:      "Company Verification Update",
		Message:    msg,
		Type:       models.NotificationSystemAlert,
		RelatedURL: employerDashboardURL,
	})
	return company, nil
}

func (s *AdminService) notify(ctx context.Context, n *models.Notification) {
	if err := s.sink.Notify(ctx, n); err != nil {
		s.metrics.NotificationFailed()
		s.log.Error(ctx, "admin notification failed", "user_id", n.UserID, "error", err)
	}
}

func notSelf(actor *Actor, userID, what string) error {
	if actor.Owns(userID) {
		return fmt.Errorf("%w: cannot %s your own account", common.ErrorValidation, what)
	}
	return nil
}

// SetUserActive activates or deactivates an account. Deactivation also
// revokes every refresh token of the user.
func (s *AdminService) SetUserActive(ctx context.Context, actor *Actor, userID string, active bool) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if !active {
		if err := notSelf(actor, userID, "deactivate"); err != nil {
			return err
		}
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).SetActive(ctx, userID, active, s.now().UTC()); err != nil {
			return err
		}
		if active {
			return nil
		}
		return s.repomanager.RefreshTokens(tx).DeleteByUser(ctx, userID)
	})
	if err != nil {
		return err
	}
	s.log.Info(ctx, "user activation changed", "user_id", userID, "active", active, "admin_id", actor.UserID())
	return nil
}

// DeleteUser removes the account and, by cascade, everything it owns.
func (s *AdminService) DeleteUser(ctx context.Context, actor *Actor, userID string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := notSelf(actor, userID, "delete"); err != nil {
		return err
	}
	if err := s.repomanager.Users(s.db).Delete(ctx, userID); err != nil {
		return err
	}
	s.log.Info(ctx, "user deleted", "user_id", userID, "admin_id", actor.UserID())
	return nil
}

// AssignRole grants a role given by name ("ADMIN", "admin" or "ROLE_ADMIN").
func (s *AdminService) AssignRole(ctx context.Context, actor *Actor, userID, roleName string) (*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	role, err := models.ParseRole(roleName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	repo := s.repomanager.Users(s.db)
	if _, err := repo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if err := repo.AddRole(ctx, userID, role); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "role assigned", "user_id", userID, "role", string(role), "admin_id", actor.UserID())
	return repo.GetByID(ctx, userID)
}

// InitAdmin bootstraps an administrator. An existing account with the email
// is promoted and gets the new password; otherwise a verified admin is
// created. created reports which happened.
func (s *AdminService) InitAdmin(ctx context.Context, email, password, firstName, lastName string) (user *models.User, created bool, err error) {
	email = common.NormalizeEmail(email)
	if email == "" {
		return nil, false, fmt.Errorf("%w: email is required", common.ErrorValidation)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, false, err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		now := s.now().UTC()

		existing, err := repo.GetByEmail(ctx, email)
		switch {
		case err == nil:
			if err := repo.AddRole(ctx, existing.ID, models.RoleAdmin); err != nil {
				return err
			}
			if err := repo.SetPasswordHash(ctx, existing.ID, hash, now); err != nil {
				return err
			}
			if err := repo.SetActive(ctx, existing.ID, true, now); err != nil {
				return err
			}
			if err := repo.SetVerified(ctx, existing.ID, true, now); err != nil {
				return err
			}
			user, err = repo.GetByID(ctx, existing.ID)
			return err
		case errors.Is(err, common.ErrorNotFound):
			created = true
			user, err = repo.Create(ctx, &models.User{
				Email:        email,
				PasswordHash: hash,
				FirstName:    firstName,
				LastName:     lastName,
				Roles:        []models.Role{models.RoleAdmin},
				IsActive:     true,
				IsVerified:   true,
				CreatedAt:    now,
			})
			return err
		default:
			return err
		}
	})
	if err != nil {
		return nil, false, err
	}

	s.log.Info(ctx, "admin initialized", "user_id", user.ID, "created", created)
	return user, created, nil
}
