package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/dbx"
	"github.com/dmitrijs2005/jobportal/internal/logging"
	"github.com/dmitrijs2005/jobportal/internal/server/metrics"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/dmitrijs2005/jobportal/internal/server/notify"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/repomanager"
)

const appliedJobsURL = "/dashboard/jobseeker/applied"

type ApplyInput struct {
	JobID       string
	CoverLetter string
	// CVID is optional; when empty or not owned by the applicant the
	// applicant's default CV is attached instead.
	CVID string
}

type ApplicationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sink        notify.Sink
	metrics     *metrics.Metrics
	log         logging.Logger
	now         func() time.Time
}

func NewApplicationService(db *sql.DB, repomanager repomanager.RepositoryManager, sink notify.Sink,
	m *metrics.Metrics, log logging.Logger) *ApplicationService {
	return &ApplicationService{
		db:          db,
		repomanager: repomanager,
		sink:        sink,
		metrics:     m,
		log:         log.With("module", "applications"),
		now:         time.Now,
	}
}

// Apply creates a SUBMITTED application and bumps the job's application
// counter in the same transaction.
func (s *ApplicationService) Apply(ctx context.Context, actor *Actor, in ApplyInput) (*models.Application, error) {
	if err := requireRole(actor, models.RoleJobSeeker); err != nil {
		return nil, err
	}

	var id string
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		job, err := s.repomanager.Jobs(tx).GetByID(ctx, in.JobID)
		if err != nil {
			return err
		}

		apps := s.repomanager.Applications(tx)
		exists, err := apps.ExistsForJobAndApplicant(ctx, job.ID, actor.UserID())
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: already applied to this job", common.ErrorConflict)
		}

		cvID, err := s.resolveCV(ctx, tx, actor.UserID(), in.CVID)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		created, err := apps.Create(ctx, &models.Application{
			JobID:       job.ID,
			ApplicantID: actor.UserID(),
			CVID:        cvID,
			CoverLetter: in.CoverLetter,
			Status:      models.ApplicationSubmitted,
			CreatedAt:   now,
		})
		if err != nil {
			return err
		}
		id = created.ID

		return s.repomanager.Jobs(tx).AddApplicationCount(ctx, job.ID, 1, now)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ApplicationSubmitted()
	s.log.Info(ctx, "application submitted", "application_id", id, "job_id", in.JobID, "applicant_id", actor.UserID())
	return s.repomanager.Applications(s.db).GetByID(ctx, id)
}

// resolveCV picks the CV to attach: the requested one when it exists and
// belongs to the applicant, else the applicant's default, else none.
func (s *ApplicationService) resolveCV(ctx context.Context, tx dbx.DBTX, applicantID, requested string) (*string, error) {
	repo := s.repomanager.CVs(tx)

	if requested != "" {
		cv, err := repo.GetByID(ctx, requested)
		switch {
		case err == nil && cv.UserID == applicantID:
			return &cv.ID, nil
		case err != nil && !errors.Is(err, common.ErrorNotFound):
			return nil, err
		}
	}

	cv, err := repo.GetDefault(ctx, applicantID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cv.ID, nil
}

// authorizeApplication allows admins and the employer owning the job the
// application was made to.
func authorizeApplication(actor *Actor, app *models.Application) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.Has(models.RoleEmployer) && actor.Owns(app.EmployerID) {
		return nil
	}
	return fmt.Errorf("%w: application belongs to another employer", common.ErrorAccessDenied)
}

// UpdateStatus moves an application to any status except WITHDRAWN, which
// only the applicant reaches through Withdraw. The applicant is notified
// after the change commits; a failed notification is logged, never
// returned.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor *Actor, applicationID string,
	status models.ApplicationStatus, notes string) (*models.Application, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown application status %q", common.ErrorValidation, status)
	}
	if status == models.ApplicationWithdrawn {
		return nil, fmt.Errorf("%w: only the applicant can withdraw an application", common.ErrorValidation)
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Applications(tx)
		app, err := repo.GetByID(ctx, applicationID)
		if err != nil {
			return err
		}
		if err := authorizeApplication(actor, app); err != nil {
			return err
		}
		if notes == "" {
			notes = app.EmployerNotes
		}
		return repo.UpdateStatus(ctx, applicationID, status, notes, s.now().UTC())
	})
	if err != nil {
		return nil, err
	}

	app, err := s.repomanager.Applications(s.db).GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	s.metrics.ApplicationStatusChanged(string(status))
	s.log.Info(ctx, "application status changed", "application_id", applicationID, "status", string(status), "actor_id", actor.UserID())

	if err := s.sink.Notify(ctx, statusNotification(app)); err != nil {
		s.metrics.NotificationFailed()
		s.log.Error(ctx, "status notification failed", "application_id", applicationID, "error", err)
	}
	return app, nil
}

func statusNotification(app *models.Application) *models.Notification {
	var msg string
	if app.Status == models.ApplicationRejected {
		msg = fmt.Sprintf("We regret to inform you that your application for '%s' at %s was declined.",
			app.JobTitle, app.CompanyName)
	} else {
		label := strings.ToLower(strings.ReplaceAll(string(app.Status), "_", " "))
		msg = fmt.Sprintf("Great news! Your application for '%s' at %s has been %s.",
			app.JobTitle, app.CompanyName, label)
	}
	return &models.Notification{
		UserID:     app.ApplicantID,
		Title:      "Application Update: " + app.JobTitle,
		Message:    msg,
		Type:       models.NotificationApplicationStatus,
		RelatedURL: appliedJobsURL,
	}
}

// Withdraw deletes the applicant's own application and decrements the job's
// application counter in the same transaction. Earlier releases left the
// counter untouched on withdrawal, so stored counts could drift upward.
func (s *ApplicationService) Withdraw(ctx context.Context, actor *Actor, applicationID string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Applications(tx)
		app, err := repo.GetByID(ctx, applicationID)
		if err != nil {
			return err
		}
		if !actor.Owns(app.ApplicantID) {
			return fmt.Errorf("%w: only the applicant can withdraw an application", common.ErrorAccessDenied)
		}
		if err := repo.Delete(ctx, applicationID); err != nil {
			return err
		}
		return s.repomanager.Jobs(tx).AddApplicationCount(ctx, app.JobID, -1, s.now().UTC())
	})
	if err != nil {
		return err
	}

	s.metrics.ApplicationWithdrawn()
	s.log.Info(ctx, "application withdrawn", "application_id", applicationID, "applicant_id", actor.UserID())
	return nil
}

// GetApplicationCV returns the CV attached to an application, or
// ErrorNotFound when none was attached.
func (s *ApplicationService) GetApplicationCV(ctx context.Context, actor *Actor, applicationID string) (*models.CV, error) {
	app, err := s.repomanager.Applications(s.db).GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := authorizeApplication(actor, app); err != nil {
		return nil, err
	}
	if app.CVID == nil {
		return nil, fmt.Errorf("%w: no CV attached to application", common.ErrorNotFound)
	}
	return s.repomanager.CVs(s.db).GetByID(ctx, *app.CVID)
}

func (s *ApplicationService) ListMyApplications(ctx context.Context, actor *Actor, page models.Page) ([]models.Application, error) {
	return s.repomanager.Applications(s.db).ListByApplicant(ctx, actor.UserID(), normalizePage(page))
}

func (s *ApplicationService) ListJobApplications(ctx context.Context, actor *Actor, jobID string, page models.Page) ([]models.Application, error) {
	job, err := s.repomanager.Jobs(s.db).GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := authorizeJob(actor, job); err != nil {
		return nil, err
	}
	return s.repomanager.Applications(s.db).ListByJob(ctx, jobID, normalizePage(page))
}

// RecentApplications returns the latest applications platform-wide for
// admins and to the actor's company for employers.
func (s *ApplicationService) RecentApplications(ctx context.Context, actor *Actor) ([]models.Application, error) {
	page := models.Page{Limit: common.DefaultDashboardRecent}
	repo := s.repomanager.Applications(s.db)

	if actor.IsAdmin() {
		return repo.ListRecent(ctx, page)
	}
	if err := requireRole(actor, models.RoleEmployer); err != nil {
		return nil, err
	}
	company, err := s.repomanager.Companies(s.db).GetByUserID(ctx, actor.UserID())
	if err != nil {
		return nil, err
	}
	return repo.ListByCompany(ctx, company.ID, page)
}
