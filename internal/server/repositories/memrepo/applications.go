package memrepo

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/google/uuid"
)

type applicationRepo struct {
	s *Store
}

// readApplicationLocked returns a copy with job, company and applicant
// joins applied.
func (s *Store) readApplicationLocked(a *models.Application) models.Application {
	v := *a
	if a.CVID != nil {
		id := *a.CVID
		v.CVID = &id
	}
	v.ReviewedAt = timePtr(a.ReviewedAt)
	if j, ok := s.jobs[a.JobID]; ok {
		v.JobTitle = j.Title
		if c, ok := s.companies[j.CompanyID]; ok {
			v.CompanyName = c.Name
			v.EmployerID = c.UserID
		}
	}
	if u, ok := s.users[a.ApplicantID]; ok {
		v.ApplicantEmail = u.Email
	}
	return v
}

func (r *applicationRepo) Create(ctx context.Context, app *models.Application) (*models.Application, error) {
	if err := r.s.lock("applications.Create"); err != nil {
		r.s.mu.Unlock()
		return nil, err
	}
	defer r.s.mu.Unlock()

	if _, ok := r.s.jobs[app.JobID]; !ok {
		return nil, common.ErrorNotFound
	}
	for _, a := range r.s.applications {
		if a.JobID == app.JobID && a.ApplicantID == app.ApplicantID {
			return nil, common.ErrorConflict
		}
	}

	app.ID = uuid.NewString()
	app.UpdatedAt = app.CreatedAt
	stored := *app
	r.s.applications[app.ID] = &stored
	r.s.track(app.ID)
	return app, nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*models.Application, error) {
	if err := r.s.lock("applications.GetByID"); err != nil {
		r.s.mu.Unlock()
		return nil, err
	}
	defer r.s.mu.Unlock()

	a, ok := r.s.applications[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	v := r.s.readApplicationLocked(a)
	return &v, nil
}

func (r *applicationRepo) ExistsForJobAndApplicant(ctx context.Context, jobID, applicantID string) (bool, error) {
	if err := r.s.lock("applications.ExistsForJobAndApplicant"); err != nil {
		r.s.mu.Unlock()
		return false, err
	}
	defer r.s.mu.Unlock()

	for _, a := range r.s.applications {
		if a.JobID == jobID && a.ApplicantID == applicantID {
			return true, nil
		}
	}
	return false, nil
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, notes string, reviewedAt time.Time) error {
	if err := r.s.lock("applications.UpdateStatus"); err != nil {
		r.s.mu.Unlock()
		return err
	}
	defer r.s.mu.Unlock()

	a, ok := r.s.applications[id]
	if !ok {
		return common.ErrorNotFound
	}
	a.Status = status
	a.EmployerNotes = notes
	a.ReviewedAt = &reviewedAt
	a.UpdatedAt = reviewedAt
	return nil
}

func (r *applicationRepo) Delete(ctx context.Context, id string) error {
	if err := r.s.lock("applications.Delete"); err != nil {
		r.s.mu.Unlock()
		return err
	}
	defer r.s.mu.Unlock()

	if _, ok := r.s.applications[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.applications, id)
	return nil
}

func (r *applicationRepo) list(op string, page models.Page, match func(*models.Application) bool) ([]models.Application, error) {
	if err := r.s.lock(op); err != nil {
		r.s.mu.Unlock()
		return nil, err
	}
	defer r.s.mu.Unlock()

	out := []models.Application{}
	for _, a := range r.s.applications {
		if match(a) {
			out = append(out, r.s.readApplicationLocked(a))
		}
	}
	newestFirst(r.s, out, func(a models.Application) (string, time.Time) { return a.ID, a.CreatedAt })
	return window(out, page), nil
}

func (r *applicationRepo) ListByApplicant(ctx context.Context, applicantID string, page models.Page) ([]models.Application, error) {
	return r.list("applications.ListByApplicant", page, func(a *models.Application) bool {
		return a.ApplicantID == applicantID
	})
}

func (r *applicationRepo) ListByJob(ctx context.Context, jobID string, page models.Page) ([]models.Application, error) {
	return r.list("applications.ListByJob", page, func(a *models.Application) bool {
		return a.JobID == jobID
	})
}

func (r *applicationRepo) ListByCompany(ctx context.Context, companyID string, page models.Page) ([]models.Application, error) {
	return r.list("applications.ListByCompany", page, func(a *models.Application) bool {
		j, ok := r.s.jobs[a.JobID]
		return ok && j.CompanyID == companyID
	})
}

func (r *applicationRepo) ListRecent(ctx context.Context, page models.Page) ([]models.Application, error) {
	return r.list("applications.ListRecent", page, func(*models.Application) bool { return true })
}

func (r *applicationRepo) CVSharedWithEmployer(ctx context.Context, cvID, employerID string) (bool, error) {
	if err := r.s.lock("applications.CVSharedWithEmployer"); err != nil {
		r.s.mu.Unlock()
		return false, err
	}
	defer r.s.mu.Unlock()

	for _, a := range r.s.applications {
		if a.CVID == nil || *a.CVID != cvID {
			continue
		}
		v := r.s.readApplicationLocked(a)
		if v.EmployerID == employerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *applicationRepo) count(op string, match func(*models.Application) bool) (int64, error) {
	if err := r.s.lock(op); err != nil {
		r.s.mu.Unlock()
		return 0, err
	}
	defer r.s.mu.Unlock()

	var n int64
	for _, a := range r.s.applications {
		if match(a) {
			n++
		}
	}
	return n, nil
}

func (r *applicationRepo) Count(ctx context.Context) (int64, error) {
	return r.count("applications.Count", func(*models.Application) bool { return true })
}

func (r *applicationRepo) CountByApplicant(ctx context.Context, applicantID string) (int64, error) {
	return r.count("applications.CountByApplicant", func(a *models.Application) bool {
		return a.ApplicantID == applicantID
	})
}

func (r *applicationRepo) CountByStatus(ctx context.Context) (map[models.ApplicationStatus]int64, error) {
	if err := r.s.lock("applications.CountByStatus"); err != nil {
		r.s.mu.Unlock()
		return nil, err
	}
	defer r.s.mu.Unlock()

	out := map[models.ApplicationStatus]int64{}
	for _, a := range r.s.applications {
		out[a.Status]++
	}
	return out, nil
}
