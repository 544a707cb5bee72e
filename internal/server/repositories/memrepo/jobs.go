package memrepo

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/google/uuid"
)

type jobRepo struct {
	s *Store
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// readJobLocked returns a copy with the company join applied.
func (s *Store) readJobLocked(j *models.Job) models.Job {
	v := *j
	v.SalaryMin = copyFloat(j.SalaryMin)
	v.SalaryMax = copyFloat(j.SalaryMax)
	v.ApplicationDeadline = timePtr(j.ApplicationDeadline)
	v.PublishedAt = timePtr(j.PublishedAt)
	v.ClosedAt = timePtr(j.ClosedAt)
	if c, ok := s.companies[j.CompanyID]; ok {
		v.CompanyName = c.Name
		v.OwnerID = c.UserID
	}
	return v
}

func (r *jobRepo) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	if err := r.s.lock("jobs.Create"); err != nil {
		r.s.mu.Unlock()
		return nil, err
	}
	defer r.s.mu.Unlock()

	if _, ok := r.s.companies[job.CompanyID]; !ok {
		return nil, common.ErrorNotFound
	}

	job.ID = uuid.NewString()
	job.UpdatedAt = job.CreatedAt
	stored := *job
	r.s.jobs[job.ID] = &stored
	r.s.track(job.ID)
	return job, nil
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*models.Job, error) {
	if err := r.s.lock("jobs.GetByID"); err != nil {
		r.s.mu.Unlock()
		return nil, err
	}
	defer r.s.mu.Unlock()

	j, ok := r.s.jobs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	v := r.s.readJobLocked(j)
	return &v, nil
}

func (r *jobRepo) update(op, id string, fn func(*models.Job)) error {
	if err := r.s.lock(op); err != nil {
		r.s.mu.Unlock()
		return err
	}
	defer r.s.mu.Unlock()

	j, ok := r.s.jobs[id]
	if !ok {
		return common.ErrorNotFound
	}
	fn(j)
	return nil
}

func (r *jobRepo) Update(ctx context.Context, job *models.Job) error {
	return r.update("jobs.Update", job.ID, func(j *models.Job) {
		j.Title = job.Title
		j.Description = job.Description
		j.Requirements = job.Requirements
		j.Responsibilities = job.Responsibilities
		j.Location = job.Location
		j.JobType = job.JobType
		j.WorkMode = job.WorkMode
		j.Category = job.Category
		j.ExperienceLevel = job.ExperienceLevel
		j.SalaryMin = copyFloat(job.SalaryMin)
		j.SalaryMax = copyFloat(job.SalaryMax)
		j.SalaryCurrency = job.SalaryCurrency
		j.Openings = job.Openings
		j.ApplicationDeadline = timePtr(job.ApplicationDeadline)
		j.UpdatedAt = job.UpdatedAt
	})
}

func (r *jobRepo) UpdateStatus(ctx context.Context, job *models.Job) error {
	return r.update("jobs.UpdateStatus", job.ID, func(j *models.Job) {
		j.Status = job.Status
		j.IsActive = job.IsActive
		j.PublishedAt = timePtr(job.PublishedAt)
		j.ClosedAt = timePtr(job.ClosedAt)
		j.UpdatedAt = job.UpdatedAt
	})
}

func (r *jobRepo) Delete(ctx context.Context, id string) error {
	if err := r.s.lock("jobs.Delete"); err != nil {
		r.s.mu.Unlock()
		return err
	}
	defer r.s.mu.Unlock()

	if _, ok := r.s.jobs[id]; !ok {
		return common.ErrorNotFound
	}
	r.s.deleteJobLocked(id)
	return nil
}

func (r *jobRepo) IncrementViewCount(ctx context.Context, id string) error {
	return r.update("jobs.IncrementViewCount", id, func(j *models.Job) {
		j.ViewCount++
	})
}

func (r *jobRepo) AddApplicationCount(ctx context.Context, id string, delta int, now time.Time) error {
	return r.update("jobs.AddApplicationCount", id, func(j *models.Job) {
		j.ApplicationCount = max(j.ApplicationCount+int64(delta), 0)
		j.UpdatedAt = now
	})
}

func (r *jobRepo) list(op string, page models.Page, match func(*models.Job) bool) ([]models.Job, error) {
	if err := r.s.lock(op); err != nil {
		r.s.mu.Unlock()
		return nil, err
	}
	defer r.s.mu.Unlock()

	out := []models.Job{}
	for _, j := range r.s.jobs {
		if match(j) {
			out = append(out, r.s.readJobLocked(j))
		}
	}
	newestFirst(r.s, out, func(j models.Job) (string, time.Time) { return j.ID, j.CreatedAt })
	return window(out, page), nil
}

func (r *jobRepo) ListOpen(ctx context.Context, page models.Page) ([]models.Job, error) {
	return r.list("jobs.ListOpen", page, func(j *models.Job) bool {
		return j.Status == models.JobOpen && j.IsActive
	})
}

func (r *jobRepo) ListByStatus(ctx context.Context, status models.JobStatus, page models.Page) ([]models.Job, error) {
	return r.list("jobs.ListByStatus", page, func(j *models.Job) bool { return j.Status == status })
}

func (r *jobRepo) ListByCompany(ctx context.Context, companyID string, page models.Page) ([]models.Job, error) {
	return r.list("jobs.ListByCompany", page, func(j *models.Job) bool { return j.CompanyID == companyID })
}

func (r *jobRepo) sum(op string, match func(*models.Job) bool, value func(*models.Job) int64) (int64, error) {
	if err := r.s.lock(op); err != nil {
		r.s.mu.Unlock()
		return 0, err
	}
	defer r.s.mu.Unlock()

	var n int64
	for _, j := range r.s.jobs {
		if match(j) {
			n += value(j)
		}
	}
	return n, nil
}

func one(*models.Job) int64 { return 1 }

func (r *jobRepo) Count(ctx context.Context) (int64, error) {
	return r.sum("jobs.Count", func(*models.Job) bool { return true }, one)
}

func (r *jobRepo) CountByStatus(ctx context.Context, status models.JobStatus) (int64, error) {
	return r.sum("jobs.CountByStatus", func(j *models.Job) bool { return j.Status == status }, one)
}

func (r *jobRepo) CountByCompany(ctx context.Context, companyID string) (int64, error) {
	return r.sum("jobs.CountByCompany", func(j *models.Job) bool { return j.CompanyID == companyID }, one)
}

func (r *jobRepo) CountByCompanyAndStatus(ctx context.Context, companyID string, status models.JobStatus) (int64, error) {
	return r.sum("jobs.CountByCompanyAndStatus", func(j *models.Job) bool {
		return j.CompanyID == companyID && j.Status == status
	}, one)
}

func (r *jobRepo) CountByWorkModeAndStatus(ctx context.Context, mode models.WorkMode, status models.JobStatus) (int64, error) {
	return r.sum("jobs.CountByWorkModeAndStatus", func(j *models.Job) bool {
		return j.WorkMode == mode && j.Status == status
	}, one)
}

func (r *jobRepo) SumApplicationCountByCompany(ctx context.Context, companyID string) (int64, error) {
	return r.sum("jobs.SumApplicationCountByCompany", func(j *models.Job) bool {
		return j.CompanyID == companyID
	}, func(j *models.Job) int64 { return j.ApplicationCount })
}

func (r *jobRepo) CountByCategory(ctx context.Context) (map[string]int64, error) {
	if err := r.s.lock("jobs.CountByCategory"); err != nil {
		r.s.mu.Unlock()
		return nil, err
	}
	defer r.s.mu.Unlock()

	out := map[string]int64{}
	for _, j := range r.s.jobs {
		if j.IsActive {
			out[j.Category]++
		}
	}
	return out, nil
}
