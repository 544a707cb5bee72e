package memrepo

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/google/uuid"
)

type savedJobRepo struct {
	s *Store
}

func (r *savedJobRepo) findLocked(userID, jobID string) *models.SavedJob {
	for _, sj := range r.s.savedJobs {
		if sj.UserID == userID && sj.JobID == jobID {
			return sj
		}
	}
	return nil
}

func (r *savedJobRepo) Create(ctx context.Context, saved *models.SavedJob) (*models.SavedJob, error) {
	if err := r.s.lock("savedjobs.Create"); err != nil {
		r.s.mu.Unlock()
		return nil, err
	}
	defer r.s.mu.Unlock()

	if _, ok := r.s.jobs[saved.JobID]; !ok {
		return nil, common.ErrorNotFound
	}
	if r.findLocked(saved.UserID, saved.JobID) != nil {
		return nil, common.ErrorConflict
	}

	saved.ID = uuid.NewString()
	stored := *saved
	r.s.savedJobs[saved.ID] = &stored
	r.s.track(saved.ID)
	return saved, nil
}

func (r *savedJobRepo) Exists(ctx context.Context, userID, jobID string) (bool, error) {
	if err := r.s.lock("savedjobs.Exists"); err != nil {
		r.s.mu.Unlock()
		return false, err
	}
	defer r.s.mu.Unlock()
	return r.findLocked(userID, jobID) != nil, nil
}

func (r *savedJobRepo) Delete(ctx context.Context, userID, jobID string) error {
	if err := r.s.lock("savedjobs.Delete"); err != nil {
		r.s.mu.Unlock()
		return err
	}
	defer r.s.mu.Unlock()

	sj := r.findLocked(userID, jobID)
	if sj == nil {
		return common.ErrorNotFound
	}
	delete(r.s.savedJobs, sj.ID)
	return nil
}

func (r *savedJobRepo) ListByUser(ctx context.Context, userID string, page models.Page) ([]models.SavedJob, error) {
	if err := r.s.lock("savedjobs.ListByUser"); err != nil {
		r.s.mu.Unlock()
		return nil, err
	}
	defer r.s.mu.Unlock()

	out := []models.SavedJob{}
	for _, sj := range r.s.savedJobs {
		if sj.UserID != userID {
			continue
		}
		v := *sj
		if j, ok := r.s.jobs[sj.JobID]; ok {
			v.JobTitle = j.Title
			if c, ok := r.s.companies[j.CompanyID]; ok {
				v.CompanyName = c.Name
			}
		}
		out = append(out, v)
	}
	newestFirst(r.s, out, func(sj models.SavedJob) (string, time.Time) { return sj.ID, sj.CreatedAt })
	return window(out, page), nil
}

func (r *savedJobRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	if err := r.s.lock("savedjobs.CountByUser"); err != nil {
		r.s.mu.Unlock()
		return 0, err
	}
	defer r.s.mu.Unlock()

	var n int64
	for _, sj := range r.s.savedJobs {
		if sj.UserID == userID {
			n++
		}
	}
	return n, nil
}
