package memrepo

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/google/uuid"
)

type cvRepo struct {
	s *Store
}

func (r *cvRepo) hasDefaultLocked(userID, except string) bool {
	for _, cv := range r.s.cvs {
		if cv.UserID == userID && cv.IsDefault && cv.ID != except {
			return true
		}
	}
	return false
}

func (r *cvRepo) Create(ctx context.Context, cv *models.CV) (*models.CV, error) {
	if err := r.s.lock("cvs.Create"); err != nil {
		r.s.mu.Unlock()
		return nil, err
	}
	defer r.s.mu.Unlock()

	if cv.IsDefault && r.hasDefaultLocked(cv.UserID, "") {
		return nil, common.ErrorConflict
	}

	cv.ID = uuid.NewString()
	cv.UpdatedAt = cv.CreatedAt
	stored := *cv
	r.s.cvs[cv.ID] = &stored
	r.s.track(cv.ID)
	return cv, nil
}

func (r *cvRepo) latest(op string, match func(*models.CV) bool) (*models.CV, error) {
	list, err := r.list(op, match)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, common.ErrorNotFound
	}
	return &list[0], nil
}

func (r *cvRepo) GetByID(ctx context.Context, id string) (*models.CV, error) {
	return r.latest("cvs.GetByID", func(cv *models.CV) bool { return cv.ID == id })
}

func (r *cvRepo) GetDefault(ctx context.Context, userID string) (*models.CV, error) {
	return r.latest("cvs.GetDefault", func(cv *models.CV) bool { return cv.UserID == userID && cv.IsDefault })
}

func (r *cvRepo) GetLatest(ctx context.Context, userID string) (*models.CV, error) {
	return r.latest("cvs.GetLatest", func(cv *models.CV) bool { return cv.UserID == userID })
}

func (r *cvRepo) list(op string, match func(*models.CV) bool) ([]models.CV, error) {
	if err := r.s.lock(op); err != nil {
		r.s.mu.Unlock()
		return nil, err
	}
	defer r.s.mu.Unlock()

	out := []models.CV{}
	for _, cv := range r.s.cvs {
		if match(cv) {
			out = append(out, *cv)
		}
	}
	newestFirst(r.s, out, func(cv models.CV) (string, time.Time) { return cv.ID, cv.CreatedAt })
	return out, nil
}

func (r *cvRepo) ListByUser(ctx context.Context, userID string) ([]models.CV, error) {
	return r.list("cvs.ListByUser", func(cv *models.CV) bool { return cv.UserID == userID })
}

func (r *cvRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	list, err := r.list("cvs.CountByUser", func(cv *models.CV) bool { return cv.UserID == userID })
	return int64(len(list)), err
}

func (r *cvRepo) update(op, id string, fn func(*models.CV) error) error {
	if err := r.s.lock(op); err != nil {
		r.s.mu.Unlock()
		return err
	}
	defer r.s.mu.Unlock()

	cv, ok := r.s.cvs[id]
	if !ok {
		return common.ErrorNotFound
	}
	return fn(cv)
}

func (r *cvRepo) Update(ctx context.Context, cv *models.CV) error {
	return r.update("cvs.Update", cv.ID, func(stored *models.CV) error {
		stored.Title = cv.Title
		stored.Summary = cv.Summary
		stored.Skills = cv.Skills
		stored.FileName = cv.FileName
		stored.UpdatedAt = cv.UpdatedAt
		return nil
	})
}

func (r *cvRepo) ClearDefault(ctx context.Context, userID string, now time.Time) error {
	if err := r.s.lock("cvs.ClearDefault"); err != nil {
		r.s.mu.Unlock()
		return err
	}
	defer r.s.mu.Unlock()

	for _, cv := range r.s.cvs {
		if cv.UserID == userID && cv.IsDefault {
			cv.IsDefault = false
			cv.UpdatedAt = now
		}
	}
	return nil
}

func (r *cvRepo) SetDefault(ctx context.Context, id string, now time.Time) error {
	return r.update("cvs.SetDefault", id, func(cv *models.CV) error {
		if r.hasDefaultLocked(cv.UserID, cv.ID) {
			return common.ErrorConflict
		}
		cv.IsDefault = true
		cv.UpdatedAt = now
		return nil
	})
}

func (r *cvRepo) Delete(ctx context.Context, id string) error {
	if err := r.s.lock("cvs.Delete"); err != nil {
		r.s.mu.Unlock()
		return err
	}
	defer r.s.mu.Unlock()

	if _, ok := r.s.cvs[id]; !ok {
		return common.ErrorNotFound
	}
	r.s.deleteCVLocked(id)
	return nil
}
