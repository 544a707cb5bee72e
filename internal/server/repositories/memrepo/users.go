package memrepo

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/google/uuid"
)

type userRepo struct {
	s *Store
}

func copyUser(u *models.User) *models.User {
	c := *u
	c.Roles = append([]models.Role(nil), u.Roles...)
	sort.Slice(c.Roles, func(i, j int) bool { return c.Roles[i] < c.Roles[j] })
	return &c
}

func (r *userRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.s.lock("users.Create"); err != nil {
		r.s.mu.Unlock()
		return nil, err
	}
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, common.ErrorConflict
		}
	}

	user.ID = uuid.NewString()
	user.UpdatedAt = user.CreatedAt
	r.s.users[user.ID] = copyUser(user)
	r.s.track(user.ID)
	return copyUser(user), nil
}

func (r *userRepo) AddRole(ctx context.Context, userID string, role models.Role) error {
	if err := r.s.lock("users.AddRole"); err != nil {
		r.s.mu.Unlock()
		return err
	}
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return common.ErrorNotFound
	}
	if !u.HasRole(role) {
		u.Roles = append(u.Roles, role)
	}
	return nil
}

func (r *userRepo) get(op string, match func(*models.User) bool) (*models.User, error) {
	if err := r.s.lock(op); err != nil {
		r.s.mu.Unlock()
		return nil, err
	}
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if match(u) {
			return copyUser(u), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.get("users.GetByID", func(u *models.User) bool { return u.ID == id })
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.get("users.GetByEmail", func(u *models.User) bool { return u.Email == email })
}

func (r *userRepo) filter(match func(*models.User) bool) []models.User {
	out := []models.User{}
	for _, u := range r.s.users {
		if match(u) {
			out = append(out, *copyUser(u))
		}
	}
	return out
}

func (r *userRepo) List(ctx context.Context, page models.Page) ([]models.User, error) {
	if err := r.s.lock("users.List"); err != nil {
		r.s.mu.Unlock()
		return nil, err
	}
	defer r.s.mu.Unlock()

	out := r.filter(func(*models.User) bool { return true })
	newestFirst(r.s, out, func(u models.User) (string, time.Time) { return u.ID, u.CreatedAt })
	return window(out, page), nil
}

func isPendingEmployer(u *models.User) bool {
	return !u.IsVerified && u.HasRole(models.RoleEmployer)
}

func (r *userRepo) ListPendingEmployers(ctx context.Context) ([]models.User, error) {
	if err := r.s.lock("users.ListPendingEmployers"); err != nil {
		r.s.mu.Unlock()
		return nil, err
	}
	defer r.s.mu.Unlock()

	out := r.filter(isPendingEmployer)
	// oldest first
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return r.s.order[out[i].ID] < r.s.order[out[j].ID]
	})
	return out, nil
}

func (r *userRepo) update(op, id string, fn func(*models.User)) error {
	if err := r.s.lock(op); err != nil {
		r.s.mu.Unlock()
		return err
	}
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	fn(u)
	return nil
}

func (r *userRepo) SetActive(ctx context.Context, id string, active bool, now time.Time) error {
	return r.update("users.SetActive", id, func(u *models.User) {
		u.IsActive = active
		u.UpdatedAt = now
	})
}

func (r *userRepo) SetVerified(ctx context.Context, id string, verified bool, now time.Time) error {
	return r.update("users.SetVerified", id, func(u *models.User) {
		u.IsVerified = verified
		u.UpdatedAt = now
	})
}

func (r *userRepo) SetPasswordHash(ctx context.Context, id string, hash string, now time.Time) error {
	return r.update("users.SetPasswordHash", id, func(u *models.User) {
		u.PasswordHash = hash
		u.UpdatedAt = now
	})
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	if err := r.s.lock("users.Delete"); err != nil {
		r.s.mu.Unlock()
		return err
	}
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return common.ErrorNotFound
	}
	r.s.deleteUserLocked(id)
	return nil
}

func (r *userRepo) count(op string, match func(*models.User) bool) (int64, error) {
	if err := r.s.lock(op); err != nil {
		r.s.mu.Unlock()
		return 0, err
	}
	defer r.s.mu.Unlock()
	return int64(len(r.filter(match))), nil
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	return r.count("users.Count", func(*models.User) bool { return true })
}

func (r *userRepo) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	return r.count("users.CountByRole", func(u *models.User) bool { return u.HasRole(role) })
}

func (r *userRepo) CountPendingEmployers(ctx context.Context) (int64, error) {
	return r.count("users.CountPendingEmployers", isPendingEmployer)
}
