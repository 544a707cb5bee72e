package memrepo

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/google/uuid"
)

type refreshTokenRepo struct {
	s *Store
}

func (r *refreshTokenRepo) Create(ctx context.Context, userID string, token string, expires time.Time) error {
	if err := r.s.lock("refreshtokens.Create"); err != nil {
		r.s.mu.Unlock()
		return err
	}
	defer r.s.mu.Unlock()

	if _, ok := r.s.tokens[token]; ok {
		return common.ErrorConflict
	}
	r.s.tokens[token] = &models.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		Expires:   expires,
		CreatedAt: time.Now(),
	}
	return nil
}

func (r *refreshTokenRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if err := r.s.lock("refreshtokens.Find"); err != nil {
		r.s.mu.Unlock()
		return nil, err
	}
	defer r.s.mu.Unlock()

	t, ok := r.s.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	v := *t
	return &v, nil
}

func (r *refreshTokenRepo) Delete(ctx context.Context, token string) error {
	if err := r.s.lock("refreshtokens.Delete"); err != nil {
		r.s.mu.Unlock()
		return err
	}
	defer r.s.mu.Unlock()

	delete(r.s.tokens, token)
	return nil
}

func (r *refreshTokenRepo) DeleteByUser(ctx context.Context, userID string) error {
	if err := r.s.lock("refreshtokens.DeleteByUser"); err != nil {
		r.s.mu.Unlock()
		return err
	}
	defer r.s.mu.Unlock()

	for tok, t := range r.s.tokens {
		if t.UserID == userID {
			delete(r.s.tokens, tok)
		}
	}
	return nil
}
