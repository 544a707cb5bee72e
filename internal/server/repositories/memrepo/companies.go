package memrepo

import (
	"context"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/google/uuid"
)

type companyRepo struct {
	s *Store
}

func copyCompany(c *models.Company) *models.Company {
	v := *c
	v.VerifiedAt = timePtr(c.VerifiedAt)
	return &v
}

func (r *companyRepo) Create(ctx context.Context, company *models.Company) (*models.Company, error) {
	if err := r.s.lock("companies.Create"); err != nil {
		r.s.mu.Unlock()
		return nil, err
	}
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[company.UserID]; !ok {
		return nil, common.ErrorNotFound
	}
	for _, c := range r.s.companies {
		if c.UserID == company.UserID {
			return nil, common.ErrorConflict
		}
	}

	company.ID = uuid.NewString()
	company.UpdatedAt = company.CreatedAt
	r.s.companies[company.ID] = copyCompany(company)
	r.s.track(company.ID)
	return copyCompany(company), nil
}

func (r *companyRepo) get(op string, match func(*models.Company) bool) (*models.Company, error) {
	if err := r.s.lock(op); err != nil {
		r.s.mu.Unlock()
		return nil, err
	}
	defer r.s.mu.Unlock()

	for _, c := range r.s.companies {
		if match(c) {
			return copyCompany(c), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *companyRepo) GetByID(ctx context.Context, id string) (*models.Company, error) {
	return r.get("companies.GetByID", func(c *models.Company) bool { return c.ID == id })
}

func (r *companyRepo) GetByUserID(ctx context.Context, userID string) (*models.Company, error) {
	return r.get("companies.GetByUserID", func(c *models.Company) bool { return c.UserID == userID })
}

func (r *companyRepo) UpdateVerification(ctx context.Context, company *models.Company) error {
	if err := r.s.lock("companies.UpdateVerification"); err != nil {
		r.s.mu.Unlock()
		return err
	}
	defer r.s.mu.Unlock()

	c, ok := r.s.companies[company.ID]
	if !ok {
		return common.ErrorNotFound
	}
	c.IsVerified = company.IsVerified
	c.VerificationStatus = company.VerificationStatus
	c.VerificationNotes = company.VerificationNotes
	c.VerifiedAt = timePtr(company.VerifiedAt)
	c.UpdatedAt = company.UpdatedAt
	return nil
}

func (r *companyRepo) Count(ctx context.Context) (int64, error) {
	if err := r.s.lock("companies.Count"); err != nil {
		r.s.mu.Unlock()
		return 0, err
	}
	defer r.s.mu.Unlock()
	return int64(len(r.s.companies)), nil
}
