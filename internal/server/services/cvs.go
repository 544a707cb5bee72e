package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/dbx"
	"github.com/dmitrijs2005/jobportal/internal/server/filestore"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/cvs"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/repomanager"
)

type CVInput struct {
	Title     string
	Summary   string
	Skills    string
	FileName  string
	IsDefault bool
}

// CVService keeps the one-default-CV-per-seeker invariant: whenever a CV
// becomes default, the previous default is cleared in the same
// transaction.
type CVService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       filestore.Store
	now         func() time.Time
}

func NewCVService(db *sql.DB, repomanager repomanager.RepositoryManager, store filestore.Store) *CVService {
	return &CVService{
		db:          db,
		repomanager: repomanager,
		store:       store,
		now:         time.Now,
	}
}

// SaveCV stores CV metadata. The first CV of a user is always default.
func (s *CVService) SaveCV(ctx context.Context, actor *Actor, in CVInput) (*models.CV, error) {
	return s.create(ctx, actor, in, "")
}

// RequestUpload registers a CV under a fresh storage key and returns it with
// a presigned URL the client PUTs the file to.
func (s *CVService) RequestUpload(ctx context.Context, actor *Actor, in CVInput) (*models.CV, string, error) {
	if common.IsBlank(in.FileName) {
		return nil, "", fmt.Errorf("%w: file name is required", common.ErrorValidation)
	}
	if common.IsBlank(in.Title) {
		in.Title = in.FileName
	}

	key := filestore.NewCVKey(actor.UserID(), s.now().UTC())
	url, err := s.store.PresignUpload(ctx, key)
	if err != nil {
		return nil, "", fmt.Errorf("presign upload: %w", err)
	}

	cv, err := s.create(ctx, actor, in, key)
	if err != nil {
		return nil, "", err
	}
	return cv, url, nil
}

func (s *CVService) create(ctx context.Context, actor *Actor, in CVInput, storageKey string) (*models.CV, error) {
	if err := requireRole(actor, models.RoleJobSeeker); err != nil {
		return nil, err
	}
	if common.IsBlank(in.Title) {
		return nil, fmt.Errorf("%w: cv title is required", common.ErrorValidation)
	}

	var created *models.CV
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.CVs(tx)

		n, err := repo.CountByUser(ctx, actor.UserID())
		if err != nil {
			return err
		}

		now := s.now().UTC()
		isDefault := in.IsDefault || n == 0
		if isDefault {
			if err := repo.ClearDefault(ctx, actor.UserID(), now); err != nil {
				return err
			}
		}

		created, err = repo.Create(ctx, &models.CV{
			UserID:     actor.UserID(),
			Title:      in.Title,
			Summary:    in.Summary,
			Skills:     in.Skills,
			FileName:   in.FileName,
			StorageKey: storageKey,
			IsDefault:  isDefault,
			CreatedAt:  now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func owned(ctx context.Context, repo cvs.Repository, actor *Actor, cvID string) (*models.CV, error) {
	cv, err := repo.GetByID(ctx, cvID)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(cv.UserID) {
		return nil, fmt.Errorf("%w: cv belongs to another user", common.ErrorAccessDenied)
	}
	return cv, nil
}

// UpdateCV overwrites the non-blank content fields. IsDefault=true makes the
// CV the default; IsDefault=false is ignored since a user with CVs always
// keeps one default.
func (s *CVService) UpdateCV(ctx context.Context, actor *Actor, cvID string, in CVInput) (*models.CV, error) {
	var updated *models.CV
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.CVs(tx)

		cv, err := owned(ctx, repo, actor, cvID)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		if !common.IsBlank(in.Title) {
			cv.Title = in.Title
		}
		if in.Summary != "" {
			cv.Summary = in.Summary
		}
		if in.Skills != "" {
			cv.Skills = in.Skills
		}
		if in.FileName != "" {
			cv.FileName = in.FileName
		}
		cv.UpdatedAt = now
		if err := repo.Update(ctx, cv); err != nil {
			return err
		}

		if in.IsDefault && !cv.IsDefault {
			if err := repo.ClearDefault(ctx, cv.UserID, now); err != nil {
				return err
			}
			if err := repo.SetDefault(ctx, cv.ID, now); err != nil {
				return err
			}
		}

		updated, err = repo.GetByID(ctx, cv.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteCV removes a CV. When the default goes, the newest remaining CV
// becomes default.
func (s *CVService) DeleteCV(ctx context.Context, actor *Actor, cvID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.CVs(tx)

		cv, err := owned(ctx, repo, actor, cvID)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, cv.ID); err != nil {
			return err
		}
		if !cv.IsDefault {
			return nil
		}

		next, err := repo.GetLatest(ctx, cv.UserID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil
			}
			return err
		}
		return repo.SetDefault(ctx, next.ID, s.now().UTC())
	})
}

func (s *CVService) ListCVs(ctx context.Context, actor *Actor) ([]models.CV, error) {
	return s.repomanager.CVs(s.db).ListByUser(ctx, actor.UserID())
}

// DownloadURL presigns a GET for the CV file. Allowed for the owner, admins
// and employers who received an application carrying the CV.
func (s *CVService) DownloadURL(ctx context.Context, actor *Actor, cvID string) (string, error) {
	cv, err := s.repomanager.CVs(s.db).GetByID(ctx, cvID)
	if err != nil {
		return "", err
	}

	allowed := actor.Owns(cv.UserID) || actor.IsAdmin()
	if !allowed && actor.Has(models.RoleEmployer) {
		allowed, err = s.repomanager.Applications(s.db).CVSharedWithEmployer(ctx, cv.ID, actor.UserID())
		if err != nil {
			return "", err
		}
	}
	if !allowed {
		return "", fmt.Errorf("%w: cv is not shared with you", common.ErrorAccessDenied)
	}

	if cv.StorageKey == "" {
		return "", fmt.Errorf("%w: cv has no uploaded file", common.ErrorNotFound)
	}
	return s.store.PresignDownload(ctx, cv.StorageKey)
}
