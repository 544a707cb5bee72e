package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/repomanager"
)

// SavedJobService is the seeker's bookmark list. Save and unsave are not
// upserts: saving twice is a conflict, unsaving a missing pair is not found.
type SavedJobService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewSavedJobService(db *sql.DB, repomanager repomanager.RepositoryManager) *SavedJobService {
	return &SavedJobService{db: db, repomanager: repomanager, now: time.Now}
}

func (s *SavedJobService) SaveJob(ctx context.Context, actor *Actor, jobID string) (*models.SavedJob, error) {
	if err := requireRole(actor, models.RoleJobSeeker); err != nil {
		return nil, err
	}
	if _, err := s.repomanager.Jobs(s.db).GetByID(ctx, jobID); err != nil {
		return nil, err
	}

	repo := s.repomanager.SavedJobs(s.db)
	exists, err := repo.Exists(ctx, actor.UserID(), jobID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: job already saved", common.ErrorConflict)
	}

	return repo.Create(ctx, &models.SavedJob{
		UserID:    actor.UserID(),
		JobID:     jobID,
		CreatedAt: s.now().UTC(),
	})
}

func (s *SavedJobService) UnsaveJob(ctx context.Context, actor *Actor, jobID string) error {
	return s.repomanager.SavedJobs(s.db).Delete(ctx, actor.UserID(), jobID)
}

func (s *SavedJobService) ListSavedJobs(ctx context.Context, actor *Actor, page models.Page) ([]models.SavedJob, error) {
	return s.repomanager.SavedJobs(s.db).ListByUser(ctx, actor.UserID(), normalizePage(page))
}
