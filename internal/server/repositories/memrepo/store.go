// Package memrepo is an in-memory RepositoryManager. It mirrors the
// PostgreSQL repositories closely enough (uniqueness, cascades, ordering,
// joined read fields) to drive the service and transport layers in tests
// without a database. Transactions are not isolated: writes made inside a
// rolled back transaction stay visible.
package memrepo

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/dbx"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/applications"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/companies"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/cvs"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/notifications"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/savedjobs"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/users"
)

var _ repomanager.RepositoryManager = (*Store)(nil)

type Store struct {
	mu  sync.Mutex
	seq int64

	// insertion order, used to break created_at ties
	order map[string]int64

	users         map[string]*models.User
	companies     map[string]*models.Company
	jobs          map[string]*models.Job
	applications  map[string]*models.Application
	cvs           map[string]*models.CV
	savedJobs     map[string]*models.SavedJob
	notifications map[string]*models.Notification
	tokens        map[string]*models.RefreshToken

	failures map[string]error
}

func New() *Store {
	return &Store{
		order:         map[string]int64{},
		users:         map[string]*models.User{},
		companies:     map[string]*models.Company{},
		jobs:          map[string]*models.Job{},
		applications:  map[string]*models.Application{},
		cvs:           map[string]*models.CV{},
		savedJobs:     map[string]*models.SavedJob{},
		notifications: map[string]*models.Notification{},
		tokens:        map[string]*models.RefreshToken{},
		failures:      map[string]error{},
	}
}

// FailOn makes the named operation ("jobs.AddApplicationCount",
// "notifications.Create", ...) return err until cleared with a nil err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// lock acquires the store and reports the injected failure for op, if any.
// Callers must unlock.
func (s *Store) lock(op string) error {
	s.mu.Lock()
	return s.failures[op]
}

func (s *Store) track(id string) {
	s.seq++
	s.order[id] = s.seq
}

func (s *Store) RunMigrations(ctx context.Context, db *sql.DB) error {
	err := s.lock("RunMigrations")
	s.mu.Unlock()
	return err
}

func (s *Store) Users(db dbx.DBTX) users.Repository {
	return &userRepo{s: s}
}

func (s *Store) Companies(db dbx.DBTX) companies.Repository {
	return &companyRepo{s: s}
}

func (s *Store) Jobs(db dbx.DBTX) jobs.Repository {
	return &jobRepo{s: s}
}

func (s *Store) Applications(db dbx.DBTX) applications.Repository {
	return &applicationRepo{s: s}
}

func (s *Store) CVs(db dbx.DBTX) cvs.Repository {
	return &cvRepo{s: s}
}

func (s *Store) SavedJobs(db dbx.DBTX) savedjobs.Repository {
	return &savedJobRepo{s: s}
}

func (s *Store) Notifications(db dbx.DBTX) notifications.Repository {
	return &notificationRepo{s: s}
}

func (s *Store) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return &refreshTokenRepo{s: s}
}

// newestFirst sorts by created_at DESC, later inserts first on ties.
func newestFirst[T any](s *Store, items []T, key func(T) (string, time.Time)) {
	sort.SliceStable(items, func(i, j int) bool {
		idI, tI := key(items[i])
		idJ, tJ := key(items[j])
		if !tI.Equal(tJ) {
			return tI.After(tJ)
		}
		return s.order[idI] > s.order[idJ]
	})
}

// window applies LIMIT/OFFSET. A non-positive limit returns everything
// after the offset.
func window[T any](items []T, p models.Page) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	items = items[p.Offset:]
	if p.Limit > 0 && p.Limit < len(items) {
		items = items[:p.Limit]
	}
	return items
}

func timePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// deleteUserLocked removes the user and everything that references it.
func (s *Store) deleteUserLocked(id string) {
	delete(s.users, id)
	for cid, c := range s.companies {
		if c.UserID == id {
			for jid, j := range s.jobs {
				if j.CompanyID == cid {
					s.deleteJobLocked(jid)
				}
			}
			delete(s.companies, cid)
		}
	}
	for aid, a := range s.applications {
		if a.ApplicantID == id {
			delete(s.applications, aid)
		}
	}
	for cvID, cv := range s.cvs {
		if cv.UserID == id {
			s.deleteCVLocked(cvID)
		}
	}
	for sid, sj := range s.savedJobs {
		if sj.UserID == id {
			delete(s.savedJobs, sid)
		}
	}
	for nid, n := range s.notifications {
		if n.UserID == id {
			delete(s.notifications, nid)
		}
	}
	for tok, t := range s.tokens {
		if t.UserID == id {
			delete(s.tokens, tok)
		}
	}
}

func (s *Store) deleteJobLocked(id string) {
	delete(s.jobs, id)
	for aid, a := range s.applications {
		if a.JobID == id {
			delete(s.applications, aid)
		}
	}
	for sid, sj := range s.savedJobs {
		if sj.JobID == id {
			delete(s.savedJobs, sid)
		}
	}
}

// deleteCVLocked detaches the CV from applications (ON DELETE SET NULL).
func (s *Store) deleteCVLocked(id string) {
	delete(s.cvs, id)
	for _, a := range s.applications {
		if a.CVID != nil && *a.CVID == id {
			a.CVID = nil
		}
	}
}
