package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/logging"
	"github.com/dmitrijs2005/jobportal/internal/server/config"
	"github.com/dmitrijs2005/jobportal/internal/server/metrics"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/memrepo"
	_ "modernc.org/sqlite"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type fakeSink struct {
	mu  sync.Mutex
	got []*models.Notification
	err error
}

func (f *fakeSink) Notify(_ context.Context, n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.got = append(f.got, n)
	return nil
}

func (f *fakeSink) sent() []*models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.Notification(nil), f.got...)
}

// fixture wires services to an in-memory store. The sqlite handle only
// provides real transactions for dbx.WithTx; no SQL runs against it.
type fixture struct {
	t       *testing.T
	ctx     context.Context
	db      *sql.DB
	store   *memrepo.Store
	sink    *fakeSink
	metrics *metrics.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return &fixture{
		t:       t,
		ctx:     context.Background(),
		db:      db,
		store:   memrepo.New(),
		sink:    &fakeSink{},
		metrics: metrics.New(),
	}
}

func (f *fixture) user(email string, verified bool, roles ...models.Role) *Actor {
	f.t.Helper()
	u, err := f.store.Users(nil).Create(f.ctx, &models.User{
		Email:      email,
		FirstName:  "Test",
		Roles:      roles,
		IsActive:   true,
		IsVerified: verified,
		CreatedAt:  testNow,
	})
	if err != nil {
		f.t.Fatalf("create user %s: %v", email, err)
	}
	return f.resolve(u.ID)
}

func (f *fixture) resolve(userID string) *Actor {
	f.t.Helper()
	a, err := NewIdentityService(f.db, f.store).Resolve(f.ctx, userID)
	if err != nil {
		f.t.Fatalf("resolve %s: %v", userID, err)
	}
	return a
}

func (f *fixture) seeker(email string) *Actor {
	return f.user(email, true, models.RoleJobSeeker)
}

// admin returns the fixture's administrator, creating it on first use.
func (f *fixture) admin() *Actor {
	f.t.Helper()
	if u, err := f.store.Users(nil).GetByEmail(f.ctx, "admin@example.com"); err == nil {
		return f.resolve(u.ID)
	}
	return f.user("admin@example.com", true, models.RoleAdmin)
}

func (f *fixture) employer(email string, verified bool) (*Actor, *models.Company) {
	f.t.Helper()
	a := f.user(email, verified, models.RoleEmployer)
	status := models.VerificationPending
	if verified {
		status = models.VerificationApproved
	}
	c, err := f.store.Companies(nil).Create(f.ctx, &models.Company{
		UserID:             a.UserID(),
		Name:               "Acme",
		IsVerified:         verified,
		VerificationStatus: status,
		CreatedAt:          testNow,
	})
	if err != nil {
		f.t.Fatalf("create company: %v", err)
	}
	return a, c
}

// job inserts a job straight into the store.
func (f *fixture) job(companyID, title string, status models.JobStatus) *models.Job {
	f.t.Helper()
	j := &models.Job{
		CompanyID:   companyID,
		Title:       title,
		Description: "d",
		Openings:    1,
		CreatedAt:   testNow,
	}
	transition(j, status, testNow)
	created, err := f.store.Jobs(nil).Create(f.ctx, j)
	if err != nil {
		f.t.Fatalf("create job: %v", err)
	}
	return f.getJob(created.ID)
}

func (f *fixture) getJob(id string) *models.Job {
	f.t.Helper()
	j, err := f.store.Jobs(nil).GetByID(f.ctx, id)
	if err != nil {
		f.t.Fatalf("get job %s: %v", id, err)
	}
	return j
}

func (f *fixture) jobService() *JobService {
	s := NewJobService(f.db, f.store, f.metrics, logging.Nop{})
	s.now = fixedClock(testNow)
	return s
}

func (f *fixture) applicationService() *ApplicationService {
	s := NewApplicationService(f.db, f.store, f.sink, f.metrics, logging.Nop{})
	s.now = fixedClock(testNow)
	return s
}

func (f *fixture) cvService(store *fakeFileStore) *CVService {
	s := NewCVService(f.db, f.store, store)
	s.now = fixedClock(testNow)
	return s
}

func (f *fixture) adminService() *AdminService {
	s := NewAdminService(f.db, f.store, f.sink, f.metrics, logging.Nop{})
	s.now = fixedClock(testNow)
	return s
}

func (f *fixture) authService() *AuthService {
	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	s := NewAuthService(f.db, f.store, cfg, logging.Nop{})
	s.now = fixedClock(testNow)
	return s
}
