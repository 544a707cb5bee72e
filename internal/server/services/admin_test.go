package services

import (
	"errors"
	"testing"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproveEmployer(t *testing.T) {
	f := newFixture(t)
	emp, company := f.employer("emp@example.com", false)
	admin := f.admin()
	svc := f.adminService()

	pending, err := svc.ListPendingEmployers(f.ctx, admin)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, emp.UserID(), pending[0].ID)

	_, err = svc.ApproveEmployer(f.ctx, emp, emp.UserID())
	require.ErrorIs(t, err, common.ErrorAccessDenied)

	got, err := svc.ApproveEmployer(f.ctx, admin, emp.UserID())
	require.NoError(t, err)
	assert.Equal(t, company.ID, got.ID)
	assert.True(t, got.IsVerified)
	assert.Equal(t, models.VerificationApproved, got.VerificationStatus)
	require.NotNil(t, got.VerifiedAt)
	assert.True(t, got.VerifiedAt.Equal(testNow))

	emp = f.resolve(emp.UserID())
	assert.True(t, emp.IsVerified())

	sent := f.sink.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, models.NotificationCompanyVerified, sent[0].Type)
	assert.Equal(t, emp.UserID(), sent[0].UserID)

	// approved employers can post
	_, err = f.jobService().CreateJob(f.ctx, emp, validJobInput())
	require.NoError(t, err)

	pending, err = svc.ListPendingEmployers(f.ctx, admin)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestApproveEmployer_NotAnEmployer(t *testing.T) {
	f := newFixture(t)
	seeker := f.seeker("s@example.com")

	admin := f.admin()

	_, err := f.adminService().ApproveEmployer(f.ctx, admin, seeker.UserID())
	require.ErrorIs(t, err, common.ErrorValidation)

	_, err = f.adminService().ApproveEmployer(f.ctx, admin, "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestRejectEmployer(t *testing.T) {
	f := newFixture(t)
	emp, _ := f.employer("emp@example.com", false)
	f.sink.err = errors.New("sink down")

	got, err := f.adminService().RejectEmployer(f.ctx, f.admin(), emp.UserID(), "missing registration number")
	require.NoError(t, err, "notification failures are not returned")
	assert.False(t, got.IsVerified)
	assert.Equal(t, models.VerificationRejected, got.VerificationStatus)
	assert.Equal(t, "missing registration number", got.VerificationNotes)
	assert.Nil(t, got.VerifiedAt)
}

func TestSetUserActive(t *testing.T) {
	f := newFixture(t)
	register(t, f, RegisterInput{Email: "ann@example.com"})
	pair, err := f.authService().Login(f.ctx, "ann@example.com", testPassword)
	require.NoError(t, err)
	u, err := f.store.Users(nil).GetByEmail(f.ctx, "ann@example.com")
	require.NoError(t, err)

	admin := f.admin()
	svc := f.adminService()

	require.ErrorIs(t, svc.SetUserActive(f.ctx, admin, admin.UserID(), false), common.ErrorValidation)
	require.ErrorIs(t, svc.SetUserActive(f.ctx, f.seeker("s@example.com"), u.ID, false), common.ErrorAccessDenied)

	require.NoError(t, svc.SetUserActive(f.ctx, admin, u.ID, false))
	_, err = f.store.RefreshTokens(nil).Find(f.ctx, pair.RefreshToken)
	require.ErrorIs(t, err, common.ErrorNotFound, "sessions are revoked")

	_, err = NewIdentityService(f.db, f.store).Resolve(f.ctx, u.ID)
	require.ErrorIs(t, err, common.ErrorAccessDenied)

	require.NoError(t, svc.SetUserActive(f.ctx, admin, u.ID, true))
	_, err = f.authService().Login(f.ctx, "ann@example.com", testPassword)
	require.NoError(t, err)
}

func TestDeleteUser(t *testing.T) {
	f := newFixture(t)
	seeker := f.seeker("s@example.com")
	admin := f.admin()
	svc := f.adminService()

	require.ErrorIs(t, svc.DeleteUser(f.ctx, admin, admin.UserID()), common.ErrorValidation)
	require.NoError(t, svc.DeleteUser(f.ctx, admin, seeker.UserID()))

	_, err := f.store.Users(nil).GetByID(f.ctx, seeker.UserID())
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.ErrorIs(t, svc.DeleteUser(f.ctx, admin, seeker.UserID()), common.ErrorNotFound)
}

func TestAssignRole(t *testing.T) {
	f := newFixture(t)
	seeker := f.seeker("s@example.com")
	admin := f.admin()
	svc := f.adminService()

	u, err := svc.AssignRole(f.ctx, admin, seeker.UserID(), "role_employer")
	require.NoError(t, err)
	assert.True(t, u.HasRole(models.RoleEmployer))
	assert.True(t, u.HasRole(models.RoleJobSeeker))
	assert.Equal(t, models.RoleEmployer, f.resolve(u.ID).Role())

	_, err = svc.AssignRole(f.ctx, admin, seeker.UserID(), "boss")
	require.ErrorIs(t, err, common.ErrorValidation)
	_, err = svc.AssignRole(f.ctx, admin, "missing", "ADMIN")
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = svc.AssignRole(f.ctx, seeker, seeker.UserID(), "ADMIN")
	require.ErrorIs(t, err, common.ErrorAccessDenied)
}

func TestListUsers(t *testing.T) {
	f := newFixture(t)
	f.seeker("a@example.com")
	f.seeker("b@example.com")
	admin := f.admin()

	users, err := f.adminService().ListUsers(f.ctx, admin, models.Page{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestInitAdmin(t *testing.T) {
	f := newFixture(t)
	svc := f.adminService()

	u, created, err := svc.InitAdmin(f.ctx, "Root@Example.com", testPassword, "Root", "User")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "root@example.com", u.Email)
	assert.True(t, u.HasRole(models.RoleAdmin))
	assert.True(t, u.IsVerified)

	_, err = f.authService().Login(f.ctx, "root@example.com", testPassword)
	require.NoError(t, err)

	// an existing account is promoted and gets the new password
	register(t, f, RegisterInput{Email: "ann@example.com"})
	u, created, err = svc.InitAdmin(f.ctx, "ann@example.com", "another-pass", "", "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, u.HasRole(models.RoleAdmin))
	assert.True(t, u.HasRole(models.RoleJobSeeker))

	_, err = f.authService().Login(f.ctx, "ann@example.com", "another-pass")
	require.NoError(t, err)

	_, _, err = svc.InitAdmin(f.ctx, "", testPassword, "", "")
	require.ErrorIs(t, err, common.ErrorValidation)
}
