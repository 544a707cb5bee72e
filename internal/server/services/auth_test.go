package services

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/server/auth"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
)

const testPassword = "s3cret-pass"

func register(t *testing.T, f *fixture, in RegisterInput) *models.User {
	t.Helper()
	if in.Password == "" {
		in.Password = testPassword
	}
	u, err := f.authService().Register(f.ctx, in)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return u
}

func TestRegister_JobSeeker(t *testing.T) {
	f := newFixture(t)
	u := register(t, f, RegisterInput{Email: "  Ann@Example.com ", FirstName: "Ann"})

	if u.Email != "ann@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if !u.IsVerified || !u.IsActive || !u.HasRole(models.RoleJobSeeker) {
		t.Fatalf("unexpected seeker: %+v", u)
	}
	if u.PasswordHash == testPassword {
		t.Fatalf("password stored in clear")
	}
	if _, err := f.store.Companies(nil).GetByUserID(f.ctx, u.ID); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("seeker must not get a company, got %v", err)
	}
}

func TestRegister_Employer(t *testing.T) {
	f := newFixture(t)
	u := register(t, f, RegisterInput{Email: "boss@example.com", FirstName: "Ann", Role: models.RoleEmployer})

	if u.IsVerified {
		t.Fatalf("employers start unverified")
	}
	c, err := f.store.Companies(nil).GetByUserID(f.ctx, u.ID)
	if err != nil {
		t.Fatalf("company not created: %v", err)
	}
	if c.Name != "Ann's Company" || c.VerificationStatus != models.VerificationPending {
		t.Fatalf("unexpected company: %+v", c)
	}

	named := register(t, f, RegisterInput{Email: "b2@example.com", Role: models.RoleEmployer, CompanyName: "Globex"})
	c, err = f.store.Companies(nil).GetByUserID(f.ctx, named.ID)
	if err != nil || c.Name != "Globex" {
		t.Fatalf("company = %+v, %v", c, err)
	}
}

func TestRegister_Errors(t *testing.T) {
	f := newFixture(t)
	register(t, f, RegisterInput{Email: "ann@example.com"})

	tests := []struct {
		name string
		in   RegisterInput
		want error
	}{
		{"duplicate email", RegisterInput{Email: "ANN@example.com", Password: testPassword}, common.ErrorConflict},
		{"blank email", RegisterInput{Email: " ", Password: testPassword}, common.ErrorValidation},
		{"admin role", RegisterInput{Email: "x@example.com", Password: testPassword, Role: models.RoleAdmin}, common.ErrorValidation},
		{"short password", RegisterInput{Email: "y@example.com", Password: "123"}, common.ErrorValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.authService().Register(f.ctx, tt.in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	u := register(t, f, RegisterInput{Email: "ann@example.com"})
	svc := f.authService()

	pair, err := svc.Login(f.ctx, "Ann@example.com", testPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := auth.ParseToken(pair.AccessToken, []byte("k"))
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != u.ID || claims.Role != string(models.RoleJobSeeker) {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if _, err := f.store.RefreshTokens(nil).Find(f.ctx, pair.RefreshToken); err != nil {
		t.Fatalf("refresh token not stored: %v", err)
	}

	if _, err := svc.Login(f.ctx, "ann@example.com", "wrong-password"); !errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", err)
	}
	if _, err := svc.Login(f.ctx, "nobody@example.com", testPassword); !errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v", err)
	}

	if err := f.store.Users(nil).SetActive(f.ctx, u.ID, false, testNow); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if _, err := svc.Login(f.ctx, "ann@example.com", testPassword); !errors.Is(err, common.ErrorAccessDenied) {
		t.Fatalf("inactive account: got %v", err)
	}
}

func TestLogin_StoreFailureIsInternal(t *testing.T) {
	f := newFixture(t)
	f.store.FailOn("users.GetByEmail", errors.New("connection reset"))

	_, err := f.authService().Login(f.ctx, "ann@example.com", testPassword)
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestRefreshToken_Rotates(t *testing.T) {
	f := newFixture(t)
	register(t, f, RegisterInput{Email: "ann@example.com"})
	svc := f.authService()

	pair, err := svc.Login(f.ctx, "ann@example.com", testPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	next, err := svc.RefreshToken(f.ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken || next.AccessToken == "" {
		t.Fatalf("token not rotated: %+v", next)
	}
	if _, err := svc.RefreshToken(f.ctx, pair.RefreshToken); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("old token reused: got %v", err)
	}

	svc.now = fixedClock(testNow.Add(3 * time.Hour))
	if _, err := svc.RefreshToken(f.ctx, next.RefreshToken); !errors.Is(err, common.ErrRefreshTokenExpired) {
		t.Fatalf("expired token: got %v", err)
	}
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	register(t, f, RegisterInput{Email: "ann@example.com"})
	svc := f.authService()

	pair, err := svc.Login(f.ctx, "ann@example.com", testPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := svc.Logout(f.ctx, pair.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.RefreshToken(f.ctx, pair.RefreshToken); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("revoked token accepted: %v", err)
	}
	if err := svc.Logout(f.ctx, "unknown"); err != nil {
		t.Fatalf("Logout of unknown token: %v", err)
	}
}
