package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/dbx"
	"github.com/dmitrijs2005/jobportal/internal/logging"
	"github.com/dmitrijs2005/jobportal/internal/server/auth"
	"github.com/dmitrijs2005/jobportal/internal/server/config"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	// Role is JOBSEEKER (default) or EMPLOYER. Admins are created with
	// AdminService.InitAdmin.
	Role        models.Role
	CompanyName string
}

// AuthService handles registration, login and the issuing and rotation of
// JWT access tokens plus server-stored refresh tokens.
type AuthService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	log                          logging.Logger
	now                          func() time.Time
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *AuthService {
	return &AuthService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		log:                          log.With("module", "auth"),
		now:                          time.Now,
	}
}

// Register creates an account. Seekers are verified immediately. Employers
// start unverified and get a PENDING company in the same transaction.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := common.NormalizeEmail(in.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", common.ErrorValidation)
	}

	role := in.Role
	if role == "" {
		role = models.RoleJobSeeker
	}
	if role != models.RoleJobSeeker && role != models.RoleEmployer {
		return nil, fmt.Errorf("%w: cannot self-register as %s", common.ErrorValidation, role)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		now := s.now().UTC()
		var err error
		user, err = s.repomanager.Users(tx).Create(ctx, &models.User{
			Email:        email,
			PasswordHash: hash,
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Phone:        in.Phone,
			Roles:        []models.Role{role},
			IsActive:     true,
			IsVerified:   role == models.RoleJobSeeker,
			CreatedAt:    now,
		})
		if err != nil {
			if errors.Is(err, common.ErrorConflict) {
				return fmt.Errorf("%w: email already in use", common.ErrorConflict)
			}
			return err
		}

		if role != models.RoleEmployer {
			return nil
		}

		name := in.CompanyName
		if common.IsBlank(name) {
			name = in.FirstName + "'s Company"
		}
		_, err = s.repomanager.Companies(tx).Create(ctx, &models.Company{
			UserID:             user.ID,
			Name:               name,
			VerificationStatus: models.VerificationPending,
			CreatedAt:          now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID, "role", string(role))
	return user, nil
}

// Login verifies the password and mints a TokenPair. Unknown emails and bad
// passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, common.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is deactivated", common.ErrorAccessDenied)
	}

	return s.generateTokenPair(ctx, user, s.db)
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := s.repomanager.RefreshTokens(s.db).Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(s.now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, token.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is deactivated", common.ErrorAccessDenied)
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, user, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout revokes a refresh token. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken)
}

// --- helpers below ---

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	role := string(models.PrimaryRole(user.Roles))
	return auth.GenerateToken(user.ID, user.Email, role, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *AuthService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *AuthService) generateTokenPair(ctx context.Context, user *models.User, tx dbx.DBTX) (*TokenPair, error) {
	access, err := s.generateAccessToken(user)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	expires := s.now().Add(s.refreshTokenValidityDuration)
	if err := s.repomanager.RefreshTokens(tx).Create(ctx, user.ID, refresh, expires); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
