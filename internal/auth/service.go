package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fremed/fremed-backend/internal/users"
	"github.com/fremed/fremed-backend/pkg/auth"
	"github.com/fremed/fremed-backend/pkg/auth/session"
	"github.com/fremed/fremed-backend/pkg/config"
	pkgerrors "github.com/fremed/fremed-backend/pkg/errors"
	"github.com/fremed/fremed-backend/pkg/security"
)

// Service authenticates dashboard users and manages their sessions.
type Service interface {
	Login(ctx context.Context, citizenID, password string) (*LoginResult, error)
	Logout(ctx context.Context, accessID string) error
}

// LoginResult bundles the minted token with the authenticated user.
type LoginResult struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      users.UserDTO `json:"user"`
}

type sessionWriter interface {
	Save(ctx context.Context, accessID, record string) error
	Revoke(ctx context.Context, accessID string) error
}

type service struct {
	repo     *users.Repository
	sessions sessionWriter
	jwtCfg   config.JWTConfig
	now      func() time.Time
	newJTI   func() string
}

// NewService constructs an auth service instance.
func NewService(repo *users.Repository, sessions *session.Manager, jwtCfg config.JWTConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	return &service{
		repo:     repo,
		sessions: sessions,
		jwtCfg:   jwtCfg,
		now:      time.Now,
		newJTI:   session.NewAccessID,
	}, nil
}

// Login verifies the citizen ID and password, mints an access token, and
// stores the session record. Unknown accounts, wrong passwords, and disabled
// accounts all produce the same generic error.
func (s *service) Login(ctx context.Context, citizenID, password string) (*LoginResult, error) {
	user, err := s.repo.FindByCitizenID(ctx, citizenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidCredentials()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}
	if !user.IsActive {
		return nil, invalidCredentials()
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, invalidCredentials()
	}

	now := s.now()
	jti := s.newJTI()

	token, err := auth.MintAccessToken(s.jwtCfg, now, auth.AccessTokenPayload{
		UserID:    user.ID,
		CitizenID: user.CitizenID,
		Role:      user.Role,
		JTI:       jti,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	user.LastLoginAt = &now
	if _, err := s.repo.Save(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: record login time")
	}

	record, err := json.Marshal(sessionRecord{
		UserID:    user.ID.String(),
		CitizenID: user.CitizenID,
		Name:      user.Name,
		Role:      user.Role.String(),
		LoginAt:   now,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode session record")
	}
	if err := s.sessions.Save(ctx, jti, string(record)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: save session")
	}

	dto := toLoginUser(user)
	return &LoginResult{
		Token:     token,
		ExpiresAt: now.Add(time.Duration(s.jwtCfg.ExpirationMinutes) * time.Minute),
		User:      *dto,
	}, nil
}

// Logout revokes the session record tied to the token's access ID. Revoking
// an already-expired session is not an error.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: revoke session")
	}
	return nil
}

func invalidCredentials() error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
}
