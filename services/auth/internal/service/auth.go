package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/minhngo/storefront/pkg/hash"
	"github.com/minhngo/storefront/pkg/logging"
	"github.com/minhngo/storefront/pkg/tokens"
	"github.com/minhngo/storefront/services/auth/internal/repo"
)

var (
	ErrValidation         = errors.New("validation")          // 400
	ErrInvalidCredentials = errors.New("invalid credentials") // 401
)

type AuthService struct {
	Repo repo.CredentialRepo

	JWTSecret []byte
	Issuer    string
	Audience  string
	TokenTTL  time.Duration
}

type LoginResult struct {
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Role      string
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: missing username/password", ErrValidation)
	}

	cred, err := s.Repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrUnknownUser) {
			l.Warn("login_failed", "reason", "unknown user")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(cred.PasswordHash, password) {
		l.Warn("login_failed", "reason", "bad password")
		return nil, ErrInvalidCredentials
	}

	issuedAt := time.Now().UTC()
	token, err := tokens.Issue(s.JWTSecret, s.Issuer, s.Audience, cred.Username, cred.Username, cred.Role, issuedAt, s.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	l.Info("login_success", "role", cred.Role)
	return &LoginResult{
		Token:     token,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(s.TokenTTL),
		Role:      cred.Role,
	}, nil
}
