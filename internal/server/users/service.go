package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/webchat-dev/webchat/internal/common"
	"github.com/webchat-dev/webchat/internal/server/auth"
	"github.com/webchat-dev/webchat/internal/server/config"
)

type Service struct {
	repo                    Repository
	hasher                  *auth.PasswordHasher
	jwtSecret               []byte
	sessionValidityDuration time.Duration
}

func NewService(repo Repository, hasher *auth.PasswordHasher, cfg *config.Config) *Service {
	return &Service{
		repo:                    repo,
		hasher:                  hasher,
		jwtSecret:               []byte(cfg.SecretKey),
		sessionValidityDuration: cfg.SessionValidityDuration,
	}
}

// Register creates a new account with an Argon2id-hashed password.
// A duplicate username surfaces as common.ErrorUsernameTaken.
func (s *Service) Register(ctx context.Context, username, password string) (*User, error) {

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, common.ErrorValidation
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &User{
		Username:     username,
		PasswordHash: hash,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorUsernameTaken) {
			return nil, common.ErrorUsernameTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies the supplied credentials and, on success, issues a signed
// session token bound to the user's id and display name. An unknown
// username and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, *User, error) {

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrorUnauthorized
		}
		return "", nil, common.ErrorInternal
	}

	ok, err := s.hasher.Verify(user.PasswordHash, password)
	if err != nil || !ok {
		return "", nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, user.Username, s.jwtSecret, s.sessionValidityDuration)
	if err != nil {
		return "", nil, common.ErrorInternal
	}

	return token, user, nil
}
