// Package auth implements registration, login and password reset on top of
// the users repository, issuing session JWTs on successful login.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/callkeeper/internal/common"
	"github.com/dmitrijs2005/callkeeper/internal/models"
	"github.com/dmitrijs2005/callkeeper/internal/storage/users"
	"golang.org/x/crypto/bcrypt"
)

const DefaultSessionValidity = 12 * time.Hour

type Session struct {
	UserID   string
	Username string
	Token    string
}

type Service struct {
	users           users.Repository
	jwtSecret       []byte
	sessionValidity time.Duration
}

func NewService(repo users.Repository, jwtSecret []byte, sessionValidity time.Duration) *Service {
	if sessionValidity <= 0 {
		sessionValidity = DefaultSessionValidity
	}
	return &Service{
		users:           repo,
		jwtSecret:       jwtSecret,
		sessionValidity: sessionValidity,
	}
}

// UsersExist reports whether any user has been registered yet. The
// application bootstraps with zero users and forces registration first.
func (s *Service) UsersExist(ctx context.Context) (bool, error) {
	list, err := s.users.List(ctx)
	if err != nil {
		return false, fmt.Errorf("list users: %w", err)
	}
	return len(list) > 0, nil
}

// Register creates a new credential holder. A taken username surfaces as
// common.ErrConflict from the repository.
func (s *Service) Register(ctx context.Context, username, password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password is required", common.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return s.users.Create(ctx, &models.User{
		Username:     username,
		PasswordHash: string(hash),
	})
}

// Login verifies the credentials and mints a session token. Unknown
// usernames and bad passwords both come back as ErrInvalidCredentials so
// the response does not reveal which part was wrong.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrInvalidCredentials
	}

	token, err := GenerateToken(user.ID, s.jwtSecret, s.sessionValidity)
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	return &Session{UserID: user.ID, Username: user.Username, Token: token}, nil
}

// ResetPassword replaces the password of an existing user.
func (s *Service) ResetPassword(ctx context.Context, username, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: password is required", common.ErrValidation)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	_, err = s.users.Update(ctx, user.ID, user)
	return err
}

// VerifySession resolves a session token back to its user.
func (s *Service) VerifySession(ctx context.Context, token string) (*models.User, error) {
	userID, err := GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrInvalidToken
	}
	return s.users.Get(ctx, userID)
}
