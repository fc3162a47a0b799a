package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/callkeeper/internal/common"
	"github.com/dmitrijs2005/callkeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memUsers is an in-memory users.Repository for service tests.
type memUsers struct {
	seq   int
	users map[string]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[string]*models.User{}}
}

func (m *memUsers) List(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *memUsers) Get(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *memUsers) Create(ctx context.Context, user *models.User) (string, error) {
	for _, u := range m.users {
		if u.Username == user.Username {
			return "", common.ErrConflict
		}
	}
	m.seq++
	id := fmt.Sprintf("user-%d", m.seq)
	m.users[id] = &models.User{ID: id, Username: user.Username, PasswordHash: user.PasswordHash}
	return id, nil
}

func (m *memUsers) Update(ctx context.Context, id string, user *models.User) (bool, error) {
	u, ok := m.users[id]
	if !ok {
		return false, common.ErrNotFound
	}
	u.PasswordHash = user.PasswordHash
	return true, nil
}

func (m *memUsers) Delete(ctx context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func newTestService() (*Service, *memUsers) {
	repo := newMemUsers()
	return NewService(repo, []byte("test-secret"), time.Minute), repo
}

func TestUsersExist_EmptyBootstrap(t *testing.T) {
	svc, _ := newTestService()

	exists, err := svc.UsersExist(context.Background())
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.Register(context.Background(), "admin", "password1")
	require.NoError(t, err)

	exists, err = svc.UsersExist(context.Background())
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), "admin", "password1")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "admin", "different")
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestRegister_EmptyPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), "admin", "")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestLogin_Success_TokenResolvesUser(t *testing.T) {
	svc, _ := newTestService()

	id, err := svc.Register(context.Background(), "admin", "password1")
	require.NoError(t, err)

	session, err := svc.Login(context.Background(), "admin", "password1")
	require.NoError(t, err)
	assert.Equal(t, id, session.UserID)
	assert.Equal(t, "admin", session.Username)
	require.NotEmpty(t, session.Token)

	user, err := svc.VerifySession(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), "admin", "password1")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogin_UnknownUser_SameError(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), "nobody", "password1")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestResetPassword_ReplacesCredential(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), "admin", "password1")
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(context.Background(), "admin", "password2"))

	_, err = svc.Login(context.Background(), "admin", "password1")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "admin", "password2")
	assert.NoError(t, err)
}

func TestVerifySession_InvalidToken(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.VerifySession(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
