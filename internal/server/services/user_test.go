package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/shopcart/internal/common"
	"github.com/dmitrijs2005/shopcart/internal/server/auth"
	"github.com/dmitrijs2005/shopcart/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(t *testing.T) (*UserService, *fakeDB) {
	t.Helper()

	orig := hashPassword
	hashPassword = func(p []byte) ([]byte, error) { return bcrypt.GenerateFromPassword(p, bcrypt.MinCost) }
	t.Cleanup(func() { hashPassword = orig })

	db, _ := newSQLMockDB(t)
	f := newFakeDB()
	cfg := &config.Config{SecretKey: "k", TokenValidityDuration: time.Hour}
	return NewUserService(db, &fakeRepoManager{f: f}, cfg), f
}

func TestRegister_StoresHashNotPassword(t *testing.T) {
	s, f := newUserService(t)

	u, err := s.Register(context.Background(), "  alice ", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.NotZero(t, u.ID)

	stored := f.users["alice"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret")))
}

func TestRegister_Validation(t *testing.T) {
	s, _ := newUserService(t)

	_, err := s.Register(context.Background(), " ", "x")
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Register(context.Background(), "bob", "")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestRegister_Duplicate(t *testing.T) {
	s, _ := newUserService(t)

	_, err := s.Register(context.Background(), "alice", "a")
	require.NoError(t, err)

	_, err = s.Register(context.Background(), "alice", "b")
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestRegister_HashError(t *testing.T) {
	s, _ := newUserService(t)
	hashPassword = func([]byte) ([]byte, error) { return nil, errBoom }

	_, err := s.Register(context.Background(), "alice", "a")
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestRegister_RepoError(t *testing.T) {
	s, f := newUserService(t)
	f.fail["users.Create"] = errBoom

	_, err := s.Register(context.Background(), "alice", "a")
	assert.ErrorIs(t, err, errBoom)
}

func TestLogin_Success(t *testing.T) {
	s, _ := newUserService(t)
	u, err := s.Register(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	token, got, err := s.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Username)

	id, err := auth.GetUserIDFromToken(token, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
}

func TestLogin_Unauthorized(t *testing.T) {
	s, _ := newUserService(t)
	_, err := s.Register(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	_, _, err = s.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, _, err = s.Login(context.Background(), "ghost", "admin123")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestLogin_RepoError(t *testing.T) {
	s, f := newUserService(t)
	f.fail["users.GetByUsername"] = errBoom

	_, _, err := s.Login(context.Background(), "admin", "x")
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestEnsureUser(t *testing.T) {
	s, _ := newUserService(t)

	created, err := s.EnsureUser(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.EnsureUser(context.Background(), "admin", "other")
	require.NoError(t, err)
	assert.False(t, created)

	_, _, err = s.Login(context.Background(), "admin", "admin123")
	assert.NoError(t, err, "existing password untouched")
}

func TestEnsureUser_LookupError(t *testing.T) {
	s, f := newUserService(t)
	f.fail["users.GetByUsername"] = errBoom

	_, err := s.EnsureUser(context.Background(), "admin", "admin123")
	assert.True(t, errors.Is(err, errBoom))
}
