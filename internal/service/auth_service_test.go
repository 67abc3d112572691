package service

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/vishvpatel010/ai-quizzer/config"
	"github.com/vishvpatel010/ai-quizzer/internal/dto"
	"github.com/vishvpatel010/ai-quizzer/internal/repository"
)

func newAuthFixture(t *testing.T) (AuthService, *config.Config) {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{JWTSecret: "test-secret"}
	return NewAuthService(repository.NewUserRepository(db), cfg), cfg
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthFixture(t)

	err := svc.Register(dto.RegisterRequest{Username: "ab", Email: "a@b.c", Password: "longenough"})
	require.ErrorIs(t, err, ErrInvalidInput)

	err = svc.Register(dto.RegisterRequest{Username: "alice", Email: "", Password: "longenough"})
	require.ErrorIs(t, err, ErrInvalidInput)

	err = svc.Register(dto.RegisterRequest{Username: "alice", Email: "a@b.c", Password: "short"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _ := newAuthFixture(t)

	require.NoError(t, svc.Register(dto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "longenough"}))

	err := svc.Register(dto.RegisterRequest{Username: "alice", Email: "other@example.com", Password: "longenough"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.EqualError(t, err, "Username or email already exists")

	err = svc.Register(dto.RegisterRequest{Username: "bob", Email: "alice@example.com", Password: "longenough"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, cfg := newAuthFixture(t)
	require.NoError(t, svc.Register(dto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "longenough"}))

	token, err := svc.Login(dto.LoginRequest{Username: "alice", Password: "longenough"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Greater(t, claims["userId"].(float64), 0.0)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)
	require.NoError(t, svc.Register(dto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "longenough"}))

	_, err := svc.Login(dto.LoginRequest{Username: "alice", Password: "wrongpassword"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.EqualError(t, err, "Invalid credentials")

	_, err = svc.Login(dto.LoginRequest{Username: "nobody-here", Password: "longenough"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.EqualError(t, err, "Invalid credentials")
}
