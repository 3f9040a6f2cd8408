package auth

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"casacalc/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, password string) Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return NewService(Config{PasswordHash: string(hash), JWTSecret: "secret"}, quietLogger())
}

func TestLogin(t *testing.T) {
	svc := newTestService(t, "correct horse")

	token, err := svc.Login("correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.True(t, claims.HasPermission(models.PermissionRatesWrite))
	assert.WithinDuration(t, time.Now().Add(DefaultTokenTTL), claims.ExpiresAt.Time, 5*time.Second)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(t, "correct horse")

	_, err := svc.Login("battery staple")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_NotConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"no hash", Config{JWTSecret: "secret"}},
		{"no secret", Config{PasswordHash: "$2a$04$abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService(tt.cfg, quietLogger()).Login("anything")
			assert.ErrorIs(t, err, ErrAuthDisabled)
		})
	}
}

func TestVerifyToken_Invalid(t *testing.T) {
	svc := newTestService(t, "pw")

	_, err := svc.VerifyToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewService_RequiresLogger(t *testing.T) {
	assert.Panics(t, func() { NewService(Config{}, nil) })
}
