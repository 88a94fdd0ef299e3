package service

import (
	"context"
	"testing"
	"time"

	"borntoday-backend/internal/config"
	"borntoday-backend/internal/domains/admin"
	"borntoday-backend/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuth(t *testing.T, password string) (admin.AuthService, *jwt.Manager) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	tokens := jwt.NewManager("test-secret", time.Hour)
	return NewAuthService(config.AdminConfig{Username: "moderator", PasswordHash: string(hash)}, tokens), tokens
}

func TestLogin_IssuesAdminToken(t *testing.T) {
	auth, tokens := newAuth(t, "hunter2")

	res, err := auth.Login(context.Background(), admin.LoginRequest{Username: " moderator ", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", res.TokenType)

	claims, err := tokens.ValidateAccessToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "moderator", claims.Subject)
	assert.Equal(t, jwt.RoleAdmin, claims.Role)
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	auth, _ := newAuth(t, "hunter2")

	tests := []struct {
		name string
		req  admin.LoginRequest
	}{
		{"wrong password", admin.LoginRequest{Username: "moderator", Password: "nope"}},
		{"wrong username", admin.LoginRequest{Username: "root", Password: "hunter2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Login(context.Background(), tt.req)
			assert.ErrorIs(t, err, admin.ErrInvalidCredentials)
		})
	}
}

func TestLogin_NoHashConfigured(t *testing.T) {
	auth := NewAuthService(config.AdminConfig{Username: "moderator"}, jwt.NewManager("s", time.Hour))

	_, err := auth.Login(context.Background(), admin.LoginRequest{Username: "moderator", Password: "anything"})
	assert.ErrorIs(t, err, admin.ErrInvalidCredentials)
}

func TestLogin_ValidationError(t *testing.T) {
	auth, _ := newAuth(t, "hunter2")

	_, err := auth.Login(context.Background(), admin.LoginRequest{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, admin.ErrInvalidCredentials)
}
