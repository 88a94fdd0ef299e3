package service

import (
	"context"
	"crypto/subtle"
	"fmt"

	"borntoday-backend/internal/config"
	"borntoday-backend/internal/domains/admin"
	"borntoday-backend/pkg/jwt"
	"borntoday-backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash keeps the bcrypt cost paid when the username is wrong or no hash is configured.
var dummyHash = []byte("$2a$10$7EqJtq98hPqEX7fNZaFWoO5tFGtXnEXmIwHrvjXf8Y3e4r9YQ2Ef6")

type authService struct {
	cfg    config.AdminConfig
	tokens *jwt.Manager
}

func NewAuthService(cfg config.AdminConfig, tokens *jwt.Manager) admin.AuthService {
	return &authService{cfg: cfg, tokens: tokens}
}

func (s *authService) Login(_ context.Context, req admin.LoginRequest) (*admin.LoginResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash := []byte(s.cfg.PasswordHash)
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.Username)) == 1
	if !userOK || len(hash) == 0 {
		hash = dummyHash
	}
	passErr := bcrypt.CompareHashAndPassword(hash, []byte(req.Password))
	if !userOK || s.cfg.PasswordHash == "" || passErr != nil {
		logger.Warn("admin login rejected", map[string]interface{}{"username": req.Username})
		return nil, admin.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(s.cfg.Username, jwt.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("issue admin token: %w", err)
	}
	logger.Info("admin logged in", map[string]interface{}{"username": req.Username})

	return &admin.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}
