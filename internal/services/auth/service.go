// Package auth verifies the admin password and issues admin access tokens.
package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"casacalc/internal/models"
	"casacalc/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAuthDisabled       = errors.New("admin login is not configured")
	ErrInvalidToken       = errors.New("invalid token")
)

const DefaultTokenTTL = 15 * time.Minute

type Service interface {
	// Login checks password against the configured hash and returns a
	// signed access token.
	Login(password string) (string, error)
	// VerifyToken returns the claims of a valid access token.
	VerifyToken(token string) (*models.AdminClaims, error)
}

type Config struct {
	PasswordHash string
	JWTSecret    string
	TokenTTL     time.Duration
}

type service struct {
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

func NewService(cfg Config, logger *slog.Logger) Service {
	if logger == nil {
		panic("logger is required")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	return &service{cfg: cfg, logger: logger, now: time.Now}
}

func (s *service) Login(password string) (string, error) {
	if s.cfg.PasswordHash == "" || s.cfg.JWTSecret == "" {
		return "", ErrAuthDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("admin login failed", "error", err)
		return "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(&models.AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: models.RoleAdmin},
		Role:             models.RoleAdmin,
		Permissions:      models.GetDefaultPermissions(models.RoleAdmin),
	}, s.cfg.JWTSecret, s.cfg.TokenTTL, s.now())
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}

	s.logger.Info("admin logged in")
	return token, nil
}

func (s *service) VerifyToken(token string) (*models.AdminClaims, error) {
	claims, err := utils.ParseToken(token, s.cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}
