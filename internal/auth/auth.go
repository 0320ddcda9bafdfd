// Package auth implements the credential gate in front of the modeling
// API. Credentials come from deployment configuration, tokens are signed
// JWTs carrying the session identifier, and the whole gate can be switched
// off for local development.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"promoai-api/internal/common"
	"promoai-api/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	// ErrInvalidCredentials is returned when the username/password pair
	// does not match the configured credentials.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidToken is returned when a session token fails verification.
	ErrInvalidToken = errors.New("invalid or expired session token")
)

// Service validates credentials and issues session tokens.
type Service struct {
	cfg      config.AuthConfig
	tokenTTL time.Duration
	clock    common.Clock
	logger   *zap.Logger
}

func NewService(cfg config.AuthConfig, sessionCfg config.SessionConfig, clock common.Clock, logger *zap.Logger) *Service {
	return &Service{
		cfg:      cfg,
		tokenTTL: time.Duration(sessionCfg.TTL) * time.Second,
		clock:    clock,
		logger:   logger,
	}
}

// Enabled reports whether the credential gate is active. When disabled,
// every request is treated as authenticated.
func (s *Service) Enabled() bool {
	return s.cfg.Enabled
}

// Authenticate checks a username/password pair against the configured
// credentials. Comparison is constant-time so a mismatch reveals nothing
// about which field was wrong or how much of it matched.
func (s *Service) Authenticate(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Username))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Password))
	if userOK&passOK != 1 {
		s.logger.Warn("Failed login attempt", zap.String("username", username))
		return ErrInvalidCredentials
	}
	return nil
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// IssueToken signs a session token bound to the given session. The token
// expires together with the session itself.
func (s *Service) IssueToken(sessionID common.SessionID) (string, error) {
	now := s.clock.Now()
	claims := sessionClaims{
		SessionID: string(sessionID),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.TokenSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a session token, returning the session
// identifier it was issued for.
func (s *Service) VerifyToken(tokenString string) (common.SessionID, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.TokenSecret), nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.SessionID == "" {
		return "", ErrInvalidToken
	}
	return common.SessionID(claims.SessionID), nil
}
