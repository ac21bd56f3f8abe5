// pkg/auth/jwt.go
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken      = errors.New("invalid token")
	ErrExpiredToken      = errors.New("token has expired")
	ErrInvalidSigningKey = errors.New("invalid signing key")
	ErrUnsupportedAlg    = errors.New("unsupported signing algorithm")
)

const (
	DefaultAlgorithm     = "HS256"
	DefaultTokenDuration = 60 * time.Minute
	DefaultIssuer        = "taskmanager"
)

// TokenConfig is the immutable signing configuration of a TokenManager.
type TokenConfig struct {
	Secret              string
	Algorithm           string
	AccessTokenDuration time.Duration
	Issuer              string
}

// TokenManager issues and verifies stateless access tokens whose subject is
// the user's email.
type TokenManager struct {
	secret   []byte
	method   jwt.SigningMethod
	duration time.Duration
	issuer   string
	now      func() time.Time
}

// TokenOption customizes a TokenManager.
type TokenOption func(*TokenManager)

// WithClock replaces the wall clock used for issuing and verifying.
func WithClock(now func() time.Time) TokenOption {
	return func(tm *TokenManager) {
		tm.now = now
	}
}

// NewTokenManager creates a new token manager
func NewTokenManager(cfg TokenConfig, opts ...TokenOption) (*TokenManager, error) {
	if cfg.Secret == "" {
		return nil, ErrInvalidSigningKey
	}

	alg := strings.ToUpper(strings.TrimSpace(cfg.Algorithm))
	if alg == "" {
		alg = DefaultAlgorithm
	}
	method, err := signingMethod(alg)
	if err != nil {
		return nil, err
	}

	duration := cfg.AccessTokenDuration
	if duration <= 0 {
		duration = DefaultTokenDuration
	}
	issuer := cfg.Issuer
	if issuer == "" {
		issuer = DefaultIssuer
	}

	tm := &TokenManager{
		secret:   []byte(cfg.Secret),
		method:   method,
		duration: duration,
		issuer:   issuer,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(tm)
	}
	return tm, nil
}

func signingMethod(alg string) (jwt.SigningMethod, error) {
	switch alg {
	case "HS256":
		return jwt.SigningMethodHS256, nil
	case "HS384":
		return jwt.SigningMethodHS384, nil
	case "HS512":
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlg, alg)
	}
}

// Duration returns the lifetime of issued tokens.
func (tm *TokenManager) Duration() time.Duration {
	return tm.duration
}

// Issue creates a signed token for subject
func (tm *TokenManager) Issue(subject string) (string, error) {
	now := tm.now()

	claims := jwt.RegisteredClaims{
		ID:        uuid.New().String(),
		Issuer:    tm.issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tm.duration)),
		NotBefore: jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(tm.method, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

// Verify checks signature and expiry and returns the token subject.
// Every failure other than expiry is reported as ErrInvalidToken.
func (tm *TokenManager) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{tm.method.Alg()}),
		jwt.WithTimeFunc(tm.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims.Subject, nil
}
