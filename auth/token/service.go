// Package token issues and verifies signed bearer tokens.
//
// A token carries the username as subject, the numeric user_id and an
// absolute expiry. It is signed with a shared HMAC secret.
//
// Usage:
//
//	svc, err := token.NewService(&cfg)
//	signed, expiresAt, err := svc.Issue("alice", 7, 0)
//	claims, err := svc.Verify(signed)
package token

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload of an issued token.
type Claims struct {
	UserID int64 `json:"user_id"`
	gojwt.RegisteredClaims
}

// Service issues and verifies tokens with a single secret and algorithm.
type Service struct {
	cfg Config
	now func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a token service. cfg is defaulted and validated.
func NewService(cfg *Config, opts ...Option) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Service{cfg: *cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AccessTTL returns the lifetime of tokens issued at login.
func (s *Service) AccessTTL() time.Duration { return s.cfg.AccessTokenTTL }

// Issue signs a token for the user that expires ttl from now.
// A non-positive ttl falls back to the configured default. The expiry is
// rounded up to the next whole second, so the token verifies for at least ttl.
func (s *Service) Issue(username string, userID int64, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = s.cfg.DefaultTTL
	}
	now := s.now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   username,
			Issuer:    s.cfg.Issuer,
			ID:        uuid.NewString(),
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(expiryCeil(now.Add(ttl))),
		},
	}

	signed, err := gojwt.NewWithClaims(s.cfg.signingMethod(), claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("token: sign: %w", err)
	}
	return signed, claims.ExpiresAt.Time, nil
}

// expiryCeil rounds t up to the whole second that the exp claim can carry.
func expiryCeil(t time.Time) time.Time {
	if r := t.Truncate(time.Second); !r.Equal(t) {
		return r.Add(time.Second)
	}
	return t
}

// Verify checks the signature first, then expiry, then the presence of
// subject and user_id. It returns ErrInvalidSignature, ErrExpired or
// ErrMalformedClaims on failure.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc, s.parserOptions()...)
	if err != nil {
		if errors.Is(err, gojwt.ErrTokenMalformed) && s.signatureValid(tokenString) {
			return nil, fmt.Errorf("%w: %v", ErrMalformedClaims, err)
		}
		return nil, classify(err)
	}
	if claims.Subject == "" || claims.UserID <= 0 {
		return nil, ErrMalformedClaims
	}
	return claims, nil
}

// classify maps golang-jwt errors onto the package's error kinds.
// Expiry is tested first because golang-jwt also wraps it in
// ErrTokenInvalidClaims.
func classify(err error) error {
	switch {
	case errors.Is(err, gojwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	case errors.Is(err, gojwt.ErrTokenInvalidClaims),
		errors.Is(err, gojwt.ErrTokenRequiredClaimMissing):
		return fmt.Errorf("%w: %v", ErrMalformedClaims, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
}

// signatureValid reports whether tokenString carries a good signature
// regardless of the shape of its claims.
func (s *Service) signatureValid(tokenString string) bool {
	_, err := gojwt.ParseWithClaims(tokenString, gojwt.MapClaims{}, s.keyFunc,
		gojwt.WithValidMethods([]string{s.cfg.signingMethod().Alg()}),
		gojwt.WithoutClaimsValidation(),
	)
	return err == nil
}

// keyFunc is the jwt.Keyfunc used during token parsing.
func (s *Service) keyFunc(t *gojwt.Token) (interface{}, error) {
	if t.Method.Alg() != s.cfg.signingMethod().Alg() {
		return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}

// parserOptions returns jwt.ParserOption based on config.
func (s *Service) parserOptions() []gojwt.ParserOption {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{s.cfg.signingMethod().Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(s.now),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, gojwt.WithIssuer(s.cfg.Issuer))
	}
	return opts
}
