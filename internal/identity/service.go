package identity

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/kbukum/todoapi/auth"
	"github.com/kbukum/todoapi/auth/password"
	"github.com/kbukum/todoapi/auth/token"
	apperrors "github.com/kbukum/todoapi/errors"
	"github.com/kbukum/todoapi/logger"
	"github.com/kbukum/todoapi/observability"
	"github.com/kbukum/todoapi/validation"
)

const serviceName = "identity"

// TokenTypeBearer is the token_type of every issued token.
const TokenTypeBearer = "bearer"

// Service registers users, logs them in and resolves bearer tokens back to users.
type Service struct {
	store   Store
	hasher  password.Hasher
	tokens  *token.Service
	log     *logger.Logger
	metrics *observability.Metrics

	// dummyDigest is verified against when the username is unknown so both
	// failure paths cost one hash verification.
	dummyDigest func() string
}

var _ auth.TokenValidator = (*Service)(nil)

// NewService wires the gateway. metrics may be nil.
func NewService(store Store, hasher password.Hasher, tokens *token.Service, log *logger.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		store:   store,
		hasher:  hasher,
		tokens:  tokens,
		log:     log.WithComponent(serviceName),
		metrics: metrics,
		dummyDigest: sync.OnceValue(func() string {
			d, _ := hasher.Hash("not-a-real-password")
			return d
		}),
	}
}

// Register validates in, rejects a taken username, hashes the password and
// stores the new user.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	oc := observability.NewOperationContext(serviceName, "register", logger.RequestIDFromContext(ctx), "", s.metrics)
	ctx, span := oc.StartSpanForOperation(ctx, "identity.Register")
	log := s.log.WithContext(ctx)

	user, status, err := s.register(ctx, in)
	if err != nil {
		oc.EndOperation(ctx, span, status, internalOnly(err))
		log.Warn("Registration rejected", logger.Fields(logger.FieldUsername, in.Username, "reason", status))
		return nil, err
	}

	oc.EndOperation(ctx, span, status, nil)
	log.Info("User registered", logger.Fields(logger.FieldUsername, user.Username, logger.FieldUserID, user.ID))
	return user, nil
}

func (s *Service) register(ctx context.Context, in RegisterInput) (*User, string, error) {
	if err := validation.Validate(in); err != nil {
		return nil, "invalid_input", err
	}
	if len(in.Password) > password.MaxBcryptLength {
		return nil, "invalid_input", apperrors.InvalidInput("password", "password must be at most 72 bytes")
	}

	if _, err := s.store.FindByUsername(ctx, in.Username); err == nil {
		return nil, "duplicate_username", duplicateUsername()
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, "store_error", apperrors.DatabaseError(err)
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, "hash_error", apperrors.Internal(err)
	}

	user := &User{
		Username:       in.Username,
		Email:          in.Email,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		HashedPassword: digest,
	}
	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			return nil, "duplicate_username", duplicateUsername()
		}
		return nil, "store_error", apperrors.DatabaseError(err)
	}
	return user, "ok", nil
}

// Login checks the credentials and issues an access token. An unknown user
// and a wrong password fail identically with INVALID_CREDENTIALS.
func (s *Service) Login(ctx context.Context, username, pw string) (*TokenResponse, error) {
	oc := observability.NewOperationContext(serviceName, "login", logger.RequestIDFromContext(ctx), "", s.metrics)
	ctx, span := oc.StartSpanForOperation(ctx, "identity.Login")
	log := s.log.WithContext(ctx)

	user, err := s.store.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, ErrUserNotFound):
		s.hasher.Verify(pw, s.dummyDigest())
		oc.EndOperation(ctx, span, "invalid_credentials", nil)
		log.Warn("Login failed", logger.Fields(logger.FieldUsername, username, "reason", "unknown_user"))
		return nil, apperrors.InvalidCredentials()
	case err != nil:
		oc.EndOperation(ctx, span, "store_error", err)
		return nil, apperrors.DatabaseError(err)
	}

	if !s.hasher.Verify(pw, user.HashedPassword) {
		oc.EndOperation(ctx, span, "invalid_credentials", nil)
		log.Warn("Login failed", logger.Fields(logger.FieldUsername, username, "reason", "wrong_password"))
		return nil, apperrors.InvalidCredentials()
	}

	ttl := s.tokens.AccessTTL()
	signed, _, err := s.tokens.Issue(user.Username, user.ID, ttl)
	if err != nil {
		oc.EndOperation(ctx, span, "issue_error", err)
		return nil, apperrors.Internal(err)
	}

	oc.UserID = strconv.FormatInt(user.ID, 10)
	oc.EndOperation(ctx, span, "ok", nil)
	log.Info("Login succeeded", logger.Fields(logger.FieldUsername, user.Username, logger.FieldUserID, user.ID))
	return &TokenResponse{
		AccessToken: signed,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   int64(ttl.Seconds()),
	}, nil
}

// ResolveCurrentUser verifies the token and loads the user it names. Every
// failure, including a deleted user, is the same UNAUTHORIZED error.
func (s *Service) ResolveCurrentUser(ctx context.Context, raw string) (*User, error) {
	oc := observability.NewOperationContext(serviceName, "resolve_current_user", logger.RequestIDFromContext(ctx), "", s.metrics)
	ctx, span := oc.StartSpanForOperation(ctx, "identity.ResolveCurrentUser")
	log := s.log.WithContext(ctx)

	claims, err := s.tokens.Verify(raw)
	if err != nil {
		status := tokenFailure(err)
		oc.EndOperation(ctx, span, status, nil)
		log.Debug("Token rejected", logger.Fields("reason", status, logger.FieldError, err.Error()))
		return nil, apperrors.Unauthorized("")
	}

	oc.UserID = strconv.FormatInt(claims.UserID, 10)
	user, err := s.store.FindByID(ctx, claims.UserID)
	switch {
	case errors.Is(err, ErrUserNotFound):
		oc.EndOperation(ctx, span, "unknown_user", nil)
		log.Info("Token names a missing user", logger.Fields(logger.FieldUserID, claims.UserID))
		return nil, apperrors.Unauthorized("")
	case err != nil:
		oc.EndOperation(ctx, span, "store_error", err)
		return nil, apperrors.DatabaseError(err)
	}

	oc.EndOperation(ctx, span, "ok", nil)
	return user, nil
}

// ValidateToken implements auth.TokenValidator; the principal is a *User.
func (s *Service) ValidateToken(ctx context.Context, raw string) (any, error) {
	user, err := s.ResolveCurrentUser(ctx, raw)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes a user. Tokens already issued to it stop resolving.
func (s *Service) DeleteAccount(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return apperrors.NotFound("user", strconv.FormatInt(id, 10))
		}
		return apperrors.DatabaseError(err)
	}
	s.log.WithContext(ctx).Info("User deleted", logger.Fields(logger.FieldUserID, id))
	return nil
}

func duplicateUsername() *apperrors.AppError {
	return apperrors.New(apperrors.ErrCodeAlreadyExists, "Username already registered.", http.StatusConflict).
		WithDetail("field", "username")
}

func tokenFailure(err error) string {
	switch {
	case errors.Is(err, token.ErrExpired):
		return "token_expired"
	case errors.Is(err, token.ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, token.ErrMalformedClaims):
		return "malformed_claims"
	default:
		return "token_invalid"
	}
}

// internalOnly passes through errors that indicate a server fault so the
// span is marked failed; client errors return nil.
func internalOnly(err error) error {
	if appErr, ok := apperrors.AsAppError(err); ok && appErr.HTTPStatus < http.StatusInternalServerError {
		return nil
	}
	return err
}
