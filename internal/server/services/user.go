// Package services contains server-side business logic. This file implements
// UserService, which registers users: validate, check the email is free, hash
// the password, persist, and issue a signed token.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/events"
	"github.com/dmitrijs2005/gophauth/internal/server/metrics"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
	"github.com/dmitrijs2005/gophauth/internal/server/validation"
)

// RegistrationRequest is the registration input. It is discarded once the
// password has been hashed.
type RegistrationRequest struct {
	Name     string `json:"name" validate:"required" msg:"Please add name"`
	Email    string `json:"email" validate:"required,email" msg:"Please include a valid email"`
	Password string `json:"password" validate:"min=6" msg:"Please enter a password with 6 or more characters" redact:"true"`
}

// TokenIssuer signs session tokens for a user id.
type TokenIssuer interface {
	Issue(ctx context.Context, userID string) (string, error)
}

// Recorder receives the outcome of every registration.
type Recorder interface {
	Observe(outcome string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) Observe(string, time.Duration) {}

type UserService struct {
	repo       users.Repository
	issuer     TokenIssuer
	publisher  events.Publisher
	recorder   Recorder
	validator  *validation.Validator
	logger     logging.Logger
	bcryptCost int

	newID func() string
	now   func() time.Time
}

// NewUserService wires a UserService. A nil publisher or recorder disables
// events or metrics respectively.
func NewUserService(repo users.Repository, issuer TokenIssuer, publisher events.Publisher,
	recorder Recorder, cfg *config.Config, logger logging.Logger) *UserService {

	if publisher == nil {
		publisher = events.Nop{}
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &UserService{
		repo:       repo,
		issuer:     issuer,
		publisher:  publisher,
		recorder:   recorder,
		validator:  validation.New(),
		logger:     logger,
		bcryptCost: cfg.BcryptCost,
		newID:      uuid.NewString,
		now:        time.Now,
	}
}

// Register creates a user and returns a signed token for it.
//
// Errors: *validation.Error for invalid input, common.ErrUserAlreadyExists
// when the email is taken, and anything else wraps common.ErrorInternal.
func (s *UserService) Register(ctx context.Context, req RegistrationRequest) (string, error) {
	start := time.Now()
	token, err := s.register(ctx, req)
	s.recorder.Observe(outcome(err), time.Since(start))
	return token, err
}

func (s *UserService) register(ctx context.Context, req RegistrationRequest) (string, error) {
	if err := s.validator.Struct(&req); err != nil {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			return "", vErr
		}
		return "", fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	_, err := s.repo.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return "", common.ErrUserAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		return "", fmt.Errorf("%w: find user: %w", common.ErrorInternal, err)
	}

	password := []byte(req.Password)
	hash, err := auth.HashPassword(password, s.bcryptCost)
	common.WipeByteArray(password)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	user := &models.User{
		ID:           s.newID(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	if _, err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", common.ErrUserAlreadyExists
		}
		return "", fmt.Errorf("%w: create user: %w", common.ErrorInternal, err)
	}

	token, err := s.issuer.Issue(ctx, user.ID)
	if err != nil {
		// the record must not outlive a failed registration
		if delErr := s.repo.Delete(context.WithoutCancel(ctx), user.ID); delErr != nil {
			s.logger.Error(ctx, "failed to remove user after signing error",
				"user_id", user.ID, "error", delErr)
		}
		return "", fmt.Errorf("%w: issue token: %w", common.ErrorInternal, err)
	}

	ev := events.UserRegistered{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		RegisteredAt: user.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn(ctx, "registration event not delivered", "user_id", user.ID, "error", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)

	return token, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, common.ErrorValidationFailed):
		return metrics.OutcomeInvalid
	case errors.Is(err, common.ErrUserAlreadyExists):
		return metrics.OutcomeDuplicate
	default:
		return metrics.OutcomeError
	}
}
