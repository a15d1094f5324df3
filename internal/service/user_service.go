package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"recipe-api/internal/auth"
	"recipe-api/internal/model"
	"recipe-api/internal/repository"

	"github.com/rs/zerolog"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 5

// TokenIssuer signs bearer tokens for users.
type TokenIssuer interface {
	Issue(user *model.User) (string, error)
}

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
	logger   zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, tokens TokenIssuer, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// Register creates a new active user.
func (s *userService) Register(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	email := NormalizeEmail(req.Email)
	if email == "" {
		return nil, model.ErrEmailRequired
	}
	if utf8.RuneCountInString(req.Password) < MinPasswordLength {
		return nil, model.ErrPasswordTooShort
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	user := &model.User{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			return nil, err
		}
		s.logger.Error().Err(err).Msg("failed to create user")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user registered")

	return user, nil
}

// IssueToken exchanges email and password for a bearer token.
func (s *userService) IssueToken(ctx context.Context, req *model.TokenRequest) (string, error) {
	email := NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return "", model.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up user")
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	if user == nil || !user.IsActive {
		s.logger.Debug().Msg("token requested for unknown or inactive user")
		return "", model.ErrInvalidCredentials
	}

	ok, err := auth.CheckPassword(user.PasswordHash, req.Password)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to check password")
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	if !ok {
		s.logger.Debug().Int64("user_id", user.ID).Msg("password mismatch")
		return "", model.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to sign token")
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return token, nil
}

// GetByID retrieves a user by ID.
func (s *userService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", id).Msg("failed to get user")
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// NormalizeEmail trims the address and lowercases its domain part.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
