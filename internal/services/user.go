package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventsplatform/internal/domain"
	"eventsplatform/internal/validation"
)

type userService struct {
	logger       *slog.Logger
	users        domain.UserRepository
	hasher       domain.PasswordHasher
	tokenIssuer  domain.TokenIssuer
	tokenExpiry  time.Duration
	emailService domain.EmailService
}

// NewUserService creates a UserService. emailService may be nil, in which case no
// welcome mail is sent.
func NewUserService(logger *slog.Logger, users domain.UserRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, tokenExpiry time.Duration, emailService domain.EmailService) domain.UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{
		logger:       logger,
		users:        users,
		hasher:       hasher,
		tokenIssuer:  tokenIssuer,
		tokenExpiry:  tokenExpiry,
		emailService: emailService,
	}
}

func (s *userService) Register(ctx context.Context, in *domain.RegisterInput) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	if msgs := validation.ValidateRegistration(in); len(msgs) > 0 {
		return nil, domain.NewValidationError(msgs)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := domain.NewUser(in.FirstName, in.LastName, in.Username, hash)
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.NewError(domain.ErrConflict, domain.MsgEmailTaken)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.emailService != nil {
		data := &domain.WelcomeMessageEmailData{
			Email:     user.Username,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		}
		if err := s.emailService.SendWelcomeMessage(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "welcome email failed", "user_id", user.ID, "error", err)
		}
	}
	return user, nil
}

func (s *userService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	username = strings.TrimSpace(username)
	if !validation.ValidateEmail(username) {
		return "", nil, domain.NewError(domain.ErrValidation, domain.MsgInvalidEmail)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.NewError(domain.ErrInvalidCredentials, domain.MsgInvalidCredentials)
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", nil, domain.NewError(domain.ErrInvalidCredentials, domain.MsgInvalidCredentials)
	}

	token, err := s.tokenIssuer.Issue(user, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewError(domain.ErrNotFound, domain.MsgUserNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
