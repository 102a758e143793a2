package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/fundhive/fundhive/internal/auth"
	"github.com/fundhive/fundhive/internal/metrics"
	"github.com/fundhive/fundhive/internal/model"
	"github.com/fundhive/fundhive/internal/store"
)

const minPasswordLength = 8

// UserService handles registration, login and profile lookups.
type UserService struct {
	store   store.UserStore
	hasher  *auth.PasswordHasher
	tokens  *auth.TokenIssuer
	metrics metrics.Recorder
	logger  *slog.Logger
	now     func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(st store.UserStore, hasher *auth.PasswordHasher, tokens *auth.TokenIssuer, recorder metrics.Recorder, logger *slog.Logger) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if hasher == nil {
		hasher = auth.NewPasswordHasher(0, 0, 0)
	}
	return &UserService{
		store:   st,
		hasher:  hasher,
		tokens:  tokens,
		metrics: recorder,
		logger:  defaultLogger(logger),
		now:     utcNow,
	}
}

// RegisterInput defines input for registering a user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines input for logging in.
type LoginInput struct {
	Email    string
	Password string
}

// Session is an issued bearer token with the user it belongs to.
type Session struct {
	Token string
	User  *model.User
}

// Register creates a user account and signs them in.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	name := strings.TrimSpace(input.Name)
	email := model.NormalizeEmail(input.Email)

	var c fieldChecker
	c.require(name != "", "name")
	c.require(isEmail(email), "email")
	c.require(len(input.Password) >= minPasswordLength, "password")
	if err := c.err(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:              generateID(),
		Name:            name,
		Email:           email,
		PasswordHash:    hash,
		Role:            model.RoleUser,
		Avatar:          model.DefaultAvatar,
		CreatedProjects: []string{},
		BackedProjects:  []string{},
		SavedProjects:   []string{},
		CreatedAt:       s.now(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncUserRegistered()
	s.logger.Info("user_registered", "user_id", user.ID)

	return s.issue(user)
}

// Login verifies credentials and issues a token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, input LoginInput) (*Session, error) {
	user, err := s.VerifyCredentials(ctx, input.Email, input.Password)
	if err != nil {
		s.metrics.IncLogin(false)
		return nil, err
	}

	s.metrics.IncLogin(true)
	return s.issue(user)
}

// VerifyCredentials returns the user owning email if password matches.
func (s *UserService) VerifyCredentials(ctx context.Context, email, password string) (*model.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.logger.Warn("password_hash_unreadable", "user_id", user.ID, "error", err)
		return nil, ErrInvalidCredentials
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Me returns the authenticated user's profile.
func (s *UserService) Me(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return user, nil
}

func (s *UserService) issue(user *model.User) (*Session, error) {
	if s.tokens == nil {
		return nil, errors.New("token issuer not configured")
	}
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &Session{Token: token, User: user}, nil
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
