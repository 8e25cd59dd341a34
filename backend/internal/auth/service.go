package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"grapevine/backend/internal/avatar"
	"grapevine/backend/internal/graph"
	"grapevine/backend/pkg/logger"
)

// ErrInvalidCredentials is returned for every failed login. Unknown email
// and wrong password are indistinguishable so the response never reveals
// whether an account exists.
var ErrInvalidCredentials = errors.New("incorrect email address or password")

const defaultAvatar = "https://www.w3schools.com/howto/img_avatar.png"

// UserStore is the persistence surface the identity manager needs.
type UserStore interface {
	CreateUser(ctx context.Context, user graph.User) (*graph.User, error)
	FindUserByEmail(ctx context.Context, email string) (*graph.User, error)
}

// Service owns user registration and login
type Service struct {
	store   UserStore
	tokens  *TokenManager
	avatars *avatar.Normalizer
	logger  *zap.Logger
}

func NewService(store UserStore, tokens *TokenManager, avatars *avatar.Normalizer) *Service {
	return &Service{
		store:   store,
		tokens:  tokens,
		avatars: avatars,
		logger:  logger.Get(),
	}
}

// RegisterInput carries the caller-supplied attributes of a new user.
// CreatedAt is stored as given, not server-generated.
type RegisterInput struct {
	Name      string
	Email     string
	Slug      string
	Password  string
	CreatedAt string
}

// AuthenticatedUser is a user projection merged with a fresh session token.
// The embedded User never carries the password hash out of this package.
type AuthenticatedUser struct {
	graph.User
	Token string `json:"token"`
}

// Register creates a new user and logs them in. The password is hashed
// here, before anything is persisted; the store rejects duplicate emails
// atomically with graph.ErrEmailTaken.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthenticatedUser, error) {
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := graph.User{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Slug:      in.Slug,
		Password:  hash,
		Role:      "user",
		Avatar:    defaultAvatar,
		Deleted:   false,
		Disabled:  false,
		Verified:  false,
		CreatedAt: in.CreatedAt,
	}

	created, err := s.store.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("user_id", created.ID))
	return s.authenticated(created)
}

// Login verifies credentials and issues a session token
func (s *Service) Login(ctx context.Context, email, password string) (*AuthenticatedUser, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, graph.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	return s.authenticated(user)
}

// authenticated strips the password, normalizes the avatar and merges in a
// fresh token.
func (s *Service) authenticated(user *graph.User) (*AuthenticatedUser, error) {
	sanitized := *user
	sanitized.Password = ""
	sanitized.Avatar = s.avatars.Normalize(sanitized.Avatar)

	token, err := s.tokens.Issue(sanitized)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthenticatedUser{User: sanitized, Token: token}, nil
}
