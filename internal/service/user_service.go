package service

import (
	"context"
	"errors"

	"github.com/bdfdm25/task-manager/internal/auth"
	"github.com/bdfdm25/task-manager/internal/repo"
	"github.com/bdfdm25/task-manager/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for both unknown email and wrong
// password, so callers cannot tell which check failed.
var ErrInvalidCredentials = errors.New("check your credentials")

var ErrEmailTaken = errors.New("email already in use")

// UserService handles registration and sign-in.
type UserService struct {
	repo   repo.UserRepo
	tokens *auth.TokenManager
	log    logrus.FieldLogger
}

// NewUserService returns a new UserService.
func NewUserService(repo repo.UserRepo, tokens *auth.TokenManager, log logrus.FieldLogger) *UserService {
	return &UserService{repo: repo, tokens: tokens, log: log}
}

// Register hashes the password and persists a new user. A duplicate email is
// detected via the unique-constraint violation, not a pre-check, so there is
// no window between check and insert.
func (s *UserService) Register(ctx context.Context, fullName, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.log.WithError(err).Error("hash password")
		return err
	}
	if _, err := s.repo.Create(ctx, fullName, email, string(hash)); err != nil {
		if utils.IsPGUniqueViolation(err) {
			return ErrEmailTaken
		}
		s.log.WithError(err).Error("create user")
		return err
	}
	return nil
}

// Authenticate verifies the credentials and returns a signed access token.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		s.log.WithError(err).Error("get user by email")
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(u)
	if err != nil {
		s.log.WithError(err).Error("issue token")
		return "", err
	}
	return token, nil
}
