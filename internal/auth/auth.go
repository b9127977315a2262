// Package auth implements registration, login, and opaque-token
// authentication against the user store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/thoughtwall/thoughtwall/internal/model"
	"github.com/thoughtwall/thoughtwall/internal/store"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so a caller cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken means no user currently holds the presented token.
	ErrInvalidToken = errors.New("invalid access token")

	// ErrValidation wraps all input validation failures.
	ErrValidation = errors.New("validation failed")
)

const (
	usernameMin = 3
	usernameMax = 20
	passwordMin = 6
)

type Service struct {
	store store.Store
}

func NewService(store store.Store) *Service {
	return &Service{store: store}
}

// Register creates a user with a bcrypt password hash and a fresh access
// token. The returned user carries the token; the caller decides what to
// expose on the wire.
func (s *Service) Register(ctx context.Context, username, email, password string) (model.User, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)

	if len(username) < usernameMin || len(username) > usernameMax {
		return model.User{}, fmt.Errorf("%w: username must be %d-%d characters", ErrValidation, usernameMin, usernameMax)
	}
	if !strings.Contains(email, "@") {
		return model.User{}, fmt.Errorf("%w: email is not valid", ErrValidation)
	}
	if len(password) < passwordMin {
		return model.User{}, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, passwordMin)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, err
	}

	user := model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		AccessToken:  uuid.NewString(),
		CreatedAt:    time.Now(),
	}
	if err := s.store.CreateUser(ctx, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// Login verifies the password against the stored hash and reissues the
// access token. The previous token stops working the moment the new one
// is persisted: a user has at most one live token.
func (s *Service) Login(ctx context.Context, email, password string) (model.User, error) {
	user, err := s.store.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.User{}, ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := s.store.SetAccessToken(ctx, user.ID, token); err != nil {
		return model.User{}, err
	}
	user.AccessToken = token
	return user, nil
}

// Authenticate resolves an opaque token to the user that holds it.
func (s *Service) Authenticate(ctx context.Context, token string) (model.User, error) {
	if token == "" {
		return model.User{}, ErrInvalidToken
	}
	user, err := s.store.GetUserByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.User{}, ErrInvalidToken
		}
		return model.User{}, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
