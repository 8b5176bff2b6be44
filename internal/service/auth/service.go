// Package auth implements account registration and credential checks over
// the credential store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/askmatic/askly-server/internal/model/user"
	"github.com/askmatic/askly-server/internal/storage"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken rejects registration with an already-used email.
	ErrEmailTaken = errors.New("user already exists")
)

const bcryptCost = 10

// Service performs account operations against the credential store.
type Service struct {
	users storage.UserStore
	log   zerolog.Logger
}

// NewService wires the account service.
func NewService(users storage.UserStore, log zerolog.Logger) *Service {
	return &Service{users: users, log: log}
}

// Register hashes the password and creates the account. A duplicate email
// fails with ErrEmailTaken and creates no record.
func (s *Service) Register(ctx context.Context, fullName user.FullName, email, password string) (user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return user.User{}, fmt.Errorf("auth: hash password: %w", err)
	}

	u := user.User{
		FullName:     fullName,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, &u); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return user.User{}, ErrEmailTaken
		}
		return user.User{}, fmt.Errorf("auth: create user: %w", err)
	}

	s.log.Info().Str("user", u.ID).Msg("registered user")
	return u, nil
}

// Login verifies the email/password pair.
func (s *Service) Login(ctx context.Context, email, password string) (user.User, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, fmt.Errorf("auth: find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return u, nil
}

// Profile loads the account behind a verified session.
func (s *Service) Profile(ctx context.Context, userID string) (user.User, error) {
	return s.users.FindByID(ctx, userID)
}
