// Package auth implements email/password accounts for the HTTP API: the
// backend counterpart of the app's registration and login screens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/dvloznov/financehub/internal/domain"
	"github.com/dvloznov/financehub/internal/identity"
	"github.com/dvloznov/financehub/internal/infra/firestore"
)

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyRegistered  = errors.New("user already registered")
	ErrInvalidName        = errors.New("name is required")
	ErrInvalidAge         = errors.New("age must be 18 or over")
	ErrInvalidPhone       = errors.New("phone number must be 10 digits")
)

var profilePhonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Service wires the identity resolver, user store and token issuer into
// the register/login/complete-profile operations.
type Service struct {
	resolver *identity.Resolver
	users    firestore.UserRepository
	tokens   *TokenIssuer
}

func NewService(resolver *identity.Resolver, users firestore.UserRepository, tokens *TokenIssuer) *Service {
	return &Service{resolver: resolver, users: users, tokens: tokens}
}

// Session is the result of a successful register or login.
type Session struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
}

// Register creates an account: validates email shape and password
// length, derives the user id, and merges emailId plus the password
// hash into the profile document. Registering an id that already has a
// document fails rather than silently overwriting another account.
func (s *Service) Register(ctx context.Context, email, password string) (*Session, error) {
	if !identity.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	userID := s.resolver.Resolve(email)

	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("auth: register precheck: %w", err)
	}
	if exists {
		return nil, ErrAlreadyRegistered
	}

	normalized := identity.NormalizeEmail(email)
	if err := s.users.SetProfile(ctx, userID, domain.UserProfile{
		EmailID:      normalized,
		PasswordHash: hash,
	}); err != nil {
		return nil, fmt.Errorf("auth: writing profile: %w", err)
	}

	token, err := s.tokens.Issue(userID, normalized)
	if err != nil {
		return nil, err
	}
	return &Session{UserID: userID, Token: token}, nil
}

// Login verifies credentials against the stored hash and issues a
// session token. Lookup and password failures are indistinguishable to
// the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	if !identity.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	userID := s.resolver.Resolve(email)
	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !CheckPassword(password, profile.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(userID, identity.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	return &Session{UserID: userID, Token: token}, nil
}

// CompleteProfile merges the additional-information fields into the
// user document and marks the account verified. Validation mirrors the
// mobile form: non-empty name, age 18+, 10-digit phone.
func (s *Service) CompleteProfile(ctx context.Context, userID, name string, age int, gender, phone string) error {
	if name == "" {
		return ErrInvalidName
	}
	if age < 18 {
		return ErrInvalidAge
	}
	if !profilePhonePattern.MatchString(phone) {
		return ErrInvalidPhone
	}

	err := s.users.SetProfile(ctx, userID, domain.UserProfile{
		Name:        name,
		Age:         age,
		Gender:      gender,
		PhoneNumber: phone,
		IsVerified:  true,
	})
	if err != nil {
		return fmt.Errorf("auth: completing profile: %w", err)
	}
	return nil
}
