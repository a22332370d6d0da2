// Package service implements the application services between the HTTP
// layer and storage: validation, orchestration of the calculator engine,
// and event publishing.
package service

import (
	"context"
	"fmt"

	"github.com/evenup/evenup/internal/auth"
	"github.com/evenup/evenup/internal/models"
)

// AuthService handles registration and login.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewAuthService creates an AuthService.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Session is the result of a successful registration or login.
type Session struct {
	Token string
	User  *models.User
}

// Register creates an account and returns a fresh session for it.
func (s *AuthService) Register(ctx context.Context, email, displayName, password string) (*Session, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if displayName == "" {
		return nil, fmt.Errorf("display name is required")
	}

	user, err := s.authenticator.Register(ctx, email, displayName, password)
	if err != nil {
		return nil, err
	}

	return s.newSession(user)
}

// Login verifies credentials and returns a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.newSession(user)
}

func (s *AuthService) newSession(user *models.User) (*Session, error) {
	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &Session{Token: token, User: user}, nil
}
