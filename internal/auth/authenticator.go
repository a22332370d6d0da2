package auth

import (
	"context"

	"github.com/evenup/evenup/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// The abstraction keeps the service layer independent of the credential
// mechanism (password today, OAuth or passkeys later).
type Authenticator interface {
	// Register creates a new user account with the given email and credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user on success.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's
	// requirements (length, format, ...).
	ValidateCredential(credential string) error
}
