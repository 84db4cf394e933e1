package account

import (
	"context"
	"errors"

	"github.com/catatanku/catatan-backend/internal/auth/domain"
	"github.com/catatanku/catatan-backend/internal/auth/service"
)

var (
	ErrNewPasswordRequired  = errors.New("new password required")
	ErrOldPasswordRequired  = errors.New("old password required")
	ErrOldPasswordIncorrect = errors.New("old password incorrect")
	ErrPasswordRequired     = errors.New("password required")
	ErrPasswordIncorrect    = errors.New("password incorrect")
	ErrConfirmationRequired = errors.New("confirmation required")
)

// Deleter invokes the privileged deletion endpoint for a user id and returns
// the endpoint's success message.
type Deleter interface {
	DeleteAccount(ctx context.Context, userID string) (string, error)
}

// Service orchestrates the sensitive account flows: password change with
// re-authentication, and account deletion with confirmation plus
// re-authentication before the cascade is ever invoked.
type Service struct {
	auth    *service.AuthService
	deleter Deleter
}

func NewService(auth *service.AuthService, deleter Deleter) *Service {
	return &Service{
		auth:    auth,
		deleter: deleter,
	}
}

// ChangePassword verifies the old password first; the new password is never
// submitted unless that verification succeeded.
func (s *Service) ChangePassword(ctx context.Context, userID, email, oldPassword, newPassword string) error {
	if newPassword == "" {
		return ErrNewPasswordRequired
	}
	if oldPassword == "" {
		return ErrOldPasswordRequired
	}

	if err := s.auth.VerifyPassword(ctx, email, oldPassword); err != nil {
		if err == domain.ErrInvalidCredentials {
			return ErrOldPasswordIncorrect
		}
		return err
	}

	return s.auth.UpdatePassword(ctx, userID, newPassword)
}

// DeleteAccount gates the irreversible cascade behind two checks: an explicit
// confirmation and a successful password re-authentication. No deletion step
// runs until both pass. Session termination is not done here; the caller signs
// out after receiving success.
func (s *Service) DeleteAccount(ctx context.Context, userID, email, password string, confirmed bool) (string, error) {
	if password == "" {
		return "", ErrPasswordRequired
	}
	if !confirmed {
		return "", ErrConfirmationRequired
	}

	if err := s.auth.VerifyPassword(ctx, email, password); err != nil {
		if err == domain.ErrInvalidCredentials {
			return "", ErrPasswordIncorrect
		}
		return "", err
	}

	return s.deleter.DeleteAccount(ctx, userID)
}
