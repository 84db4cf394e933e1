package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/catatanku/catatan-backend/internal/auth/domain"
	"github.com/catatanku/catatan-backend/internal/auth/repository"
	"github.com/catatanku/catatan-backend/internal/auth/session"
)

type AuthService struct {
	userRepo *repository.UserRepository
	sessions *session.Store
}

func NewAuthService(userRepo *repository.UserRepository, sessions *session.Store) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
	}
}

// SignUp creates a new auth identity with a bcrypt-hashed password.
// The application profile row is inserted separately by the register handler.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SignIn verifies the credentials and issues a session on success.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	user, err := s.verify(ctx, email, password)
	if err != nil {
		return nil, err
	}

	return s.sessions.Create(ctx, user.ID, user.Email)
}

// VerifyPassword re-authenticates a user without issuing a session or mutating
// anything. It backs the password-change and account-deletion flows, which must
// not proceed past a failed re-authentication.
func (s *AuthService) VerifyPassword(ctx context.Context, email, password string) error {
	_, err := s.verify(ctx, email, password)
	return err
}

// UpdatePassword stores a new bcrypt hash for the user. Callers are expected
// to have re-authenticated first where the flow requires it.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, userID, string(hash))
}

// SignOut revokes the session behind the token.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

func (s *AuthService) verify(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err == domain.ErrUserNotFound {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
