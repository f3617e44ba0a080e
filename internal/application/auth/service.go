package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/notekeep-api/internal/domain"
	"github.com/notekeep-api/internal/infrastructure/smtp"
	"github.com/notekeep-api/internal/pkg/id"
	pkgtoken "github.com/notekeep-api/internal/pkg/token"
	"github.com/notekeep-api/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

const (
	resetTokenTTL  = 1 * time.Hour
	verifyTokenTTL = 24 * time.Hour
)

type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ValidateResetTokenRequest struct {
	Token string `json:"token" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type UpdatePasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Token    string `json:"token" validate:"required"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

// UserStore is the subset of the user repository the auth service needs.
type UserStore interface {
	Put(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

// TokenStore is the subset of the verification-token repository the auth
// service needs. Consume operations fail with domain.ErrInvalidToken when
// the token is already gone.
type TokenStore interface {
	Put(ctx context.Context, v *domain.VerificationToken) error
	Get(ctx context.Context, token string) (*domain.VerificationToken, error)
	Consume(ctx context.Context, token string) error
	ConsumeWithPasswordUpdate(ctx context.Context, userID, passwordHash, token string) error
}

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
	RequestPasswordReset(ctx context.Context, req ResetPasswordRequest) error
	ValidateResetToken(ctx context.Context, req ValidateResetTokenRequest) error
	UpdatePassword(ctx context.Context, req UpdatePasswordRequest) error
	VerifyEmail(ctx context.Context, req VerifyEmailRequest) error
}

type ServiceDeps struct {
	UserRepo  UserStore
	TokenRepo TokenStore
	Mailer    smtp.Mailer
	BaseURL   string
}

type service struct {
	userRepo  UserStore
	tokenRepo TokenStore
	mailer    smtp.Mailer
	baseURL   string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		userRepo:  deps.UserRepo,
		tokenRepo: deps.TokenRepo,
		mailer:    deps.Mailer,
		baseURL:   deps.BaseURL,
	}
}

// Register creates an unverified credentials account. Registration does not
// sign the user in; the verification email is best effort and never fails
// the request.
func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	_, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, fmt.Errorf("an account with this email already exists: %w", domain.ErrConflict)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: &hashStr,
		AuthProvider: domain.ProviderCredentials,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Put(ctx, u); err != nil {
		return nil, err
	}

	if err := s.sendVerificationEmail(ctx, u.Email); err != nil {
		slog.Warn("could not send verification email", "user_id", u.UserID, "err", err)
	}
	return u, nil
}

func (s *service) sendVerificationEmail(ctx context.Context, email string) error {
	tok := pkgtoken.New()
	v := &domain.VerificationToken{
		Token:      tok,
		Identifier: email,
		Purpose:    domain.TokenPurposeVerify,
		ExpiresAt:  time.Now().Add(verifyTokenTTL).Unix(),
	}
	if err := s.tokenRepo.Put(ctx, v); err != nil {
		return err
	}
	subject, body := smtp.VerifyEmail(s.baseURL, tok)
	return s.mailer.SendEmail(email, subject, body)
}

// RequestPasswordReset issues a reset token and emails its link. Unknown
// emails return nil so the response never reveals whether an account exists.
// A send failure after the token was stored is surfaced: the caller was
// promised an email and silence here would strand them.
func (s *service) RequestPasswordReset(ctx context.Context, req ResetPasswordRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	tok := pkgtoken.New()
	v := &domain.VerificationToken{
		Token:      tok,
		Identifier: u.Email,
		Purpose:    domain.TokenPurposeReset,
		ExpiresAt:  time.Now().Add(resetTokenTTL).Unix(),
	}
	if err := s.tokenRepo.Put(ctx, v); err != nil {
		return err
	}

	subject, body := smtp.ResetPasswordEmail(s.baseURL, tok)
	return s.mailer.SendEmail(u.Email, subject, body)
}

// ValidateResetToken checks a reset token without consuming it, so the
// frontend can gate the new-password form before the user types anything.
// A token issued for another email reads as invalid, not as a mismatch.
func (s *service) ValidateResetToken(ctx context.Context, req ValidateResetTokenRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	return s.checkResetToken(ctx, req.Token, req.Email)
}

func (s *service) checkResetToken(ctx context.Context, token, email string) error {
	v, err := s.tokenRepo.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("invalid reset token: %w", domain.ErrInvalidToken)
		}
		return err
	}
	if v.ExpiresAt < time.Now().Unix() {
		return fmt.Errorf("reset token expired: %w", domain.ErrExpiredToken)
	}
	if v.Purpose != domain.TokenPurposeReset || v.Identifier != email {
		return fmt.Errorf("invalid reset token: %w", domain.ErrInvalidToken)
	}
	return nil
}

// UpdatePassword re-runs every reset-token check, then commits the new hash
// and the token deletion in one transactional write. The conditional delete
// means a token can set a password at most once; a replay loses the race
// and gets domain.ErrInvalidToken.
func (s *service) UpdatePassword(ctx context.Context, req UpdatePasswordRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	if err := s.checkResetToken(ctx, req.Token, req.Email); err != nil {
		return err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("user not found: %w", domain.ErrNotFound)
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.tokenRepo.ConsumeWithPasswordUpdate(ctx, u.UserID, string(hash), req.Token)
}

// VerifyEmail consumes a verification token and stamps the account verified.
func (s *service) VerifyEmail(ctx context.Context, req VerifyEmailRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}

	v, err := s.tokenRepo.Get(ctx, req.Token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("invalid verification token: %w", domain.ErrInvalidToken)
		}
		return err
	}
	if v.ExpiresAt < time.Now().Unix() {
		return fmt.Errorf("verification token expired: %w", domain.ErrExpiredToken)
	}
	if v.Purpose != domain.TokenPurposeVerify {
		return fmt.Errorf("invalid verification token: %w", domain.ErrInvalidToken)
	}

	u, err := s.userRepo.GetByEmail(ctx, v.Identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("user not found: %w", domain.ErrNotFound)
		}
		return err
	}

	if err := s.tokenRepo.Consume(ctx, req.Token); err != nil {
		return err
	}
	return s.userRepo.Update(ctx, u.UserID, map[string]interface{}{
		"email_verified": time.Now().UTC().Format(time.RFC3339),
	})
}
