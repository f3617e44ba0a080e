package signin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/notekeep-api/internal/domain"
	"github.com/notekeep-api/internal/infrastructure/github"
	"github.com/notekeep-api/internal/infrastructure/google"
	"github.com/notekeep-api/internal/pkg/id"
)

// GoogleVerifier validates Google ID tokens.
type GoogleVerifier interface {
	Verify(ctx context.Context, token string) (*google.Payload, error)
}

// GitHubVerifier exchanges GitHub OAuth codes for profiles.
type GitHubVerifier interface {
	Verify(ctx context.Context, code string) (*github.Payload, error)
}

// GoogleProvider signs in with a Google ID token, creating the account on
// first sign-in.
type GoogleProvider struct {
	verifier GoogleVerifier
	users    UserStore
}

func NewGoogleProvider(verifier GoogleVerifier, users UserStore) *GoogleProvider {
	return &GoogleProvider{verifier: verifier, users: users}
}

func (p *GoogleProvider) Authenticate(ctx context.Context, req SignInRequest) (*domain.User, error) {
	if req.IDToken == "" {
		return nil, fmt.Errorf("id_token required: %w", domain.ErrBadRequest)
	}
	payload, err := p.verifier.Verify(ctx, req.IDToken)
	if err != nil {
		return nil, err
	}
	return findOrCreateUser(ctx, p.users, userProfile{
		Email:    payload.Email,
		Name:     payload.Name,
		Image:    payload.Picture,
		Provider: domain.ProviderGoogle,
		Verified: payload.EmailVerified,
	})
}

// GitHubProvider signs in with a GitHub OAuth authorization code, creating
// the account on first sign-in.
type GitHubProvider struct {
	verifier GitHubVerifier
	users    UserStore
}

func NewGitHubProvider(verifier GitHubVerifier, users UserStore) *GitHubProvider {
	return &GitHubProvider{verifier: verifier, users: users}
}

func (p *GitHubProvider) Authenticate(ctx context.Context, req SignInRequest) (*domain.User, error) {
	if req.Code == "" {
		return nil, fmt.Errorf("code required: %w", domain.ErrBadRequest)
	}
	payload, err := p.verifier.Verify(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	return findOrCreateUser(ctx, p.users, userProfile{
		Email:    payload.Email,
		Name:     payload.Name,
		Image:    payload.AvatarURL,
		Provider: domain.ProviderGitHub,
		Verified: true,
	})
}

type userProfile struct {
	Email    string
	Name     string
	Image    string
	Provider string
	Verified bool
}

// findOrCreateUser resolves the account for an external identity. An
// existing account keeps its original auth_provider; a verified external
// email upgrades an unverified account.
func findOrCreateUser(ctx context.Context, users UserStore, prof userProfile) (*domain.User, error) {
	u, err := users.GetByEmail(ctx, prof.Email)
	if err == nil {
		if prof.Verified && u.EmailVerified == nil {
			now := time.Now().UTC()
			if uerr := users.Update(ctx, u.UserID, map[string]interface{}{
				"email_verified": now.Format(time.RFC3339),
			}); uerr == nil {
				u.EmailVerified = &now
			}
		}
		return u, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	u = &domain.User{
		UserID:       id.New(),
		Name:         prof.Name,
		Email:        prof.Email,
		AuthProvider: prof.Provider,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if prof.Image != "" {
		u.Image = &prof.Image
	}
	if prof.Verified {
		u.EmailVerified = &now
	}
	if err := users.Put(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
