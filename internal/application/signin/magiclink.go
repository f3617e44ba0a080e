package signin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/notekeep-api/internal/domain"
)

// MagicLinkProvider signs in by consuming a short-lived emailed token.
// Using the link proves control of the mailbox, so the account (created on
// first use) is always marked verified.
type MagicLinkProvider struct {
	tokens TokenStore
	users  UserStore
}

func NewMagicLinkProvider(tokens TokenStore, users UserStore) *MagicLinkProvider {
	return &MagicLinkProvider{tokens: tokens, users: users}
}

func (p *MagicLinkProvider) Authenticate(ctx context.Context, req SignInRequest) (*domain.User, error) {
	if req.Token == "" {
		return nil, fmt.Errorf("token required: %w", domain.ErrBadRequest)
	}

	v, err := p.tokens.Get(ctx, req.Token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("invalid sign-in link: %w", domain.ErrInvalidToken)
		}
		return nil, err
	}
	if v.ExpiresAt < time.Now().Unix() {
		return nil, fmt.Errorf("sign-in link expired: %w", domain.ErrExpiredToken)
	}
	if v.Purpose != domain.TokenPurposeMagicLink {
		return nil, fmt.Errorf("invalid sign-in link: %w", domain.ErrInvalidToken)
	}
	if err := p.tokens.Consume(ctx, req.Token); err != nil {
		return nil, err
	}

	name := v.Identifier
	if at := strings.Index(name, "@"); at > 0 {
		name = name[:at]
	}
	return findOrCreateUser(ctx, p.users, userProfile{
		Email:    v.Identifier,
		Name:     name,
		Provider: domain.ProviderMagicLink,
		Verified: true,
	})
}
