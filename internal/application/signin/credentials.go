package signin

import (
	"context"
	"fmt"

	"github.com/notekeep-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// CredentialsProvider authenticates with email and password. All failure
// modes (unknown email, wrong password, password-less OAuth account,
// malformed stored hash) collapse into the same unauthorized error so the
// response never says which part was wrong.
type CredentialsProvider struct {
	users UserStore
}

func NewCredentialsProvider(users UserStore) *CredentialsProvider {
	return &CredentialsProvider{users: users}
}

func (p *CredentialsProvider) Authenticate(ctx context.Context, req SignInRequest) (*domain.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password required: %w", domain.ErrBadRequest)
	}
	u, err := p.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
	}
	if u.PasswordHash == nil {
		return nil, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)) != nil {
		return nil, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
	}
	return u, nil
}
