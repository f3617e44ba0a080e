package signin

import (
	"context"
	"fmt"
	"time"

	"github.com/notekeep-api/internal/domain"
	"github.com/notekeep-api/internal/infrastructure/smtp"
	pkgtoken "github.com/notekeep-api/internal/pkg/token"
	"github.com/notekeep-api/internal/pkg/validate"
)

const magicLinkTokenTTL = 15 * time.Minute

// SignInRequest carries the credentials for whichever provider is named.
// Only the fields that provider needs have to be set.
type SignInRequest struct {
	Provider string `json:"provider" validate:"required"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IDToken  string `json:"id_token"`
	Code     string `json:"code"`
	Token    string `json:"token"`
}

type MagicLinkRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SignInResult is the session payload returned on success.
type SignInResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Provider authenticates one sign-in method and resolves the account.
type Provider interface {
	Authenticate(ctx context.Context, req SignInRequest) (*domain.User, error)
}

// Signer mints session tokens.
type Signer interface {
	Sign(userID, email, name, image string) (string, error)
}

// UserStore is the subset of the user repository the sign-in flows need.
type UserStore interface {
	Put(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

// TokenStore handles magic-link tokens.
type TokenStore interface {
	Put(ctx context.Context, v *domain.VerificationToken) error
	Get(ctx context.Context, token string) (*domain.VerificationToken, error)
	Consume(ctx context.Context, token string) error
}

type Service interface {
	SignIn(ctx context.Context, req SignInRequest) (*SignInResult, error)
	RequestMagicLink(ctx context.Context, req MagicLinkRequest) error
}

type ServiceDeps struct {
	Providers map[string]Provider
	Signer    Signer
	TokenRepo TokenStore
	Mailer    smtp.Mailer
	BaseURL   string
}

type service struct {
	providers map[string]Provider
	signer    Signer
	tokenRepo TokenStore
	mailer    smtp.Mailer
	baseURL   string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		providers: deps.Providers,
		signer:    deps.Signer,
		tokenRepo: deps.TokenRepo,
		mailer:    deps.Mailer,
		baseURL:   deps.BaseURL,
	}
}

// SignIn dispatches to the named provider and mints a session token for the
// resolved account.
func (s *service) SignIn(ctx context.Context, req SignInRequest) (*SignInResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	p, ok := s.providers[req.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q: %w", req.Provider, domain.ErrBadRequest)
	}
	u, err := p.Authenticate(ctx, req)
	if err != nil {
		return nil, err
	}

	image := ""
	if u.Image != nil {
		image = *u.Image
	}
	token, err := s.signer.Sign(u.UserID, u.Email, u.Name, image)
	if err != nil {
		return nil, err
	}
	return &SignInResult{Token: token, User: u}, nil
}

// RequestMagicLink issues a short-lived sign-in token and emails its link.
// No account lookup happens here: the account is resolved (or created) when
// the link is used, so the response reveals nothing about existing emails.
func (s *service) RequestMagicLink(ctx context.Context, req MagicLinkRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}

	tok := pkgtoken.New()
	v := &domain.VerificationToken{
		Token:      tok,
		Identifier: req.Email,
		Purpose:    domain.TokenPurposeMagicLink,
		ExpiresAt:  time.Now().Add(magicLinkTokenTTL).Unix(),
	}
	if err := s.tokenRepo.Put(ctx, v); err != nil {
		return err
	}

	subject, body := smtp.MagicLinkEmail(s.baseURL, tok)
	return s.mailer.SendEmail(req.Email, subject, body)
}
