package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/notekeep-api/internal/domain"
	"golang.org/x/oauth2"
	oauthgithub "golang.org/x/oauth2/github"
)

const (
	userURL   = "https://api.github.com/user"
	emailsURL = "https://api.github.com/user/emails"
)

// Payload holds the profile fields fetched from the GitHub API after a
// successful OAuth code exchange.
type Payload struct {
	Sub       string
	Email     string
	Name      string
	AvatarURL string
}

// Verifier exchanges GitHub OAuth authorization codes for user profiles.
type Verifier struct {
	conf *oauth2.Config
}

func NewVerifier(clientID, clientSecret string) *Verifier {
	return &Verifier{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     oauthgithub.Endpoint,
			Scopes:       []string{"read:user", "user:email"},
		},
	}
}

// Verify exchanges the authorization code and fetches the user's profile.
// GitHub may hide the email on the profile, so the primary verified email
// is resolved through the emails endpoint when needed.
func (v *Verifier) Verify(ctx context.Context, code string) (*Payload, error) {
	tok, err := v.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("invalid github code: %w", domain.ErrUnauthorized)
	}
	client := v.conf.Client(ctx, tok)

	var user struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := getJSON(ctx, client, userURL, &user); err != nil {
		return nil, fmt.Errorf("fetch github profile: %w", err)
	}

	email := user.Email
	if email == "" {
		email, err = v.primaryEmail(ctx, client)
		if err != nil {
			return nil, err
		}
	}
	if email == "" {
		return nil, fmt.Errorf("github account has no verified email: %w", domain.ErrUnauthorized)
	}

	name := user.Name
	if name == "" {
		name = user.Login
	}
	return &Payload{
		Sub:       fmt.Sprintf("%d", user.ID),
		Email:     email,
		Name:      name,
		AvatarURL: user.AvatarURL,
	}, nil
}

func (v *Verifier) primaryEmail(ctx context.Context, client *http.Client) (string, error) {
	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := getJSON(ctx, client, emailsURL, &emails); err != nil {
		return "", fmt.Errorf("fetch github emails: %w", err)
	}
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	return "", nil
}

func getJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github api returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
