package domain

import "time"

// Auth provider names stored on User.AuthProvider.
const (
	ProviderCredentials = "credentials"
	ProviderGoogle      = "google"
	ProviderGitHub      = "github"
	ProviderMagicLink   = "magic-link"
)

type User struct {
	UserID        string     `json:"id" dynamodbav:"user_id"`
	Name          string     `json:"name" dynamodbav:"name"`
	Email         string     `json:"email" dynamodbav:"email"`
	PasswordHash  *string    `json:"-" dynamodbav:"password_hash"`
	EmailVerified *time.Time `json:"email_verified,omitempty" dynamodbav:"email_verified"`
	Image         *string    `json:"image,omitempty" dynamodbav:"image"`
	AuthProvider  string     `json:"auth_provider,omitempty" dynamodbav:"auth_provider"`
	CreatedAt     time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt     time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2"`
	Image *string `json:"image"`
}
