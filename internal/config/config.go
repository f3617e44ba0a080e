package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	// BaseURL is the public origin embedded in emailed links
	// (reset-password, verify-email, magic-link).
	BaseURL string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string

	DynamoTables DynamoTables
	S3BucketName string

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	GoogleClientID     string
	GitHubClientID     string
	GitHubClientSecret string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users              string
	VerificationTokens string
	Notes              string
	Categories         string
	Tags               string
	Tasks              string
	Projects           string
	Templates          string
	JournalEntries     string
	Articles           string
	Attachments        string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		BaseURL: getEnv("BASE_URL", "http://localhost:3000"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		DynamoTables: DynamoTables{
			Users:              getEnv("DYNAMO_TABLE_USERS", "users"),
			VerificationTokens: getEnv("DYNAMO_TABLE_VERIFICATION_TOKENS", "verification_tokens"),
			Notes:              getEnv("DYNAMO_TABLE_NOTES", "notes"),
			Categories:         getEnv("DYNAMO_TABLE_CATEGORIES", "categories"),
			Tags:               getEnv("DYNAMO_TABLE_TAGS", "tags"),
			Tasks:              getEnv("DYNAMO_TABLE_TASKS", "tasks"),
			Projects:           getEnv("DYNAMO_TABLE_PROJECTS", "projects"),
			Templates:          getEnv("DYNAMO_TABLE_TEMPLATES", "templates"),
			JournalEntries:     getEnv("DYNAMO_TABLE_JOURNAL_ENTRIES", "journal_entries"),
			Articles:           getEnv("DYNAMO_TABLE_ARTICLES", "articles"),
			Attachments:        getEnv("DYNAMO_TABLE_ATTACHMENTS", "attachments"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "notekeep-attachments"),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         time.Duration(getEnvInt("JWT_EXPIRY_DAYS", 7)) * 24 * time.Hour,

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@notekeep.local"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GitHubClientID:     getEnv("GITHUB_CLIENT_ID", ""),
		GitHubClientSecret: getEnv("GITHUB_CLIENT_SECRET", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
