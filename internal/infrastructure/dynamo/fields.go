package dynamo

// DynamoDB attribute names used in update expressions across all repos.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldUpdatedAt     = "updated_at"
	fieldPasswordHash  = "password_hash"
	fieldEmailVerified = "email_verified"
)
