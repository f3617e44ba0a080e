package domain

// Verification token purposes. Stored as an attribute rather than a sort key
// so the token string alone (globally unique) addresses the item.
const (
	TokenPurposeReset     = "reset"
	TokenPurposeVerify    = "verify"
	TokenPurposeMagicLink = "magic-link"
)

// VerificationToken is a random, time-limited, single-use credential proving
// control of an email address. Identifier is the email it was issued for.
// ExpiresAt is a Unix timestamp used as DynamoDB TTL; expiry is still checked
// explicitly on every read because TTL deletion is lazy.
//
// Multiple unexpired tokens may coexist for one identifier. Issuing a new
// token does not invalidate older ones; any matching unexpired token succeeds.
type VerificationToken struct {
	Token      string `json:"token" dynamodbav:"token"`
	Identifier string `json:"identifier" dynamodbav:"identifier"`
	Purpose    string `json:"purpose" dynamodbav:"purpose"`
	ExpiresAt  int64  `json:"expires_at" dynamodbav:"expires_at"`
}
