package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/notekeep-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- mocks ---

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Put(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}

type mockTokenStore struct{ mock.Mock }

func (m *mockTokenStore) Put(ctx context.Context, v *domain.VerificationToken) error {
	return m.Called(ctx, v).Error(0)
}
func (m *mockTokenStore) Get(ctx context.Context, token string) (*domain.VerificationToken, error) {
	args := m.Called(ctx, token)
	if v, _ := args.Get(0).(*domain.VerificationToken); v != nil {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockTokenStore) Consume(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}
func (m *mockTokenStore) ConsumeWithPasswordUpdate(ctx context.Context, userID, passwordHash, token string) error {
	return m.Called(ctx, userID, passwordHash, token).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

func newService(us *mockUserStore, ts *mockTokenStore, ml *mockMailer) Service {
	return NewService(ServiceDeps{
		UserRepo:  us,
		TokenRepo: ts,
		Mailer:    ml,
		BaseURL:   "http://localhost:3000",
	})
}

// --- Register ---

func TestRegister_ValidationFirstViolationOnly(t *testing.T) {
	svc := newService(nil, nil, nil)

	cases := []struct {
		name string
		req  domain.RegisterRequest
		want string
	}{
		{
			name: "short name reported before bad email",
			req:  domain.RegisterRequest{Name: "A", Email: "not-an-email", Password: "x"},
			want: "Name must be at least 2 characters long",
		},
		{
			name: "bad email",
			req:  domain.RegisterRequest{Name: "Alice", Email: "not-an-email", Password: "Passw0rd"},
			want: "please enter a valid email address",
		},
		{
			name: "password too short",
			req:  domain.RegisterRequest{Name: "Alice", Email: "a@b.com", Password: "Ab1"},
			want: "password must be at least 8 characters long and contain at least one letter and one number",
		},
		{
			name: "password without digits",
			req:  domain.RegisterRequest{Name: "Alice", Email: "a@b.com", Password: "abcdefgh"},
			want: "password must be at least 8 characters long and contain at least one letter and one number",
		},
		{
			name: "password without letters",
			req:  domain.RegisterRequest{Name: "Alice", Email: "a@b.com", Password: "12345678"},
			want: "password must be at least 8 characters long and contain at least one letter and one number",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestRegister_DuplicateEmail_ConflictRegardlessOfPassword(t *testing.T) {
	us := &mockUserStore{}
	existing := &domain.User{UserID: "u1", Email: "a@b.com"}
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(existing, nil)

	svc := newService(us, nil, nil)
	for _, password := range []string{"Passw0rd", "Different1"} {
		_, err := svc.Register(context.Background(), domain.RegisterRequest{
			Name: "Alice", Email: "a@b.com", Password: password,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConflict))
	}
}

func TestRegister_HappyPath(t *testing.T) {
	us := &mockUserStore{}
	ts := &mockTokenStore{}
	ml := &mockMailer{}

	us.On("GetByEmail", mock.Anything, "a@b.com").Return(nil, domain.ErrNotFound)
	us.On("Put", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		if u.Email != "a@b.com" || u.Name != "Alice" {
			return false
		}
		if u.EmailVerified != nil || u.AuthProvider != domain.ProviderCredentials {
			return false
		}
		// hash stored, never the plaintext
		return u.PasswordHash != nil && *u.PasswordHash != "Passw0rd" &&
			bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte("Passw0rd")) == nil
	})).Return(nil)
	ts.On("Put", mock.Anything, mock.MatchedBy(func(v *domain.VerificationToken) bool {
		return v.Purpose == domain.TokenPurposeVerify && v.Identifier == "a@b.com" && len(v.Token) == 64
	})).Return(nil)
	ml.On("SendEmail", "a@b.com", mock.Anything, mock.Anything).Return(nil)

	svc := newService(us, ts, ml)
	u, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name: "Alice", Email: "a@b.com", Password: "Passw0rd",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, u.UserID)
	us.AssertExpectations(t)
	ts.AssertExpectations(t)
	ml.AssertExpectations(t)
}

func TestRegister_VerificationEmailFailureIsSwallowed(t *testing.T) {
	us := &mockUserStore{}
	ts := &mockTokenStore{}
	ml := &mockMailer{}

	us.On("GetByEmail", mock.Anything, "a@b.com").Return(nil, domain.ErrNotFound)
	us.On("Put", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	ts.On("Put", mock.Anything, mock.AnythingOfType("*domain.VerificationToken")).Return(nil)
	ml.On("SendEmail", "a@b.com", mock.Anything, mock.Anything).Return(fmt.Errorf("smtp down"))

	svc := newService(us, ts, ml)
	u, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name: "Alice", Email: "a@b.com", Password: "Passw0rd",
	})

	require.NoError(t, err)
	assert.NotNil(t, u)
}

// --- RequestPasswordReset ---

func TestRequestPasswordReset_UnknownEmail_SilentSuccess(t *testing.T) {
	us := &mockUserStore{}
	ts := &mockTokenStore{}
	ml := &mockMailer{}
	us.On("GetByEmail", mock.Anything, "ghost@b.com").Return(nil, domain.ErrNotFound)

	svc := newService(us, ts, ml)
	err := svc.RequestPasswordReset(context.Background(), ResetPasswordRequest{Email: "ghost@b.com"})

	require.NoError(t, err)
	ts.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	ml.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestPasswordReset_HappyPath(t *testing.T) {
	us := &mockUserStore{}
	ts := &mockTokenStore{}
	ml := &mockMailer{}

	user := &domain.User{UserID: "u1", Email: "a@b.com"}
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(user, nil)
	ts.On("Put", mock.Anything, mock.MatchedBy(func(v *domain.VerificationToken) bool {
		if v.Purpose != domain.TokenPurposeReset || v.Identifier != "a@b.com" || len(v.Token) != 64 {
			return false
		}
		ttl := v.ExpiresAt - time.Now().Unix()
		return ttl > 59*60 && ttl <= 60*60
	})).Return(nil)
	ml.On("SendEmail", "a@b.com", "Reset your password", mock.MatchedBy(func(body string) bool {
		return len(body) > 0
	})).Return(nil)

	svc := newService(us, ts, ml)
	err := svc.RequestPasswordReset(context.Background(), ResetPasswordRequest{Email: "a@b.com"})

	require.NoError(t, err)
	ts.AssertExpectations(t)
	ml.AssertExpectations(t)
}

func TestRequestPasswordReset_SendFailureIsSurfaced(t *testing.T) {
	us := &mockUserStore{}
	ts := &mockTokenStore{}
	ml := &mockMailer{}

	user := &domain.User{UserID: "u1", Email: "a@b.com"}
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(user, nil)
	ts.On("Put", mock.Anything, mock.AnythingOfType("*domain.VerificationToken")).Return(nil)
	ml.On("SendEmail", "a@b.com", mock.Anything, mock.Anything).Return(fmt.Errorf("smtp down"))

	svc := newService(us, ts, ml)
	err := svc.RequestPasswordReset(context.Background(), ResetPasswordRequest{Email: "a@b.com"})

	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrValidation))
}

// --- ValidateResetToken ---

func TestValidateResetToken_UnknownToken(t *testing.T) {
	ts := &mockTokenStore{}
	ts.On("Get", mock.Anything, "deadbeef").Return(nil, domain.ErrNotFound)

	svc := newService(nil, ts, nil)
	err := svc.ValidateResetToken(context.Background(), ValidateResetTokenRequest{
		Token: "deadbeef", Email: "a@b.com",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
}

func TestValidateResetToken_IdentifierMismatch_ReadsAsInvalid(t *testing.T) {
	ts := &mockTokenStore{}
	ts.On("Get", mock.Anything, "tok1").Return(&domain.VerificationToken{
		Token:      "tok1",
		Identifier: "someone-else@b.com",
		Purpose:    domain.TokenPurposeReset,
		ExpiresAt:  time.Now().Add(time.Hour).Unix(),
	}, nil)

	svc := newService(nil, ts, nil)
	err := svc.ValidateResetToken(context.Background(), ValidateResetTokenRequest{
		Token: "tok1", Email: "a@b.com",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
}

func TestValidateResetToken_WrongPurpose_ReadsAsInvalid(t *testing.T) {
	ts := &mockTokenStore{}
	ts.On("Get", mock.Anything, "tok1").Return(&domain.VerificationToken{
		Token:      "tok1",
		Identifier: "a@b.com",
		Purpose:    domain.TokenPurposeVerify,
		ExpiresAt:  time.Now().Add(time.Hour).Unix(),
	}, nil)

	svc := newService(nil, ts, nil)
	err := svc.ValidateResetToken(context.Background(), ValidateResetTokenRequest{
		Token: "tok1", Email: "a@b.com",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
}

func TestValidateResetToken_Expired_EvenWithMatchingEmail(t *testing.T) {
	ts := &mockTokenStore{}
	ts.On("Get", mock.Anything, "tok1").Return(&domain.VerificationToken{
		Token:      "tok1",
		Identifier: "a@b.com",
		Purpose:    domain.TokenPurposeReset,
		ExpiresAt:  time.Now().Add(-time.Minute).Unix(),
	}, nil)

	svc := newService(nil, ts, nil)
	err := svc.ValidateResetToken(context.Background(), ValidateResetTokenRequest{
		Token: "tok1", Email: "a@b.com",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExpiredToken))
}

func TestValidateResetToken_ExpiredAndMismatchedEmail_ReadsAsExpired(t *testing.T) {
	ts := &mockTokenStore{}
	ts.On("Get", mock.Anything, "tok1").Return(&domain.VerificationToken{
		Token:      "tok1",
		Identifier: "someone-else@b.com",
		Purpose:    domain.TokenPurposeReset,
		ExpiresAt:  time.Now().Add(-time.Hour).Unix(),
	}, nil)

	svc := newService(nil, ts, nil)
	err := svc.ValidateResetToken(context.Background(), ValidateResetTokenRequest{
		Token: "tok1", Email: "a@b.com",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExpiredToken))
	assert.False(t, errors.Is(err, domain.ErrInvalidToken))
}

func TestValidateResetToken_Valid_DoesNotConsume(t *testing.T) {
	ts := &mockTokenStore{}
	ts.On("Get", mock.Anything, "tok1").Return(&domain.VerificationToken{
		Token:      "tok1",
		Identifier: "a@b.com",
		Purpose:    domain.TokenPurposeReset,
		ExpiresAt:  time.Now().Add(30 * time.Minute).Unix(),
	}, nil)

	svc := newService(nil, ts, nil)
	err := svc.ValidateResetToken(context.Background(), ValidateResetTokenRequest{
		Token: "tok1", Email: "a@b.com",
	})

	require.NoError(t, err)
	ts.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything)
	ts.AssertNotCalled(t, "ConsumeWithPasswordUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- UpdatePassword ---

func TestUpdatePassword_WeakPassword_Rejected(t *testing.T) {
	svc := newService(nil, nil, nil)
	err := svc.UpdatePassword(context.Background(), UpdatePasswordRequest{
		Email: "a@b.com", Password: "short", Token: "tok1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestUpdatePassword_InvalidToken(t *testing.T) {
	ts := &mockTokenStore{}
	ts.On("Get", mock.Anything, "tok1").Return(nil, domain.ErrNotFound)

	svc := newService(nil, ts, nil)
	err := svc.UpdatePassword(context.Background(), UpdatePasswordRequest{
		Email: "a@b.com", Password: "NewPass1", Token: "tok1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
}

func TestUpdatePassword_ExpiredToken_EvenWithMatchingEmail(t *testing.T) {
	ts := &mockTokenStore{}
	ts.On("Get", mock.Anything, "tok1").Return(&domain.VerificationToken{
		Token:      "tok1",
		Identifier: "a@b.com",
		Purpose:    domain.TokenPurposeReset,
		ExpiresAt:  time.Now().Add(-time.Minute).Unix(),
	}, nil)

	svc := newService(nil, ts, nil)
	err := svc.UpdatePassword(context.Background(), UpdatePasswordRequest{
		Email: "a@b.com", Password: "NewPass1", Token: "tok1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExpiredToken))
	ts.AssertNotCalled(t, "ConsumeWithPasswordUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdatePassword_UserGone_NotFound(t *testing.T) {
	us := &mockUserStore{}
	ts := &mockTokenStore{}
	ts.On("Get", mock.Anything, "tok1").Return(&domain.VerificationToken{
		Token:      "tok1",
		Identifier: "a@b.com",
		Purpose:    domain.TokenPurposeReset,
		ExpiresAt:  time.Now().Add(30 * time.Minute).Unix(),
	}, nil)
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(nil, domain.ErrNotFound)

	svc := newService(us, ts, nil)
	err := svc.UpdatePassword(context.Background(), UpdatePasswordRequest{
		Email: "a@b.com", Password: "NewPass1", Token: "tok1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdatePassword_UserLookupFailure_NotReportedAsNotFound(t *testing.T) {
	us := &mockUserStore{}
	ts := &mockTokenStore{}
	ts.On("Get", mock.Anything, "tok1").Return(&domain.VerificationToken{
		Token:      "tok1",
		Identifier: "a@b.com",
		Purpose:    domain.TokenPurposeReset,
		ExpiresAt:  time.Now().Add(30 * time.Minute).Unix(),
	}, nil)
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(nil, fmt.Errorf("dynamo unavailable"))

	svc := newService(us, ts, nil)
	err := svc.UpdatePassword(context.Background(), UpdatePasswordRequest{
		Email: "a@b.com", Password: "NewPass1", Token: "tok1",
	})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, err.Error(), "dynamo unavailable")
	ts.AssertNotCalled(t, "ConsumeWithPasswordUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdatePassword_HappyPath_CommitsHashAndConsumesToken(t *testing.T) {
	us := &mockUserStore{}
	ts := &mockTokenStore{}

	ts.On("Get", mock.Anything, "tok1").Return(&domain.VerificationToken{
		Token:      "tok1",
		Identifier: "a@b.com",
		Purpose:    domain.TokenPurposeReset,
		ExpiresAt:  time.Now().Add(30 * time.Minute).Unix(),
	}, nil)
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.User{UserID: "u1", Email: "a@b.com"}, nil)
	ts.On("ConsumeWithPasswordUpdate", mock.Anything, "u1", mock.MatchedBy(func(hash string) bool {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte("NewPass1")) == nil
	}), "tok1").Return(nil)

	svc := newService(us, ts, nil)
	err := svc.UpdatePassword(context.Background(), UpdatePasswordRequest{
		Email: "a@b.com", Password: "NewPass1", Token: "tok1",
	})

	require.NoError(t, err)
	ts.AssertExpectations(t)
}

func TestUpdatePassword_LostConsumeRace_ReadsAsInvalid(t *testing.T) {
	us := &mockUserStore{}
	ts := &mockTokenStore{}

	ts.On("Get", mock.Anything, "tok1").Return(&domain.VerificationToken{
		Token:      "tok1",
		Identifier: "a@b.com",
		Purpose:    domain.TokenPurposeReset,
		ExpiresAt:  time.Now().Add(30 * time.Minute).Unix(),
	}, nil)
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.User{UserID: "u1", Email: "a@b.com"}, nil)
	ts.On("ConsumeWithPasswordUpdate", mock.Anything, "u1", mock.Anything, "tok1").
		Return(fmt.Errorf("token already consumed: %w", domain.ErrInvalidToken))

	svc := newService(us, ts, nil)
	err := svc.UpdatePassword(context.Background(), UpdatePasswordRequest{
		Email: "a@b.com", Password: "NewPass1", Token: "tok1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
}

// --- VerifyEmail ---

func TestVerifyEmail_HappyPath(t *testing.T) {
	us := &mockUserStore{}
	ts := &mockTokenStore{}

	ts.On("Get", mock.Anything, "tok1").Return(&domain.VerificationToken{
		Token:      "tok1",
		Identifier: "a@b.com",
		Purpose:    domain.TokenPurposeVerify,
		ExpiresAt:  time.Now().Add(time.Hour).Unix(),
	}, nil)
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.User{UserID: "u1", Email: "a@b.com"}, nil)
	ts.On("Consume", mock.Anything, "tok1").Return(nil)
	us.On("Update", mock.Anything, "u1", mock.MatchedBy(func(m map[string]interface{}) bool {
		_, ok := m["email_verified"]
		return ok
	})).Return(nil)

	svc := newService(us, ts, nil)
	err := svc.VerifyEmail(context.Background(), VerifyEmailRequest{Token: "tok1"})

	require.NoError(t, err)
	us.AssertExpectations(t)
	ts.AssertExpectations(t)
}

func TestVerifyEmail_ResetTokenRejected(t *testing.T) {
	ts := &mockTokenStore{}
	ts.On("Get", mock.Anything, "tok1").Return(&domain.VerificationToken{
		Token:      "tok1",
		Identifier: "a@b.com",
		Purpose:    domain.TokenPurposeReset,
		ExpiresAt:  time.Now().Add(time.Hour).Unix(),
	}, nil)

	svc := newService(nil, ts, nil)
	err := svc.VerifyEmail(context.Background(), VerifyEmailRequest{Token: "tok1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
}

func TestVerifyEmail_ExpiredWrongPurposeToken_ReadsAsExpired(t *testing.T) {
	ts := &mockTokenStore{}
	ts.On("Get", mock.Anything, "tok1").Return(&domain.VerificationToken{
		Token:      "tok1",
		Identifier: "a@b.com",
		Purpose:    domain.TokenPurposeReset,
		ExpiresAt:  time.Now().Add(-time.Hour).Unix(),
	}, nil)

	svc := newService(nil, ts, nil)
	err := svc.VerifyEmail(context.Background(), VerifyEmailRequest{Token: "tok1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExpiredToken))
}

func TestVerifyEmail_UserLookupFailure_NotReportedAsNotFound(t *testing.T) {
	us := &mockUserStore{}
	ts := &mockTokenStore{}
	ts.On("Get", mock.Anything, "tok1").Return(&domain.VerificationToken{
		Token:      "tok1",
		Identifier: "a@b.com",
		Purpose:    domain.TokenPurposeVerify,
		ExpiresAt:  time.Now().Add(time.Hour).Unix(),
	}, nil)
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(nil, fmt.Errorf("dynamo unavailable"))

	svc := newService(us, ts, nil)
	err := svc.VerifyEmail(context.Background(), VerifyEmailRequest{Token: "tok1"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	ts.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything)
}

// --- full lifecycle over in-memory stores ---

type memUserStore struct {
	byEmail map[string]*domain.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byEmail: map[string]*domain.User{}}
}

func (m *memUserStore) Put(ctx context.Context, u *domain.User) error {
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
}

func (m *memUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	for _, u := range m.byEmail {
		if u.UserID == userID {
			if hash, ok := updates["password_hash"].(string); ok {
				u.PasswordHash = &hash
			}
			return nil
		}
	}
	return fmt.Errorf("user not found: %w", domain.ErrNotFound)
}

type memTokenStore struct {
	byToken map[string]*domain.VerificationToken
	users   *memUserStore
}

func newMemTokenStore(users *memUserStore) *memTokenStore {
	return &memTokenStore{byToken: map[string]*domain.VerificationToken{}, users: users}
}

func (m *memTokenStore) Put(ctx context.Context, v *domain.VerificationToken) error {
	m.byToken[v.Token] = v
	return nil
}

func (m *memTokenStore) Get(ctx context.Context, token string) (*domain.VerificationToken, error) {
	if v, ok := m.byToken[token]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("token not found: %w", domain.ErrNotFound)
}

func (m *memTokenStore) Consume(ctx context.Context, token string) error {
	if _, ok := m.byToken[token]; !ok {
		return fmt.Errorf("token already consumed: %w", domain.ErrInvalidToken)
	}
	delete(m.byToken, token)
	return nil
}

func (m *memTokenStore) ConsumeWithPasswordUpdate(ctx context.Context, userID, passwordHash, token string) error {
	if _, ok := m.byToken[token]; !ok {
		return fmt.Errorf("token already consumed: %w", domain.ErrInvalidToken)
	}
	if err := m.users.Update(ctx, userID, map[string]interface{}{"password_hash": passwordHash}); err != nil {
		return err
	}
	delete(m.byToken, token)
	return nil
}

type recordingMailer struct{ sent int }

func (m *recordingMailer) SendEmail(to, subject, body string) error {
	m.sent++
	return nil
}

func TestPasswordResetLifecycle(t *testing.T) {
	users := newMemUserStore()
	tokens := newMemTokenStore(users)
	mailer := &recordingMailer{}
	svc := NewService(ServiceDeps{
		UserRepo:  users,
		TokenRepo: tokens,
		Mailer:    mailer,
		BaseURL:   "http://localhost:3000",
	})
	ctx := context.Background()

	// register
	u, err := svc.Register(ctx, domain.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "Passw0rd",
	})
	require.NoError(t, err)
	assert.Nil(t, u.EmailVerified)
	require.NotNil(t, u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte("Passw0rd")))

	// duplicate registration conflicts even with a different password
	_, err = svc.Register(ctx, domain.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "Other123",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	// request a reset, pick the reset token out of the store
	require.NoError(t, svc.RequestPasswordReset(ctx, ResetPasswordRequest{Email: "alice@example.com"}))
	var resetToken string
	for tok, v := range tokens.byToken {
		if v.Purpose == domain.TokenPurposeReset {
			resetToken = tok
		}
	}
	require.NotEmpty(t, resetToken)

	// pre-flight validation leaves the token alive
	require.NoError(t, svc.ValidateResetToken(ctx, ValidateResetTokenRequest{
		Token: resetToken, Email: "alice@example.com",
	}))
	_, ok := tokens.byToken[resetToken]
	assert.True(t, ok)

	// consume it
	require.NoError(t, svc.UpdatePassword(ctx, UpdatePasswordRequest{
		Email: "alice@example.com", Password: "NewPass1", Token: resetToken,
	}))
	_, ok = tokens.byToken[resetToken]
	assert.False(t, ok)

	cur, err := users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*cur.PasswordHash), []byte("NewPass1")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(*cur.PasswordHash), []byte("Passw0rd")))

	// replaying the consumed token fails
	err = svc.UpdatePassword(ctx, UpdatePasswordRequest{
		Email: "alice@example.com", Password: "Another1", Token: resetToken,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
}
