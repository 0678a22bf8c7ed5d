// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/invest-keeper/internal/logger"
	"github.com/MKhiriev/invest-keeper/internal/store"
	"github.com/MKhiriev/invest-keeper/models"
)

func newTestAuthService(users *mockUserRepository, twoFactor TwoFactorService) *authService {
	if twoFactor == nil {
		twoFactor = &mockTwoFactorService{}
	}
	return &authService{
		userRepository: users,
		twoFactor:      twoFactor,
		tokenSignKey:   "test-sign-key",
		tokenIssuer:    "invest-keeper",
		tokenDuration:  time.Hour,
		logger:         logger.Nop(),
		now:            time.Now,
	}
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

// ─────────────────────────────────────────────
// Signup
// ─────────────────────────────────────────────

func TestAuthService_Signup_Success(t *testing.T) {
	var created models.User
	users := &mockUserRepository{
		createUserFn: func(_ context.Context, user models.User) (models.User, error) {
			created = user
			user.UserID = uuid.New()
			return user, nil
		},
	}
	svc := newTestAuthService(users, nil)

	registered, err := svc.Signup(context.Background(), models.SignupRequest{
		Email:    "  User@Example.COM ",
		Password: "secret123",
		Name:     " Jane ",
	})

	require.NoError(t, err)
	assert.Equal(t, "user@example.com", created.Email)
	assert.Equal(t, "Jane", created.Name)
	assert.Equal(t, models.RoleUser, created.Role)
	assert.True(t, created.TwoFactorEnabled)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret123")))
	assert.NotEqual(t, uuid.Nil, registered.UserID)
}

func TestAuthService_Signup_ShortPassword(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, nil)

	_, err := svc.Signup(context.Background(), models.SignupRequest{
		Email:    "user@example.com",
		Password: "12345",
		Name:     "Jane",
	})

	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthService_Signup_MissingFields(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, nil)

	_, err := svc.Signup(context.Background(), models.SignupRequest{Password: "secret123", Name: "Jane"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Signup(context.Background(), models.SignupRequest{Email: "user@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	users := &mockUserRepository{
		createUserFn: func(_ context.Context, _ models.User) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	}
	svc := newTestAuthService(users, nil)

	_, err := svc.Signup(context.Background(), models.SignupRequest{
		Email:    "user@example.com",
		Password: "secret123",
		Name:     "Jane",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

// ─────────────────────────────────────────────
// Signin
// ─────────────────────────────────────────────

func TestAuthService_Signin_NoTwoFactor(t *testing.T) {
	users := &mockUserRepository{
		findUserByEmailFn: func(_ context.Context, email string) (models.User, error) {
			assert.Equal(t, "user@example.com", email)
			return models.User{
				UserID:       uuid.New(),
				Email:        email,
				PasswordHash: hashFor(t, "secret123"),
			}, nil
		},
	}
	svc := newTestAuthService(users, nil)

	user, requires2FA, err := svc.Signin(context.Background(), models.SigninRequest{
		Email:    "User@Example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.False(t, requires2FA)
	assert.Equal(t, "user@example.com", user.Email)
}

func TestAuthService_Signin_UnknownEmailLooksLikeWrongPassword(t *testing.T) {
	users := &mockUserRepository{
		findUserByEmailFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}
	svc := newTestAuthService(users, nil)

	_, _, err := svc.Signin(context.Background(), models.SigninRequest{
		Email:    "ghost@example.com",
		Password: "whatever1",
	})

	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_Signin_WrongPassword(t *testing.T) {
	users := &mockUserRepository{
		findUserByEmailFn: func(_ context.Context, email string) (models.User, error) {
			return models.User{Email: email, PasswordHash: hashFor(t, "secret123")}, nil
		},
	}
	svc := newTestAuthService(users, nil)

	_, _, err := svc.Signin(context.Background(), models.SigninRequest{
		Email:    "user@example.com",
		Password: "not-the-password",
	})

	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_Signin_TwoFactorChallengeSendsCode(t *testing.T) {
	sentTo := ""
	twoFactor := &mockTwoFactorService{
		sendLoginCodeFn: func(_ context.Context, email string) error {
			sentTo = email
			return nil
		},
	}
	users := &mockUserRepository{
		findUserByEmailFn: func(_ context.Context, email string) (models.User, error) {
			return models.User{
				UserID:           uuid.New(),
				Email:            email,
				PasswordHash:     hashFor(t, "secret123"),
				TwoFactorEnabled: true,
			}, nil
		},
	}
	svc := newTestAuthService(users, twoFactor)

	_, requires2FA, err := svc.Signin(context.Background(), models.SigninRequest{
		Email:    "user@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.True(t, requires2FA)
	assert.Equal(t, "user@example.com", sentTo)
}

func TestAuthService_Signin_TwoFactorCodeVerifies(t *testing.T) {
	userID := uuid.New()
	expiry := time.Now().Add(5 * time.Minute)
	var clearedUpdate models.UserUpdate
	users := &mockUserRepository{
		findUserByEmailFn: func(_ context.Context, email string) (models.User, error) {
			return models.User{
				UserID:              userID,
				Email:               email,
				PasswordHash:        hashFor(t, "secret123"),
				TwoFactorEnabled:    true,
				TwoFactorCode:       strPtr("123456"),
				TwoFactorCodeExpiry: timePtr(expiry),
			}, nil
		},
		updateUserFn: func(_ context.Context, update models.UserUpdate) (models.User, error) {
			clearedUpdate = update
			return models.User{}, nil
		},
	}
	svc := newTestAuthService(users, nil)

	user, requires2FA, err := svc.Signin(context.Background(), models.SigninRequest{
		Email:    "user@example.com",
		Password: "secret123",
		Code:     " 123456 ",
	})

	require.NoError(t, err)
	assert.False(t, requires2FA)
	assert.Equal(t, userID, user.UserID)

	// On success the code is consumed.
	assert.Equal(t, userID, clearedUpdate.UserID)
	assert.True(t, clearedUpdate.TwoFactorCode.Set)
	assert.Nil(t, clearedUpdate.TwoFactorCode.Value)
}

func TestAuthService_Signin_TwoFactorCodeMismatchKeepsCode(t *testing.T) {
	updates := 0
	users := &mockUserRepository{
		findUserByEmailFn: func(_ context.Context, email string) (models.User, error) {
			return models.User{
				UserID:              uuid.New(),
				Email:               email,
				PasswordHash:        hashFor(t, "secret123"),
				TwoFactorEnabled:    true,
				TwoFactorCode:       strPtr("123456"),
				TwoFactorCodeExpiry: timePtr(time.Now().Add(5 * time.Minute)),
			}, nil
		},
		updateUserFn: func(_ context.Context, _ models.UserUpdate) (models.User, error) {
			updates++
			return models.User{}, nil
		},
	}
	svc := newTestAuthService(users, nil)

	_, _, err := svc.Signin(context.Background(), models.SigninRequest{
		Email:    "user@example.com",
		Password: "secret123",
		Code:     "999999",
	})

	assert.ErrorIs(t, err, ErrCodeMismatch)
	assert.Zero(t, updates)
}

func TestAuthService_Signin_TwoFactorExpiredCodeClearedThenNoCode(t *testing.T) {
	code := strPtr("123456")
	expiry := timePtr(time.Now().Add(-time.Minute))
	users := &mockUserRepository{}
	users.findUserByEmailFn = func(_ context.Context, email string) (models.User, error) {
		return models.User{
			UserID:              uuid.New(),
			Email:               email,
			PasswordHash:        hashFor(t, "secret123"),
			TwoFactorEnabled:    true,
			TwoFactorCode:       code,
			TwoFactorCodeExpiry: expiry,
		}, nil
	}
	users.updateUserFn = func(_ context.Context, update models.UserUpdate) (models.User, error) {
		if update.TwoFactorCode.Set && update.TwoFactorCode.Value == nil {
			code, expiry = nil, nil
		}
		return models.User{}, nil
	}
	svc := newTestAuthService(users, nil)

	req := models.SigninRequest{Email: "user@example.com", Password: "secret123", Code: "123456"}

	_, _, err := svc.Signin(context.Background(), req)
	assert.ErrorIs(t, err, ErrCodeExpired)

	// The expired code was cleared, so the retry reports no pending code.
	_, _, err = svc.Signin(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoCodePending)
}

// ─────────────────────────────────────────────
// Tokens
// ─────────────────────────────────────────────

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, nil)
	user := models.User{UserID: uuid.New(), Email: "user@example.com", Role: models.RoleUser}

	token, err := svc.CreateToken(context.Background(), user)
	require.NoError(t, err)

	parsed, err := svc.ParseToken(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, parsed.UserID)
	assert.Equal(t, user.Email, parsed.Email)
}

func TestAuthService_ParseToken_Invalid(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, nil)

	_, err := svc.ParseToken(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_CurrentUser(t *testing.T) {
	userID := uuid.New()
	users := &mockUserRepository{
		findUserByIDFn: func(_ context.Context, id uuid.UUID) (models.User, error) {
			assert.Equal(t, userID, id)
			return models.User{UserID: id, Email: "user@example.com"}, nil
		},
	}
	svc := newTestAuthService(users, nil)

	user, err := svc.CurrentUser(context.Background(), models.Token{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)
}
