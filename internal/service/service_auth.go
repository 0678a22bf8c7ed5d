package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/invest-keeper/internal/config"
	"github.com/MKhiriev/invest-keeper/internal/logger"
	"github.com/MKhiriev/invest-keeper/internal/store"
	"github.com/MKhiriev/invest-keeper/internal/utils"
	"github.com/MKhiriev/invest-keeper/models"
)

const (
	minPasswordLength = 6
	bcryptCost        = 10
)

// authService is the concrete implementation of AuthService.
// It handles account registration, credential verification, the two-factor
// sign-in flow, and the JWT session token lifecycle, using a UserRepository
// for persistence and bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// twoFactor delivers sign-in codes when an account has two-factor
	// authentication enabled.
	twoFactor TwoFactorService

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger

	// now returns the current time; replaced in tests to simulate code expiry.
	now func() time.Time
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, twoFactor TwoFactorService, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		twoFactor:      twoFactor,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
		now:            time.Now,
	}
}

// Signup creates a new account.
//
// The email is lower-cased and trimmed before storage, the password is hashed
// with bcrypt, and two-factor authentication starts enabled.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if name or email is empty.
//   - ErrPasswordTooShort if the password has fewer than 6 characters.
//   - ErrEmailTaken if the email is already registered.
func (a *authService) Signup(ctx context.Context, req models.SignupRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" {
		log.Error().Msg("invalid signup data provided")
		return models.User{}, ErrInvalidDataProvided
	}
	if len(req.Password) < minPasswordLength {
		return models.User{}, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	role := models.RoleUser
	if req.Role == models.RoleAdmin {
		role = models.RoleAdmin
	}

	user := models.User{
		Email:            email,
		Name:             name,
		Role:             role,
		PasswordHash:     string(hash),
		TwoFactorEnabled: true,
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return models.User{}, ErrEmailTaken
		}
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Signin authenticates an existing user.
//
// The returned bool reports whether the account still needs a two-factor code:
// when true, a sign-in code has been emailed and the caller must repeat the
// request with Code filled in. Once the code verifies, the stored code is
// consumed and a regular session can be issued.
//
// Returns ErrWrongPassword for an unknown email or a bad password so that the
// two cases are indistinguishable, or one of the code errors (ErrNoCodePending,
// ErrCodeExpired, ErrCodeMismatch) during the second step. An expired code is
// cleared so the next attempt starts the flow over.
func (a *authService) Signin(ctx context.Context, req models.SigninRequest) (models.User, bool, error) {
	log := logger.FromContext(ctx)

	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		log.Error().Msg("invalid signin data provided")
		return models.User{}, false, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, false, ErrWrongPassword
		}
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, false, fmt.Errorf("user search by email failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(req.Password)); err != nil {
		return models.User{}, false, ErrWrongPassword
	}

	if !foundUser.TwoFactorEnabled {
		return foundUser, false, nil
	}

	if strings.TrimSpace(req.Code) == "" {
		if err := a.twoFactor.SendLoginCode(ctx, foundUser.Email); err != nil {
			return models.User{}, false, err
		}
		return foundUser, true, nil
	}

	if err := verifyOneTimeCode(foundUser.TwoFactorCode, foundUser.TwoFactorCodeExpiry, req.Code, a.now()); err != nil {
		if errors.Is(err, ErrCodeExpired) {
			a.clearTwoFactorCode(ctx, foundUser.UserID)
		}
		return models.User{}, false, err
	}

	a.clearTwoFactorCode(ctx, foundUser.UserID)

	return foundUser, false, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateSessionToken(a.tokenIssuer, user, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseSessionToken, verifying the signature
// and the issuer claim. Any validation failure (expired, wrong issuer,
// malformed) is normalised to ErrTokenIsExpiredOrInvalid so that callers do
// not need to inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseSessionToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// CurrentUser loads the account behind an authenticated session.
func (a *authService) CurrentUser(ctx context.Context, session models.Token) (models.User, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.FindUserByID(ctx, session.UserID)
	if err != nil {
		log.Err(err).Str("userID", session.UserID.String()).Msg("user search by ID failed")
		return models.User{}, fmt.Errorf("user search by ID failed: %w", err)
	}

	return foundUser, nil
}

// clearTwoFactorCode drops any stored sign-in code. A failure here is logged
// and swallowed: the code has already served (or outlived) its purpose and the
// cleanup worker will collect it eventually.
func (a *authService) clearTwoFactorCode(ctx context.Context, userID uuid.UUID) {
	log := logger.FromContext(ctx)

	update := models.UserUpdate{
		UserID:              userID,
		TwoFactorCode:       models.OptionalNull[string](),
		TwoFactorCodeExpiry: models.OptionalNull[time.Time](),
	}
	if _, err := a.userRepository.UpdateUser(ctx, update); err != nil {
		log.Err(err).Str("userID", userID.String()).Msg("failed to clear two-factor code")
	}
}

// normalizeEmail canonicalises an address for storage and lookup.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
