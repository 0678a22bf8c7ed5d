package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/invest-keeper/internal/logger"
	"github.com/MKhiriev/invest-keeper/internal/store"
	"github.com/MKhiriev/invest-keeper/internal/utils"
	"github.com/MKhiriev/invest-keeper/models"
)

// twoFactorService manages the two-factor authentication lifecycle: turning
// it on (which requires proving access to the mailbox), turning it off (which
// requires the account password), and issuing sign-in codes.
type twoFactorService struct {
	userRepository store.UserRepository
	mailer         Mailer
	logger         *logger.Logger

	// now returns the current time; replaced in tests to simulate code expiry.
	now func() time.Time
}

func NewTwoFactorService(userRepository store.UserRepository, mailer Mailer, logger *logger.Logger) TwoFactorService {
	return &twoFactorService{
		userRepository: userRepository,
		mailer:         mailer,
		logger:         logger,
		now:            time.Now,
	}
}

// SendEnableCode emails a one-time code to the account's own address as the
// first step of enabling two-factor authentication. Issuing a new code
// replaces any previous one.
func (t *twoFactorService) SendEnableCode(ctx context.Context, session models.Token) error {
	log := logger.FromContext(ctx)

	user, err := t.userRepository.FindUserByID(ctx, session.UserID)
	if err != nil {
		log.Err(err).Str("userID", session.UserID.String()).Msg("user search by ID failed")
		return fmt.Errorf("user search by ID failed: %w", err)
	}

	code, err := utils.GenerateOneTimeCode()
	if err != nil {
		return fmt.Errorf("one-time code generation failed: %w", err)
	}

	update := models.UserUpdate{
		UserID:              user.UserID,
		TwoFactorCode:       models.OptionalOf(code),
		TwoFactorCodeExpiry: models.OptionalOf(t.now().Add(twoFactorCodeTTL)),
	}
	if _, err := t.userRepository.UpdateUser(ctx, update); err != nil {
		log.Err(err).Str("userID", user.UserID.String()).Msg("failed to store two-factor code")
		return fmt.Errorf("failed to store two-factor code: %w", err)
	}

	if err := t.mailer.SendTwoFactorCode(ctx, user.Email, user.Name, code); err != nil {
		log.Err(err).Str("email", user.Email).Msg("two-factor code email delivery failed")
		return ErrEmailDeliveryFailed
	}

	return nil
}

// VerifyEnableCode checks the emailed code and, on success, switches
// two-factor authentication on and consumes the code.
func (t *twoFactorService) VerifyEnableCode(ctx context.Context, session models.Token, code string) error {
	log := logger.FromContext(ctx)

	user, err := t.userRepository.FindUserByID(ctx, session.UserID)
	if err != nil {
		log.Err(err).Str("userID", session.UserID.String()).Msg("user search by ID failed")
		return fmt.Errorf("user search by ID failed: %w", err)
	}

	if err := verifyOneTimeCode(user.TwoFactorCode, user.TwoFactorCodeExpiry, code, t.now()); err != nil {
		if errors.Is(err, ErrCodeExpired) {
			t.clearCode(ctx, user.UserID)
		}
		return err
	}

	enabled := true
	update := models.UserUpdate{
		UserID:              user.UserID,
		TwoFactorEnabled:    &enabled,
		TwoFactorCode:       models.OptionalNull[string](),
		TwoFactorCodeExpiry: models.OptionalNull[time.Time](),
	}
	if _, err := t.userRepository.UpdateUser(ctx, update); err != nil {
		log.Err(err).Str("userID", user.UserID.String()).Msg("failed to enable two-factor authentication")
		return fmt.Errorf("failed to enable two-factor authentication: %w", err)
	}

	return nil
}

// Disable turns two-factor authentication off. The account password is
// required so a stolen session cookie alone cannot weaken the account.
func (t *twoFactorService) Disable(ctx context.Context, session models.Token, password string) error {
	log := logger.FromContext(ctx)

	if password == "" {
		return ErrInvalidDataProvided
	}

	user, err := t.userRepository.FindUserByID(ctx, session.UserID)
	if err != nil {
		log.Err(err).Str("userID", session.UserID.String()).Msg("user search by ID failed")
		return fmt.Errorf("user search by ID failed: %w", err)
	}

	if !user.TwoFactorEnabled {
		return ErrTwoFactorNotEnabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return ErrWrongPassword
	}

	enabled := false
	update := models.UserUpdate{
		UserID:              user.UserID,
		TwoFactorEnabled:    &enabled,
		TwoFactorCode:       models.OptionalNull[string](),
		TwoFactorCodeExpiry: models.OptionalNull[time.Time](),
	}
	if _, err := t.userRepository.UpdateUser(ctx, update); err != nil {
		log.Err(err).Str("userID", user.UserID.String()).Msg("failed to disable two-factor authentication")
		return fmt.Errorf("failed to disable two-factor authentication: %w", err)
	}

	return nil
}

// SendLoginCode emails a sign-in code to the given address.
//
// Unknown addresses and accounts without two-factor authentication complete
// without error so responses do not reveal which emails have accounts.
func (t *twoFactorService) SendLoginCode(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	user, err := t.userRepository.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return nil
		}
		log.Err(err).Msg("user search by email failed")
		return fmt.Errorf("user search by email failed: %w", err)
	}

	if !user.TwoFactorEnabled {
		return nil
	}

	code, err := utils.GenerateOneTimeCode()
	if err != nil {
		return fmt.Errorf("one-time code generation failed: %w", err)
	}

	update := models.UserUpdate{
		UserID:              user.UserID,
		TwoFactorCode:       models.OptionalOf(code),
		TwoFactorCodeExpiry: models.OptionalOf(t.now().Add(twoFactorCodeTTL)),
	}
	if _, err := t.userRepository.UpdateUser(ctx, update); err != nil {
		log.Err(err).Str("userID", user.UserID.String()).Msg("failed to store two-factor code")
		return fmt.Errorf("failed to store two-factor code: %w", err)
	}

	if err := t.mailer.SendTwoFactorCode(ctx, user.Email, user.Name, code); err != nil {
		log.Err(err).Str("email", user.Email).Msg("two-factor code email delivery failed")
		return ErrEmailDeliveryFailed
	}

	return nil
}

// clearCode drops the pending sign-in code. Failures are logged and
// swallowed; the cleanup worker collects leftover codes.
func (t *twoFactorService) clearCode(ctx context.Context, userID uuid.UUID) {
	log := logger.FromContext(ctx)

	update := models.UserUpdate{
		UserID:              userID,
		TwoFactorCode:       models.OptionalNull[string](),
		TwoFactorCodeExpiry: models.OptionalNull[time.Time](),
	}
	if _, err := t.userRepository.UpdateUser(ctx, update); err != nil {
		log.Err(err).Str("userID", userID.String()).Msg("failed to clear two-factor code")
	}
}
