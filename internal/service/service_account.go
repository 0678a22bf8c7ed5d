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

// accountService covers account self-management: password changes for a
// signed-in user, the two-step email-change flow, and the password-reset flow
// for users locked out of their account.
type accountService struct {
	userRepository store.UserRepository
	mailer         Mailer
	logger         *logger.Logger

	// now returns the current time; replaced in tests to simulate code expiry.
	now func() time.Time
}

func NewAccountService(userRepository store.UserRepository, mailer Mailer, logger *logger.Logger) AccountService {
	return &accountService{
		userRepository: userRepository,
		mailer:         mailer,
		logger:         logger,
		now:            time.Now,
	}
}

// ChangePassword replaces the password of a signed-in user after verifying
// the current one.
//
// Returns ErrWrongPassword if currentPassword does not match,
// ErrPasswordTooShort for a short replacement, and ErrSamePassword when the
// replacement equals the current password.
func (s *accountService) ChangePassword(ctx context.Context, session models.Token, currentPassword, newPassword string) error {
	log := logger.FromContext(ctx)

	if currentPassword == "" {
		return ErrInvalidDataProvided
	}
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if newPassword == currentPassword {
		return ErrSamePassword
	}

	user, err := s.userRepository.FindUserByID(ctx, session.UserID)
	if err != nil {
		log.Err(err).Str("userID", session.UserID.String()).Msg("user search by ID failed")
		return fmt.Errorf("user search by ID failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	hashString := string(hash)
	update := models.UserUpdate{
		UserID:       user.UserID,
		PasswordHash: &hashString,
	}
	if _, err := s.userRepository.UpdateUser(ctx, update); err != nil {
		log.Err(err).Str("userID", user.UserID.String()).Msg("failed to update password")
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// RequestEmailChange starts moving the account to a new address by emailing a
// verification code to that address. The account keeps its current email until
// ConfirmEmailChange succeeds.
//
// Returns ErrSameEmail when the new address equals the current one and
// ErrEmailTaken when another account already uses it.
func (s *accountService) RequestEmailChange(ctx context.Context, session models.Token, newEmail string) error {
	log := logger.FromContext(ctx)

	email := normalizeEmail(newEmail)
	if email == "" {
		return ErrInvalidDataProvided
	}

	user, err := s.userRepository.FindUserByID(ctx, session.UserID)
	if err != nil {
		log.Err(err).Str("userID", session.UserID.String()).Msg("user search by ID failed")
		return fmt.Errorf("user search by ID failed: %w", err)
	}

	if email == user.Email {
		return ErrSameEmail
	}

	if _, err := s.userRepository.FindUserByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, store.ErrNoUserWasFound) {
		log.Err(err).Msg("user search by email failed")
		return fmt.Errorf("user search by email failed: %w", err)
	}

	code, err := utils.GenerateOneTimeCode()
	if err != nil {
		return fmt.Errorf("one-time code generation failed: %w", err)
	}

	update := models.UserUpdate{
		UserID:                  user.UserID,
		EmailVerificationCode:   models.OptionalOf(code),
		EmailVerificationExpiry: models.OptionalOf(s.now().Add(accountCodeTTL)),
	}
	if _, err := s.userRepository.UpdateUser(ctx, update); err != nil {
		log.Err(err).Str("userID", user.UserID.String()).Msg("failed to store email verification code")
		return fmt.Errorf("failed to store email verification code: %w", err)
	}

	// The code goes to the address being claimed, not the current one.
	if err := s.mailer.SendEmailVerificationCode(ctx, email, user.Name, code); err != nil {
		log.Err(err).Str("email", email).Msg("email verification code delivery failed")
		return ErrEmailDeliveryFailed
	}

	return nil
}

// ConfirmEmailChange finishes the email-change flow: the code proves the user
// controls the new mailbox, after which the account email is swapped and the
// code consumed in a single write.
//
// The new address is re-checked for collisions because another account may
// have claimed it while the code was in flight.
func (s *accountService) ConfirmEmailChange(ctx context.Context, session models.Token, newEmail, code string) (models.User, error) {
	log := logger.FromContext(ctx)

	email := normalizeEmail(newEmail)
	if email == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := s.userRepository.FindUserByID(ctx, session.UserID)
	if err != nil {
		log.Err(err).Str("userID", session.UserID.String()).Msg("user search by ID failed")
		return models.User{}, fmt.Errorf("user search by ID failed: %w", err)
	}

	if err := verifyOneTimeCode(user.EmailVerificationCode, user.EmailVerificationExpiry, code, s.now()); err != nil {
		if errors.Is(err, ErrCodeExpired) {
			s.clearEmailVerificationCode(ctx, user.UserID)
		}
		return models.User{}, err
	}

	update := models.UserUpdate{
		UserID:                  user.UserID,
		Email:                   &email,
		EmailVerificationCode:   models.OptionalNull[string](),
		EmailVerificationExpiry: models.OptionalNull[time.Time](),
	}
	updatedUser, err := s.userRepository.UpdateUser(ctx, update)
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return models.User{}, ErrEmailTaken
		}
		log.Err(err).Str("userID", user.UserID.String()).Msg("failed to update email")
		return models.User{}, fmt.Errorf("failed to update email: %w", err)
	}

	return updatedUser, nil
}

// ForgotPassword emails a password-reset code to the given address, if an
// account exists there. Unknown addresses complete without error so responses
// do not reveal which emails have accounts.
func (s *accountService) ForgotPassword(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return nil
		}
		log.Err(err).Msg("user search by email failed")
		return fmt.Errorf("user search by email failed: %w", err)
	}

	code, err := utils.GenerateOneTimeCode()
	if err != nil {
		return fmt.Errorf("one-time code generation failed: %w", err)
	}

	update := models.UserUpdate{
		UserID:              user.UserID,
		PasswordResetCode:   models.OptionalOf(code),
		PasswordResetExpiry: models.OptionalOf(s.now().Add(accountCodeTTL)),
	}
	if _, err := s.userRepository.UpdateUser(ctx, update); err != nil {
		log.Err(err).Str("userID", user.UserID.String()).Msg("failed to store password reset code")
		return fmt.Errorf("failed to store password reset code: %w", err)
	}

	if err := s.mailer.SendPasswordResetCode(ctx, user.Email, user.Name, code); err != nil {
		log.Err(err).Str("email", user.Email).Msg("password reset code delivery failed")
		return ErrEmailDeliveryFailed
	}

	return nil
}

// ResetPassword swaps the account password for users who verified a reset
// code. The new hash is written and the code consumed in a single update.
func (s *accountService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	log := logger.FromContext(ctx)

	email := normalizeEmail(req.Email)
	if email == "" {
		return ErrInvalidDataProvided
	}
	if len(req.NewPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := s.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			// Same answer as a wrong code: no hint whether the account exists.
			return ErrCodeMismatch
		}
		log.Err(err).Msg("user search by email failed")
		return fmt.Errorf("user search by email failed: %w", err)
	}

	if err := verifyOneTimeCode(user.PasswordResetCode, user.PasswordResetExpiry, req.Code, s.now()); err != nil {
		if errors.Is(err, ErrCodeExpired) {
			s.clearPasswordResetCode(ctx, user.UserID)
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	hashString := string(hash)
	update := models.UserUpdate{
		UserID:              user.UserID,
		PasswordHash:        &hashString,
		PasswordResetCode:   models.OptionalNull[string](),
		PasswordResetExpiry: models.OptionalNull[time.Time](),
	}
	if _, err := s.userRepository.UpdateUser(ctx, update); err != nil {
		log.Err(err).Str("userID", user.UserID.String()).Msg("failed to reset password")
		return fmt.Errorf("failed to reset password: %w", err)
	}

	return nil
}

func (s *accountService) clearEmailVerificationCode(ctx context.Context, userID uuid.UUID) {
	log := logger.FromContext(ctx)

	update := models.UserUpdate{
		UserID:                  userID,
		EmailVerificationCode:   models.OptionalNull[string](),
		EmailVerificationExpiry: models.OptionalNull[time.Time](),
	}
	if _, err := s.userRepository.UpdateUser(ctx, update); err != nil {
		log.Err(err).Str("userID", userID.String()).Msg("failed to clear email verification code")
	}
}

func (s *accountService) clearPasswordResetCode(ctx context.Context, userID uuid.UUID) {
	log := logger.FromContext(ctx)

	update := models.UserUpdate{
		UserID:              userID,
		PasswordResetCode:   models.OptionalNull[string](),
		PasswordResetExpiry: models.OptionalNull[time.Time](),
	}
	if _, err := s.userRepository.UpdateUser(ctx, update); err != nil {
		log.Err(err).Str("userID", userID.String()).Msg("failed to clear password reset code")
	}
}
