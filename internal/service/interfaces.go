package service

import (
	"context"

	"github.com/MKhiriev/invest-keeper/models"
)

type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest) (models.User, error)
	Signin(ctx context.Context, req models.SigninRequest) (models.User, bool, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	CurrentUser(ctx context.Context, session models.Token) (models.User, error)
}

type TwoFactorService interface {
	SendEnableCode(ctx context.Context, session models.Token) error
	VerifyEnableCode(ctx context.Context, session models.Token, code string) error
	Disable(ctx context.Context, session models.Token, password string) error

	// SendLoginCode emails a sign-in code to the account behind email, if such
	// an account exists and has two-factor authentication enabled. It reports
	// success for unknown addresses so that callers cannot probe for accounts.
	SendLoginCode(ctx context.Context, email string) error
}

type AccountService interface {
	ChangePassword(ctx context.Context, session models.Token, currentPassword, newPassword string) error

	RequestEmailChange(ctx context.Context, session models.Token, newEmail string) error
	ConfirmEmailChange(ctx context.Context, session models.Token, newEmail, code string) (models.User, error)

	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error
}

type CategoryService interface {
	List(ctx context.Context, session models.Token) ([]models.Category, error)
	Create(ctx context.Context, session models.Token, req models.CreateCategoryRequest) (models.Category, error)
	Get(ctx context.Context, session models.Token, slug string) (models.Category, error)
	Update(ctx context.Context, session models.Token, slug string, req models.UpdateCategoryRequest) (models.Category, error)
	Delete(ctx context.Context, session models.Token, slug string) (models.Category, error)

	AddEntry(ctx context.Context, session models.Token, slug string, req models.AddEntryRequest) (models.Category, error)
	UpdateEntry(ctx context.Context, session models.Token, slug string, req models.UpdateEntryRequest) (models.Category, error)
	DeleteEntry(ctx context.Context, session models.Token, slug string, req models.DeleteEntryRequest) (models.Category, error)

	ExportCSV(ctx context.Context, session models.Token) ([]byte, error)
}

// Mailer delivers transactional mail. Implementations must be safe for
// concurrent use.
type Mailer interface {
	SendTwoFactorCode(ctx context.Context, to, name, code string) error
	SendEmailVerificationCode(ctx context.Context, to, name, code string) error
	SendPasswordResetCode(ctx context.Context, to, name, code string) error
}
