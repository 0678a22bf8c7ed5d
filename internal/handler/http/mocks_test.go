// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/invest-keeper/internal/config"
	"github.com/MKhiriev/invest-keeper/internal/logger"
	"github.com/MKhiriev/invest-keeper/internal/service"
	"github.com/MKhiriev/invest-keeper/models"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	signupFn      func(ctx context.Context, req models.SignupRequest) (models.User, error)
	signinFn      func(ctx context.Context, req models.SigninRequest) (models.User, bool, error)
	createTokenFn func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn  func(ctx context.Context, tokenString string) (models.Token, error)
	currentUserFn func(ctx context.Context, session models.Token) (models.User, error)
}

func (m *mockAuthService) Signup(ctx context.Context, req models.SignupRequest) (models.User, error) {
	return m.signupFn(ctx, req)
}

func (m *mockAuthService) Signin(ctx context.Context, req models.SigninRequest) (models.User, bool, error) {
	return m.signinFn(ctx, req)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

func (m *mockAuthService) CurrentUser(ctx context.Context, session models.Token) (models.User, error) {
	return m.currentUserFn(ctx, session)
}

// ─────────────────────────────────────────────
// Mock TwoFactorService
// ─────────────────────────────────────────────

type mockTwoFactorService struct {
	sendEnableCodeFn   func(ctx context.Context, session models.Token) error
	verifyEnableCodeFn func(ctx context.Context, session models.Token, code string) error
	disableFn          func(ctx context.Context, session models.Token, password string) error
	sendLoginCodeFn    func(ctx context.Context, email string) error
}

func (m *mockTwoFactorService) SendEnableCode(ctx context.Context, session models.Token) error {
	return m.sendEnableCodeFn(ctx, session)
}

func (m *mockTwoFactorService) VerifyEnableCode(ctx context.Context, session models.Token, code string) error {
	return m.verifyEnableCodeFn(ctx, session, code)
}

func (m *mockTwoFactorService) Disable(ctx context.Context, session models.Token, password string) error {
	return m.disableFn(ctx, session, password)
}

func (m *mockTwoFactorService) SendLoginCode(ctx context.Context, email string) error {
	return m.sendLoginCodeFn(ctx, email)
}

// ─────────────────────────────────────────────
// Mock AccountService
// ─────────────────────────────────────────────

type mockAccountService struct {
	changePasswordFn     func(ctx context.Context, session models.Token, currentPassword, newPassword string) error
	requestEmailChangeFn func(ctx context.Context, session models.Token, newEmail string) error
	confirmEmailChangeFn func(ctx context.Context, session models.Token, newEmail, code string) (models.User, error)
	forgotPasswordFn     func(ctx context.Context, email string) error
	resetPasswordFn      func(ctx context.Context, req models.ResetPasswordRequest) error
}

func (m *mockAccountService) ChangePassword(ctx context.Context, session models.Token, currentPassword, newPassword string) error {
	return m.changePasswordFn(ctx, session, currentPassword, newPassword)
}

func (m *mockAccountService) RequestEmailChange(ctx context.Context, session models.Token, newEmail string) error {
	return m.requestEmailChangeFn(ctx, session, newEmail)
}

func (m *mockAccountService) ConfirmEmailChange(ctx context.Context, session models.Token, newEmail, code string) (models.User, error) {
	return m.confirmEmailChangeFn(ctx, session, newEmail, code)
}

func (m *mockAccountService) ForgotPassword(ctx context.Context, email string) error {
	return m.forgotPasswordFn(ctx, email)
}

func (m *mockAccountService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	return m.resetPasswordFn(ctx, req)
}

// ─────────────────────────────────────────────
// Mock CategoryService
// ─────────────────────────────────────────────

type mockCategoryService struct {
	listFn        func(ctx context.Context, session models.Token) ([]models.Category, error)
	createFn      func(ctx context.Context, session models.Token, req models.CreateCategoryRequest) (models.Category, error)
	getFn         func(ctx context.Context, session models.Token, slug string) (models.Category, error)
	updateFn      func(ctx context.Context, session models.Token, slug string, req models.UpdateCategoryRequest) (models.Category, error)
	deleteFn      func(ctx context.Context, session models.Token, slug string) (models.Category, error)
	addEntryFn    func(ctx context.Context, session models.Token, slug string, req models.AddEntryRequest) (models.Category, error)
	updateEntryFn func(ctx context.Context, session models.Token, slug string, req models.UpdateEntryRequest) (models.Category, error)
	deleteEntryFn func(ctx context.Context, session models.Token, slug string, req models.DeleteEntryRequest) (models.Category, error)
	exportCSVFn   func(ctx context.Context, session models.Token) ([]byte, error)
}

func (m *mockCategoryService) List(ctx context.Context, session models.Token) ([]models.Category, error) {
	return m.listFn(ctx, session)
}

func (m *mockCategoryService) Create(ctx context.Context, session models.Token, req models.CreateCategoryRequest) (models.Category, error) {
	return m.createFn(ctx, session, req)
}

func (m *mockCategoryService) Get(ctx context.Context, session models.Token, slug string) (models.Category, error) {
	return m.getFn(ctx, session, slug)
}

func (m *mockCategoryService) Update(ctx context.Context, session models.Token, slug string, req models.UpdateCategoryRequest) (models.Category, error) {
	return m.updateFn(ctx, session, slug, req)
}

func (m *mockCategoryService) Delete(ctx context.Context, session models.Token, slug string) (models.Category, error) {
	return m.deleteFn(ctx, session, slug)
}

func (m *mockCategoryService) AddEntry(ctx context.Context, session models.Token, slug string, req models.AddEntryRequest) (models.Category, error) {
	return m.addEntryFn(ctx, session, slug, req)
}

func (m *mockCategoryService) UpdateEntry(ctx context.Context, session models.Token, slug string, req models.UpdateEntryRequest) (models.Category, error) {
	return m.updateEntryFn(ctx, session, slug, req)
}

func (m *mockCategoryService) DeleteEntry(ctx context.Context, session models.Token, slug string, req models.DeleteEntryRequest) (models.Category, error) {
	return m.deleteEntryFn(ctx, session, slug, req)
}

func (m *mockCategoryService) ExportCSV(ctx context.Context, session models.Token) ([]byte, error) {
	return m.exportCSVFn(ctx, session)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler over the given (possibly partial) mocks.
func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()
	cfg := config.StructuredConfig{}
	cfg.App.TokenDuration = 168 * time.Hour
	cfg.App.Environment = "development"
	return NewHandler(svcs, cfg, logger.Nop())
}

// stubToken returns a session token with the given signed string.
func stubToken(signed string) models.Token {
	return models.Token{SignedString: signed}
}
