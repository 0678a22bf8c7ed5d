// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/invest-keeper/models"
)

var errStorage = errors.New("storage error")

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createUserFn        func(ctx context.Context, user models.User) (models.User, error)
	findUserByEmailFn   func(ctx context.Context, email string) (models.User, error)
	findUserByIDFn      func(ctx context.Context, userID uuid.UUID) (models.User, error)
	updateUserFn        func(ctx context.Context, update models.UserUpdate) (models.User, error)
	clearExpiredCodesFn func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findUserByEmailFn != nil {
		return m.findUserByEmailFn(ctx, email)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	if m.findUserByIDFn != nil {
		return m.findUserByIDFn(ctx, userID)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error) {
	if m.updateUserFn != nil {
		return m.updateUserFn(ctx, update)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) ClearExpiredCodes(ctx context.Context, now time.Time) (int64, error) {
	if m.clearExpiredCodesFn != nil {
		return m.clearExpiredCodesFn(ctx, now)
	}
	return 0, nil
}

// ─────────────────────────────────────────────
// Mock: store.CategoryRepository
// ─────────────────────────────────────────────

type mockCategoryRepository struct {
	createCategoryFn       func(ctx context.Context, category models.Category) (models.Category, error)
	findCategoriesByUserFn func(ctx context.Context, userID uuid.UUID) ([]models.Category, error)
	findCategoryBySlugFn   func(ctx context.Context, userID uuid.UUID, slug string) (models.Category, error)
	slugTakenFn            func(ctx context.Context, userID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error)
	updateCategoryFn       func(ctx context.Context, category models.Category) (models.Category, error)
	deleteCategoryBySlugFn func(ctx context.Context, userID uuid.UUID, slug string) (models.Category, error)
}

func (m *mockCategoryRepository) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(ctx, category)
	}
	return category, nil
}

func (m *mockCategoryRepository) FindCategoriesByUser(ctx context.Context, userID uuid.UUID) ([]models.Category, error) {
	if m.findCategoriesByUserFn != nil {
		return m.findCategoriesByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockCategoryRepository) FindCategoryBySlug(ctx context.Context, userID uuid.UUID, slug string) (models.Category, error) {
	if m.findCategoryBySlugFn != nil {
		return m.findCategoryBySlugFn(ctx, userID, slug)
	}
	return models.Category{}, nil
}

func (m *mockCategoryRepository) SlugTaken(ctx context.Context, userID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error) {
	if m.slugTakenFn != nil {
		return m.slugTakenFn(ctx, userID, slug, excludeID)
	}
	return false, nil
}

func (m *mockCategoryRepository) UpdateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(ctx, category)
	}
	return category, nil
}

func (m *mockCategoryRepository) DeleteCategoryBySlug(ctx context.Context, userID uuid.UUID, slug string) (models.Category, error) {
	if m.deleteCategoryBySlugFn != nil {
		return m.deleteCategoryBySlugFn(ctx, userID, slug)
	}
	return models.Category{}, nil
}

// ─────────────────────────────────────────────
// Mock: Mailer
// ─────────────────────────────────────────────

type mockMailer struct {
	twoFactorFn func(ctx context.Context, to, name, code string) error
	verifyFn    func(ctx context.Context, to, name, code string) error
	resetFn     func(ctx context.Context, to, name, code string) error
}

func (m *mockMailer) SendTwoFactorCode(ctx context.Context, to, name, code string) error {
	if m.twoFactorFn != nil {
		return m.twoFactorFn(ctx, to, name, code)
	}
	return nil
}

func (m *mockMailer) SendEmailVerificationCode(ctx context.Context, to, name, code string) error {
	if m.verifyFn != nil {
		return m.verifyFn(ctx, to, name, code)
	}
	return nil
}

func (m *mockMailer) SendPasswordResetCode(ctx context.Context, to, name, code string) error {
	if m.resetFn != nil {
		return m.resetFn(ctx, to, name, code)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: TwoFactorService (for authService composition)
// ─────────────────────────────────────────────

type mockTwoFactorService struct {
	sendEnableCodeFn   func(ctx context.Context, session models.Token) error
	verifyEnableCodeFn func(ctx context.Context, session models.Token, code string) error
	disableFn          func(ctx context.Context, session models.Token, password string) error
	sendLoginCodeFn    func(ctx context.Context, email string) error
}

func (m *mockTwoFactorService) SendEnableCode(ctx context.Context, session models.Token) error {
	if m.sendEnableCodeFn != nil {
		return m.sendEnableCodeFn(ctx, session)
	}
	return nil
}

func (m *mockTwoFactorService) VerifyEnableCode(ctx context.Context, session models.Token, code string) error {
	if m.verifyEnableCodeFn != nil {
		return m.verifyEnableCodeFn(ctx, session, code)
	}
	return nil
}

func (m *mockTwoFactorService) Disable(ctx context.Context, session models.Token, password string) error {
	if m.disableFn != nil {
		return m.disableFn(ctx, session, password)
	}
	return nil
}

func (m *mockTwoFactorService) SendLoginCode(ctx context.Context, email string) error {
	if m.sendLoginCodeFn != nil {
		return m.sendLoginCodeFn(ctx, email)
	}
	return nil
}
