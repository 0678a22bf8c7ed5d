package store

import (
	"context"
	"time"

	"github.com/MKhiriev/invest-keeper/models"
	"github.com/google/uuid"
)

// UserRepository is the data-access contract for user accounts.
type UserRepository interface {
	// CreateUser persists a new account and returns it with server-assigned
	// fields populated. Returns ErrEmailAlreadyExists on a duplicate email.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail looks an account up by its (lowercased) email.
	// Returns ErrNoUserWasFound when no account matches.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID looks an account up by its identifier.
	// Returns ErrNoUserWasFound when no account matches.
	FindUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)

	// UpdateUser applies a partial mutation and returns the updated record.
	// Returns ErrNoUserWasFound when the target does not exist and
	// ErrEmailAlreadyExists when an email change collides.
	UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error)

	// ClearExpiredCodes removes every pending one-time code whose expiry is
	// before now, returning the number of affected accounts.
	ClearExpiredCodes(ctx context.Context, now time.Time) (int64, error)
}

// CategoryRepository is the data-access contract for investment categories.
type CategoryRepository interface {
	// CreateCategory persists a new category and returns it with
	// server-assigned fields populated. Returns ErrDuplicateSlug when the
	// (user, slug) pair is already taken.
	CreateCategory(ctx context.Context, category models.Category) (models.Category, error)

	// FindCategoriesByUser returns all categories owned by the user in
	// creation order.
	FindCategoriesByUser(ctx context.Context, userID uuid.UUID) ([]models.Category, error)

	// FindCategoryBySlug returns the category owned by the user with the
	// given slug, or ErrCategoryNotFound.
	FindCategoryBySlug(ctx context.Context, userID uuid.UUID, slug string) (models.Category, error)

	// SlugTaken reports whether another category of the same user already
	// uses slug. excludeID is ignored, so a category never collides with
	// itself during a rename.
	SlugTaken(ctx context.Context, userID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error)

	// UpdateCategory writes the category back conditionally on the version
	// it was read at, bumping the version. Returns ErrVersionConflict when
	// the row changed (or disappeared) since the read, and ErrDuplicateSlug
	// when a slug change collides.
	UpdateCategory(ctx context.Context, category models.Category) (models.Category, error)

	// DeleteCategoryBySlug removes the user's category with the given slug
	// and returns the deleted record, or ErrCategoryNotFound.
	DeleteCategoryBySlug(ctx context.Context, userID uuid.UUID, slug string) (models.Category, error)
}
