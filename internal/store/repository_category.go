package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/invest-keeper/internal/logger"
	"github.com/MKhiriev/invest-keeper/models"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
)

// categoryRepository is the PostgreSQL-backed implementation of
// [CategoryRepository]. Categories are stored one row per category with the
// entries list embedded as a JSONB column, so a category mutation is a
// single-row (and therefore atomic) write. The version column carries the
// optimistic-concurrency token checked by UpdateCategory.
type categoryRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCategoryRepository constructs a [CategoryRepository] backed by the
// provided database connection and logger.
func NewCategoryRepository(db *DB, logger *logger.Logger) CategoryRepository {
	logger.Debug().Msg("creating category repository")
	return &categoryRepository{
		db:     db,
		logger: logger,
	}
}

func scanCategory(row rowScanner) (models.Category, error) {
	var category models.Category
	var entriesJSON []byte

	err := row.Scan(
		&category.CategoryID,
		&category.UserID,
		&category.Name,
		&category.Slug,
		&category.DisplayName,
		&category.Description,
		&category.ExpectedPercent,
		&category.CurrentValue,
		&entriesJSON,
		&category.Version,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return models.Category{}, err
	}

	if err := json.Unmarshal(entriesJSON, &category.Entries); err != nil {
		return models.Category{}, fmt.Errorf("%w: %w", ErrEncodingEntries, err)
	}
	if category.Entries == nil {
		category.Entries = []models.Entry{}
	}

	return category, nil
}

func encodeEntries(entries []models.Entry) ([]byte, error) {
	if entries == nil {
		entries = []models.Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingEntries, err)
	}
	return data, nil
}

// CreateCategory persists a new category and returns the fully populated
// record with server-assigned fields (CategoryID, Version, CreatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrDuplicateSlug]. The caller
//     decides whether the conflict is a genuine same-owner duplicate or
//     leftover noise from a legacy single-column slug index.
func (r *categoryRepository) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	log := logger.FromContext(ctx)

	entriesJSON, err := encodeEntries(category.Entries)
	if err != nil {
		return models.Category{}, err
	}

	row := r.db.QueryRowContext(ctx, createCategory,
		category.UserID,
		category.Name,
		category.Slug,
		category.DisplayName,
		category.Description,
		category.ExpectedPercent,
		category.CurrentValue,
		entriesJSON,
	)

	created, err := scanCategory(row)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.CreateCategory").Msg("error creating category")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Category{}, ErrDuplicateSlug
		default:
			return models.Category{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindCategoriesByUser returns every category owned by userID in creation
// order.
func (r *categoryRepository) FindCategoriesByUser(ctx context.Context, userID uuid.UUID) ([]models.Category, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, findCategoriesByUser, userID)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.FindCategoriesByUser").Msg("error querying categories")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			log.Err(err).Str("func", "*categoryRepository.FindCategoriesByUser").Msg("error scanning category")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return categories, nil
}

// FindCategoryBySlug returns the category owned by userID with the given
// slug, or [ErrCategoryNotFound].
func (r *categoryRepository) FindCategoryBySlug(ctx context.Context, userID uuid.UUID, slug string) (models.Category, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findCategoryBySlug, userID, slug)

	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Category{}, ErrCategoryNotFound
		}
		log.Err(err).Str("func", "*categoryRepository.FindCategoryBySlug").Msg("error scanning category")
		return models.Category{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return category, nil
}

// SlugTaken reports whether a category other than excludeID already uses slug
// for this user. Passing uuid.Nil as excludeID checks against all categories.
func (r *categoryRepository) SlugTaken(ctx context.Context, userID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error) {
	log := logger.FromContext(ctx)

	var taken bool
	row := r.db.QueryRowContext(ctx, slugTaken, userID, slug, excludeID)
	if err := row.Scan(&taken); err != nil {
		log.Err(err).Str("func", "*categoryRepository.SlugTaken").Msg("error checking slug uniqueness")
		return false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return taken, nil
}

// UpdateCategory writes category back conditionally on the version it was
// read at. The update pins (category_id, user_id, version) in the WHERE
// clause; when no row matches, a concurrent writer got there first and
// [ErrVersionConflict] is returned so the caller can re-read and retry.
//
// A unique_violation from a slug rename is translated to [ErrDuplicateSlug].
func (r *categoryRepository) UpdateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	log := logger.FromContext(ctx)

	entriesJSON, err := encodeEntries(category.Entries)
	if err != nil {
		return models.Category{}, err
	}

	query, args, err := buildCategoryUpdateQuery(category, entriesJSON)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.UpdateCategory").Msg("error building update query")
		return models.Category{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	updated, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Category{}, ErrVersionConflict
		}

		log.Err(err).Str("func", "*categoryRepository.UpdateCategory").Msg("error updating category")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Category{}, ErrDuplicateSlug
		default:
			return models.Category{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return updated, nil
}

// DeleteCategoryBySlug removes the user's category with the given slug and
// returns the deleted record, or [ErrCategoryNotFound].
func (r *categoryRepository) DeleteCategoryBySlug(ctx context.Context, userID uuid.UUID, slug string) (models.Category, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, deleteCategoryBySlug, userID, slug)

	deleted, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Category{}, ErrCategoryNotFound
		}
		log.Err(err).Str("func", "*categoryRepository.DeleteCategoryBySlug").Msg("error deleting category")
		return models.Category{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return deleted, nil
}
