package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MKhiriev/invest-keeper/internal/logger"
	"github.com/MKhiriev/invest-keeper/internal/store"
	"github.com/MKhiriev/invest-keeper/internal/utils"
	"github.com/MKhiriev/invest-keeper/models"
)

// maxUpdateRetries bounds how many times a category mutation is re-applied
// after losing a version race to a concurrent writer.
const maxUpdateRetries = 3

// categoryService implements CategoryService on top of a CategoryRepository.
// Entry mutations go through an optimistic read-modify-write loop keyed on
// the category version, so concurrent edits of the same category never
// silently drop each other's changes.
type categoryService struct {
	categoryRepository store.CategoryRepository
	logger             *logger.Logger
}

func NewCategoryService(categoryRepository store.CategoryRepository, logger *logger.Logger) CategoryService {
	return &categoryService{
		categoryRepository: categoryRepository,
		logger:             logger,
	}
}

// List returns the user's categories in creation order.
func (s *categoryService) List(ctx context.Context, session models.Token) ([]models.Category, error) {
	log := logger.FromContext(ctx)

	categories, err := s.categoryRepository.FindCategoriesByUser(ctx, session.UserID)
	if err != nil {
		log.Err(err).Str("userID", session.UserID.String()).Msg("category listing failed")
		return nil, fmt.Errorf("category listing failed: %w", err)
	}

	return categories, nil
}

// Create persists a new category for the user.
//
// The slug is normalized from the supplied slug, falling back to the name
// when no slug is given. Expected percent defaults to
// models.DefaultCategoryExpectedPercent and display name to the category name.
//
// Returns ErrInvalidDataProvided for an empty name, ErrInvalidSlug when
// normalization leaves nothing usable, and store.ErrDuplicateSlug when the
// user already owns the slug.
func (s *categoryService) Create(ctx context.Context, session models.Token, req models.CreateCategoryRequest) (models.Category, error) {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Category{}, ErrInvalidDataProvided
	}

	source := req.Slug
	if strings.TrimSpace(source) == "" {
		source = name
	}
	slug := utils.NormalizeSlug(source)
	if slug == "" {
		return models.Category{}, ErrInvalidSlug
	}

	category := models.Category{
		UserID:          session.UserID,
		Name:            name,
		Slug:            slug,
		DisplayName:     strings.TrimSpace(req.DisplayName),
		Description:     strings.TrimSpace(req.Description),
		ExpectedPercent: models.DefaultCategoryExpectedPercent,
		Entries:         []models.Entry{},
	}
	if category.DisplayName == "" {
		category.DisplayName = name
	}
	if req.ExpectedPercent != nil {
		category.ExpectedPercent = *req.ExpectedPercent
	}
	if req.CurrentValue != nil {
		category.CurrentValue = *req.CurrentValue
	}

	created, err := s.categoryRepository.CreateCategory(ctx, category)
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, store.ErrDuplicateSlug) {
		log.Err(err).Str("slug", slug).Msg("category creation failed")
		return models.Category{}, fmt.Errorf("category creation failed: %w", err)
	}

	// A unique violation can come from a stale single-column slug index that
	// predates per-user slugs. When no category of this user actually holds
	// the slug, the insert is retried once against the repaired schema.
	taken, checkErr := s.categoryRepository.SlugTaken(ctx, session.UserID, slug, uuid.Nil)
	if checkErr != nil || taken {
		return models.Category{}, store.ErrDuplicateSlug
	}

	created, err = s.categoryRepository.CreateCategory(ctx, category)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateSlug) {
			return models.Category{}, store.ErrDuplicateSlug
		}
		log.Err(err).Str("slug", slug).Msg("category creation failed")
		return models.Category{}, fmt.Errorf("category creation failed: %w", err)
	}

	return created, nil
}

// Get returns the user's category with the given slug.
func (s *categoryService) Get(ctx context.Context, session models.Token, slug string) (models.Category, error) {
	log := logger.FromContext(ctx)

	category, err := s.categoryRepository.FindCategoryBySlug(ctx, session.UserID, slug)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			return models.Category{}, store.ErrCategoryNotFound
		}
		log.Err(err).Str("slug", slug).Msg("category lookup failed")
		return models.Category{}, fmt.Errorf("category lookup failed: %w", err)
	}

	return category, nil
}

// Update patches category fields. A slug change is re-normalized and checked
// for per-user uniqueness before the write.
func (s *categoryService) Update(ctx context.Context, session models.Token, slug string, req models.UpdateCategoryRequest) (models.Category, error) {
	return s.mutateCategory(ctx, session.UserID, slug, func(category *models.Category) error {
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return ErrInvalidDataProvided
			}
			category.Name = name
		}
		if req.Slug != nil {
			newSlug := utils.NormalizeSlug(*req.Slug)
			if newSlug == "" {
				return ErrInvalidSlug
			}
			if newSlug != category.Slug {
				taken, err := s.categoryRepository.SlugTaken(ctx, category.UserID, newSlug, category.CategoryID)
				if err != nil {
					return fmt.Errorf("slug uniqueness check failed: %w", err)
				}
				if taken {
					return store.ErrDuplicateSlug
				}
				category.Slug = newSlug
			}
		}
		if req.DisplayName != nil {
			category.DisplayName = strings.TrimSpace(*req.DisplayName)
		}
		if req.Description != nil {
			category.Description = strings.TrimSpace(*req.Description)
		}
		if req.ExpectedPercent != nil {
			category.ExpectedPercent = *req.ExpectedPercent
		}
		if req.CurrentValue != nil {
			category.CurrentValue = *req.CurrentValue
		}
		return nil
	})
}

// Delete removes the user's category with the given slug and returns the
// deleted record.
func (s *categoryService) Delete(ctx context.Context, session models.Token, slug string) (models.Category, error) {
	log := logger.FromContext(ctx)

	deleted, err := s.categoryRepository.DeleteCategoryBySlug(ctx, session.UserID, slug)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			return models.Category{}, store.ErrCategoryNotFound
		}
		log.Err(err).Str("slug", slug).Msg("category deletion failed")
		return models.Category{}, fmt.Errorf("category deletion failed: %w", err)
	}

	return deleted, nil
}

// AddEntry appends a new entry with a server-assigned stable ID and
// recomputes the category's current value.
//
// Quantity and invested are required. The entry's current value is stored
// only when the request carries one explicitly; an explicit zero is kept
// distinct from "not set".
func (s *categoryService) AddEntry(ctx context.Context, session models.Token, slug string, req models.AddEntryRequest) (models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.Quantity == nil || req.Invested == nil {
		return models.Category{}, ErrInvalidDataProvided
	}
	if *req.Quantity < 0 || *req.Invested < 0 {
		return models.Category{}, ErrInvalidDataProvided
	}

	return s.mutateCategory(ctx, session.UserID, slug, func(category *models.Category) error {
		entry := models.Entry{
			ID:              uuid.New(),
			Name:            name,
			Quantity:        *req.Quantity,
			Invested:        *req.Invested,
			CurrentValue:    optionalToPointer(req.CurrentValue),
			ExpectedPercent: optionalToPointer(req.ExpectedPercent),
		}
		category.Entries = append(category.Entries, entry)
		category.RecalculateCurrentValue()
		return nil
	})
}

// UpdateEntry patches an entry addressed by its stable ID or, as a fallback,
// by position, then recomputes the category's current value. Sending null for
// currentValue or expectedPercent clears the stored value.
func (s *categoryService) UpdateEntry(ctx context.Context, session models.Token, slug string, req models.UpdateEntryRequest) (models.Category, error) {
	if req.EntryID == nil && req.EntryIndex == nil {
		return models.Category{}, ErrInvalidDataProvided
	}

	return s.mutateCategory(ctx, session.UserID, slug, func(category *models.Category) error {
		index, err := locateEntry(category, req.EntryID, req.EntryIndex)
		if err != nil {
			return err
		}

		entry := &category.Entries[index]
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return ErrInvalidDataProvided
			}
			entry.Name = name
		}
		if req.Quantity != nil {
			if *req.Quantity < 0 {
				return ErrInvalidDataProvided
			}
			entry.Quantity = *req.Quantity
		}
		if req.Invested != nil {
			if *req.Invested < 0 {
				return ErrInvalidDataProvided
			}
			entry.Invested = *req.Invested
		}
		if req.CurrentValue.Set {
			entry.CurrentValue = optionalToPointer(req.CurrentValue)
		}
		if req.ExpectedPercent.Set {
			entry.ExpectedPercent = optionalToPointer(req.ExpectedPercent)
		}

		category.RecalculateCurrentValue()
		return nil
	})
}

// DeleteEntry removes an entry addressed by its stable ID or by position.
// Later entries shift down by one and the category's current value is
// recomputed.
func (s *categoryService) DeleteEntry(ctx context.Context, session models.Token, slug string, req models.DeleteEntryRequest) (models.Category, error) {
	if req.EntryID == nil && req.EntryIndex == nil {
		return models.Category{}, ErrInvalidDataProvided
	}

	return s.mutateCategory(ctx, session.UserID, slug, func(category *models.Category) error {
		index, err := locateEntry(category, req.EntryID, req.EntryIndex)
		if err != nil {
			return err
		}

		category.Entries = append(category.Entries[:index], category.Entries[index+1:]...)
		category.RecalculateCurrentValue()
		return nil
	})
}

// mutateCategory runs an optimistic read-modify-write cycle: load the
// category at its current version, apply fn, and write back conditionally on
// that version. A version conflict reloads and re-applies fn, up to
// maxUpdateRetries attempts, after which ErrUpdateConflict is returned.
func (s *categoryService) mutateCategory(ctx context.Context, userID uuid.UUID, slug string, fn func(*models.Category) error) (models.Category, error) {
	log := logger.FromContext(ctx)

	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		category, err := s.categoryRepository.FindCategoryBySlug(ctx, userID, slug)
		if err != nil {
			if errors.Is(err, store.ErrCategoryNotFound) {
				return models.Category{}, store.ErrCategoryNotFound
			}
			log.Err(err).Str("slug", slug).Msg("category lookup failed")
			return models.Category{}, fmt.Errorf("category lookup failed: %w", err)
		}

		if err := fn(&category); err != nil {
			return models.Category{}, err
		}

		updated, err := s.categoryRepository.UpdateCategory(ctx, category)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, store.ErrVersionConflict) {
			continue
		}
		if errors.Is(err, store.ErrDuplicateSlug) {
			return models.Category{}, store.ErrDuplicateSlug
		}
		log.Err(err).Str("slug", slug).Msg("category update failed")
		return models.Category{}, fmt.Errorf("category update failed: %w", err)
	}

	log.Error().Str("slug", slug).Int("attempts", maxUpdateRetries).Msg("category update lost every version race")
	return models.Category{}, ErrUpdateConflict
}

// locateEntry resolves an entry by stable ID first, positional index second.
func locateEntry(category *models.Category, entryID *uuid.UUID, entryIndex *int) (int, error) {
	if entryID != nil {
		if index := category.EntryIndexByID(*entryID); index >= 0 {
			return index, nil
		}
		return 0, ErrEntryNotFound
	}
	if *entryIndex < 0 || *entryIndex >= len(category.Entries) {
		return 0, ErrEntryNotFound
	}
	return *entryIndex, nil
}

// optionalToPointer collapses an Optional into the pointer stored on an
// entry: a value becomes a fresh pointer, while absent and explicit null
// both become nil.
func optionalToPointer(o models.Optional[float64]) *float64 {
	if !o.Set || o.Value == nil {
		return nil
	}
	v := *o.Value
	return &v
}
