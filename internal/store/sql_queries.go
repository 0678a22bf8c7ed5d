package store

import (
	"github.com/MKhiriev/invest-keeper/models"
	sq "github.com/Masterminds/squirrel"
)

const userColumns = `user_id, email, password_hash, name, role, two_factor_enabled,
    two_factor_code, two_factor_code_expiry,
    email_verification_code, email_verification_expiry,
    password_reset_code, password_reset_expiry,
    created_at, updated_at`

const categoryColumns = `category_id, user_id, name, slug, display_name, description,
    expected_percent, current_value, entries, version, created_at, updated_at`

const (
	createUser = `INSERT INTO users (email, password_hash, name, role, two_factor_enabled)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING ` + userColumns + `;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE user_id = $1;`

	// clearExpiredCodes resets every code pair independently so one stale
	// flow does not clear a still-valid code of another flow.
	clearExpiredCodes = `UPDATE users SET
        two_factor_code = CASE WHEN two_factor_code_expiry < $1 THEN NULL ELSE two_factor_code END,
        two_factor_code_expiry = CASE WHEN two_factor_code_expiry < $1 THEN NULL ELSE two_factor_code_expiry END,
        email_verification_code = CASE WHEN email_verification_expiry < $1 THEN NULL ELSE email_verification_code END,
        email_verification_expiry = CASE WHEN email_verification_expiry < $1 THEN NULL ELSE email_verification_expiry END,
        password_reset_code = CASE WHEN password_reset_expiry < $1 THEN NULL ELSE password_reset_code END,
        password_reset_expiry = CASE WHEN password_reset_expiry < $1 THEN NULL ELSE password_reset_expiry END,
        updated_at = NOW()
    WHERE two_factor_code_expiry < $1
       OR email_verification_expiry < $1
       OR password_reset_expiry < $1;`

	createCategory = `INSERT INTO categories
        (user_id, name, slug, display_name, description, expected_percent, current_value, entries)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING ` + categoryColumns + `;`

	findCategoriesByUser = `SELECT ` + categoryColumns + `
    FROM categories
    WHERE user_id = $1
    ORDER BY created_at;`

	findCategoryBySlug = `SELECT ` + categoryColumns + `
    FROM categories
    WHERE user_id = $1 AND slug = $2;`

	slugTaken = `SELECT EXISTS (
        SELECT 1 FROM categories
        WHERE user_id = $1 AND slug = $2 AND category_id <> $3
    );`

	deleteCategoryBySlug = `DELETE FROM categories
    WHERE user_id = $1 AND slug = $2
    RETURNING ` + categoryColumns + `;`
)

// buildUserUpdateQuery dynamically builds the partial UPDATE for a user
// record. Pointer fields are included when non-nil; Optional fields are
// included when present in the request, writing NULL for an explicit clear.
func buildUserUpdateQuery(update models.UserUpdate) (string, []any, error) {
	b := sq.Update("users").PlaceholderFormat(sq.Dollar)

	if update.Email != nil {
		b = b.Set("email", *update.Email)
	}
	if update.Name != nil {
		b = b.Set("name", *update.Name)
	}
	if update.PasswordHash != nil {
		b = b.Set("password_hash", *update.PasswordHash)
	}
	if update.TwoFactorEnabled != nil {
		b = b.Set("two_factor_enabled", *update.TwoFactorEnabled)
	}

	b = setOptional(b, "two_factor_code", update.TwoFactorCode)
	b = setOptional(b, "two_factor_code_expiry", update.TwoFactorCodeExpiry)
	b = setOptional(b, "email_verification_code", update.EmailVerificationCode)
	b = setOptional(b, "email_verification_expiry", update.EmailVerificationExpiry)
	b = setOptional(b, "password_reset_code", update.PasswordResetCode)
	b = setOptional(b, "password_reset_expiry", update.PasswordResetExpiry)

	b = b.Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"user_id": update.UserID}).
		Suffix("RETURNING " + userColumns)

	return b.ToSql()
}

// setOptional adds a SET clause for an Optional field: absent fields are
// skipped, explicit nulls write SQL NULL, and values are bound as usual.
func setOptional[T any](b sq.UpdateBuilder, column string, value models.Optional[T]) sq.UpdateBuilder {
	if !value.Set {
		return b
	}
	if value.Value == nil {
		return b.Set(column, nil)
	}
	return b.Set(column, *value.Value)
}

// buildCategoryUpdateQuery builds the optimistic-concurrency UPDATE for a
// category: all mutable columns are written, the version is bumped, and the
// WHERE clause pins the version the caller read. Zero affected rows means a
// concurrent mutation won.
func buildCategoryUpdateQuery(category models.Category, entriesJSON []byte) (string, []any, error) {
	return sq.Update("categories").
		PlaceholderFormat(sq.Dollar).
		Set("name", category.Name).
		Set("slug", category.Slug).
		Set("display_name", category.DisplayName).
		Set("description", category.Description).
		Set("expected_percent", category.ExpectedPercent).
		Set("current_value", category.CurrentValue).
		Set("entries", entriesJSON).
		Set("version", category.Version+1).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"category_id": category.CategoryID,
			"user_id":     category.UserID,
			"version":     category.Version,
		}).
		Suffix("RETURNING " + categoryColumns).
		ToSql()
}
