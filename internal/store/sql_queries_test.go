// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/invest-keeper/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildUserUpdateQuery_PointerFields(t *testing.T) {
	userID := uuid.New()
	email := "new@example.com"
	name := "Jane"

	query, args, err := buildUserUpdateQuery(models.UserUpdate{
		UserID: userID,
		Email:  &email,
		Name:   &name,
	})
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "update users")
	require.Contains(t, q, "email = $1")
	require.Contains(t, q, "name = $2")
	require.Contains(t, q, "updated_at = now()")
	require.Contains(t, q, "where user_id = $3")
	require.Contains(t, q, "returning")

	require.Len(t, args, 3)
	assert.Equal(t, email, args[0])
	assert.Equal(t, name, args[1])
	// squirrel resolves driver.Valuer arguments when building, so the uuid
	// lands in args as its string form.
	assert.Equal(t, userID.String(), args[2])
}

func Test_buildUserUpdateQuery_OptionalStates(t *testing.T) {
	userID := uuid.New()
	code := "123456"
	expiry := time.Now().Add(10 * time.Minute)

	t.Run("value binds as placeholder", func(t *testing.T) {
		query, args, err := buildUserUpdateQuery(models.UserUpdate{
			UserID:              userID,
			TwoFactorCode:       models.OptionalOf(code),
			TwoFactorCodeExpiry: models.OptionalOf(expiry),
		})
		require.NoError(t, err)

		q := strings.ToLower(query)
		require.Contains(t, q, "two_factor_code = $1")
		require.Contains(t, q, "two_factor_code_expiry = $2")

		require.Len(t, args, 3) // code, expiry, user_id
		assert.Equal(t, code, args[0])
		assert.Equal(t, expiry, args[1])
		assert.Equal(t, userID.String(), args[2])
	})

	t.Run("explicit null binds a nil arg", func(t *testing.T) {
		query, args, err := buildUserUpdateQuery(models.UserUpdate{
			UserID:              userID,
			TwoFactorCode:       models.OptionalNull[string](),
			TwoFactorCodeExpiry: models.OptionalNull[time.Time](),
		})
		require.NoError(t, err)

		q := strings.ToLower(query)
		require.Contains(t, q, "two_factor_code = $1")
		require.Contains(t, q, "two_factor_code_expiry = $2")

		require.Len(t, args, 3)
		assert.Nil(t, args[0])
		assert.Nil(t, args[1])
		assert.Equal(t, userID.String(), args[2])
	})

	t.Run("absent field stays untouched", func(t *testing.T) {
		name := "Jane"
		query, _, err := buildUserUpdateQuery(models.UserUpdate{
			UserID: userID,
			Name:   &name,
		})
		require.NoError(t, err)

		q := strings.ToLower(query)
		assert.NotContains(t, q, "two_factor_code")
		assert.NotContains(t, q, "email_verification_code")
		assert.NotContains(t, q, "password_reset_code")
	})
}

func Test_buildUserUpdateQuery_CompoundResetWrite(t *testing.T) {
	// A password reset writes the new hash and clears both reset columns in
	// one statement.
	hash := "bcrypt-hash"
	query, args, err := buildUserUpdateQuery(models.UserUpdate{
		UserID:              uuid.New(),
		PasswordHash:        &hash,
		PasswordResetCode:   models.OptionalNull[string](),
		PasswordResetExpiry: models.OptionalNull[time.Time](),
	})
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "password_hash = $1")
	require.Contains(t, q, "password_reset_code = $2")
	require.Contains(t, q, "password_reset_expiry = $3")
	require.Len(t, args, 4) // hash, two nils, user_id
	assert.Equal(t, hash, args[0])
	assert.Nil(t, args[1])
	assert.Nil(t, args[2])
}

func Test_buildCategoryUpdateQuery(t *testing.T) {
	category := models.Category{
		CategoryID:      uuid.New(),
		UserID:          uuid.New(),
		Name:            "Stocks",
		Slug:            "stocks",
		DisplayName:     "Stocks",
		Description:     "Indian equities",
		ExpectedPercent: 15,
		CurrentValue:    12345,
		Version:         4,
	}
	entriesJSON := []byte(`[]`)

	query, args, err := buildCategoryUpdateQuery(category, entriesJSON)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "update categories")
	require.Contains(t, q, "name = $1")
	require.Contains(t, q, "slug = $2")
	require.Contains(t, q, "entries = $7")
	require.Contains(t, q, "version = $8")
	require.Contains(t, q, "updated_at = now()")
	require.Contains(t, q, "returning")

	// The WHERE clause pins the version the caller read; the SET clause
	// writes the bumped one. The uuids appear in string form since squirrel
	// resolves driver.Valuer arguments when building.
	assert.Contains(t, args, category.Version+1)
	assert.Contains(t, args, category.Version)
	assert.Contains(t, args, category.CategoryID.String())
	assert.Contains(t, args, category.UserID.String())

	require.Contains(t, q, "category_id")
	require.Contains(t, q, "user_id")
	require.Contains(t, q, "version =")
}

func Test_userColumns_MatchScanOrder(t *testing.T) {
	// scanUser reads positionally; the column list must keep the same order.
	expected := []string{
		"user_id", "email", "password_hash", "name", "role", "two_factor_enabled",
		"two_factor_code", "two_factor_code_expiry",
		"email_verification_code", "email_verification_expiry",
		"password_reset_code", "password_reset_expiry",
		"created_at", "updated_at",
	}

	fields := strings.FieldsFunc(userColumns, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	})
	require.Equal(t, expected, fields)
}

func Test_categoryColumns_MatchScanOrder(t *testing.T) {
	expected := []string{
		"category_id", "user_id", "name", "slug", "display_name", "description",
		"expected_percent", "current_value", "entries", "version", "created_at", "updated_at",
	}

	fields := strings.FieldsFunc(categoryColumns, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	})
	require.Equal(t, expected, fields)
}
