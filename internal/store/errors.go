package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same email already exists in the database.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrDuplicateSlug is returned when creating or renaming a category
	// violates the compound (user_id, slug) uniqueness constraint.
	ErrDuplicateSlug = errors.New("duplicate slug for user")

	// ErrCategoryNotFound is returned when a query or mutation targets a
	// category (identified by owner and slug) that does not exist.
	ErrCategoryNotFound = errors.New("category was not found")

	// ErrVersionConflict is returned when an optimistic-locking check fails:
	// the version read by the caller does not match the current version
	// stored in the database, meaning the category was modified (or deleted)
	// since it was loaded.
	ErrVersionConflict = errors.New("category version conflict occurred")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. an update with no fields to set).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingEntries is returned when the embedded entries list cannot
	// be encoded to or decoded from its JSONB column representation.
	ErrEncodingEntries = errors.New("failed to encode category entries")
)
