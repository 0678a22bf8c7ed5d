package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultCategoryExpectedPercent is the category-level target return
	// applied when a category is created without an explicit value.
	DefaultCategoryExpectedPercent = 15.0

	// DefaultEntryExpectedPercent is the per-entry target return used when
	// an entry has no explicit expected percent.
	DefaultEntryExpectedPercent = 10.0
)

// Entry is one holding inside a category: a name, the number of units held,
// and the amount invested. CurrentValue and ExpectedPercent are optional;
// nil means "unset", which is distinct from an explicit zero.
//
// Every entry is assigned a stable ID at creation so edits and deletes can
// address it unambiguously even when the list order shifts.
type Entry struct {
	// ID is the stable identifier assigned when the entry is created.
	ID uuid.UUID `json:"id"`

	// Name is the free-text name of the holding (e.g. "TCS").
	Name string `json:"name"`

	// Quantity is the unit-less number of units held.
	Quantity float64 `json:"quantity"`

	// Invested is the monetary amount contributed to this holding.
	Invested float64 `json:"invested"`

	// CurrentValue is the explicit present value of the holding.
	// nil means unknown; the display value is then derived proportionally
	// from the category aggregate.
	CurrentValue *float64 `json:"currentValue,omitempty"`

	// ExpectedPercent is the per-entry target return. nil falls back to
	// DefaultEntryExpectedPercent.
	ExpectedPercent *float64 `json:"expectedPercent,omitempty"`
}

// EffectiveExpectedPercent returns the entry's expected percent, falling back
// to the default when unset.
func (e Entry) EffectiveExpectedPercent() float64 {
	if e.ExpectedPercent != nil {
		return *e.ExpectedPercent
	}
	return DefaultEntryExpectedPercent
}

// ExpectedValue projects the entry's value at its target return:
// invested * (1 + expectedPercent/100).
func (e Entry) ExpectedValue() float64 {
	return e.Invested * (1 + e.EffectiveExpectedPercent()/100)
}

// Category is a user-owned named bucket of investments. Entries are embedded:
// the category document is the unit of atomicity, and Version guards
// read-modify-write updates against concurrent mutation.
type Category struct {
	// CategoryID is the unique identifier of the category.
	CategoryID uuid.UUID `json:"id"`

	// UserID is the owning user. A category is only ever visible to its owner.
	UserID uuid.UUID `json:"-"`

	// Name is the user-supplied category name (e.g. "Stocks").
	Name string `json:"name"`

	// Slug is the canonical URL-safe identifier, unique per owning user.
	Slug string `json:"slug"`

	// DisplayName is an optional presentation name; defaults to Name.
	DisplayName string `json:"displayName,omitempty"`

	// Description is an optional free-text description.
	Description string `json:"description,omitempty"`

	// ExpectedPercent is the category-level target return used for
	// dashboard summaries.
	ExpectedPercent float64 `json:"expectedPercent"`

	// CurrentValue is the denormalized sum of the entries' explicitly-set
	// current values. Recomputed on every entry mutation.
	CurrentValue float64 `json:"currentValue"`

	// Entries are the holdings of this category, in insertion order.
	Entries []Entry `json:"entries"`

	// Version is the optimistic-concurrency token bumped on every write.
	Version int64 `json:"-"`

	// CreatedAt is the timestamp when the category was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp of the last persisted mutation.
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Category model.
func (c Category) TableName() string {
	return "categories"
}

// TotalInvested sums the invested amounts of all entries.
func (c Category) TotalInvested() float64 {
	var total float64
	for _, entry := range c.Entries {
		total += entry.Invested
	}
	return total
}

// RecalculateCurrentValue replaces CurrentValue with the sum of the entries'
// explicitly-set current values. An entry with no current value contributes
// nothing; it is not treated as zero, since "explicitly zero" and "unset"
// are distinct states.
func (c *Category) RecalculateCurrentValue() {
	var total float64
	for _, entry := range c.Entries {
		if entry.CurrentValue != nil {
			total += *entry.CurrentValue
		}
	}
	c.CurrentValue = total
}

// EntryDisplayValue resolves the value to display for an entry: its explicit
// current value if set, otherwise its proportional share of the category's
// aggregate current value weighted by invested amount. The fallback keeps
// entries created before per-entry tracking rendering a sensible value.
func (c Category) EntryDisplayValue(entry Entry) float64 {
	if entry.CurrentValue != nil {
		return *entry.CurrentValue
	}

	totalInvested := c.TotalInvested()
	if totalInvested == 0 {
		return 0
	}

	return entry.Invested / totalInvested * c.CurrentValue
}

// WeightedExpectedPercent is the invested-weighted average of the entries'
// expected percents, used for category-level summary display. When nothing
// is invested it falls back to the entry-level default.
func (c Category) WeightedExpectedPercent() float64 {
	totalInvested := c.TotalInvested()
	if totalInvested == 0 {
		return DefaultEntryExpectedPercent
	}

	var weighted float64
	for _, entry := range c.Entries {
		weighted += entry.Invested * entry.EffectiveExpectedPercent()
	}

	return weighted / totalInvested
}

// ExpectedAmount projects the category's total value at the entries' target
// returns. It equals the sum of the per-entry expected values.
func (c Category) ExpectedAmount() float64 {
	var total float64
	for _, entry := range c.Entries {
		total += entry.ExpectedValue()
	}
	return total
}

// ProfitLoss is the derived category-level gain: current value minus total
// invested. Never stored.
func (c Category) ProfitLoss() float64 {
	return c.CurrentValue - c.TotalInvested()
}

// EntryIndexByID returns the positional index of the entry with the given
// stable ID, or -1 when no such entry exists.
func (c Category) EntryIndexByID(id uuid.UUID) int {
	for i, entry := range c.Entries {
		if entry.ID == id {
			return i
		}
	}
	return -1
}
