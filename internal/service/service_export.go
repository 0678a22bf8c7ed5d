package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"

	"github.com/MKhiriev/invest-keeper/internal/logger"
	"github.com/MKhiriev/invest-keeper/models"
)

// csvHeader is the fixed column set of a portfolio export. Category-level
// columns are filled on an entry's first row only, so a spreadsheet reads as
// one block per category.
var csvHeader = []string{
	"Category Name",
	"Display Name",
	"Slug",
	"Expected %",
	"Total Invested (INR)",
	"Expected Amount (INR)",
	"Current Value (INR)",
	"Profit/Loss (INR)",
	"Profit/Loss %",
	"Entry Name",
	"Entry Quantity",
	"Entry Invested (INR)",
}

// utf8BOM makes Excel detect the encoding instead of guessing a legacy code
// page for the rupee amounts.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportCSV renders the user's whole portfolio as a CSV document.
//
// Each category occupies one row per entry (or a single row when it has no
// entries), with the category aggregates only on its first row. Amounts use
// Indian digit grouping without a currency symbol.
func (s *categoryService) ExportCSV(ctx context.Context, session models.Token) ([]byte, error) {
	log := logger.FromContext(ctx)

	categories, err := s.categoryRepository.FindCategoriesByUser(ctx, session.UserID)
	if err != nil {
		log.Err(err).Str("userID", session.UserID.String()).Msg("category listing failed")
		return nil, fmt.Errorf("category listing failed: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("csv writing failed: %w", err)
	}

	for _, category := range categories {
		head := categoryColumnsCSV(category)

		if len(category.Entries) == 0 {
			if err := w.Write(append(head, "", "", "")); err != nil {
				return nil, fmt.Errorf("csv writing failed: %w", err)
			}
			continue
		}

		for i, entry := range category.Entries {
			row := head
			if i > 0 {
				row = make([]string, len(head))
			}
			row = append(row,
				entry.Name,
				formatNumber(entry.Quantity),
				formatINR(entry.Invested),
			)
			if err := w.Write(row); err != nil {
				return nil, fmt.Errorf("csv writing failed: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv writing failed: %w", err)
	}

	return buf.Bytes(), nil
}

// categoryColumnsCSV renders the nine category-level columns.
func categoryColumnsCSV(category models.Category) []string {
	totalInvested := category.TotalInvested()
	profitLoss := category.ProfitLoss()

	profitLossPercent := 0.0
	if totalInvested != 0 {
		profitLossPercent = profitLoss / totalInvested * 100
	}

	return []string{
		category.Name,
		category.DisplayName,
		category.Slug,
		formatNumber(category.ExpectedPercent),
		formatINR(totalInvested),
		formatINR(category.ExpectedAmount()),
		formatINR(category.CurrentValue),
		formatINR(profitLoss),
		strconv.FormatFloat(profitLossPercent, 'f', 2, 64) + "%",
	}
}

// formatNumber renders a float the shortest way that round-trips, so whole
// percentages come out without a trailing ".0".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatINR rounds to a whole amount and applies Indian digit grouping:
// the last three digits form one group, every earlier group has two digits
// (12,34,567).
func formatINR(v float64) string {
	rounded := int64(math.Round(v))

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	digits := strconv.FormatInt(rounded, 10)
	grouped := groupIndian(digits)

	if negative {
		return "-" + grouped
	}
	return grouped
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	groups = append(groups, tail)

	out := groups[0]
	for _, g := range groups[1:] {
		out += "," + g
	}
	return out
}
