package series

import (
	"financial_viability/pkg/models"
)

// Normalize returns a monthly price/quantity series aligned with the planning
// horizon: exactly horizonYears*12 entries. Configured entries are copied as-is;
// past the configured range the last known price/quantity is carried forward,
// starting from the product's baseline when no entries exist at all.
//
// Callers that derive months-per-year from the series length can rely on it
// never being zero.
func Normalize(item models.RevenueItem, horizonYears int) []models.MonthlyEntry {
	if horizonYears < 1 {
		horizonYears = 1
	}
	targetMonths := horizonYears * 12

	lastPrice := item.UnitPrice
	lastQty := item.BaselineQty

	normalized := make([]models.MonthlyEntry, targetMonths)
	for i := 0; i < targetMonths; i++ {
		if i < len(item.Monthly) {
			lastPrice = item.Monthly[i].Price
			lastQty = item.Monthly[i].Qty
		}
		normalized[i] = models.MonthlyEntry{Price: lastPrice, Qty: lastQty}
	}
	return normalized
}
