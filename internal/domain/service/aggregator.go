// Package service holds the pure cost logic: aggregation, ranking,
// threshold evaluation, report keys and message formatting.
package service

import (
	"time"

	"github.com/diillson/aws-cost-watch/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Aggregate folds a billing response into window totals.
//
// The window total is summed from each day's declared Total, while the
// per-service totals are summed from the day's Groups. Neither is derived
// from the other, so a disagreement in the upstream data shows up as a
// difference between TotalCost and GroupTotal() instead of being hidden.
// Missing or malformed amounts contribute zero.
func Aggregate(resp entity.CostResponse, window entity.AggregationWindow) entity.AggregationResult {
	result := entity.AggregationResult{
		Window:           window,
		TotalCost:        decimal.Zero,
		PerServiceTotals: make(map[string]decimal.Decimal),
	}

	for _, day := range resp.ResultsByTime {
		dayTotal := day.TotalUnblendedCost()
		result.TotalCost = result.TotalCost.Add(dayTotal)

		if date, err := time.Parse(entity.DateLayout, day.TimePeriod.Start); err == nil {
			result.DailyTotals = append(result.DailyTotals, entity.DailyCost{Date: date, Cost: dayTotal})
		}
	}

	for _, record := range resp.Records() {
		current, seen := result.PerServiceTotals[record.Service]
		if !seen {
			result.ServiceOrder = append(result.ServiceOrder, record.Service)
			current = decimal.Zero
		}
		result.PerServiceTotals[record.Service] = current.Add(record.Amount)
		result.RecordCount++
	}

	return result
}
