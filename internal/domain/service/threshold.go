package service

import (
	"github.com/diillson/aws-cost-watch/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// EvaluateThreshold returns an AlertEvent when the window total is strictly
// greater than threshold, nil otherwise. Whether the alert is dispatched is
// decided by the caller.
func EvaluateThreshold(result entity.AggregationResult, threshold decimal.Decimal) *entity.AlertEvent {
	if !result.TotalCost.GreaterThan(threshold) {
		return nil
	}
	return &entity.AlertEvent{
		TotalCost:   result.TotalCost,
		Threshold:   threshold,
		TopServices: TopServices(result, entity.MaxTopServices),
		WindowStart: result.Window.Start,
	}
}
