package repository

import (
	"context"

	"github.com/diillson/aws-cost-watch/internal/domain/entity"
)

// BillingRepository defines the interface for the cost-and-usage query API.
type BillingRepository interface {
	// GetDailyCostByService returns DAILY UnblendedCost grouped by SERVICE
	// for the half-open window.
	GetDailyCostByService(ctx context.Context, window entity.AggregationWindow) (entity.CostResponse, error)
}

// AccountRepository resolve a conta AWS das credenciais em uso.
type AccountRepository interface {
	GetAccountID(ctx context.Context) (string, error)
}
