package service

import (
	"sort"

	"github.com/diillson/aws-cost-watch/internal/domain/entity"
)

// TopServices returns at most n services sorted by cost, highest first.
// Equal costs keep the order in which the services were first seen.
func TopServices(result entity.AggregationResult, n int) []entity.ServiceCost {
	if n <= 0 {
		return nil
	}

	ranked := make([]entity.ServiceCost, 0, len(result.ServiceOrder))
	for _, svc := range result.ServiceOrder {
		ranked = append(ranked, entity.ServiceCost{
			ServiceName: svc,
			Cost:        result.PerServiceTotals[svc],
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Cost.GreaterThan(ranked[j].Cost)
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
