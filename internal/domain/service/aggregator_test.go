package service

import (
	"testing"

	"github.com/diillson/aws-cost-watch/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_SumsTotalsAndServices(t *testing.T) {
	resp := entity.CostResponse{ResultsByTime: []entity.DayResult{
		day("2026-10-01", "15.70", group{"EC2", "12.50"}, group{"S3", "3.20"}),
		day("2026-10-02", "4.00", group{"S3", "1.00"}, group{"Lambda", "3.00"}),
	}}

	result := Aggregate(resp, window("2026-10-01", "2026-10-03"))

	assert.True(t, result.TotalCost.Equal(dec("19.70")), "total %s", result.TotalCost)
	assert.True(t, result.PerServiceTotals["EC2"].Equal(dec("12.50")))
	assert.True(t, result.PerServiceTotals["S3"].Equal(dec("4.20")))
	assert.True(t, result.PerServiceTotals["Lambda"].Equal(dec("3.00")))
	assert.Equal(t, []string{"EC2", "S3", "Lambda"}, result.ServiceOrder)
	assert.Equal(t, 4, result.RecordCount)
	require.Len(t, result.DailyTotals, 2)
	assert.True(t, result.DailyTotals[1].Cost.Equal(dec("4")))
	assert.True(t, result.GroupTotal().Equal(result.TotalCost))
}

func TestAggregate_TotalsDivergeWithoutReconciliation(t *testing.T) {
	// Declared day total disagrees with the sum of its groups.
	resp := entity.CostResponse{ResultsByTime: []entity.DayResult{
		day("2026-10-01", "10.00", group{"EC2", "7.00"}, group{"S3", "2.99"}),
	}}

	result := Aggregate(resp, window("2026-10-01", "2026-10-02"))

	assert.True(t, result.TotalCost.Equal(dec("10.00")))
	assert.True(t, result.GroupTotal().Equal(dec("9.99")))
}

func TestAggregate_MalformedAmountsCountAsZero(t *testing.T) {
	resp := entity.CostResponse{ResultsByTime: []entity.DayResult{
		day("2026-10-01", "", group{"EC2", "abc"}, group{"S3", "1.5"}),
		day("2026-10-02", "not-a-number", group{"EC2", ""}),
		{TimePeriod: entity.DateInterval{Start: "2026-10-03"}, Groups: []entity.GroupResult{{Keys: []string{"RDS"}}}},
	}}

	result := Aggregate(resp, window("2026-10-01", "2026-10-04"))

	assert.True(t, result.TotalCost.IsZero())
	assert.True(t, result.PerServiceTotals["EC2"].IsZero())
	assert.True(t, result.PerServiceTotals["S3"].Equal(dec("1.5")))
	assert.True(t, result.PerServiceTotals["RDS"].IsZero())
	assert.Equal(t, 4, result.RecordCount)
}

func TestAggregate_EmptyResponse(t *testing.T) {
	result := Aggregate(entity.CostResponse{}, window("2026-10-01", "2026-10-02"))

	assert.True(t, result.TotalCost.IsZero())
	assert.Empty(t, result.PerServiceTotals)
	assert.Zero(t, result.RecordCount)
	assert.Empty(t, TopServices(result, 5))
}

func TestAggregate_RepeatedAdditionHasNoDrift(t *testing.T) {
	var days []entity.DayResult
	for i := 0; i < 1000; i++ {
		days = append(days, day("2026-10-01", "0.1", group{"S3", "0.1"}))
	}

	result := Aggregate(entity.CostResponse{ResultsByTime: days}, window("2026-10-01", "2026-10-02"))

	assert.Equal(t, "100", result.TotalCost.String())
	assert.Equal(t, "100", result.PerServiceTotals["S3"].String())
}
