package service

import (
	"testing"

	"github.com/diillson/aws-cost-watch/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopServices_LimitsAndSortsDescending(t *testing.T) {
	resp := entity.CostResponse{ResultsByTime: []entity.DayResult{
		day("2026-10-01", "28",
			group{"A", "1"}, group{"B", "7"}, group{"C", "3"},
			group{"D", "6"}, group{"E", "2"}, group{"F", "5"}, group{"G", "4"}),
	}}
	result := Aggregate(resp, window("2026-10-01", "2026-10-02"))

	top := TopServices(result, 5)

	require.Len(t, top, 5)
	var names []string
	for _, svc := range top {
		names = append(names, svc.ServiceName)
	}
	assert.Equal(t, []string{"B", "D", "F", "G", "C"}, names)
}

func TestTopServices_TiesKeepEncounterOrder(t *testing.T) {
	resp := entity.CostResponse{ResultsByTime: []entity.DayResult{
		day("2026-10-01", "9", group{"Zeta", "3"}, group{"Alpha", "3"}, group{"Mid", "3"}),
	}}
	result := Aggregate(resp, window("2026-10-01", "2026-10-02"))

	for i := 0; i < 20; i++ {
		top := TopServices(result, 5)
		require.Len(t, top, 3)
		assert.Equal(t, "Zeta", top[0].ServiceName)
		assert.Equal(t, "Alpha", top[1].ServiceName)
		assert.Equal(t, "Mid", top[2].ServiceName)
	}
}

func TestTopServices_NonPositiveN(t *testing.T) {
	result := Aggregate(entity.CostResponse{ResultsByTime: []entity.DayResult{
		day("2026-10-01", "1", group{"A", "1"}),
	}}, window("2026-10-01", "2026-10-02"))

	assert.Nil(t, TopServices(result, 0))
}
