package repository

import (
	"time"

	"github.com/diillson/aws-cost-watch/internal/domain/entity"
)

// ReportRenderer renders aggregation inputs into storable artifacts.
type ReportRenderer interface {
	RenderDailyJSON(resp entity.CostResponse) (entity.ReportArtifact, error)
	RenderWeeklyCSV(resp entity.CostResponse, prefix string, day time.Time) (entity.ReportArtifact, error)
	RenderDashboardHTML(result entity.AggregationResult) (entity.ReportArtifact, error)
	RenderWeeklyPDF(result entity.AggregationResult, prefix string, day time.Time) (entity.ReportArtifact, error)
}
