package entity

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// GranularityDaily é a única granularidade suportada.
const GranularityDaily = "DAILY"

// AggregationWindow é um intervalo de datas [Start, End). O Cost Explorer
// trata End como exclusivo, então quem chama passa o último dia + 1.
type AggregationWindow struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Granularity string    `json:"granularity"`
}

// NewDailyWindow truncates both bounds to UTC calendar dates.
func NewDailyWindow(start, end time.Time) AggregationWindow {
	return AggregationWindow{
		Start:       truncateDay(start),
		End:         truncateDay(end),
		Granularity: GranularityDaily,
	}
}

// Validate verifica o invariante start < end.
func (w AggregationWindow) Validate() error {
	if !w.Start.Before(w.End) {
		return errors.New("aggregation window start must be before end")
	}
	return nil
}

// String formata o intervalo como "YYYY-MM-DD to YYYY-MM-DD".
func (w AggregationWindow) String() string {
	return w.Start.Format(DateLayout) + " to " + w.End.Format(DateLayout)
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AggregationResult holds the window totals produced by the aggregator.
//
// TotalCost comes from the per-day Total field and PerServiceTotals from the
// per-day Groups; the two are accumulated independently and may differ when
// the upstream data disagrees with itself. ServiceOrder keeps the order in
// which each service was first seen.
type AggregationResult struct {
	Window           AggregationWindow          `json:"window"`
	TotalCost        decimal.Decimal            `json:"total_cost"`
	PerServiceTotals map[string]decimal.Decimal `json:"per_service_totals"`
	ServiceOrder     []string                   `json:"-"`
	RecordCount      int                        `json:"record_count"`
	DailyTotals      []DailyCost                `json:"daily_totals,omitempty"`
}

// GroupTotal soma PerServiceTotals na ordem de primeira ocorrência.
func (r AggregationResult) GroupTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, svc := range r.ServiceOrder {
		sum = sum.Add(r.PerServiceTotals[svc])
	}
	return sum
}
