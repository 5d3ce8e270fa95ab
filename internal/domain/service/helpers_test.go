package service

import (
	"time"

	"github.com/diillson/aws-cost-watch/internal/domain/entity"
	"github.com/shopspring/decimal"
)

type group struct {
	service string
	amount  string
}

func day(start, total string, groups ...group) entity.DayResult {
	d := entity.DayResult{
		TimePeriod: entity.DateInterval{Start: start},
		Total:      map[string]entity.MetricValue{},
	}
	if total != "" {
		d.Total[entity.MetricUnblendedCost] = entity.MetricValue{Amount: total, Unit: "USD"}
	}
	for _, g := range groups {
		d.Groups = append(d.Groups, entity.GroupResult{
			Keys:    []string{g.service},
			Metrics: map[string]entity.MetricValue{entity.MetricUnblendedCost: {Amount: g.amount, Unit: "USD"}},
		})
	}
	return d
}

func date(s string) time.Time {
	t, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func window(start, end string) entity.AggregationWindow {
	return entity.NewDailyWindow(date(start), date(end))
}
