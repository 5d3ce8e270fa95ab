package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MetricUnblendedCost é a métrica consultada no Cost Explorer.
const MetricUnblendedCost = "UnblendedCost"

// DateLayout é o formato de data usado pelo Cost Explorer e pelos relatórios.
const DateLayout = "2006-01-02"

// MetricValue mirrors a Cost Explorer metric value. Amount stays exactly as
// the API returned it; use ParseAmount to read it as a decimal.
type MetricValue struct {
	Amount string `json:"Amount"`
	Unit   string `json:"Unit,omitempty"`
}

// DateInterval é um intervalo [Start, End) no formato YYYY-MM-DD.
type DateInterval struct {
	Start string `json:"Start"`
	End   string `json:"End"`
}

// GroupResult é o custo de um único grupo (serviço) em um dia.
type GroupResult struct {
	Keys    []string               `json:"Keys"`
	Metrics map[string]MetricValue `json:"Metrics"`
}

// Service retorna a primeira chave do grupo, ou "" quando ausente.
func (g GroupResult) Service() string {
	if len(g.Keys) == 0 {
		return ""
	}
	return g.Keys[0]
}

// UnblendedCost returns the group amount, zero when missing or malformed.
func (g GroupResult) UnblendedCost() decimal.Decimal {
	return ParseAmount(g.Metrics[MetricUnblendedCost].Amount)
}

// DayResult represents one entry of ResultsByTime.
type DayResult struct {
	TimePeriod DateInterval           `json:"TimePeriod"`
	Total      map[string]MetricValue `json:"Total"`
	Groups     []GroupResult          `json:"Groups"`
	Estimated  bool                   `json:"Estimated"`
}

// TotalUnblendedCost retorna o total declarado do dia (campo Total).
func (d DayResult) TotalUnblendedCost() decimal.Decimal {
	return ParseAmount(d.Total[MetricUnblendedCost].Amount)
}

// GroupDefinition descreve o agrupamento pedido na consulta.
type GroupDefinition struct {
	Type string `json:"Type"`
	Key  string `json:"Key"`
}

// CostResponse is the normalized, untrusted result of a billing query.
type CostResponse struct {
	GroupDefinitions []GroupDefinition `json:"GroupDefinitions"`
	ResultsByTime    []DayResult       `json:"ResultsByTime"`
}

// CostRecord is a single (date, service, amount) triple.
type CostRecord struct {
	Date    time.Time       `json:"date"`
	Service string          `json:"service"`
	Amount  decimal.Decimal `json:"amount"`
}

// Records flattens the response into cost records in day/group order.
// Days with an unparseable start date keep a zero Date.
func (r CostResponse) Records() []CostRecord {
	var records []CostRecord
	for _, day := range r.ResultsByTime {
		date, _ := time.Parse(DateLayout, day.TimePeriod.Start)
		for _, group := range day.Groups {
			records = append(records, CostRecord{
				Date:    date,
				Service: group.Service(),
				Amount:  group.UnblendedCost(),
			})
		}
	}
	return records
}

// ParseAmount converte um valor monetário vindo da API. Valores ausentes ou
// malformados contam como zero; créditos negativos são mantidos.
func ParseAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// ServiceCost represents a cost amount for a specific AWS service.
type ServiceCost struct {
	ServiceName string          `json:"service_name"`
	Cost        decimal.Decimal `json:"cost"`
}

// DailyCost é o custo total declarado para um dia.
type DailyCost struct {
	Date time.Time       `json:"date"`
	Cost decimal.Decimal `json:"cost"`
}
