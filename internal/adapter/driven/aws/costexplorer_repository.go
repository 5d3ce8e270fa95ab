package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/diillson/aws-cost-watch/internal/domain/entity"
	"github.com/diillson/aws-cost-watch/internal/domain/repository"
)

// maxCostPages limita a paginação caso a API devolva tokens em loop.
const maxCostPages = 50

// CostExplorerAPI is the subset of the Cost Explorer client used here.
type CostExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

// BillingRepositoryImpl implementa o BillingRepository com o Cost Explorer.
type BillingRepositoryImpl struct {
	client CostExplorerAPI
}

// NewBillingRepository cria o repositório a partir de um cliente existente.
func NewBillingRepository(client CostExplorerAPI) repository.BillingRepository {
	return &BillingRepositoryImpl{client: client}
}

// NewBillingRepositoryFromConfig cria o cliente do Cost Explorer (sempre em us-east-1).
func NewBillingRepositoryFromConfig(cfg aws.Config) repository.BillingRepository {
	ceCfg := cfg.Copy()
	ceCfg.Region = costExplorerRegion
	return NewBillingRepository(costexplorer.NewFromConfig(ceCfg))
}

// GetDailyCostByService consulta o custo diário agrupado por serviço,
// seguindo todas as páginas da resposta.
func (r *BillingRepositoryImpl) GetDailyCostByService(ctx context.Context, window entity.AggregationWindow) (entity.CostResponse, error) {
	if err := window.Validate(); err != nil {
		return entity.CostResponse{}, err
	}

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(window.Start.Format(entity.DateLayout)),
			End:   aws.String(window.End.Format(entity.DateLayout)),
		},
		Granularity: ceTypes.GranularityDaily,
		Metrics:     []string{entity.MetricUnblendedCost},
		GroupBy: []ceTypes.GroupDefinition{
			{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String("SERVICE")},
		},
	}

	var resp entity.CostResponse
	for page := 0; page < maxCostPages; page++ {
		out, err := r.client.GetCostAndUsage(ctx, input)
		if err != nil {
			return entity.CostResponse{}, fmt.Errorf("failed to get cost and usage for %s: %w", window, err)
		}
		if out == nil {
			break
		}

		if page == 0 {
			resp.GroupDefinitions = convertGroupDefinitions(out.GroupDefinitions)
		}
		resp.ResultsByTime = append(resp.ResultsByTime, convertResultsByTime(out.ResultsByTime)...)

		if out.NextPageToken == nil || *out.NextPageToken == "" {
			break
		}
		input.NextPageToken = out.NextPageToken
	}

	return resp, nil
}

func convertGroupDefinitions(defs []ceTypes.GroupDefinition) []entity.GroupDefinition {
	result := make([]entity.GroupDefinition, 0, len(defs))
	for _, d := range defs {
		result = append(result, entity.GroupDefinition{
			Type: string(d.Type),
			Key:  aws.ToString(d.Key),
		})
	}
	return result
}

func convertResultsByTime(results []ceTypes.ResultByTime) []entity.DayResult {
	days := make([]entity.DayResult, 0, len(results))
	for _, rbt := range results {
		day := entity.DayResult{
			Total:     convertMetrics(rbt.Total),
			Groups:    make([]entity.GroupResult, 0, len(rbt.Groups)),
			Estimated: rbt.Estimated,
		}
		if rbt.TimePeriod != nil {
			day.TimePeriod = entity.DateInterval{
				Start: aws.ToString(rbt.TimePeriod.Start),
				End:   aws.ToString(rbt.TimePeriod.End),
			}
		}
		for _, g := range rbt.Groups {
			day.Groups = append(day.Groups, entity.GroupResult{
				Keys:    g.Keys,
				Metrics: convertMetrics(g.Metrics),
			})
		}
		days = append(days, day)
	}
	return days
}

func convertMetrics(metrics map[string]ceTypes.MetricValue) map[string]entity.MetricValue {
	result := make(map[string]entity.MetricValue, len(metrics))
	for name, m := range metrics {
		result[name] = entity.MetricValue{
			Amount: aws.ToString(m.Amount),
			Unit:   aws.ToString(m.Unit),
		}
	}
	return result
}
