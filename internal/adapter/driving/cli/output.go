package cli

import (
	"fmt"
	"strings"

	"github.com/diillson/aws-cost-watch/internal/domain/entity"
	"github.com/diillson/aws-cost-watch/internal/domain/service"
	"github.com/diillson/aws-cost-watch/internal/shared/types"
	"github.com/diillson/aws-cost-watch/pkg/console"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// printOutcome exibe o resultado da execução em uma tabela.
func (app *CLIApp) printOutcome(outcome entity.RunOutcome) {
	table := app.console.CreateTable()
	table.AddColumn("Field")
	table.AddColumn("Value")

	status := console.BrightGreen("success")
	if !outcome.Success {
		status = console.BoldRed("failed")
	}

	table.AddRow("Flow", flowTitle(outcome.Flow))
	table.AddRow("Status", status)
	table.AddRow("State", string(outcome.State))
	if outcome.AccountID != "" {
		table.AddRow("Account", outcome.AccountID)
	}
	if outcome.Flow != entity.FlowRelay {
		table.AddRow("Total cost", service.DollarsGrouped(outcome.TotalCost))
	}
	if len(outcome.ArtifactKeys) > 0 {
		table.AddRow("Artifacts", strings.Join(outcome.ArtifactKeys, "\n"))
	}
	if outcome.Flow == entity.FlowDaily {
		table.AddRow("Threshold exceeded", yesNo(outcome.ThresholdExceeded))
		table.AddRow("Alert sent", yesNo(outcome.AlertSent))
	} else {
		table.AddRow("Messages sent", outcome.MessagesSent)
	}
	if outcome.NotificationError != "" {
		table.AddRow("Notification error", console.BrightYellow(outcome.NotificationError))
	}
	if outcome.Error != "" {
		table.AddRow("Error", console.BoldRed(outcome.Error))
	}

	app.console.Println(table.Render())
}

// printServices exibe o custo por serviço da janela, em ordem decrescente.
func (app *CLIApp) printServices(result entity.AggregationResult) {
	ranked := service.TopServices(result, len(result.ServiceOrder))
	if len(ranked) == 0 {
		app.console.LogWarning("No cost data returned for %s", result.Window)
		return
	}

	table := app.console.CreateTable()
	table.AddColumn("Service")
	table.AddColumn(fmt.Sprintf("Cost (%s)", result.Window))
	for _, svc := range ranked {
		table.AddRow(svc.ServiceName, service.DollarsGrouped(svc.Cost))
	}
	table.AddRow(console.BrightCyan("Sum of services"), console.BrightCyan(service.DollarsGrouped(result.GroupTotal())))
	table.AddRow(console.BrightMagenta("Declared total"), console.BrightMagenta(service.DollarsGrouped(result.TotalCost)))

	app.console.Println(table.Render())
}

// trendPoints converte os totais diários para o gráfico de barras.
func trendPoints(result entity.AggregationResult) []types.DailyCost {
	points := make([]types.DailyCost, 0, len(result.DailyTotals))
	for _, d := range result.DailyTotals {
		points = append(points, types.DailyCost{
			Day:  d.Date.Format(entity.DateLayout),
			Cost: d.Cost.InexactFloat64(),
		})
	}
	return points
}

// flowTitle formata o nome do fluxo para exibição ("daily" -> "Daily").
func flowTitle(flow entity.Flow) string {
	return titleCaser.String(string(flow))
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
