package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	"github.com/diillson/aws-cost-watch/internal/domain/entity"
	"github.com/diillson/aws-cost-watch/internal/domain/repository"
	"github.com/diillson/aws-cost-watch/internal/domain/service"
	"github.com/jung-kurt/gofpdf"
)

// ReportRendererImpl implementa o ReportRenderer.
type ReportRendererImpl struct {
	dailyKey     string
	dashboardKey string
	now          func() time.Time
}

// NewReportRenderer cria uma nova implementação do ReportRenderer. Chaves
// vazias usam os padrões do serviço.
func NewReportRenderer(dailyKey, dashboardKey string) repository.ReportRenderer {
	if dailyKey == "" {
		dailyKey = service.DefaultDailyReportKey
	}
	if dashboardKey == "" {
		dashboardKey = service.DefaultDashboardKey
	}
	return &ReportRendererImpl{
		dailyKey:     dailyKey,
		dashboardKey: dashboardKey,
		now:          time.Now,
	}
}

// --- Relatório diário (JSON bruto) ---

type metricDoc struct {
	Amount json.Number `json:"Amount"`
	Unit   string      `json:"Unit,omitempty"`
}

type groupDoc struct {
	Keys    []string             `json:"Keys"`
	Metrics map[string]metricDoc `json:"Metrics"`
}

type dayDoc struct {
	TimePeriod entity.DateInterval  `json:"TimePeriod"`
	Total      map[string]metricDoc `json:"Total"`
	Groups     []groupDoc           `json:"Groups"`
	Estimated  bool                 `json:"Estimated"`
}

type responseDoc struct {
	GroupDefinitions []entity.GroupDefinition `json:"GroupDefinitions"`
	ResultsByTime    []dayDoc                 `json:"ResultsByTime"`
}

// RenderDailyJSON serializa a resposta bruta do billing, com os valores
// monetários emitidos como números JSON.
func (r *ReportRendererImpl) RenderDailyJSON(resp entity.CostResponse) (entity.ReportArtifact, error) {
	doc := responseDoc{
		GroupDefinitions: resp.GroupDefinitions,
		ResultsByTime:    make([]dayDoc, 0, len(resp.ResultsByTime)),
	}
	if doc.GroupDefinitions == nil {
		doc.GroupDefinitions = []entity.GroupDefinition{}
	}

	for _, day := range resp.ResultsByTime {
		dd := dayDoc{
			TimePeriod: day.TimePeriod,
			Total:      toMetricDocs(day.Total),
			Groups:     make([]groupDoc, 0, len(day.Groups)),
			Estimated:  day.Estimated,
		}
		for _, g := range day.Groups {
			dd.Groups = append(dd.Groups, groupDoc{Keys: g.Keys, Metrics: toMetricDocs(g.Metrics)})
		}
		doc.ResultsByTime = append(doc.ResultsByTime, dd)
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return entity.ReportArtifact{}, fmt.Errorf("error encoding daily report JSON: %w", err)
	}

	return entity.ReportArtifact{Key: r.dailyKey, Body: buf.Bytes(), ContentType: entity.ContentTypeJSON}, nil
}

func toMetricDocs(metrics map[string]entity.MetricValue) map[string]metricDoc {
	docs := make(map[string]metricDoc, len(metrics))
	for name, m := range metrics {
		docs[name] = metricDoc{
			Amount: json.Number(entity.ParseAmount(m.Amount).String()),
			Unit:   m.Unit,
		}
	}
	return docs
}

// --- Relatório semanal (CSV long-format) ---

// RenderWeeklyCSV emite uma linha por (dia, serviço, valor), usando o valor
// exatamente como veio da API.
func (r *ReportRendererImpl) RenderWeeklyCSV(resp entity.CostResponse, prefix string, day time.Time) (entity.ReportArtifact, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Date", "Service", "UnblendedCost"}); err != nil {
		return entity.ReportArtifact{}, fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, d := range resp.ResultsByTime {
		for _, g := range d.Groups {
			record := []string{
				d.TimePeriod.Start,
				g.Service(),
				g.Metrics[entity.MetricUnblendedCost].Amount,
			}
			if err := writer.Write(record); err != nil {
				return entity.ReportArtifact{}, fmt.Errorf("error writing CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return entity.ReportArtifact{}, fmt.Errorf("error flushing CSV: %w", err)
	}

	return entity.ReportArtifact{
		Key:         service.WeeklyReportKey(prefix, day, "csv"),
		Body:        buf.Bytes(),
		ContentType: entity.ContentTypeCSV,
	}, nil
}

// --- Dashboard (HTML) ---

var dashboardTemplate = template.Must(template.New("dashboard").Parse(
	`<html><body><h2>Weekly cost summary</h2><p>{{range $i, $line := .}}{{if $i}}<br/>
{{end}}{{$line}}{{end}}</p></body></html>`))

// RenderDashboardHTML gera a página estática com o top 5 de serviços.
// O texto é escapado pelo html/template.
func (r *ReportRendererImpl) RenderDashboardHTML(result entity.AggregationResult) (entity.ReportArtifact, error) {
	lines := service.SummaryLines(service.TopServices(result, entity.MaxTopServices))

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, lines); err != nil {
		return entity.ReportArtifact{}, fmt.Errorf("error rendering dashboard HTML: %w", err)
	}

	return entity.ReportArtifact{Key: r.dashboardKey, Body: buf.Bytes(), ContentType: entity.ContentTypeHTML}, nil
}

// --- Relatório semanal (PDF) ---

// maxPDFServiceName limita o nome do serviço na coluna do PDF, em runes.
const maxPDFServiceName = 80

// RenderWeeklyPDF gera o PDF com o total da janela e o custo de todos os
// serviços, do maior para o menor.
func (r *ReportRendererImpl) RenderWeeklyPDF(result entity.AggregationResult, prefix string, day time.Time) (entity.ReportArtifact, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("  Weekly cost report %s", service.ISOYearWeek(day))), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Period: %s", result.Window.String())), "", 1, "L", true, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("Total: %s", service.DollarsGrouped(result.TotalCost))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Cost By Service")
	pdf.Ln(7)
	pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
	pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	for _, svc := range service.TopServices(result, len(result.ServiceOrder)) {
		pdf.CellFormat(140, 6, tr(truncateName(svc.ServiceName, maxPDFServiceName)), "", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, tr(service.DollarsGrouped(svc.Cost)), "", 1, "R", false, 0, "")
	}

	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Generated by AWS Cost Watch | %s", r.now().UTC().Format(entity.DateLayout))
	pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return entity.ReportArtifact{}, fmt.Errorf("error writing PDF: %w", err)
	}

	return entity.ReportArtifact{
		Key:         service.WeeklyReportKey(prefix, day, "pdf"),
		Body:        buf.Bytes(),
		ContentType: entity.ContentTypePDF,
	}, nil
}

// truncateName corta name em no máximo limit runes, terminando com "...".
func truncateName(name string, limit int) string {
	runes := []rune(name)
	if len(runes) <= limit {
		return name
	}
	return string(runes[:limit-3]) + "..."
}
