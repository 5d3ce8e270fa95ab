package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/diillson/aws-cost-watch/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Assuntos usados nas publicações.
const (
	SubjectWeeklySummary = "Weekly Cost Summary"
	SubjectDailyError    = "Cost Collector Error"
	SubjectWeeklyError   = "Weekly Report Error"
	DefaultRelaySubject  = "AWS Notification"
)

// Format renders a notification event as chat/transport text. Unknown
// event types are dumped as JSON instead of failing.
func Format(ev entity.NotificationEvent) string {
	switch e := ev.(type) {
	case entity.AlertEvent:
		return formatAlert(e)
	case *entity.AlertEvent:
		return formatAlert(*e)
	case entity.RelayedEvent:
		return formatRelayed(e)
	case entity.WeeklySummaryEvent:
		return formatWeeklySummary(e)
	case entity.UnknownEvent:
		return formatUnknown(e.Raw)
	default:
		raw, _ := json.Marshal(ev)
		return formatUnknown(raw)
	}
}

// AlertSubject retorna o assunto da publicação de um alerta.
func AlertSubject(ev entity.AlertEvent) string {
	return "AWS Cost Alert: " + Dollars(ev.TotalCost)
}

// ErrorMessage monta o corpo da notificação de erro de um fluxo.
func ErrorMessage(flow entity.Flow, err error) string {
	if flow == entity.FlowWeekly {
		return fmt.Sprintf("Error building weekly cost report: %v", err)
	}
	return fmt.Sprintf("Error collecting cost data: %v", err)
}

// Dollars formats an amount as "$12.50".
func Dollars(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// DollarsGrouped formats an amount with thousands separators, "$1,234.50".
// Negative amounts keep the sign after the symbol, "$-1,234.50".
func DollarsGrouped(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	return "$" + sign + b.String() + "." + frac
}

func formatAlert(ev entity.AlertEvent) string {
	var b strings.Builder
	b.WriteString("⚠️ Daily Cost Alert\n\n")
	fmt.Fprintf(&b, "Total Cost: %s\n", Dollars(ev.TotalCost))
	fmt.Fprintf(&b, "Threshold: %s\n", Dollars(ev.Threshold))
	fmt.Fprintf(&b, "Date: %s\n\n", ev.WindowStart.Format(entity.DateLayout))
	b.WriteString("Top Services:\n")
	for _, svc := range ev.TopServices {
		fmt.Fprintf(&b, "  • %s: %s\n", svc.ServiceName, Dollars(svc.Cost))
	}
	return b.String()
}

func formatRelayed(ev entity.RelayedEvent) string {
	subject := ev.Subject
	if subject == "" {
		subject = DefaultRelaySubject
	}
	formatted := fmt.Sprintf("*%s*\n\n%s\n\n", subject, ev.Message)
	if ev.Timestamp != "" {
		formatted += fmt.Sprintf("_Time: %s_", ev.Timestamp)
	}
	return formatted
}

// SummaryLines retorna as linhas do resumo semanal (cabeçalho + top serviços).
func SummaryLines(top []entity.ServiceCost) []string {
	lines := []string{"Weekly cost summary (top services):"}
	for _, svc := range top {
		lines = append(lines, fmt.Sprintf("%s: %s", svc.ServiceName, DollarsGrouped(svc.Cost)))
	}
	return lines
}

func formatWeeklySummary(ev entity.WeeklySummaryEvent) string {
	return strings.Join(SummaryLines(ev.TopServices), "\n")
}

func formatUnknown(raw []byte) string {
	var pretty bytes.Buffer
	body := string(raw)
	if err := json.Indent(&pretty, raw, "", "  "); err == nil {
		body = pretty.String()
	}
	return "Unknown event:\n```\n" + body + "\n```"
}
