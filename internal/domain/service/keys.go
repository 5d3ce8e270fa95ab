package service

import (
	"fmt"
	"strings"
	"time"
)

// DefaultDailyReportKey é a chave fixa do relatório diário ("último dia").
const DefaultDailyReportKey = "reports/daily/daily.json"

// DefaultDashboardKey é a chave fixa da página de resumo ("mais recente").
const DefaultDashboardKey = "dashboard/index.html"

// ISOYearWeek formata a semana ISO-8601 de day como "2026-W42".
func ISOYearWeek(day time.Time) string {
	year, week := day.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// WeeklyReportKey returns the periodic report key for day. Runs within the
// same ISO week share a key; a new week gets a new one.
func WeeklyReportKey(prefix string, day time.Time, ext string) string {
	name := ISOYearWeek(day) + "." + ext
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
