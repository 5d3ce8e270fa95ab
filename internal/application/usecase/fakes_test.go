package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/diillson/aws-cost-watch/internal/domain/entity"
	"github.com/diillson/aws-cost-watch/internal/shared/types"
)

var fixedNow = time.Date(2026, 10, 15, 6, 30, 0, 0, time.UTC)

type fakeBilling struct {
	resp    entity.CostResponse
	err     error
	windows []entity.AggregationWindow
}

func (f *fakeBilling) GetDailyCostByService(_ context.Context, w entity.AggregationWindow) (entity.CostResponse, error) {
	f.windows = append(f.windows, w)
	return f.resp, f.err
}

type fakeArtifacts struct {
	objects map[string][]byte
	types   map[string]string
	keys    []string
	failKey string
	err     error
}

func newFakeArtifacts() *fakeArtifacts {
	return &fakeArtifacts{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeArtifacts) Put(_ context.Context, key string, body []byte, contentType string) error {
	if f.err != nil && (f.failKey == "" || f.failKey == key) {
		return f.err
	}
	f.objects[key] = append([]byte(nil), body...)
	f.types[key] = contentType
	f.keys = append(f.keys, key)
	return nil
}

func (f *fakeArtifacts) Location(key string) string {
	return "mem://" + key
}

type published struct {
	subject string
	message string
}

type fakeNotifier struct {
	sent []published
	err  error
}

func (f *fakeNotifier) Publish(_ context.Context, subject, message string) error {
	f.sent = append(f.sent, published{subject, message})
	return f.err
}

type fakeChat struct {
	texts []string
	modes []string
	// errs[i] é o erro devolvido na i-ésima chamada
	errs []error
}

func (f *fakeChat) SendMessage(_ context.Context, text, parseMode string) error {
	f.texts = append(f.texts, text)
	f.modes = append(f.modes, parseMode)
	if i := len(f.texts) - 1; i < len(f.errs) {
		return f.errs[i]
	}
	return nil
}

type fakeAccounts struct {
	id  string
	err error
}

func (f fakeAccounts) GetAccountID(context.Context) (string, error) { return f.id, f.err }

type fakeConsole struct {
	infos    []string
	warnings []string
	errors   []string
}

func (c *fakeConsole) Print(...interface{})          {}
func (c *fakeConsole) Printf(string, ...interface{}) {}
func (c *fakeConsole) Println(...interface{})        {}

func (c *fakeConsole) LogInfo(format string, a ...interface{}) {
	c.infos = append(c.infos, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogWarning(format string, a ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogError(format string, a ...interface{}) {
	c.errors = append(c.errors, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogSuccess(format string, a ...interface{}) {
	c.infos = append(c.infos, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) Status(string) types.StatusHandle   { return nopStatus{} }
func (c *fakeConsole) CreateTable() types.TableInterface  { return nil }
func (c *fakeConsole) DisplayTrendBars([]types.DailyCost) {}

type nopStatus struct{}

func (nopStatus) Update(string) {}
func (nopStatus) Stop()         {}

func usd(amount string) map[string]entity.MetricValue {
	return map[string]entity.MetricValue{entity.MetricUnblendedCost: {Amount: amount, Unit: "USD"}}
}

func groupOf(service, amount string) entity.GroupResult {
	return entity.GroupResult{Keys: []string{service}, Metrics: usd(amount)}
}

// scenarioResponse é o dia com EC2 12.50 e S3 3.20.
func scenarioResponse() entity.CostResponse {
	return entity.CostResponse{
		GroupDefinitions: []entity.GroupDefinition{{Type: "DIMENSION", Key: "SERVICE"}},
		ResultsByTime: []entity.DayResult{{
			TimePeriod: entity.DateInterval{Start: "2026-10-14", End: "2026-10-15"},
			Total:      usd("15.70"),
			Groups: []entity.GroupResult{
				groupOf("Amazon Elastic Compute Cloud - Compute", "12.50"),
				groupOf("Amazon Simple Storage Service", "3.20"),
			},
		}},
	}
}
