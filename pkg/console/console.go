package console

import (
	"fmt"
	"math"
	"strings"

	"github.com/diillson/aws-cost-watch/internal/shared/types"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

// Console é uma implementação do ConsoleInterface.
type Console struct {
	plain bool
	quiet bool
}

// NewConsole cria um Console interativo, com cores e spinners.
func NewConsole() *Console {
	return &Console{}
}

// NewPlainConsole cria um Console sem estilos nem spinners, para logs do
// CloudWatch ou saída redirecionada. quiet suprime as mensagens de info.
func NewPlainConsole(quiet bool) *Console {
	pterm.DisableStyling()
	color.NoColor = true
	return &Console{plain: true, quiet: quiet}
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	if c.quiet {
		return
	}
	pterm.Info.Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogError registra uma mensagem de erro.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	if c.quiet {
		return
	}
	pterm.Success.Printfln(format, a...)
}

// statusHandle é uma implementação do StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada. No modo
// plain apenas registra a mensagem.
func (c *Console) Status(message string) types.StatusHandle {
	if c.plain {
		c.LogInfo("%s", message)
		return &statusHandle{}
	}
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

// Cores predefinidas para uso consistente
var (
	BrightMagenta = color.New(color.FgMagenta, color.Bold).SprintFunc()
	BoldRed       = color.New(color.FgRed, color.Bold).SprintFunc()
	BrightGreen   = color.New(color.FgGreen, color.Bold).SprintFunc()
	BrightYellow  = color.New(color.FgYellow, color.Bold).SprintFunc()
	BrightCyan    = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// Update atualiza a mensagem de status.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop pára o spinner de status.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		_ = h.spinner.Stop()
	}
}

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adiciona uma coluna à tabela.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adiciona uma linha à tabela.
func (t *Table) AddRow(cells ...interface{}) {
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}

// changeLabel descreve a variação de prev para cur. up indica aumento.
func changeLabel(prev, cur float64) (label string, up, flat bool) {
	if prev < 0.01 {
		if cur < 0.01 {
			return "0%", false, true
		}
		return "N/A", true, false
	}

	changePercent := ((cur - prev) / prev) * 100.0
	switch {
	case math.Abs(changePercent) < 0.01:
		return "0%", false, true
	case changePercent > 999:
		return ">+999%", true, false
	case changePercent < -999:
		return ">-999%", false, false
	case changePercent > 0:
		return fmt.Sprintf("+%.2f%%", changePercent), true, false
	default:
		return fmt.Sprintf("%.2f%%", changePercent), false, false
	}
}

// DisplayTrendBars exibe o custo diário em barras, com a variação dia a dia.
func (c *Console) DisplayTrendBars(dailyCosts []types.DailyCost) {
	maxCost := 0.0
	for _, cost := range dailyCosts {
		if cost.Cost > maxCost {
			maxCost = cost.Cost
		}
	}

	if maxCost == 0 {
		pterm.Warning.Println("All costs are $0.00 for this period")
		return
	}

	tableData := pterm.TableData{
		{"Day", "Cost", "", "DoD Change"},
	}

	for i, dc := range dailyCosts {
		barLength := int((dc.Cost / maxCost) * 40)
		if barLength < 0 {
			barLength = 0
		}
		bar := strings.Repeat("█", barLength)

		barColor := pterm.FgBlue.Sprint(bar)
		change := ""

		if i > 0 {
			label, up, flat := changeLabel(dailyCosts[i-1].Cost, dc.Cost)
			style := pterm.FgGreen
			if flat {
				style = pterm.FgYellow
			} else if up {
				style = pterm.FgRed
			}
			change = style.Sprint(label)
			barColor = style.Sprint(bar)
		}

		tableData = append(tableData, []string{
			dc.Day,
			fmt.Sprintf("$%.2f", dc.Cost),
			barColor,
			change,
		})
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(tableData)
	renderedTable, _ := table.Srender()

	panel := pterm.DefaultBox.WithTitle("AWS Daily Cost Trend").WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(renderedTable)

	fmt.Println("\n" + panel)
}
