package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/diillson/aws-cost-watch/internal/adapter/driven/config"
	"github.com/diillson/aws-cost-watch/internal/adapter/driving/lambda"
	"github.com/diillson/aws-cost-watch/internal/adapter/wiring"
	"github.com/diillson/aws-cost-watch/internal/domain/entity"
	"github.com/diillson/aws-cost-watch/internal/domain/repository"
	"github.com/diillson/aws-cost-watch/internal/shared/types"
	"github.com/diillson/aws-cost-watch/pkg/console"
	"github.com/diillson/aws-cost-watch/pkg/version"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd    *cobra.Command
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
	version    string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version:    versionStr,
		configRepo: config.NewConfigRepository(),
	}

	rootCmd := &cobra.Command{
		Use:           "cost-watch",
		Short:         "AWS daily cost reports, spike alerts and chat relay",
		Version:       version.FormatVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			quiet, _ := cmd.Flags().GetBool("quiet")
			if quiet || cmd.Name() == "lambda" {
				app.console = console.NewPlainConsole(quiet)
			} else {
				app.console = console.NewConsole()
			}
		},
	}

	rootCmd.SetVersionTemplate(`{{printf "AWS Cost Watch version: %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.String("env-file", "", "Path to a .env file (default: ./.env when present)")
	flags.StringP("profile", "p", "", "AWS profile to use")
	flags.StringP("region", "r", "", "AWS region for S3, SNS and STS clients")
	flags.String("storage", "", "Report storage backend: s3 or local")
	flags.StringP("bucket", "b", "", "S3 bucket for reports (overrides REPORT_BUCKET)")
	flags.StringP("dir", "d", "", "Directory for reports when --storage=local")
	flags.Duration("timeout", 5*time.Minute, "Maximum duration of a run")
	flags.BoolP("quiet", "q", false, "Only print warnings, errors and the final result")

	dailyCmd := &cobra.Command{
		Use:   "daily",
		Short: "Collect yesterday's costs, save the daily report and alert above the threshold",
		RunE:  app.runDaily,
	}
	dailyCmd.Flags().Float64("threshold", 0, "Daily cost threshold in USD (overrides DAILY_THRESHOLD)")

	weeklyCmd := &cobra.Command{
		Use:   "weekly",
		Short: "Export the last N days of costs as CSV, with optional dashboard and PDF",
		RunE:  app.runWeekly,
	}
	weeklyCmd.Flags().Int("days", 0, "Number of days to export (overrides DAYS)")
	weeklyCmd.Flags().Bool("html", false, "Also write the dashboard HTML page")
	weeklyCmd.Flags().Bool("pdf", false, "Also write a PDF report")
	weeklyCmd.Flags().Bool("trend", false, "Display the daily cost trend after the run")

	relayCmd := &cobra.Command{
		Use:   "relay",
		Short: "Forward a notification event (file or stdin) or a NATS subject to Telegram",
		RunE:  app.runRelay,
	}
	relayCmd.Flags().StringP("event-file", "e", "-", "JSON event to relay ('-' reads stdin)")
	relayCmd.Flags().Bool("listen", false, "Consume the NATS subject until interrupted")

	lambdaCmd := &cobra.Command{
		Use:       "lambda [daily|weekly|relay]",
		Short:     "Start the AWS Lambda runtime for one of the functions",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{lambda.FunctionDaily, lambda.FunctionWeekly, lambda.FunctionRelay},
		RunE:      app.runLambda,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "AWS Cost Watch version: %s\n", version.FormatVersion())
		},
	}

	rootCmd.AddCommand(dailyCmd, weeklyCmd, relayCmd, lambdaCmd, versionCmd)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	flags := cmd.Flags()
	configFile, _ := flags.GetString("config-file")
	envFile, _ := flags.GetString("env-file")
	profile, _ := flags.GetString("profile")
	region, _ := flags.GetString("region")
	storage, _ := flags.GetString("storage")
	bucket, _ := flags.GetString("bucket")
	dir, _ := flags.GetString("dir")
	timeout, _ := flags.GetDuration("timeout")
	quiet, _ := flags.GetBool("quiet")

	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	args := &types.CLIArgs{
		ConfigFile: configFile,
		EnvFile:    envFile,
		Profile:    profile,
		Region:     region,
		Storage:    storage,
		Bucket:     bucket,
		Dir:        dir,
		Timeout:    timeout,
		Quiet:      quiet,
	}

	if flags.Lookup("threshold") != nil && flags.Changed("threshold") {
		threshold, _ := flags.GetFloat64("threshold")
		args.Threshold = &threshold
	}
	if flags.Lookup("days") != nil && flags.Changed("days") {
		days, _ := flags.GetInt("days")
		args.Days = &days
	}
	if flags.Lookup("html") != nil {
		args.WriteHTML, _ = flags.GetBool("html")
	}
	if flags.Lookup("pdf") != nil {
		args.WritePDF, _ = flags.GetBool("pdf")
	}
	if flags.Lookup("event-file") != nil {
		args.EventFile, _ = flags.GetString("event-file")
	}

	return args, nil
}

// loadConfig aplica, em ordem: padrões, arquivo, .env/ambiente e flags.
func (app *CLIApp) loadConfig(args *types.CLIArgs) (*types.Config, error) {
	if err := app.configRepo.LoadDotEnv(args.EnvFile); err != nil {
		return nil, err
	}

	cfg := types.DefaultConfig()
	if args.ConfigFile != "" {
		loaded, err := app.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := app.configRepo.LoadEnv(cfg); err != nil {
		return nil, err
	}

	applyArgs(cfg, args)
	return cfg, nil
}

func applyArgs(cfg *types.Config, args *types.CLIArgs) {
	if args.Profile != "" {
		cfg.Profile = args.Profile
	}
	if args.Region != "" {
		cfg.Region = args.Region
	}
	if args.Storage != "" {
		cfg.Storage = args.Storage
	}
	if args.Bucket != "" {
		cfg.ReportBucket = args.Bucket
	}
	if args.Dir != "" {
		cfg.OutputDir = args.Dir
		if args.Storage == "" && args.Bucket == "" {
			cfg.Storage = types.StorageLocal
		}
	}
	if args.Threshold != nil {
		cfg.DailyThreshold = *args.Threshold
	}
	if args.Days != nil {
		cfg.Days = *args.Days
	}
	if args.WriteHTML {
		cfg.WriteHTML = true
	}
	if args.WritePDF {
		cfg.WritePDF = true
	}
}

// prepare carrega a configuração e cria o contexto com timeout e sinais.
func (app *CLIApp) prepare(cmd *cobra.Command) (*types.CLIArgs, *types.Config, context.Context, context.CancelFunc, error) {
	args, err := app.parseArgs(cmd)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	cfg, err := app.loadConfig(args)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	cancel := stop
	if args.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, args.Timeout)
		cancel = func() {
			cancelTimeout()
			stop()
		}
	}
	return args, cfg, ctx, cancel, nil
}

func (app *CLIApp) runDaily(cmd *cobra.Command, _ []string) error {
	args, cfg, ctx, cancel, err := app.prepare(cmd)
	if err != nil {
		return err
	}
	defer cancel()

	if !args.Quiet {
		displayWelcomeBanner()
		go version.CheckLatestVersion(app.version)
	}

	reports, err := wiring.BuildReports(ctx, cfg, app.console)
	if err != nil {
		return err
	}
	defer reports.Close()

	outcome, runErr := reports.Daily.Run(ctx, decimal.NewFromFloat(cfg.DailyThreshold))
	app.printOutcome(outcome)
	return runErr
}

func (app *CLIApp) runWeekly(cmd *cobra.Command, _ []string) error {
	args, cfg, ctx, cancel, err := app.prepare(cmd)
	if err != nil {
		return err
	}
	defer cancel()

	if !args.Quiet {
		displayWelcomeBanner()
		go version.CheckLatestVersion(app.version)
	}

	reports, err := wiring.BuildReports(ctx, cfg, app.console)
	if err != nil {
		return err
	}
	defer reports.Close()

	outcome, result, runErr := reports.Weekly.RunWithResult(ctx, wiring.WeeklyOptions(cfg))
	app.printOutcome(outcome)

	if result != nil && !args.Quiet {
		app.printServices(*result)
		if trend, _ := cmd.Flags().GetBool("trend"); trend {
			app.console.DisplayTrendBars(trendPoints(*result))
		}
	}
	return runErr
}

func (app *CLIApp) runRelay(cmd *cobra.Command, _ []string) error {
	args, cfg, ctx, cancel, err := app.prepare(cmd)
	if err != nil {
		return err
	}
	defer cancel()

	relay := wiring.BuildRelay(cfg, app.console)

	if listen, _ := cmd.Flags().GetBool("listen"); listen {
		consumer, err := wiring.ConnectConsumer(cfg)
		if err != nil {
			return err
		}
		defer consumer.Close()

		// o modo listen roda até ser interrompido, sem o timeout padrão
		listenCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app.console.LogInfo("Relaying %s to Telegram, press Ctrl+C to stop", cfg.NATSSubject)
		return consumer.Consume(listenCtx, func(ctx context.Context, ev entity.NotificationEvent) error {
			if _, err := relay.Forward(ctx, ev); err != nil {
				app.console.LogError("Relay failed: %s", err)
			}
			return nil
		})
	}

	payload, err := readEvent(cmd.InOrStdin(), args.EventFile)
	if err != nil {
		return err
	}

	outcome, runErr := relay.Handle(ctx, payload)
	app.printOutcome(outcome)
	return runErr
}

func (app *CLIApp) runLambda(cmd *cobra.Command, positional []string) error {
	_, cfg, ctx, cancel, err := app.prepare(cmd)
	if err != nil {
		return err
	}
	defer cancel()

	handlers := &lambda.Handlers{
		Threshold:     decimal.NewFromFloat(cfg.DailyThreshold),
		WeeklyOptions: wiring.WeeklyOptions(cfg),
		Relay:         wiring.BuildRelay(cfg, app.console),
	}

	function := positional[0]
	if function != lambda.FunctionRelay {
		reports, err := wiring.BuildReports(ctx, cfg, app.console)
		if err != nil {
			return err
		}
		defer reports.Close()
		handlers.Daily = reports.Daily
		handlers.Weekly = reports.Weekly
	}

	return handlers.Start(function)
}

func readEvent(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("error reading event from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading event file: %w", err)
	}
	return data, nil
}

// ExitCode traduz o erro final em código de saída: 2 para configuração,
// 1 para as demais falhas.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var pe *types.PipelineError
	if errors.As(err, &pe) && pe.Kind == types.ErrConfiguration {
		return 2
	}
	return 1
}
