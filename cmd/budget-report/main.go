package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"budgetmaster/internal/amqp"
	"budgetmaster/internal/backend"
	"budgetmaster/internal/cli"
	"budgetmaster/internal/config"
	"budgetmaster/internal/log"
	"budgetmaster/internal/render"
	"budgetmaster/internal/services"
)

const usage = `Usage: budget-report <command> [flags]

Commands:
  dashboard           current month overview
  report  [-months N] multi-month analysis
  trend   [-months N] income/expense/net per month
  watch               print collection change events from AMQP
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "budget-report:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("missing command")
	}

	cli.LoadEnvFile()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentReport,
		Output:    os.Stderr,
	})

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "dashboard":
		fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
		if err := fs.Parse(rest); err != nil {
			return err
		}
		return withService(cfg, logger, func(svc *services.FinanceService) error {
			_, err := fmt.Fprintln(out, render.New().Dashboard(svc.Dashboard()))
			return err
		})

	case "report", "trend":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		months := fs.Int("months", cfg.TrendMonths, "number of months in the trend")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *months < 1 || *months > 60 {
			return fmt.Errorf("invalid -months %d: must be between 1 and 60", *months)
		}
		return withService(cfg, logger, func(svc *services.FinanceService) error {
			r := render.New()
			view := r.Trend(svc.Trend(*months))
			if cmd == "report" {
				view = r.Report(svc.Report(*months))
			}
			_, err := fmt.Fprintln(out, view)
			return err
		})

	case "watch":
		fs := flag.NewFlagSet("watch", flag.ContinueOnError)
		if err := fs.Parse(rest); err != nil {
			return err
		}
		return watch(cfg, logger, out)

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// withService loads the ledger from the configured backend without writing
// to it: absent collections are seeded in memory only and no change events
// are published.
func withService(cfg *config.Config, logger *log.Logger, fn func(*services.FinanceService) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	backendCfg.AMQPURL = ""

	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	if result.Cleanup != nil {
		defer result.Cleanup()
	}

	svc := services.NewFinanceService(result.Store, nil, logger)
	svc.SetReadOnly(true)
	svc.SetTrendMonths(cfg.TrendMonths)
	if err := svc.Load(ctx); err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}
	defer svc.Close()

	return fn(svc)
}

func watch(cfg *config.Config, logger *log.Logger, out io.Writer) error {
	if cfg.AMQPURL == "" {
		return errors.New("AMQP_URL is not set")
	}
	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return fmt.Errorf("connect amqp: %w", err)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Watching collection changes", "queue", cfg.AMQPQueue)
	err = client.ConsumeCollectionChanges(ctx, func(msg *amqp.CollectionChangedMessage) error {
		_, err := fmt.Fprintf(out, "%s  %-22s %d records\n",
			msg.Timestamp.Format(time.RFC3339), msg.Collection, msg.Count)
		return err
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
