package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/porbotenet-wq/facadeflow/internal/app"
	"github.com/porbotenet-wq/facadeflow/internal/cli"
	"github.com/porbotenet-wq/facadeflow/internal/config"
	"github.com/porbotenet-wq/facadeflow/internal/db"
	"github.com/porbotenet-wq/facadeflow/internal/observability"
	"github.com/porbotenet-wq/facadeflow/internal/service"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(config.ResolvePath(cli.ConfigFlag(args)))
	if err != nil {
		return err
	}
	logger := cfg.NewLogger(os.Stderr)

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	observers := []service.UseCaseObserver{service.NewSlogUseCaseObserver(logger)}
	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.InitMetrics(prometheus.DefaultRegisterer)
		observers = append(observers, metrics)
	}

	a := &cli.App{
		App:     app.New(database, observers...),
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics,
		IsInteractive: func() bool {
			in, out := os.Stdin.Fd(), os.Stdout.Fd()
			return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
				(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
		},
	}

	root := cli.NewRootCmd(a)
	root.SetArgs(args)
	return root.Execute()
}
