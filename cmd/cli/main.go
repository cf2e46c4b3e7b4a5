package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	_ "modernc.org/sqlite"

	"github.com/gnode/gcaeditor/internal/buildinfo"
	"github.com/gnode/gcaeditor/internal/client/cli"
	"github.com/gnode/gcaeditor/internal/client/client"
	"github.com/gnode/gcaeditor/internal/client/config"
	"github.com/gnode/gcaeditor/internal/client/repositories/drafts"
	"github.com/gnode/gcaeditor/internal/client/services"
	"github.com/gnode/gcaeditor/internal/client/validate"
	"github.com/gnode/gcaeditor/internal/filex"
	"github.com/gnode/gcaeditor/internal/logging"
	"github.com/gnode/gcaeditor/internal/metrics"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	app := fx.New(
		fx.WithLogger(func() fxevent.Logger { return fxevent.NopLogger }),
		fx.Provide(
			newConfig,
			newLogger,
			prometheus.NewRegistry,
			newMetrics,
			newHTTPClient,
			newDraftsDB,
			newDrafts,
			newEditor,
			newApp,
		),
		fx.Invoke(registerREPL),
	)
	if err := app.Err(); err != nil {
		log.Fatalf("failed to start: %v", err)
	}
	app.Run()
}

func newConfig() (*config.Config, error) {
	return config.LoadConfig(os.Args[1:])
}

func newLogger(cfg *config.Config) (logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewText(os.Stderr, level), nil
}

func newMetrics(reg *prometheus.Registry) *metrics.Metrics {
	return metrics.New(reg)
}

func newHTTPClient(lc fx.Lifecycle, cfg *config.Config, log logging.Logger, m *metrics.Metrics) (*client.HTTPClient, error) {
	c, err := client.NewHTTPClient(cfg.ServerURL, client.Options{
		Token:             cfg.Token,
		Timeout:           cfg.RequestTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Metrics:           m,
		Logger:            log,
	})
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(c.Close))
	return c, nil
}

func newDraftsDB(lc fx.Lifecycle, cfg *config.Config) (*sql.DB, error) {
	if _, err := filex.EnsureParentDir(cfg.DraftsPath); err != nil {
		return nil, err
	}
	db, err := client.InitDatabase(context.Background(), cfg.DraftsPath)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(db.Close))
	return db, nil
}

func newDrafts(db *sql.DB) drafts.Repository {
	return drafts.NewSQLiteRepository(db)
}

func newEditor(cfg *config.Config, c *client.HTTPClient, repo drafts.Repository, log logging.Logger, m *metrics.Metrics) *services.Editor {
	return services.NewEditor(services.Deps{
		Client:    c,
		Validator: validate.NewRules(),
		Drafts:    repo,
		Logger:    log,
		Metrics:   m,
	}, cfg.ConferenceID, cfg.AbstractID)
}

func newApp(e *services.Editor, c *client.HTTPClient, reg *prometheus.Registry, log logging.Logger) *cli.App {
	return cli.NewApp(e, c, reg, log, os.Stdin, os.Stdout)
}

// registerREPL runs the shell once the graph is started and stops the
// application when the shell returns.
func registerREPL(lc fx.Lifecycle, sd fx.Shutdowner, app *cli.App, log logging.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := app.Run(ctx); err != nil {
					log.Error(ctx, "shell failed", "error", err)
				}
				_ = sd.Shutdown()
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
