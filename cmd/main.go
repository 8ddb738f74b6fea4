package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	_ "heater_dashboard/docs"
	"heater_dashboard/internal/config"
	"heater_dashboard/internal/device"
	"heater_dashboard/internal/handlers"
	"heater_dashboard/internal/logger"
	"heater_dashboard/internal/repository"
	"heater_dashboard/internal/repository/db"
	"heater_dashboard/internal/server"
	"heater_dashboard/internal/service"
	"heater_dashboard/internal/synchronizer"
	"heater_dashboard/internal/ui"

	"github.com/urfave/cli"
)

// appVersion should be populated at build time using ldflags:
//
//	go build -ldflags="-X main.appVersion=$(git describe --tags)" ./cmd
var appVersion = "undefined"

var (
	configDir = cli.StringFlag{
		Name:  "config-dir",
		Usage: "This flag specifies the `directory` holding config.yml.",
		Value: "configs",
	}
	// logLevel overrides log.level from the config file when set.
	logLevel = cli.StringFlag{
		Name:  "log-level",
		Usage: "This flag specifies the logger `level`: debug, info, warn or error.",
	}
)

// @title        Heater Dashboard API
// @version      1.0
// @description  Mirrors an embedded heater controller: synced status, trend charts, button actions and an operator notice log.
// @BasePath     /
func main() {
	app := cli.NewApp()
	app.Name = "heater-dashboard"
	app.Version = fmt.Sprintf("%s/%s/%s-%s", appVersion, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	app.Usage = "Polls a heater controller and serves its dashboard over HTTP and WebSocket"
	app.Flags = []cli.Flag{configDir, logLevel}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	v, err := config.Read(c.GlobalString(configDir.Name))
	if err != nil {
		return err
	}
	if lvl := c.GlobalString(logLevel.Name); lvl != "" {
		v.Set("log.level", lvl)
	}
	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log := logger.Get(cfg.Log.Level)
	defer func() { _ = log.Sync() }()
	log.Infow("starting heater dashboard", "version", appVersion, "pid", os.Getpid())

	// open notice store
	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("init sqlite: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	services, dash, eventLog, metrics, err := wire(cfg, conn, log)
	if err != nil {
		return err
	}
	defer eventLog.Close()

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := dash.Run(ctx); err != nil {
			log.Errorw("dashboard loop stopped", "err", err)
		}
	}()

	apiHandler := handlers.NewHandler(services, log, metrics.Registry)
	srv := server.New(cfg.Server.Port, apiHandler.InitRoutes())
	runHTTPServer(srv, log)

	waitForShutdown(cancel, srv, cfg.Server, log)
	return nil
}

// wire builds the device client, synchronizer and services.
func wire(cfg config.Config, conn *sql.DB, log *logger.Logger) (*service.Service, *service.DashboardService, *service.EventLogService, *service.Metrics, error) {
	repos := repository.NewRepository(conn, cfg.DB.MaxNotices)
	metrics := service.NewMetrics()

	baseURL := device.ResolveBaseURL(cfg.Device.Origin, cfg.Device.DevOrigin, cfg.Device.DevHost)
	client := device.NewClient(baseURL, cfg.Device.Timeout)
	log.Infow("device endpoint resolved", "base_url", client.BaseURL())

	eventLog := service.NewEventLogService(repos.EventRepo, log)

	dash, err := service.NewDashboardService(
		synchronizer.New(client, cfg.Sync.Retention),
		eventLog, metrics, log,
		service.DashboardConfig{Interval: cfg.Sync.Interval, RequestTimeout: cfg.Device.Timeout},
	)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("dashboard: %w", err)
	}
	metrics.RegisterDevice(dash.State)

	commands := service.NewCommandService(client, ui.DefaultRegistry(), dash, eventLog, metrics, log, cfg.Device.Timeout)

	axes, err := cfg.Charts.ChartAxes()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	charts, err := service.NewChartService(dash, axes, service.ChartDefaults{
		Width:       cfg.Charts.Width,
		Height:      cfg.Charts.Height,
		MaxItems:    cfg.Charts.MaxItems,
		LabelStride: cfg.Charts.LabelStride,
	}, metrics)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("charts: %w", err)
	}

	services := service.NewService(service.Deps{
		Dashboard: dash,
		Commands:  commands,
		Charts:    charts,
		EventLog:  eventLog,
	})
	return services, dash, eventLog, metrics, nil
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "addr", srv.Addr())
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, cfg config.ServerConfig, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop the sync loop; it closes the state streams
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
