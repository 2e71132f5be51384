package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-lite/infrastructure/chart"
	"github.com/vfg2006/crm-lite/infrastructure/database/sqlite"
	"github.com/vfg2006/crm-lite/infrastructure/export"
	"github.com/vfg2006/crm-lite/infrastructure/repository"
	"github.com/vfg2006/crm-lite/internal/cli"
	"github.com/vfg2006/crm-lite/internal/config"
	"github.com/vfg2006/crm-lite/internal/scheduler"
	"github.com/vfg2006/crm-lite/internal/usecases/analyzing"
	"github.com/vfg2006/crm-lite/internal/usecases/importing"
	"github.com/vfg2006/crm-lite/internal/usecases/leading"
	"github.com/vfg2006/crm-lite/internal/usecases/reporting"
	"github.com/vfg2006/crm-lite/internal/usecases/selling"
	"github.com/vfg2006/crm-lite/pkg/cliErrors"
	"github.com/vfg2006/crm-lite/pkg/log"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar configuração")
		return cliErrors.ExitCode(cliErrors.ErrInternal)
	}

	// Logs vão para stderr; stdout fica reservado à saída dos comandos
	log.Configure(cfg.App.LogLevel, os.Stderr)
	logrus.Debugf("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	conn, err := sqliteConn(ctx, cfg.Database)
	if err != nil {
		_ = cliErrors.WriteError(os.Stderr, cliErrors.ErrDatabaseOperation, err.Error(), nil)
		return cliErrors.ExitCode(cliErrors.ErrDatabaseOperation)
	}
	defer conn.Close()

	leadRepo := repository.NewLeadRepository(conn)
	saleRepo := repository.NewSaleRepository(conn)

	leadService := leading.NewService(leadRepo)
	importService := importing.NewService(leadRepo, cfg.Import.DefaultLeadSource, importing.WithTransaction(conn))
	saleService := selling.NewService(leadRepo, saleRepo)
	analyticsService := analyzing.NewService(saleRepo, leadRepo, cfg.Report.TopN)

	reportService := reporting.NewService(
		analyticsService,
		export.NewSpreadsheetWriter(),
		export.NewDocumentWriter(),
		chart.NewRenderer(cfg.Report.MonthlyChartName, cfg.Report.TopCustomersChartName),
		cfg.Report,
	)

	weeklyReportService := scheduler.NewWeeklyReportService(reportService, cfg.ReportSchedule)

	router := cli.New(
		cli.WithMiddlewares(
			cli.LogPanicMiddleware(),
			cli.LoggingMiddleware(),
		),
		cli.WithCommands(cli.Schema(conn)...),
		cli.WithCommands(cli.Leads(leadService, importService, cfg.Import.DefaultSource)...),
		cli.WithCommands(cli.Sales(saleService)...),
		cli.WithCommands(cli.Reports(analyticsService, reportService, cfg.Report.CurrencySymbol, cfg.Report.TopN)...),
		cli.WithCommands(cli.Schedule(weeklyReportService)...),
	)

	return router.Dispatch(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

// sqliteConn abre o banco local e garante o esquema
func sqliteConn(ctx context.Context, dbConfig config.Database) (*sqlite.Connection, error) {
	conn, err := sqlite.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Error("Erro ao conectar ao SQLite")
		return nil, err
	}

	if err := conn.CreateSchema(ctx); err != nil {
		_ = conn.Close()
		logrus.WithError(err).Error("Erro ao criar esquema do SQLite")
		return nil, err
	}

	logrus.WithField("path", dbConfig.Path).Debug("Banco SQLite pronto")
	return conn, nil
}
