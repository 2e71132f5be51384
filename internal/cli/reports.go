package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/vfg2006/crm-lite/internal/domain"
	"github.com/vfg2006/crm-lite/internal/usecases/analyzing"
	"github.com/vfg2006/crm-lite/internal/usecases/reporting"
)

func Analyze(analytics analyzing.AnalyticsService, currencySymbol string, topN int) Handler {
	return helpAware(func(ctx context.Context, inv *Invocation) error {
		fs, asJSON := newFlagSet(inv)
		if err := parseFlags(fs, inv); err != nil {
			return err
		}

		snapshot, _, err := analytics.Analyze(ctx)
		noData := errors.Is(err, domain.ErrNoData)
		if err != nil && !noData {
			return errors.Wrap(err, "erro ao analisar vendas")
		}

		return writeOutput(inv.Stdout, *asJSON, snapshot, func(w io.Writer) {
			if noData {
				fmt.Fprintln(w, "Nenhuma venda registrada")
			}
			for _, line := range reporting.DocumentLines(snapshot, currencySymbol, topN).Lines {
				fmt.Fprintln(w, line)
			}
		})
	})
}

func GenerateReport(reports reporting.ReportService) Handler {
	return helpAware(func(ctx context.Context, inv *Invocation) error {
		fs, asJSON := newFlagSet(inv)
		if err := parseFlags(fs, inv); err != nil {
			return err
		}

		result, err := reports.GenerateReport(ctx)
		if err != nil {
			return errors.Wrap(err, "erro ao gerar relatório")
		}

		return writeOutput(inv.Stdout, *asJSON, result, func(w io.Writer) {
			if result.NoData {
				fmt.Fprintln(w, "Nenhuma venda registrada, relatório gerado com seções vazias")
			}
			fmt.Fprintf(w, "Planilha: %s\n", result.SpreadsheetPath)
			fmt.Fprintf(w, "Documento: %s\n", result.DocumentPath)
			for _, path := range result.ChartPaths {
				fmt.Fprintf(w, "Gráfico: %s\n", path)
			}
		})
	})
}

func LeadsReport(reports reporting.ReportService) Handler {
	return helpAware(func(ctx context.Context, inv *Invocation) error {
		fs, asJSON := newFlagSet(inv)
		if err := parseFlags(fs, inv); err != nil {
			return err
		}

		path, err := reports.ExportLeadActivity(ctx)
		if err != nil {
			return errors.Wrap(err, "erro ao gerar relatório de leads")
		}

		return writeOutput(inv.Stdout, *asJSON, map[string]string{"spreadsheet_path": path}, func(w io.Writer) {
			fmt.Fprintf(w, "Planilha de leads: %s\n", path)
		})
	})
}

func RunSchedule(scheduler ReportScheduler) Handler {
	return helpAware(func(ctx context.Context, inv *Invocation) error {
		fs, _ := newFlagSet(inv)
		now := fs.Bool("now", false, "executa o relatório imediatamente antes de agendar")
		if err := parseFlags(fs, inv); err != nil {
			return err
		}

		if !scheduler.Enabled() {
			return usageError(errors.New("agendamento desabilitado: defina REPORT_SCHEDULE_ENABLED=true"))
		}

		if *now {
			if err := scheduler.RunReport(ctx); err != nil {
				return errors.Wrap(err, "erro no relatório imediato")
			}
		}

		if err := scheduler.Start(ctx); err != nil {
			return usageError(err)
		}

		fmt.Fprintln(inv.Stdout, "Agendamento iniciado, aguardando interrupção")
		<-ctx.Done()

		return nil
	})
}
