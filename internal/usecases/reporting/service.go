package reporting

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vfg2006/crm-lite/internal/config"
	"github.com/vfg2006/crm-lite/internal/domain"
	"github.com/vfg2006/crm-lite/internal/usecases/analyzing"
	"github.com/vfg2006/crm-lite/pkg/log"
	"github.com/vfg2006/crm-lite/pkg/utils"
)

const (
	reportTitle = "Sales Report"
)

type ReportService interface {
	// Export grava a planilha, o documento e, se habilitado, os gráficos do snapshot
	Export(ctx context.Context, snapshot *domain.Snapshot, sales []*domain.Sale) (*domain.ExportResult, error)

	// GenerateReport analisa as vendas gravadas e exporta o resultado
	GenerateReport(ctx context.Context) (*domain.ExportResult, error)

	// ExportLeadActivity grava a planilha de atividade de leads
	ExportLeadActivity(ctx context.Context) (string, error)
}

type Service struct {
	analytics   analyzing.AnalyticsService
	spreadsheet SpreadsheetWriter
	document    DocumentWriter
	charts      ChartRenderer
	cfg         config.Report
}

func NewService(
	analytics analyzing.AnalyticsService,
	spreadsheet SpreadsheetWriter,
	document DocumentWriter,
	charts ChartRenderer,
	cfg config.Report,
) ReportService {
	return &Service{
		analytics:   analytics,
		spreadsheet: spreadsheet,
		document:    document,
		charts:      charts,
		cfg:         cfg,
	}
}

func (s *Service) Export(ctx context.Context, snapshot *domain.Snapshot, sales []*domain.Sale) (*domain.ExportResult, error) {
	if snapshot == nil {
		snapshot = domain.EmptySnapshot()
	}

	runID, err := utils.GenerateRunID()
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("Não foi possível gerar o id do relatório")
	}

	logger := log.ForContext(ctx).WithField("run_id", runID)

	result := &domain.ExportResult{
		RunID:  runID,
		NoData: snapshot.IsEmpty(),
	}

	if err := s.ensureOutputDir(); err != nil {
		return nil, err
	}

	var errs []error

	spreadsheetPath := filepath.Join(s.cfg.OutputDir, s.cfg.SpreadsheetName)
	if err := s.spreadsheet.WriteSales(spreadsheetPath, snapshot, sales); err != nil {
		errs = append(errs, artifactError(spreadsheetPath, err))
	} else {
		result.SpreadsheetPath = spreadsheetPath
	}

	documentPath := filepath.Join(s.cfg.OutputDir, s.cfg.DocumentName)
	if err := s.document.Write(documentPath, DocumentLines(snapshot, s.cfg.CurrencySymbol, s.cfg.TopN)); err != nil {
		errs = append(errs, artifactError(documentPath, err))
	} else {
		result.DocumentPath = documentPath
	}

	if s.cfg.ChartsEnabled && s.charts != nil && !snapshot.IsEmpty() {
		paths, err := s.charts.Render(ctx, snapshot, s.cfg.OutputDir)
		if err != nil {
			logger.WithError(err).Warn("Falha ao gerar gráficos, seguindo sem eles")
		}
		result.ChartPaths = paths
	}

	if len(errs) > 0 {
		return result, errors.Join(errs...)
	}

	logger.WithFields(log.Fields{
		"report_spreadsheet": result.SpreadsheetPath,
		"report_document":    result.DocumentPath,
		"report_charts":      len(result.ChartPaths),
		"report_no_data":     result.NoData,
	}).Info("Relatório exportado")

	return result, nil
}

// GenerateReport exporta seções vazias quando não há vendas
func (s *Service) GenerateReport(ctx context.Context) (*domain.ExportResult, error) {
	snapshot, sales, err := s.analytics.Analyze(ctx)
	if err != nil && !errors.Is(err, domain.ErrNoData) {
		return nil, err
	}

	return s.Export(ctx, snapshot, sales)
}

func (s *Service) ExportLeadActivity(ctx context.Context) (string, error) {
	activity, err := s.analytics.AnalyzeLeads(ctx)
	if err != nil {
		return "", err
	}

	if err := s.ensureOutputDir(); err != nil {
		return "", err
	}

	path := filepath.Join(s.cfg.OutputDir, s.cfg.LeadsSpreadsheetName)
	if err := s.spreadsheet.WriteLeads(path, activity); err != nil {
		return "", artifactError(path, err)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"path":        path,
		"lead_unique": len(activity.UniqueCustomers),
	}).Info("Relatório de leads exportado")

	return path, nil
}

// DocumentLines monta o conteúdo textual do documento a partir do snapshot
func DocumentLines(snapshot *domain.Snapshot, currencySymbol string, topN int) domain.Document {
	if topN < 1 || topN > config.MaxTopCustomers {
		topN = config.MaxTopCustomers
	}

	if snapshot == nil {
		snapshot = domain.EmptySnapshot()
	}

	lines := []string{
		fmt.Sprintf("Total Revenue: %s", utils.FormatCurrency(currencySymbol, snapshot.TotalRevenue)),
		"",
		"Monthly Revenue Trend:",
	}

	for _, entry := range snapshot.MonthlyTrend {
		lines = append(lines, fmt.Sprintf("%s: %s", entry.Month, utils.FormatCurrency(currencySymbol, entry.Amount)))
	}

	lines = append(lines, "", fmt.Sprintf("Top %d Customers:", topN))

	for _, entry := range snapshot.TopCustomers {
		lines = append(lines, fmt.Sprintf("%s: %s", entry.CustomerName, utils.FormatCurrency(currencySymbol, entry.Amount)))
	}

	return domain.Document{
		Title: reportTitle,
		Lines: lines,
	}
}

func (s *Service) ensureOutputDir() error {
	if err := os.MkdirAll(s.cfg.OutputDir, 0o755); err != nil {
		return artifactError(s.cfg.OutputDir, err)
	}
	return nil
}

func artifactError(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrArtifactWriteFailure, path, err)
}
