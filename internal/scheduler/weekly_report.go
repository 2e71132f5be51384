// Package scheduler contém o agendamento do relatório periódico
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/crm-lite/internal/config"
	"github.com/vfg2006/crm-lite/internal/usecases/reporting"
	"github.com/vfg2006/crm-lite/pkg/log"
)

type WeeklyReportConfig struct {
	CronSchedule string
	Enabled      bool
}

type WeeklyReportService struct {
	scheduler     *gocron.Scheduler
	reportService reporting.ReportService
	config        WeeklyReportConfig
	running       bool
	mutex         sync.Mutex
}

func NewWeeklyReportService(
	reportService reporting.ReportService,
	cfg config.ReportSchedule,
) *WeeklyReportService {
	reportConfig := WeeklyReportConfig{
		CronSchedule: cfg.CronSchedule, // Default: segunda-feira às 7h
		Enabled:      cfg.Enabled,      // Default: desabilitado
	}

	log.L.WithField("report_cron", reportConfig.CronSchedule).Debug("Configuração do agendador de relatório carregada")

	return &WeeklyReportService{
		scheduler:     gocron.NewScheduler(time.Local),
		reportService: reportService,
		config:        reportConfig,
	}
}

// Start agenda o relatório e retorna imediatamente; o agendador para quando ctx é cancelado
func (s *WeeklyReportService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		log.ForContext(ctx).Info("Relatório agendado desabilitado por configuração")
		return nil
	}

	log.ForContext(ctx).WithField("report_cron", s.config.CronSchedule).Info("Iniciando agendamento do relatório")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		runCtx, _ := log.WithCorrelationID(ctx)
		if err := s.RunReport(log.WithCommand(runCtx, "schedule")); err != nil {
			log.ForContext(runCtx).WithError(err).Error("Erro na geração do relatório agendado")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar relatório: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("Parando agendamento do relatório")
		s.scheduler.Stop()
	}()

	return nil
}

// RunReport executa o pipeline completo; uma execução em andamento faz a nova ser ignorada
func (s *WeeklyReportService) RunReport(ctx context.Context) error {
	s.mutex.Lock()
	if s.running {
		s.mutex.Unlock()
		log.ForContext(ctx).Warn("Relatório já está em execução")
		return nil
	}
	s.running = true
	s.mutex.Unlock()

	defer func() {
		s.mutex.Lock()
		s.running = false
		s.mutex.Unlock()
	}()

	startedAt := time.Now()
	logger := log.ForContext(ctx)
	logger.Info("Iniciando relatório agendado")

	result, err := s.reportService.GenerateReport(ctx)
	if err != nil {
		return err
	}

	if _, err := s.reportService.ExportLeadActivity(ctx); err != nil {
		return err
	}

	logger.WithFields(log.Fields{
		"run_id":         result.RunID,
		"report_no_data": result.NoData,
		"duration_ms":    time.Since(startedAt).Milliseconds(),
	}).Info("Relatório agendado concluído")

	return nil
}

// Enabled indica se o agendamento está habilitado por configuração
func (s *WeeklyReportService) Enabled() bool {
	return s.config.Enabled
}
