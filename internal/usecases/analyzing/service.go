package analyzing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/crm-lite/infrastructure/repository"
	"github.com/vfg2006/crm-lite/internal/config"
	"github.com/vfg2006/crm-lite/internal/domain"
	"github.com/vfg2006/crm-lite/pkg/cliErrors"
	"github.com/vfg2006/crm-lite/pkg/log"
	"github.com/vfg2006/crm-lite/pkg/utils"
)

type AnalyticsService interface {
	// Analyze calcula o snapshot de receita a partir de todas as vendas gravadas
	Analyze(ctx context.Context) (*domain.Snapshot, []*domain.Sale, error)

	// AnalyzeLeads resume a entrada de leads por dia e por semana
	AnalyzeLeads(ctx context.Context) (*domain.LeadActivity, error)
}

type Service struct {
	saleRepository repository.SaleRepository
	leadRepository repository.LeadRepository
	topN           int
}

func NewService(
	saleRepository repository.SaleRepository,
	leadRepository repository.LeadRepository,
	topN int,
) AnalyticsService {
	if topN < 1 || topN > config.MaxTopCustomers {
		topN = config.MaxTopCustomers
	}

	return &Service{
		saleRepository: saleRepository,
		leadRepository: leadRepository,
		topN:           topN,
	}
}

// Analyze devolve domain.ErrNoData junto com um snapshot vazio quando não há vendas
func (s *Service) Analyze(ctx context.Context) (*domain.Snapshot, []*domain.Sale, error) {
	sales, err := s.saleRepository.List(ctx)
	if err != nil {
		return nil, nil, domain.NewCRMError(err, cliErrors.ErrDatabaseOperation, "Falha ao listar vendas no banco de dados")
	}

	if len(sales) == 0 {
		log.ForContext(ctx).Warn("Nenhuma venda registrada para análise")
		return domain.EmptySnapshot(), sales, domain.ErrNoData
	}

	snapshot := Compute(sales, s.topN)

	log.ForContext(ctx).WithFields(log.Fields{
		"sale_count":           snapshot.SalesCount,
		"report_total_revenue": snapshot.TotalRevenue.StringFixed(utils.CurrencyPlaces),
		"report_months":        len(snapshot.MonthlyTrend),
	}).Info("Análise de vendas concluída")

	return snapshot, sales, nil
}

// Compute agrega as vendas em receita total, série mensal e ranking de clientes.
// Empates no ranking são resolvidos pelo nome em ordem crescente.
func Compute(sales []*domain.Sale, topN int) *domain.Snapshot {
	snapshot := domain.EmptySnapshot()
	if len(sales) == 0 {
		return snapshot
	}

	byMonth := make(map[string]decimal.Decimal)
	byCustomer := make(map[string]decimal.Decimal)

	for _, sale := range sales {
		snapshot.TotalRevenue = snapshot.TotalRevenue.Add(sale.Amount)

		month := utils.MonthKey(sale.Date)
		byMonth[month] = byMonth[month].Add(sale.Amount)
		byCustomer[sale.CustomerName] = byCustomer[sale.CustomerName].Add(sale.Amount)
	}
	snapshot.SalesCount = len(sales)

	for month, amount := range byMonth {
		snapshot.MonthlyTrend = append(snapshot.MonthlyTrend, domain.MonthlyRevenue{Month: month, Amount: amount})
	}
	sort.Slice(snapshot.MonthlyTrend, func(i, j int) bool {
		return snapshot.MonthlyTrend[i].Month < snapshot.MonthlyTrend[j].Month
	})

	customers := make([]domain.CustomerRevenue, 0, len(byCustomer))
	for name, amount := range byCustomer {
		customers = append(customers, domain.CustomerRevenue{CustomerName: name, Amount: amount})
	}
	sort.Slice(customers, func(i, j int) bool {
		if cmp := customers[i].Amount.Cmp(customers[j].Amount); cmp != 0 {
			return cmp > 0
		}
		return customers[i].CustomerName < customers[j].CustomerName
	})

	if topN < 1 || topN > config.MaxTopCustomers {
		topN = config.MaxTopCustomers
	}
	if len(customers) > topN {
		customers = customers[:topN]
	}
	snapshot.TopCustomers = customers

	return snapshot
}

func (s *Service) AnalyzeLeads(ctx context.Context) (*domain.LeadActivity, error) {
	leads, err := s.leadRepository.List(ctx)
	if err != nil {
		return nil, domain.NewCRMError(err, cliErrors.ErrDatabaseOperation, "Falha ao listar leads no banco de dados")
	}

	activity := LeadActivity(leads)

	log.ForContext(ctx).WithFields(log.Fields{
		"lead_count":  len(leads),
		"lead_unique": len(activity.UniqueCustomers),
	}).Info("Análise de leads concluída")

	return activity, nil
}

// LeadActivity conta os leads por dia e semana de criação (UTC)
func LeadActivity(leads []*domain.Lead) *domain.LeadActivity {
	activity := &domain.LeadActivity{
		Daily:           []domain.DailyLeadCount{},
		Weekly:          []domain.WeeklyLeadCount{},
		UniqueCustomers: []*domain.Lead{},
	}

	ordered := make([]*domain.Lead, len(leads))
	copy(ordered, leads)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
		}
		return ordered[i].ID < ordered[j].ID
	})

	daily := make(map[string]int)
	weekly := make(map[string]int)
	seen := make(map[string]struct{})

	for _, lead := range ordered {
		created := lead.CreatedAt.UTC()

		daily[created.Format(time.DateOnly)]++
		weekly[WeekKey(created)]++

		email := utils.NormalizeEmail(lead.Email)
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		activity.UniqueCustomers = append(activity.UniqueCustomers, lead)
	}

	for date, count := range daily {
		activity.Daily = append(activity.Daily, domain.DailyLeadCount{Date: date, Count: count})
	}
	sort.Slice(activity.Daily, func(i, j int) bool { return activity.Daily[i].Date < activity.Daily[j].Date })

	for week, count := range weekly {
		activity.Weekly = append(activity.Weekly, domain.WeeklyLeadCount{Week: week, Count: count})
	}
	sort.Slice(activity.Weekly, func(i, j int) bool { return activity.Weekly[i].Week < activity.Weekly[j].Week })

	return activity
}

// WeekKey retorna AAAA-Wss onde a semana 01 começa no primeiro domingo do ano
func WeekKey(t time.Time) string {
	week := (t.YearDay() - 1 + 7 - int(t.Weekday())) / 7
	return fmt.Sprintf("%d-W%02d", t.Year(), week)
}
