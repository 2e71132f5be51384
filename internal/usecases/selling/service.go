package selling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vfg2006/crm-lite/infrastructure/repository"
	"github.com/vfg2006/crm-lite/internal/domain"
	"github.com/vfg2006/crm-lite/pkg/cliErrors"
	"github.com/vfg2006/crm-lite/pkg/log"
	"github.com/vfg2006/crm-lite/pkg/utils"
)

type SaleService interface {
	RecordSale(ctx context.Context, request *domain.RecordSaleRequest) (*domain.Sale, error)
	ListSales(ctx context.Context) ([]*domain.Sale, error)
}

type Service struct {
	leadRepository repository.LeadRepository
	saleRepository repository.SaleRepository
	now            func() time.Time
}

func NewService(
	leadRepository repository.LeadRepository,
	saleRepository repository.SaleRepository,
) SaleService {
	return &Service{
		leadRepository: leadRepository,
		saleRepository: saleRepository,
		now:            time.Now,
	}
}

// RecordSale registra uma venda para um lead existente.
// Valor e lead são validados antes de qualquer gravação.
func (s *Service) RecordSale(ctx context.Context, request *domain.RecordSaleRequest) (*domain.Sale, error) {
	if request == nil {
		return nil, fmt.Errorf("%w: requisição vazia", domain.ErrInvalidInput)
	}

	amount, err := utils.ParseAmount(request.AmountText)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", domain.ErrInvalidAmount, request.AmountText, err)
	}

	name, found, err := s.leadRepository.FindNameByID(ctx, request.LeadID)
	if err != nil {
		return nil, domain.NewCRMError(err, cliErrors.ErrDatabaseOperation, "Falha ao buscar lead no banco de dados")
	}
	if !found {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownLead, request.LeadID)
	}

	date := s.now()
	if request.Date != nil {
		date = *request.Date
	}

	sale := &domain.Sale{
		LeadID:       request.LeadID,
		CustomerName: name,
		Amount:       amount,
		Date:         utils.TruncateToDay(date),
	}

	if _, err := s.saleRepository.Insert(ctx, sale); err != nil {
		if domain.IsRowError(err) || errors.Is(err, domain.ErrUnknownLead) {
			return nil, err
		}
		return nil, domain.NewCRMError(err, cliErrors.ErrDatabaseOperation, "Falha ao inserir venda no banco de dados")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"sale_id":     sale.ID,
		"lead_id":     sale.LeadID,
		"sale_amount": sale.Amount.StringFixed(utils.CurrencyPlaces),
		"sale_date":   sale.Date.Format(time.DateOnly),
	}).Info("Venda registrada")

	return sale, nil
}

func (s *Service) ListSales(ctx context.Context) ([]*domain.Sale, error) {
	sales, err := s.saleRepository.List(ctx)
	if err != nil {
		return nil, domain.NewCRMError(err, cliErrors.ErrDatabaseOperation, "Falha ao listar vendas no banco de dados")
	}

	return sales, nil
}
