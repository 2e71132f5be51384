package leading

import (
	"context"
	"fmt"
	"strings"

	"github.com/vfg2006/crm-lite/infrastructure/repository"
	"github.com/vfg2006/crm-lite/internal/domain"
	"github.com/vfg2006/crm-lite/pkg/cliErrors"
	"github.com/vfg2006/crm-lite/pkg/log"
	"github.com/vfg2006/crm-lite/pkg/utils"
)

type LeadService interface {
	AddLead(ctx context.Context, request *domain.NewLeadRequest) (*domain.Lead, error)
	ListLeads(ctx context.Context) ([]*domain.Lead, error)
	GetAllLeads(ctx context.Context) ([]domain.Contact, error)
}

type Service struct {
	leadRepository repository.LeadRepository
}

func NewService(leadRepository repository.LeadRepository) LeadService {
	return &Service{
		leadRepository: leadRepository,
	}
}

// AddLead cadastra um único lead; qualquer erro é devolvido sem gravação parcial
func (s *Service) AddLead(ctx context.Context, request *domain.NewLeadRequest) (*domain.Lead, error) {
	if request == nil {
		return nil, fmt.Errorf("%w: requisição vazia", domain.ErrInvalidInput)
	}

	lead := &domain.Lead{
		Name:   strings.TrimSpace(request.Name),
		Email:  utils.NormalizeEmail(request.Email),
		Phone:  strings.TrimSpace(request.Phone),
		Source: strings.TrimSpace(request.Source),
	}

	if lead.Name == "" {
		return nil, fmt.Errorf("%w: nome é obrigatório", domain.ErrInvalidInput)
	}

	if !utils.IsValidEmail(lead.Email) {
		return nil, fmt.Errorf("%w: e-mail inválido %q", domain.ErrInvalidInput, lead.Email)
	}

	if _, err := s.leadRepository.Insert(ctx, lead); err != nil {
		if domain.IsRowError(err) {
			return nil, err
		}
		return nil, domain.NewCRMError(err, cliErrors.ErrDatabaseOperation, "Falha ao inserir lead no banco de dados")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"lead_id":    lead.ID,
		"lead_email": lead.Email,
	}).Info("Lead cadastrado")

	return lead, nil
}

func (s *Service) ListLeads(ctx context.Context) ([]*domain.Lead, error) {
	leads, err := s.leadRepository.List(ctx)
	if err != nil {
		return nil, domain.NewCRMError(err, cliErrors.ErrDatabaseOperation, "Falha ao listar leads no banco de dados")
	}

	return leads, nil
}

// GetAllLeads expõe a agenda de contatos para os serviços de envio
func (s *Service) GetAllLeads(ctx context.Context) ([]domain.Contact, error) {
	leads, err := s.ListLeads(ctx)
	if err != nil {
		return nil, err
	}

	contacts := make([]domain.Contact, 0, len(leads))
	for _, lead := range leads {
		contacts = append(contacts, domain.Contact{
			Name:  lead.Name,
			Email: lead.Email,
			Phone: lead.Phone,
		})
	}

	return contacts, nil
}

