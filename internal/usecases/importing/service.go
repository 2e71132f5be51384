package importing

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/vfg2006/crm-lite/infrastructure/repository"
	"github.com/vfg2006/crm-lite/internal/domain"
	"github.com/vfg2006/crm-lite/pkg/cliErrors"
	"github.com/vfg2006/crm-lite/pkg/log"
	"github.com/vfg2006/crm-lite/pkg/utils"
)

// Colunas obrigatórias da origem, já normalizadas
const (
	columnName   = "name"
	columnEmail  = "email"
	columnPhone  = "phone"
	columnSource = "source"
)

type ImportService interface {
	ImportLeads(ctx context.Context, table *domain.Table) (*domain.ImportResult, error)
	ImportFile(ctx context.Context, path string) (*domain.ImportResult, error)
}

// Transactor executa um bloco de gravações em uma única transação
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error
}

type Service struct {
	leadRepository    repository.LeadRepository
	defaultLeadSource string
	transactor        Transactor
}

type Option func(*Service)

// WithTransaction agrupa as gravações de cada importação em uma transação.
// Uma linha rejeitada pelo banco desfaz apenas o próprio comando.
var WithTransaction = func(transactor Transactor) Option {
	return func(s *Service) {
		s.transactor = transactor
	}
}

func NewService(leadRepository repository.LeadRepository, defaultLeadSource string, opts ...Option) ImportService {
	service := &Service{
		leadRepository:    leadRepository,
		defaultLeadSource: defaultLeadSource,
	}

	for _, opt := range opts {
		opt(service)
	}

	return service
}

func (s *Service) ImportFile(ctx context.Context, path string) (*domain.ImportResult, error) {
	table, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"path":        path,
		"import_rows": len(table.Rows),
	}).Debug("Origem lida")

	return s.ImportLeads(ctx, table)
}

// ImportLeads grava as linhas válidas da tabela, uma a uma.
// Erros de linha são contabilizados e nunca interrompem a importação.
func (s *Service) ImportLeads(ctx context.Context, table *domain.Table) (*domain.ImportResult, error) {
	result := &domain.ImportResult{}

	runID, err := utils.GenerateRunID()
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("Não foi possível gerar o id da importação")
	}
	result.RunID = runID

	logger := log.ForContext(ctx).WithField("run_id", runID)

	if table == nil || len(table.Rows) == 0 {
		logger.Info("Origem vazia, nada a importar")
		return result, nil
	}

	columns, present := indexColumns(table.Header)

	var missing []string
	for _, required := range []string{columnName, columnEmail} {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.MissingColumnsError{Missing: missing, Present: present}
	}

	result.TotalRows = len(table.Rows)

	if s.transactor == nil {
		if err := s.importRows(ctx, s.leadRepository, table, columns, result, logger); err != nil {
			return result, err
		}
	} else {
		err := s.transactor.RunInTransaction(ctx, func(tx *sql.Tx) error {
			return s.importRows(ctx, repository.NewLeadRepository(tx), table, columns, result, logger)
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, domain.NewCRMError(err, cliErrors.ErrDatabaseOperation, "Falha ao confirmar a importação")
		}
	}

	logger.WithFields(log.Fields{
		"import_total":                   result.TotalRows,
		"import_imported":                result.Imported,
		"import_skipped_duplicate":       result.SkippedDuplicate,
		"import_skipped_batch_duplicate": result.SkippedBatchDuplicate,
		"import_skipped_invalid":         result.SkippedInvalid,
		"import_failed":                  result.Failed,
	}).Info("Importação de leads concluída")

	return result, nil
}

// importRows classifica e grava cada linha; só um contexto cancelado interrompe o laço
func (s *Service) importRows(
	ctx context.Context,
	leads repository.LeadRepository,
	table *domain.Table,
	columns map[string]int,
	result *domain.ImportResult,
	logger log.Logger,
) error {
	seen := make(map[string]struct{}, len(table.Rows))

	for i, row := range table.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Linha 1 é o cabeçalho
		rowLogger := logger.WithField("import_row", i+2)

		lead := &domain.Lead{
			Name:   strings.TrimSpace(cell(row, columns, columnName)),
			Email:  utils.NormalizeEmail(cell(row, columns, columnEmail)),
			Phone:  strings.TrimSpace(cell(row, columns, columnPhone)),
			Source: strings.TrimSpace(cell(row, columns, columnSource)),
		}
		if lead.Source == "" {
			lead.Source = s.defaultLeadSource
		}

		if lead.Name == "" || !utils.IsValidEmail(lead.Email) {
			result.SkippedInvalid++
			rowLogger.WithField("lead_email", lead.Email).Debug("Linha ignorada: dados inválidos")
			continue
		}

		if _, dup := seen[lead.Email]; dup {
			result.SkippedBatchDuplicate++
			rowLogger.WithField("lead_email", lead.Email).Debug("Linha ignorada: e-mail repetido na origem")
			continue
		}
		seen[lead.Email] = struct{}{}

		if _, err := leads.Insert(ctx, lead); err != nil {
			switch {
			case errors.Is(err, domain.ErrDuplicateContact):
				result.SkippedDuplicate++
				rowLogger.WithField("lead_email", lead.Email).Debug("Linha ignorada: e-mail já cadastrado")
			case errors.Is(err, domain.ErrInvalidInput):
				result.SkippedInvalid++
				rowLogger.WithError(err).Debug("Linha ignorada: rejeitada pelo banco")
			default:
				result.Failed++
				rowLogger.WithError(err).Error("Erro ao gravar lead")
			}
			continue
		}

		result.Imported++
	}

	return nil
}

// indexColumns normaliza o cabeçalho; em nomes repetidos vale a primeira ocorrência
func indexColumns(header []string) (map[string]int, []string) {
	columns := make(map[string]int, len(header))
	present := make([]string, 0, len(header))

	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		if _, exists := columns[name]; exists {
			continue
		}
		columns[name] = i
		present = append(present, name)
	}

	return columns, present
}

func cell(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}
