package reporting

import (
	"context"

	"github.com/vfg2006/crm-lite/internal/domain"
)

// SpreadsheetWriter grava os artefatos tabulares
type SpreadsheetWriter interface {
	// WriteSales grava as abas de tendência mensal, principais clientes e todas as vendas
	WriteSales(path string, snapshot *domain.Snapshot, sales []*domain.Sale) error

	// WriteLeads grava as abas de leads diários, semanais e clientes únicos
	WriteLeads(path string, activity *domain.LeadActivity) error
}

// DocumentWriter grava o documento paginado
type DocumentWriter interface {
	Write(path string, document domain.Document) error
}

// ChartRenderer desenha os gráficos do snapshot no diretório informado
type ChartRenderer interface {
	Render(ctx context.Context, snapshot *domain.Snapshot, dir string) ([]string, error)
}
