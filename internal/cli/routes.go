package cli

import (
	"github.com/vfg2006/crm-lite/internal/usecases/analyzing"
	"github.com/vfg2006/crm-lite/internal/usecases/importing"
	"github.com/vfg2006/crm-lite/internal/usecases/leading"
	"github.com/vfg2006/crm-lite/internal/usecases/reporting"
	"github.com/vfg2006/crm-lite/internal/usecases/selling"
)

func Schema(creator SchemaCreator) []Command {
	return []Command{
		{
			Name:    "init",
			Usage:   "Cria o esquema do banco local (idempotente)",
			Handler: InitSchema(creator),
		},
	}
}

func Leads(service leading.LeadService, importer importing.ImportService, defaultSource string) []Command {
	return []Command{
		{
			Name:    "add-lead",
			Usage:   "Cadastra um lead: -name -email [-phone] [-source]",
			Handler: AddLead(service),
		},
		{
			Name:    "list-leads",
			Usage:   "Lista os leads em ordem de cadastro",
			Handler: ListLeads(service),
		},
		{
			Name:    "import",
			Usage:   "Importa leads de um CSV: [-file caminho]",
			Handler: ImportLeads(importer, defaultSource),
		},
	}
}

func Sales(service selling.SaleService) []Command {
	return []Command{
		{
			Name:    "record-sale",
			Usage:   "Registra uma venda: -lead id -amount valor [-date AAAA-MM-DD]",
			Handler: RecordSale(service),
		},
	}
}

func Reports(analytics analyzing.AnalyticsService, reports reporting.ReportService, currencySymbol string, topN int) []Command {
	return []Command{
		{
			Name:    "analyze",
			Usage:   "Calcula receita total, tendência mensal e principais clientes",
			Handler: Analyze(analytics, currencySymbol, topN),
		},
		{
			Name:    "report",
			Usage:   "Exporta planilha, documento e gráficos de vendas",
			Handler: GenerateReport(reports),
		},
		{
			Name:    "leads-report",
			Usage:   "Exporta a planilha de atividade de leads",
			Handler: LeadsReport(reports),
		},
	}
}

func Schedule(scheduler ReportScheduler) []Command {
	return []Command{
		{
			Name:    "schedule",
			Usage:   "Executa o relatório periódico até ser interrompido: [-now]",
			Handler: RunSchedule(scheduler),
		},
	}
}
