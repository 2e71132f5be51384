package export

import (
	"fmt"
	"io"
	"time"

	"github.com/vfg2006/crm-lite/internal/domain"
	"github.com/vfg2006/crm-lite/pkg/utils"
	"github.com/xuri/excelize/v2"
)

// Nomes das abas e ordem fixa das colunas
const (
	SheetMonthlyTrend = "MonthlyTrend"
	SheetTopCustomers = "TopCustomers"
	SheetAllSales     = "AllSales"

	SheetDailyLeads      = "Daily Leads"
	SheetWeeklyLeads     = "Weekly Leads"
	SheetUniqueCustomers = "Unique Customers"

	defaultSheet = "Sheet1"

	// Formato embutido "#,##0.00"
	amountNumFmt = 4
)

type SpreadsheetWriter struct{}

func NewSpreadsheetWriter() *SpreadsheetWriter {
	return &SpreadsheetWriter{}
}

// WriteSales grava a planilha de vendas com as abas MonthlyTrend, TopCustomers e AllSales
func (w *SpreadsheetWriter) WriteSales(path string, snapshot *domain.Snapshot, sales []*domain.Sale) error {
	if snapshot == nil {
		snapshot = domain.EmptySnapshot()
	}

	f := excelize.NewFile()
	defer f.Close()

	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: amountNumFmt})
	if err != nil {
		return err
	}

	monthly := make([][]interface{}, 0, len(snapshot.MonthlyTrend))
	for _, entry := range snapshot.MonthlyTrend {
		monthly = append(monthly, []interface{}{entry.Month, entry.Amount.InexactFloat64()})
	}

	top := make([][]interface{}, 0, len(snapshot.TopCustomers))
	for _, entry := range snapshot.TopCustomers {
		top = append(top, []interface{}{entry.CustomerName, entry.Amount.InexactFloat64()})
	}

	all := make([][]interface{}, 0, len(sales))
	for _, sale := range sales {
		all = append(all, []interface{}{sale.CustomerName, sale.Amount.InexactFloat64(), sale.Date.Format(time.DateOnly)})
	}

	sheets := []struct {
		name   string
		header []interface{}
		rows   [][]interface{}
	}{
		{SheetMonthlyTrend, []interface{}{"month", "amount"}, monthly},
		{SheetTopCustomers, []interface{}{"customer_name", "amount"}, top},
		{SheetAllSales, []interface{}{"customer_name", "amount", "date"}, all},
	}

	for i, sheet := range sheets {
		if err := addSheet(f, i, sheet.name); err != nil {
			return err
		}
		if err := writeRows(f, sheet.name, sheet.header, sheet.rows); err != nil {
			return err
		}
		if err := styleColumn(f, sheet.name, "B", len(sheet.rows), amountStyle); err != nil {
			return err
		}
	}

	return save(f, path)
}

// WriteLeads grava a planilha de atividade de leads
func (w *SpreadsheetWriter) WriteLeads(path string, activity *domain.LeadActivity) error {
	if activity == nil {
		activity = &domain.LeadActivity{}
	}

	f := excelize.NewFile()
	defer f.Close()

	daily := make([][]interface{}, 0, len(activity.Daily))
	for _, entry := range activity.Daily {
		daily = append(daily, []interface{}{entry.Date, entry.Count})
	}

	weekly := make([][]interface{}, 0, len(activity.Weekly))
	for _, entry := range activity.Weekly {
		weekly = append(weekly, []interface{}{entry.Week, entry.Count})
	}

	unique := make([][]interface{}, 0, len(activity.UniqueCustomers))
	for _, lead := range activity.UniqueCustomers {
		unique = append(unique, []interface{}{
			lead.ID,
			lead.Name,
			lead.Email,
			lead.Phone,
			lead.Source,
			lead.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	sheets := []struct {
		name   string
		header []interface{}
		rows   [][]interface{}
	}{
		{SheetDailyLeads, []interface{}{"date", "count"}, daily},
		{SheetWeeklyLeads, []interface{}{"week", "count"}, weekly},
		{SheetUniqueCustomers, []interface{}{"id", "name", "email", "phone", "source", "created_at"}, unique},
	}

	for i, sheet := range sheets {
		if err := addSheet(f, i, sheet.name); err != nil {
			return err
		}
		if err := writeRows(f, sheet.name, sheet.header, sheet.rows); err != nil {
			return err
		}
	}

	return save(f, path)
}

// A primeira aba reaproveita a aba padrão do arquivo novo
func addSheet(f *excelize.File, index int, name string) error {
	if index == 0 {
		return f.SetSheetName(defaultSheet, name)
	}

	_, err := f.NewSheet(name)
	return err
}

func writeRows(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("erro ao gravar cabeçalho de %s: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("erro ao gravar linha %d de %s: %w", i+2, sheet, err)
		}
	}

	return nil
}

func styleColumn(f *excelize.File, sheet, column string, rows int, style int) error {
	if rows == 0 {
		return nil
	}
	return f.SetCellStyle(sheet, column+"2", fmt.Sprintf("%s%d", column, rows+1), style)
}

func save(f *excelize.File, path string) error {
	return utils.WriteFileAtomic(path, func(w io.Writer) error {
		_, err := f.WriteTo(w)
		return err
	})
}
