package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crm-lite/internal/domain"
	"github.com/xuri/excelize/v2"
)

func testSnapshot() (*domain.Snapshot, []*domain.Sale) {
	sales := []*domain.Sale{
		{ID: 1, CustomerName: "Ana", Amount: decimal.RequireFromString("1999.99"), Date: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, CustomerName: "Bruno", Amount: decimal.RequireFromString("0.10"), Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{ID: 3, CustomerName: "Ana", Amount: decimal.RequireFromString("0.20"), Date: time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)},
	}

	snapshot := &domain.Snapshot{
		TotalRevenue: decimal.RequireFromString("2000.29"),
		MonthlyTrend: []domain.MonthlyRevenue{
			{Month: "2023-12", Amount: decimal.RequireFromString("1999.99")},
			{Month: "2024-01", Amount: decimal.RequireFromString("0.30")},
		},
		TopCustomers: []domain.CustomerRevenue{
			{CustomerName: "Ana", Amount: decimal.RequireFromString("2000.19")},
			{CustomerName: "Bruno", Amount: decimal.RequireFromString("0.10")},
		},
		SalesCount: 3,
	}

	return snapshot, sales
}

func TestSpreadsheetWriter_WriteSales_RoundTrip(t *testing.T) {
	snapshot, sales := testSnapshot()
	path := filepath.Join(t.TempDir(), "sales_report.xlsx")

	require.NoError(t, NewSpreadsheetWriter().WriteSales(path, snapshot, sales))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetMonthlyTrend, SheetTopCustomers, SheetAllSales}, f.GetSheetList())

	rows, err := f.GetRows(SheetMonthlyTrend, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"month", "amount"}, rows[0])

	sum := decimal.Zero
	for _, row := range rows[1:] {
		amount, err := decimal.NewFromString(row[1])
		require.NoError(t, err)
		sum = sum.Add(amount)
	}
	assert.True(t, sum.Equal(snapshot.TotalRevenue), "soma relida %s != total %s", sum, snapshot.TotalRevenue)

	all, err := f.GetRows(SheetAllSales, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []string{"customer_name", "amount", "date"}, all[0])
	assert.Equal(t, []string{"Ana", "1999.99", "2023-12-01"}, all[1])

	top, err := f.GetRows(SheetTopCustomers)
	require.NoError(t, err)
	assert.Equal(t, []string{"customer_name", "amount"}, top[0])
	assert.Equal(t, "Ana", top[1][0])
}

func TestSpreadsheetWriter_WriteSales_EmptySnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales_report.xlsx")

	require.NoError(t, NewSpreadsheetWriter().WriteSales(path, domain.EmptySnapshot(), nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetMonthlyTrend)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"month", "amount"}}, rows)
}

func TestSpreadsheetWriter_WriteLeads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads_report.xlsx")
	activity := &domain.LeadActivity{
		Daily:  []domain.DailyLeadCount{{Date: "2024-01-01", Count: 2}},
		Weekly: []domain.WeeklyLeadCount{{Week: "2024-W00", Count: 2}},
		UniqueCustomers: []*domain.Lead{
			{ID: 1, Name: "Ana", Email: "ana@example.com", CreatedAt: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)},
		},
	}

	require.NoError(t, NewSpreadsheetWriter().WriteLeads(path, activity))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetDailyLeads, SheetWeeklyLeads, SheetUniqueCustomers}, f.GetSheetList())

	daily, err := f.GetRows(SheetDailyLeads)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"date", "count"}, {"2024-01-01", "2"}}, daily)

	unique, err := f.GetRows(SheetUniqueCustomers)
	require.NoError(t, err)
	require.Len(t, unique, 2)
	assert.Equal(t, "ana@example.com", unique[1][2])
}

func TestRenderDocument_Deterministic(t *testing.T) {
	document := domain.Document{
		Title: "Sales Report",
		Lines: []string{"Total Revenue: Rs. 2,000.29", "", "Monthly Revenue Trend:", "2023-12: Rs. 1,999.99"},
	}

	var first, second bytes.Buffer
	require.NoError(t, RenderDocument(&first, document))
	require.NoError(t, RenderDocument(&second, document))

	assert.True(t, bytes.HasPrefix(first.Bytes(), []byte("%PDF-")))
	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestDocumentWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales_report.pdf")

	require.NoError(t, NewDocumentWriter().Write(path, domain.Document{Title: "Sales Report"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestDocumentWriter_UnwritableTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nao", "existe", "sales_report.pdf")

	assert.Error(t, NewDocumentWriter().Write(path, domain.Document{Title: "Sales Report"}))
}

func TestSpreadsheetWriter_WriteSales_LargestAcceptedAmount(t *testing.T) {
	total := decimal.RequireFromString("9999999999999.99")
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	sales := []*domain.Sale{
		{ID: 1, CustomerName: "Ana", Amount: decimal.RequireFromString("9999999999999.98"), Date: date},
		{ID: 2, CustomerName: "Bruno", Amount: decimal.RequireFromString("0.01"), Date: date},
	}
	snapshot := &domain.Snapshot{
		TotalRevenue: total,
		MonthlyTrend: []domain.MonthlyRevenue{{Month: "2024-03", Amount: total}},
		TopCustomers: []domain.CustomerRevenue{
			{CustomerName: "Ana", Amount: decimal.RequireFromString("9999999999999.98")},
			{CustomerName: "Bruno", Amount: decimal.RequireFromString("0.01")},
		},
		SalesCount: 2,
	}

	path := filepath.Join(t.TempDir(), "sales_report.xlsx")
	require.NoError(t, NewSpreadsheetWriter().WriteSales(path, snapshot, sales))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetMonthlyTrend, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	amount, err := decimal.NewFromString(rows[1][1])
	require.NoError(t, err)
	assert.True(t, amount.Equal(total), "valor relido %s != total %s", amount, total)
}
