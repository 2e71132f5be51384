package domain

import "github.com/shopspring/decimal"

// MonthlyRevenue é a receita somada de um mês (formato AAAA-MM)
type MonthlyRevenue struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// CustomerRevenue é a receita somada de um cliente
type CustomerRevenue struct {
	CustomerName string          `json:"customer_name"`
	Amount       decimal.Decimal `json:"amount"`
}

// Snapshot é o resultado derivado da análise das vendas; não é persistido
type Snapshot struct {
	TotalRevenue decimal.Decimal   `json:"total_revenue"`
	MonthlyTrend []MonthlyRevenue  `json:"monthly_trend"`
	TopCustomers []CustomerRevenue `json:"top_customers"`
	SalesCount   int               `json:"sales_count"`
}

// EmptySnapshot retorna um snapshot sem receita e com séries vazias
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		TotalRevenue: decimal.Zero,
		MonthlyTrend: []MonthlyRevenue{},
		TopCustomers: []CustomerRevenue{},
	}
}

// IsEmpty verifica se o snapshot foi calculado sem vendas
func (s *Snapshot) IsEmpty() bool {
	return s == nil || s.SalesCount == 0
}

// DailyLeadCount é a quantidade de leads criados em um dia (AAAA-MM-DD)
type DailyLeadCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// WeeklyLeadCount é a quantidade de leads criados em uma semana (AAAA-Www)
type WeeklyLeadCount struct {
	Week  string `json:"week"`
	Count int    `json:"count"`
}

// LeadActivity resume a entrada de leads por dia e semana
type LeadActivity struct {
	Daily           []DailyLeadCount  `json:"daily"`
	Weekly          []WeeklyLeadCount `json:"weekly"`
	UniqueCustomers []*Lead           `json:"unique_customers"`
}
