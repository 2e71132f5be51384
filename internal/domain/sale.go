package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale é uma venda registrada contra um lead existente.
// CustomerName é uma cópia do nome do lead no momento da venda.
type Sale struct {
	ID           int64           `json:"id"`
	LeadID       int64           `json:"lead_id"`
	CustomerName string          `json:"customer_name"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
}

// RecordSaleRequest contém os dados de entrada para registrar uma venda
type RecordSaleRequest struct {
	LeadID     int64
	AmountText string
	Date       *time.Time
}
