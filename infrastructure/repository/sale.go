package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/crm-lite/infrastructure/database/sqlite"
	"github.com/vfg2006/crm-lite/internal/domain"
	"github.com/vfg2006/crm-lite/pkg/utils"
)

const (
	salesTable = "sales"
)

type SaleRepository interface {
	Insert(ctx context.Context, sale *domain.Sale) (int64, error)
	List(ctx context.Context) ([]*domain.Sale, error)
	Count(ctx context.Context) (int, error)
}

type saleRepository struct {
	conn sqlite.Queryer
}

func NewSaleRepository(conn sqlite.Queryer) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

// Insert grava a venda; o lead referenciado precisa existir
func (r *saleRepository) Insert(ctx context.Context, sale *domain.Sale) (int64, error) {
	if sale.Amount.IsNegative() {
		return 0, fmt.Errorf("%w: %s", domain.ErrInvalidAmount, sale.Amount.String())
	}

	amount := sale.Amount.Round(utils.CurrencyPlaces)
	date := utils.TruncateToDay(sale.Date)

	salesSQL, salesArgs, err := squirrel.
		Insert(salesTable).
		Columns("lead_id", "customer_name", "amount", "date").
		Values(sale.LeadID, sale.CustomerName, amount.StringFixed(utils.CurrencyPlaces), date.Format(time.DateOnly)).
		PlaceholderFormat(squirrel.Question).
		ToSql()
	if err != nil {
		return 0, err
	}

	result, err := r.conn.ExecContext(ctx, salesSQL, salesArgs...)
	if err != nil {
		if sqlite.IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: %d", domain.ErrUnknownLead, sale.LeadID)
		}
		if sqlite.IsCheckViolation(err) {
			return 0, fmt.Errorf("%w: %v", domain.ErrInvalidAmount, err)
		}
		return 0, fmt.Errorf("erro ao inserir venda: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter id da venda: %w", err)
	}

	sale.ID = id
	sale.Amount = amount
	sale.Date = date

	return id, nil
}

func (r *saleRepository) List(ctx context.Context) ([]*domain.Sale, error) {
	salesSQL, salesArgs, err := squirrel.
		Select("id, lead_id, customer_name, amount, date").
		From(salesTable).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Question).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, salesSQL, salesArgs...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendas: %w", err)
	}
	defer rows.Close()

	sales := make([]*domain.Sale, 0)

	for rows.Next() {
		sale, err := r.deserializeSale(rows)
		if err != nil {
			return nil, err
		}

		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer vendas: %w", err)
	}

	return sales, nil
}

func (r *saleRepository) deserializeSale(rows *sql.Rows) (*domain.Sale, error) {
	var (
		sale   domain.Sale
		amount string
		date   string
	)

	if err := rows.Scan(
		&sale.ID,
		&sale.LeadID,
		&sale.CustomerName,
		&amount,
		&date,
	); err != nil {
		return nil, err
	}

	parsedAmount, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("valor inválido na venda %d: %w", sale.ID, err)
	}
	sale.Amount = parsedAmount

	parsedDate, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return nil, fmt.Errorf("data inválida na venda %d: %w", sale.ID, err)
	}
	sale.Date = parsedDate

	return &sale, nil
}

func (r *saleRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.conn, salesTable)
}
