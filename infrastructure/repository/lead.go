package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/crm-lite/infrastructure/database/sqlite"
	"github.com/vfg2006/crm-lite/internal/domain"
	"github.com/vfg2006/crm-lite/pkg/utils"
)

const (
	leadsTable = "leads"
)

type LeadRepository interface {
	Insert(ctx context.Context, lead *domain.Lead) (int64, error)
	List(ctx context.Context) ([]*domain.Lead, error)
	FindNameByID(ctx context.Context, leadID int64) (string, bool, error)
	Count(ctx context.Context) (int, error)
}

type leadRepository struct {
	conn sqlite.Queryer
	now  func() time.Time
}

func NewLeadRepository(conn sqlite.Queryer) LeadRepository {
	return &leadRepository{
		conn: conn,
		now:  time.Now,
	}
}

// Insert grava o lead e devolve o identificador atribuído pelo banco.
// O e-mail é normalizado antes da gravação e deve ser único.
func (r *leadRepository) Insert(ctx context.Context, lead *domain.Lead) (int64, error) {
	name := strings.TrimSpace(lead.Name)
	email := utils.NormalizeEmail(lead.Email)

	if name == "" {
		return 0, fmt.Errorf("%w: nome é obrigatório", domain.ErrInvalidInput)
	}
	if email == "" {
		return 0, fmt.Errorf("%w: e-mail é obrigatório", domain.ErrInvalidInput)
	}
	if !utils.IsValidEmail(email) {
		return 0, fmt.Errorf("%w: e-mail inválido %q", domain.ErrInvalidInput, email)
	}

	createdAt := r.now().UTC()

	leadsSQL, leadsArgs, err := squirrel.
		Insert(leadsTable).
		Columns("name", "email", "phone", "source", "created_at").
		Values(name, email, nullString(lead.Phone), nullString(lead.Source), createdAt.Format(time.RFC3339Nano)).
		PlaceholderFormat(squirrel.Question).
		ToSql()
	if err != nil {
		return 0, err
	}

	result, err := r.conn.ExecContext(ctx, leadsSQL, leadsArgs...)
	if err != nil {
		if sqlite.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %s", domain.ErrDuplicateContact, email)
		}
		if sqlite.IsCheckViolation(err) {
			return 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return 0, fmt.Errorf("erro ao inserir lead: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter id do lead: %w", err)
	}

	lead.ID = id
	lead.Name = name
	lead.Email = email
	lead.CreatedAt = createdAt

	return id, nil
}

func (r *leadRepository) List(ctx context.Context) ([]*domain.Lead, error) {
	leadsSQL, leadsArgs, err := squirrel.
		Select("id, name, email, phone, source, created_at").
		From(leadsTable).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Question).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, leadsSQL, leadsArgs...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar leads: %w", err)
	}
	defer rows.Close()

	leads := make([]*domain.Lead, 0)

	for rows.Next() {
		lead, err := r.deserializeLead(rows)
		if err != nil {
			return nil, err
		}

		leads = append(leads, lead)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer leads: %w", err)
	}

	return leads, nil
}

func (r *leadRepository) deserializeLead(rows *sql.Rows) (*domain.Lead, error) {
	var (
		lead      domain.Lead
		phone     sql.NullString
		source    sql.NullString
		createdAt string
	)

	if err := rows.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&phone,
		&source,
		&createdAt,
	); err != nil {
		return nil, err
	}

	lead.Phone = phone.String
	lead.Source = source.String

	parsed, err := parseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("created_at inválido no lead %d: %w", lead.ID, err)
	}
	lead.CreatedAt = parsed

	return &lead, nil
}

// FindNameByID retorna o nome do lead e false quando ele não existe
func (r *leadRepository) FindNameByID(ctx context.Context, leadID int64) (string, bool, error) {
	leadsSQL, leadsArgs, err := squirrel.
		Select("name").
		From(leadsTable).
		Where(squirrel.Eq{"id": leadID}).
		PlaceholderFormat(squirrel.Question).
		ToSql()
	if err != nil {
		return "", false, err
	}

	var name string
	if err := r.conn.QueryRowContext(ctx, leadsSQL, leadsArgs...).Scan(&name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("erro ao buscar lead %d: %w", leadID, err)
	}

	return name, true, nil
}

func (r *leadRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.conn, leadsTable)
}

func countRows(ctx context.Context, conn sqlite.Queryer, table string) (int, error) {
	countSQL, countArgs, err := squirrel.
		Select("COUNT(*)").
		From(table).
		PlaceholderFormat(squirrel.Question).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := conn.QueryRowContext(ctx, countSQL, countArgs...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar registros de %s: %w", table, err)
	}

	return count, nil
}

func nullString(value string) sql.NullString {
	value = strings.TrimSpace(value)
	return sql.NullString{String: value, Valid: value != ""}
}

// Aceita também o formato padrão do SQLite (CURRENT_TIMESTAMP)
func parseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation(time.DateTime, value, time.UTC)
}
