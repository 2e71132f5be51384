package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crm-lite/infrastructure/database/sqlite"
	"github.com/vfg2006/crm-lite/internal/config"
	"github.com/vfg2006/crm-lite/internal/domain"
)

func newTestStore(t *testing.T) *sqlite.Connection {
	t.Helper()

	conn, err := sqlite.NewConnection(context.Background(), config.Database{
		Path:          filepath.Join(t.TempDir(), "crm.db"),
		BusyTimeoutMS: 1000,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, conn.CreateSchema(context.Background()))

	return conn
}

func TestLeadRepository_Insert(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		setup   func(t *testing.T, repo LeadRepository)
		lead    *domain.Lead
		wantErr error
	}{
		{
			name: "Lead válido - deve normalizar e gravar",
			lead: &domain.Lead{Name: "  Ana Souza ", Email: " Ana@Example.COM", Phone: "1199", Source: "Evento"},
		},
		{
			name:    "Nome vazio - deve rejeitar",
			lead:    &domain.Lead{Name: "  ", Email: "ana@example.com"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "E-mail vazio - deve rejeitar",
			lead:    &domain.Lead{Name: "Ana", Email: ""},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "E-mail malformado - deve rejeitar",
			lead:    &domain.Lead{Name: "Ana", Email: "ana.example.com"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "E-mail repetido com outra caixa - deve acusar duplicidade",
			setup: func(t *testing.T, repo LeadRepository) {
				_, err := repo.Insert(ctx, &domain.Lead{Name: "Ana", Email: "ana@example.com"})
				require.NoError(t, err)
			},
			lead:    &domain.Lead{Name: "Outra Ana", Email: "ANA@example.com"},
			wantErr: domain.ErrDuplicateContact,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewLeadRepository(newTestStore(t)).(*leadRepository)
			repo.now = func() time.Time { return fixed }

			if tt.setup != nil {
				tt.setup(t, repo)
			}

			before, err := repo.Count(ctx)
			require.NoError(t, err)

			id, err := repo.Insert(ctx, tt.lead)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				after, err := repo.Count(ctx)
				require.NoError(t, err)
				assert.Equal(t, before, after)
				return
			}

			require.NoError(t, err)
			assert.Positive(t, id)

			leads, err := repo.List(ctx)
			require.NoError(t, err)
			require.Len(t, leads, 1)
			assert.Equal(t, "Ana Souza", leads[0].Name)
			assert.Equal(t, "ana@example.com", leads[0].Email)
			assert.Equal(t, "1199", leads[0].Phone)
			assert.Equal(t, "Evento", leads[0].Source)
			assert.True(t, fixed.Equal(leads[0].CreatedAt))
		})
	}
}

func TestLeadRepository_ListOrderedByID(t *testing.T) {
	ctx := context.Background()
	repo := NewLeadRepository(newTestStore(t))

	for _, email := range []string{"c@example.com", "a@example.com", "b@example.com"} {
		_, err := repo.Insert(ctx, &domain.Lead{Name: email, Email: email})
		require.NoError(t, err)
	}

	leads, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 3)

	for i := 1; i < len(leads); i++ {
		assert.Less(t, leads[i-1].ID, leads[i].ID)
	}
	assert.Equal(t, "c@example.com", leads[0].Email)
	assert.Empty(t, leads[0].Phone)
}

func TestLeadRepository_FindNameByID(t *testing.T) {
	ctx := context.Background()
	repo := NewLeadRepository(newTestStore(t))

	id, err := repo.Insert(ctx, &domain.Lead{Name: "Bruno", Email: "bruno@example.com"})
	require.NoError(t, err)

	name, found, err := repo.FindNameByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Bruno", name)

	_, found, err = repo.FindNameByID(ctx, id+100)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSaleRepository_Insert(t *testing.T) {
	ctx := context.Background()
	conn := newTestStore(t)
	leads := NewLeadRepository(conn)
	sales := NewSaleRepository(conn)

	leadID, err := leads.Insert(ctx, &domain.Lead{Name: "Carla", Email: "carla@example.com"})
	require.NoError(t, err)

	date := time.Date(2024, 2, 29, 18, 0, 0, 0, time.UTC)
	sale := &domain.Sale{
		LeadID:       leadID,
		CustomerName: "Carla",
		Amount:       decimal.RequireFromString("1234.5"),
		Date:         date,
	}

	id, err := sales.Insert(ctx, sale)
	require.NoError(t, err)
	assert.Positive(t, id)

	listed, err := sales.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, leadID, listed[0].LeadID)
	assert.Equal(t, "Carla", listed[0].CustomerName)
	assert.Equal(t, "1234.50", listed[0].Amount.StringFixed(2))
	assert.Equal(t, "2024-02-29", listed[0].Date.Format(time.DateOnly))
}

func TestSaleRepository_UnknownLeadDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	sales := NewSaleRepository(newTestStore(t))

	before, err := sales.List(ctx)
	require.NoError(t, err)

	_, err = sales.Insert(ctx, &domain.Sale{
		LeadID:       42,
		CustomerName: "Fantasma",
		Amount:       decimal.NewFromInt(10),
		Date:         time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrUnknownLead)

	after, err := sales.List(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}

func TestSaleRepository_NegativeAmount(t *testing.T) {
	ctx := context.Background()
	conn := newTestStore(t)

	leadID, err := NewLeadRepository(conn).Insert(ctx, &domain.Lead{Name: "Davi", Email: "davi@example.com"})
	require.NoError(t, err)

	sales := NewSaleRepository(conn)
	_, err = sales.Insert(ctx, &domain.Sale{
		LeadID:       leadID,
		CustomerName: "Davi",
		Amount:       decimal.NewFromInt(-1),
		Date:         time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	count, err := sales.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
