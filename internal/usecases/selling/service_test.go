package selling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crm-lite/infrastructure/repository/mocks"
	"github.com/vfg2006/crm-lite/internal/domain"
	"github.com/vfg2006/crm-lite/pkg/cliErrors"
	"go.uber.org/mock/gomock"
)

func TestService_RecordSale(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLeadRepo := mocks.NewMockLeadRepository(ctrl)
	mockSaleRepo := mocks.NewMockSaleRepository(ctrl)

	today := time.Date(2024, 5, 20, 15, 45, 0, 0, time.UTC)
	service := &Service{
		leadRepository: mockLeadRepo,
		saleRepository: mockSaleRepo,
		now:            func() time.Time { return today },
	}

	explicitDate := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		request  *domain.RecordSaleRequest
		setup    func()
		wantErr  error
		validate func(t *testing.T, sale *domain.Sale)
	}{
		{
			name:    "Venda sem data - deve usar o dia atual e copiar o nome do lead",
			request: &domain.RecordSaleRequest{LeadID: 1, AmountText: "1,500.5"},
			setup: func() {
				mockLeadRepo.EXPECT().FindNameByID(gomock.Any(), int64(1)).Return("Ana", true, nil)
				mockSaleRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, sale *domain.Sale) (int64, error) {
						sale.ID = 10
						return 10, nil
					})
			},
			validate: func(t *testing.T, sale *domain.Sale) {
				assert.Equal(t, int64(10), sale.ID)
				assert.Equal(t, "Ana", sale.CustomerName)
				assert.Equal(t, "1500.50", sale.Amount.StringFixed(2))
				assert.Equal(t, "2024-05-20", sale.Date.Format(time.DateOnly))
			},
		},
		{
			name:    "Venda com data informada - deve manter a data",
			request: &domain.RecordSaleRequest{LeadID: 2, AmountText: "10", Date: &explicitDate},
			setup: func() {
				mockLeadRepo.EXPECT().FindNameByID(gomock.Any(), int64(2)).Return("Bruno", true, nil)
				mockSaleRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(11), nil)
			},
			validate: func(t *testing.T, sale *domain.Sale) {
				assert.Equal(t, explicitDate, sale.Date)
			},
		},
		{
			name:    "Valor não numérico - não deve consultar nem gravar",
			request: &domain.RecordSaleRequest{LeadID: 1, AmountText: "dez reais"},
			setup:   func() {},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "Valor em notação exponencial - não deve consultar nem gravar",
			request: &domain.RecordSaleRequest{LeadID: 1, AmountText: "1e2000000"},
			setup:   func() {},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "Valor negativo - não deve consultar nem gravar",
			request: &domain.RecordSaleRequest{LeadID: 1, AmountText: "-3"},
			setup:   func() {},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "Lead inexistente - não deve gravar",
			request: &domain.RecordSaleRequest{LeadID: 99, AmountText: "10"},
			setup: func() {
				mockLeadRepo.EXPECT().FindNameByID(gomock.Any(), int64(99)).Return("", false, nil)
			},
			wantErr: domain.ErrUnknownLead,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			sale, err := service.RecordSale(context.Background(), tt.request)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, sale)
				return
			}

			require.NoError(t, err)
			tt.validate(t, sale)
		})
	}
}

func TestService_RecordSale_LookupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLeadRepo := mocks.NewMockLeadRepository(ctrl)
	mockLeadRepo.EXPECT().FindNameByID(gomock.Any(), int64(1)).Return("", false, errors.New("database is locked"))

	service := NewService(mockLeadRepo, mocks.NewMockSaleRepository(ctrl))

	_, err := service.RecordSale(context.Background(), &domain.RecordSaleRequest{LeadID: 1, AmountText: "5"})
	require.Error(t, err)
	assert.Equal(t, cliErrors.ErrDatabaseOperation, cliErrors.CodeOf(err))
}
