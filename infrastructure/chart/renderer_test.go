package chart

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crm-lite/internal/domain"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G'}

func TestRenderer_Render(t *testing.T) {
	topCustomers := []domain.CustomerRevenue{
		{CustomerName: "Ana", Amount: decimal.NewFromInt(200)},
		{CustomerName: "Bruno", Amount: decimal.NewFromInt(100)},
	}

	tests := []struct {
		name  string
		trend []domain.MonthlyRevenue
	}{
		{
			name:  "Um único mês",
			trend: []domain.MonthlyRevenue{{Month: "2024-01", Amount: decimal.NewFromInt(300)}},
		},
		{
			name: "Vários meses",
			trend: []domain.MonthlyRevenue{
				{Month: "2024-01", Amount: decimal.NewFromInt(100)},
				{Month: "2024-02", Amount: decimal.NewFromInt(150)},
				{Month: "2024-04", Amount: decimal.NewFromInt(50)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			snapshot := &domain.Snapshot{
				TotalRevenue: decimal.NewFromInt(300),
				MonthlyTrend: tt.trend,
				TopCustomers: topCustomers,
				SalesCount:   2,
			}

			paths, err := NewRenderer("monthly.png", "top.png").Render(context.Background(), snapshot, dir)
			require.NoError(t, err)
			assert.Equal(t, []string{filepath.Join(dir, "monthly.png"), filepath.Join(dir, "top.png")}, paths)

			for _, path := range paths {
				content, err := os.ReadFile(path)
				require.NoError(t, err)
				assert.True(t, bytes.HasPrefix(content, pngSignature), path)
			}
		})
	}
}

func TestRenderer_EmptySnapshotSkipsCharts(t *testing.T) {
	dir := t.TempDir()

	paths, err := NewRenderer("monthly.png", "top.png").Render(context.Background(), domain.EmptySnapshot(), dir)
	require.NoError(t, err)
	assert.Empty(t, paths)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRenderer_UnwritableDirectory(t *testing.T) {
	snapshot := &domain.Snapshot{
		MonthlyTrend: []domain.MonthlyRevenue{{Month: "2024-01", Amount: decimal.NewFromInt(1)}},
		SalesCount:   1,
	}

	_, err := NewRenderer("monthly.png", "top.png").Render(context.Background(), snapshot, filepath.Join(t.TempDir(), "nao_existe"))
	assert.Error(t, err)
}
