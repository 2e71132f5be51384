package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	viper.Reset()

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "sales_report.xlsx", cfg.Report.SpreadsheetName)
	assert.Equal(t, "sales_report.pdf", cfg.Report.DocumentName)
	assert.Equal(t, "leads_report.xlsx", cfg.Report.LeadsSpreadsheetName)
	assert.Equal(t, MaxTopCustomers, cfg.Report.TopN)
	assert.True(t, cfg.Report.ChartsEnabled)
	assert.False(t, cfg.ReportSchedule.Enabled)
	assert.Equal(t, "0 7 * * 1", cfg.ReportSchedule.CronSchedule)
	assert.Equal(t, "CSV", cfg.Import.DefaultLeadSource)
	assert.Equal(t, 5000, cfg.Database.BusyTimeoutMS)
}

func TestNewConfig_FromEnv(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name: "caminho do banco e diretório de saída",
			env: map[string]string{
				"DATABASE_PATH":     "/tmp/crm/test.db",
				"REPORT_OUTPUT_DIR": "/tmp/reports",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/tmp/crm/test.db", cfg.Database.Path)
				assert.Equal(t, "/tmp/reports", cfg.Report.OutputDir)
				assert.Contains(t, cfg.Database.DSN, "file:/tmp/crm/test.db?")
				assert.Contains(t, cfg.Database.DSN, "_pragma=foreign_keys(1)")
			},
		},
		{
			name: "top N acima do limite volta para 5",
			env:  map[string]string{"REPORT_TOP_N": "12"},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, MaxTopCustomers, cfg.Report.TopN)
			},
		},
		{
			name: "top N menor é respeitado",
			env:  map[string]string{"REPORT_TOP_N": "3"},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 3, cfg.Report.TopN)
			},
		},
		{
			name: "agendamento habilitado",
			env: map[string]string{
				"REPORT_SCHEDULE_ENABLED": "true",
				"REPORT_SCHEDULE_CRON":    "*/5 * * * *",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.ReportSchedule.Enabled)
				assert.Equal(t, "*/5 * * * *", cfg.ReportSchedule.CronSchedule)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := NewConfig()
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestBuildDSN(t *testing.T) {
	dsn := BuildDSN("data/../crm.db", 250)
	assert.Equal(t, "file:crm.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(250)", dsn)
}
