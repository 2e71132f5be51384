package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// MaxTopCustomers é o tamanho fixo do ranking de clientes
const MaxTopCustomers = 5

type Config struct {
	App            App            `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	Report         Report         `mapstructure:",squash"`
	ReportSchedule ReportSchedule `mapstructure:",squash"`
	Import         Import         `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

type Database struct {
	DSN           string        `mapstructure:"-"`
	Path          string        `mapstructure:"database_path"`
	BusyTimeoutMS int           `mapstructure:"database_busy_timeout_ms"`
}

type Report struct {
	OutputDir             string `mapstructure:"report_output_dir"`
	SpreadsheetName       string `mapstructure:"report_spreadsheet_name"`
	DocumentName          string `mapstructure:"report_document_name"`
	LeadsSpreadsheetName  string `mapstructure:"report_leads_spreadsheet_name"`
	CurrencySymbol        string `mapstructure:"report_currency_symbol"`
	TopN                  int    `mapstructure:"report_top_n"`
	ChartsEnabled         bool   `mapstructure:"report_charts_enabled"`
	MonthlyChartName      string `mapstructure:"report_monthly_chart_name"`
	TopCustomersChartName string `mapstructure:"report_top_chart_name"`
}

type ReportSchedule struct {
	CronSchedule string `mapstructure:"report_schedule_cron"`
	Enabled      bool   `mapstructure:"report_schedule_enabled"`
}

type Import struct {
	DefaultSource     string `mapstructure:"import_default_source"`
	DefaultLeadSource string `mapstructure:"import_default_lead_source"`
}

func SetDefaults() {
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("APP_ENV", "")

	viper.SetDefault("DATABASE_PATH", "crm_lite.db")
	viper.SetDefault("DATABASE_BUSY_TIMEOUT_MS", 5000)

	viper.SetDefault("REPORT_OUTPUT_DIR", ".")
	viper.SetDefault("REPORT_SPREADSHEET_NAME", "sales_report.xlsx")
	viper.SetDefault("REPORT_DOCUMENT_NAME", "sales_report.pdf")
	viper.SetDefault("REPORT_LEADS_SPREADSHEET_NAME", "leads_report.xlsx")
	viper.SetDefault("REPORT_CURRENCY_SYMBOL", "Rs. ")
	viper.SetDefault("REPORT_TOP_N", MaxTopCustomers)
	viper.SetDefault("REPORT_CHARTS_ENABLED", true)
	viper.SetDefault("REPORT_MONTHLY_CHART_NAME", "monthly_trend.png")
	viper.SetDefault("REPORT_TOP_CHART_NAME", "top_customers.png")

	// Relatório semanal: toda segunda-feira às 7h
	viper.SetDefault("REPORT_SCHEDULE_CRON", "0 7 * * 1")
	viper.SetDefault("REPORT_SCHEDULE_ENABLED", false)

	viper.SetDefault("IMPORT_DEFAULT_SOURCE", "company_leads.csv")
	viper.SetDefault("IMPORT_DEFAULT_LEAD_SOURCE", "CSV")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
	} else {
		logrus.Debug("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.normalize()

	return config, nil
}

// normalize aplica as regras derivadas sobre os valores lidos
func (c *Config) normalize() {
	if c.Report.TopN < 1 || c.Report.TopN > MaxTopCustomers {
		c.Report.TopN = MaxTopCustomers
	}

	if c.Report.OutputDir == "" {
		c.Report.OutputDir = "."
	}

	if c.Database.BusyTimeoutMS <= 0 {
		c.Database.BusyTimeoutMS = 5000
	}
	c.Database.DSN = BuildDSN(c.Database.Path, c.Database.BusyTimeoutMS)
}

// BuildDSN monta a string de conexão do SQLite com as pragmas obrigatórias
func BuildDSN(path string, busyTimeoutMS int) string {
	return "file:" + filepath.Clean(path) +
		"?_pragma=foreign_keys(1)" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(" + strconv.Itoa(busyTimeoutMS) + ")"
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Debug("Arquivo .env carregado de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
