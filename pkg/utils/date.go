package utils

import "time"

// ParseDate converte uma data no formato AAAA-MM-DD; texto vazio retorna nil
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// TruncateToDay descarta o horário mantendo o dia do calendário da própria data
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthKey retorna o mês da data no formato AAAA-MM
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
