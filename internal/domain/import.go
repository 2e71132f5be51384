package domain

// Table é uma origem tabular com cabeçalho e linhas
type Table struct {
	Header []string
	Rows   [][]string
}

// ImportResult contabiliza o destino de cada linha da origem.
// A soma dos contadores é igual a TotalRows.
type ImportResult struct {
	RunID                 string `json:"run_id"`
	TotalRows             int    `json:"total_rows"`
	Imported              int    `json:"imported"`
	SkippedDuplicate      int    `json:"skipped_duplicate"`
	SkippedBatchDuplicate int    `json:"skipped_batch_duplicate"`
	SkippedInvalid        int    `json:"skipped_invalid"`
	Failed                int    `json:"failed"`
}

// Accounted retorna quantas linhas já foram contabilizadas
func (r *ImportResult) Accounted() int {
	return r.Imported + r.SkippedDuplicate + r.SkippedBatchDuplicate + r.SkippedInvalid + r.Failed
}
