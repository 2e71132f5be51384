package domain

// Document é o conteúdo textual do relatório paginado
type Document struct {
	Title string
	Lines []string
}

// ExportResult contém os caminhos dos artefatos gerados
type ExportResult struct {
	RunID           string   `json:"run_id"`
	SpreadsheetPath string   `json:"spreadsheet_path,omitempty"`
	DocumentPath    string   `json:"document_path,omitempty"`
	ChartPaths      []string `json:"chart_paths,omitempty"`
	NoData          bool     `json:"no_data"`
}
