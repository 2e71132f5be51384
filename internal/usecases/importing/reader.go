package importing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/vfg2006/crm-lite/internal/domain"
)

const utf8BOM = "\ufeff"

// ReadTable lê uma origem delimitada por vírgulas cuja primeira linha é o cabeçalho.
// Linhas com quantidade de colunas diferente do cabeçalho são aceitas.
func ReadTable(r io.Reader) (*domain.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	table := &domain.Table{}

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return table, nil
		}
		return nil, fmt.Errorf("%w: cabeçalho ilegível: %v", domain.ErrInvalidInput, err)
	}

	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	table.Header = header

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: linha ilegível: %v", domain.ErrInvalidInput, err)
		}

		if isBlankRecord(record) {
			continue
		}

		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

// ReadFile abre o arquivo e lê a tabela; arquivo inexistente é entrada inválida
func ReadFile(path string) (*domain.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: arquivo %s não encontrado", domain.ErrInvalidInput, path)
		}
		return nil, fmt.Errorf("erro ao abrir %s: %w", path, err)
	}
	defer file.Close()

	return ReadTable(file)
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
