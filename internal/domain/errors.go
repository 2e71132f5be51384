package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Tipos de erro do CRM
var (
	// Erros de validação
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrMissingColumns = errors.New("missing required columns")

	// Erros de integridade do armazenamento
	ErrDuplicateContact = errors.New("duplicate contact address")
	ErrUnknownLead      = errors.New("unknown lead")

	// Condições não fatais
	ErrNoData = errors.New("no sales data")

	// Erros de exportação
	ErrArtifactWriteFailure = errors.New("artifact write failure")
)

// CRMError é um erro com contexto adicional para as operações do CRM
type CRMError struct {
	Err     error  // Erro base
	Code    string // Código de erro para a CLI
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *CRMError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *CRMError) Unwrap() error {
	return e.Err
}

// NewCRMError cria um novo CRMError
func NewCRMError(err error, code string, details string) *CRMError {
	return &CRMError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// MissingColumnsError informa quais colunas obrigatórias faltam e quais existem na origem
type MissingColumnsError struct {
	Missing []string
	Present []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: %s (available: %s)",
		ErrMissingColumns.Error(),
		strings.Join(e.Missing, ", "),
		strings.Join(e.Present, ", "),
	)
}

func (e *MissingColumnsError) Unwrap() error {
	return ErrMissingColumns
}

// IsRowError verifica se o erro afeta apenas uma linha de uma operação em lote
func IsRowError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrDuplicateContact) ||
		errors.Is(err, ErrInvalidAmount)
}
