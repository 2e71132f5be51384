package cliErrors

import (
	"errors"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/crm-lite/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro da CLI
const (
	// Erros de validação
	ErrInvalidRequest = "VAL_001" // Argumentos inválidos
	ErrInvalidInput   = "VAL_002" // Campo obrigatório malformado
	ErrInvalidAmount  = "VAL_003" // Valor monetário inválido
	ErrMissingColumns = "VAL_004" // Origem sem as colunas obrigatórias

	// Erros de domínio
	ErrDuplicateContact = "CRM_001" // E-mail já cadastrado
	ErrUnknownLead      = "CRM_002" // Lead inexistente
	ErrNoData           = "CRM_003" // Nenhuma venda para analisar

	// Erros do sistema
	ErrInternal             = "SRV_001" // Erro interno
	ErrDatabaseOperation    = "SRV_002" // Erro de operação de banco de dados
	ErrArtifactWriteFailure = "SRV_003" // Falha ao gravar artefato
)

// Mapeamento de códigos de erro para códigos de saída do processo
var exitCodeMap = map[string]int{
	ErrInvalidRequest:       2,
	ErrInvalidInput:         3,
	ErrInvalidAmount:        3,
	ErrMissingColumns:       3,
	ErrDuplicateContact:     4,
	ErrUnknownLead:          4,
	ErrNoData:               0,
	ErrInternal:             1,
	ErrDatabaseOperation:    5,
	ErrArtifactWriteFailure: 6,
}

// Ordem importa: o primeiro sentinela encontrado define o código
var sentinelCodes = []struct {
	err  error
	code string
}{
	{domain.ErrMissingColumns, ErrMissingColumns},
	{domain.ErrInvalidAmount, ErrInvalidAmount},
	{domain.ErrInvalidInput, ErrInvalidInput},
	{domain.ErrDuplicateContact, ErrDuplicateContact},
	{domain.ErrUnknownLead, ErrUnknownLead},
	{domain.ErrNoData, ErrNoData},
	{domain.ErrArtifactWriteFailure, ErrArtifactWriteFailure},
}

// CLIError representa um erro padronizado emitido pela CLI
type CLIError struct {
	Code    string `json:"code"`              // Código de erro
	Message string `json:"message,omitempty"` // Mensagem descritiva
	Details any    `json:"details,omitempty"` // Detalhes adicionais
}

// ExitCode retorna o código de saída do processo para o código de erro
func ExitCode(code string) int {
	status, exists := exitCodeMap[code]
	if !exists {
		return 1
	}
	return status
}

// CodeOf deriva o código de erro a partir de um erro Go
func CodeOf(err error) string {
	if err == nil {
		return ""
	}

	var crmErr *domain.CRMError
	if errors.As(err, &crmErr) && crmErr.Code != "" {
		return crmErr.Code
	}

	for _, sc := range sentinelCodes {
		if errors.Is(err, sc.err) {
			return sc.code
		}
	}

	return ErrInternal
}

// WriteError escreve o erro padronizado em JSON
func WriteError(w io.Writer, code string, message string, details any) error {
	return json.NewEncoder(w).Encode(CLIError{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// FromError cria um erro de CLI a partir de um erro Go
func FromError(err error) CLIError {
	if err == nil {
		return CLIError{
			Code:    ErrInternal,
			Message: "erro desconhecido",
		}
	}

	out := CLIError{
		Code:    CodeOf(err),
		Message: err.Error(),
	}

	var missing *domain.MissingColumnsError
	if errors.As(err, &missing) {
		out.Details = map[string][]string{
			"missing": missing.Missing,
			"present": missing.Present,
		}
	}

	return out
}
