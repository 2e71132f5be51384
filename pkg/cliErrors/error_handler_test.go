package cliErrors

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crm-lite/internal/domain"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "sentinela embrulhado", err: fmt.Errorf("inserir lead: %w", domain.ErrDuplicateContact), want: ErrDuplicateContact},
		{name: "lead inexistente", err: domain.ErrUnknownLead, want: ErrUnknownLead},
		{name: "colunas ausentes", err: &domain.MissingColumnsError{Missing: []string{"email"}}, want: ErrMissingColumns},
		{name: "código explícito", err: domain.NewCRMError(domain.ErrInvalidInput, ErrDatabaseOperation, "x"), want: ErrDatabaseOperation},
		{name: "desconhecido", err: errors.New("boom"), want: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 4, ExitCode(ErrDuplicateContact))
	assert.Equal(t, 0, ExitCode(ErrNoData))
	assert.Equal(t, 1, ExitCode("XYZ"))
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteError(&buf, ErrUnknownLead, "lead 9 não existe", nil))

	var got CLIError
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, ErrUnknownLead, got.Code)
	assert.Equal(t, "lead 9 não existe", got.Message)
}

func TestFromError_MissingColumnsDetails(t *testing.T) {
	err := fmt.Errorf("importar: %w", &domain.MissingColumnsError{
		Missing: []string{"email"},
		Present: []string{"name", "phone"},
	})

	out := FromError(err)
	assert.Equal(t, ErrMissingColumns, out.Code)
	assert.Equal(t, map[string][]string{
		"missing": {"email"},
		"present": {"name", "phone"},
	}, out.Details)
}
