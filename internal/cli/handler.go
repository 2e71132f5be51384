package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/vfg2006/crm-lite/internal/domain"
	"github.com/vfg2006/crm-lite/pkg/cliErrors"
	"github.com/vfg2006/crm-lite/pkg/utils"
)

// SchemaCreator cria o esquema do banco
type SchemaCreator interface {
	CreateSchema(ctx context.Context) error
}

// ReportScheduler executa o relatório periódico
type ReportScheduler interface {
	Start(ctx context.Context) error
	RunReport(ctx context.Context) error
	Enabled() bool
}

func newFlagSet(inv *Invocation) (*flag.FlagSet, *bool) {
	fs := flag.NewFlagSet(inv.Name, flag.ContinueOnError)
	fs.SetOutput(inv.Stderr)
	asJSON := fs.Bool("json", false, "saída em JSON")
	return fs, asJSON
}

// parseFlags devolve errHelp quando a ajuda do comando foi solicitada
func parseFlags(fs *flag.FlagSet, inv *Invocation) error {
	if err := fs.Parse(inv.Args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelp
		}
		return usageError(errors.Wrap(err, inv.Name))
	}
	return nil
}

var errHelp = errors.New("ajuda solicitada")

func usageError(err error) error {
	return domain.NewCRMError(err, cliErrors.ErrInvalidRequest, "")
}

// writeOutput escreve o valor em JSON ou delega a renderização textual
func writeOutput(w io.Writer, asJSON bool, value any, text func(w io.Writer)) error {
	if asJSON {
		out, err := utils.PrettyJson(value)
		if err != nil {
			return errors.Wrap(err, "erro ao serializar resposta")
		}
		_, err = fmt.Fprintln(w, out)
		return err
	}

	text(w)
	return nil
}

// helpAware converte errHelp em sucesso
func helpAware(handler Handler) Handler {
	return func(ctx context.Context, inv *Invocation) error {
		if err := handler(ctx, inv); err != nil && !errors.Is(err, errHelp) {
			return err
		}
		return nil
	}
}

func InitSchema(creator SchemaCreator) Handler {
	return helpAware(func(ctx context.Context, inv *Invocation) error {
		fs, _ := newFlagSet(inv)
		if err := parseFlags(fs, inv); err != nil {
			return err
		}

		if err := creator.CreateSchema(ctx); err != nil {
			return domain.NewCRMError(err, cliErrors.ErrDatabaseOperation, "Falha ao criar o esquema")
		}

		fmt.Fprintln(inv.Stdout, "Esquema pronto")
		return nil
	})
}
