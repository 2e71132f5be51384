package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/vfg2006/crm-lite/internal/domain"
	"github.com/vfg2006/crm-lite/internal/usecases/importing"
	"github.com/vfg2006/crm-lite/internal/usecases/leading"
)

func AddLead(service leading.LeadService) Handler {
	return helpAware(func(ctx context.Context, inv *Invocation) error {
		fs, asJSON := newFlagSet(inv)
		name := fs.String("name", "", "nome do lead")
		email := fs.String("email", "", "e-mail do lead")
		phone := fs.String("phone", "", "telefone")
		source := fs.String("source", "", "origem do lead")
		if err := parseFlags(fs, inv); err != nil {
			return err
		}

		lead, err := service.AddLead(ctx, &domain.NewLeadRequest{
			Name:   *name,
			Email:  *email,
			Phone:  *phone,
			Source: *source,
		})
		if err != nil {
			return errors.Wrap(err, "erro ao cadastrar lead")
		}

		return writeOutput(inv.Stdout, *asJSON, lead, func(w io.Writer) {
			fmt.Fprintf(w, "Lead %d cadastrado: %s <%s>\n", lead.ID, lead.Name, lead.Email)
		})
	})
}

func ListLeads(service leading.LeadService) Handler {
	return helpAware(func(ctx context.Context, inv *Invocation) error {
		fs, asJSON := newFlagSet(inv)
		if err := parseFlags(fs, inv); err != nil {
			return err
		}

		leads, err := service.ListLeads(ctx)
		if err != nil {
			return errors.Wrap(err, "erro ao listar leads")
		}

		return writeOutput(inv.Stdout, *asJSON, leads, func(w io.Writer) {
			if len(leads) == 0 {
				fmt.Fprintln(w, "Nenhum lead cadastrado")
				return
			}

			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNOME\tE-MAIL\tTELEFONE\tORIGEM\tCRIADO EM")
			for _, lead := range leads {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
					lead.ID, lead.Name, lead.Email, lead.Phone, lead.Source, lead.CreatedAt.Local().Format("2006-01-02 15:04"))
			}
			_ = tw.Flush()
		})
	})
}

func ImportLeads(importer importing.ImportService, defaultSource string) Handler {
	return helpAware(func(ctx context.Context, inv *Invocation) error {
		fs, asJSON := newFlagSet(inv)
		file := fs.String("file", defaultSource, "arquivo CSV de origem")
		if err := parseFlags(fs, inv); err != nil {
			return err
		}

		path := *file
		if fs.NArg() > 0 {
			path = fs.Arg(0)
		}

		result, err := importer.ImportFile(ctx, path)
		if err != nil {
			return errors.Wrapf(err, "erro ao importar %s", path)
		}

		return writeOutput(inv.Stdout, *asJSON, result, func(w io.Writer) {
			fmt.Fprintf(w, "Importação %s concluída: %d linhas\n", result.RunID, result.TotalRows)
			fmt.Fprintf(w, "  importados:             %d\n", result.Imported)
			fmt.Fprintf(w, "  já cadastrados:         %d\n", result.SkippedDuplicate)
			fmt.Fprintf(w, "  repetidos na origem:    %d\n", result.SkippedBatchDuplicate)
			fmt.Fprintf(w, "  inválidos:              %d\n", result.SkippedInvalid)
			fmt.Fprintf(w, "  falhas:                 %d\n", result.Failed)
		})
	})
}
