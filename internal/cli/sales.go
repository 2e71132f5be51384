package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/crm-lite/internal/domain"
	"github.com/vfg2006/crm-lite/internal/usecases/selling"
	"github.com/vfg2006/crm-lite/pkg/utils"
)

func RecordSale(service selling.SaleService) Handler {
	return helpAware(func(ctx context.Context, inv *Invocation) error {
		fs, asJSON := newFlagSet(inv)
		leadID := fs.Int64("lead", 0, "id do lead")
		amount := fs.String("amount", "", "valor da venda")
		dateText := fs.String("date", "", "data da venda (AAAA-MM-DD), padrão hoje")
		if err := parseFlags(fs, inv); err != nil {
			return err
		}

		if *leadID <= 0 {
			return usageError(errors.New("-lead é obrigatório"))
		}

		date, err := utils.ParseDate(*dateText)
		if err != nil {
			return errors.Wrapf(domain.ErrInvalidInput, "data inválida %q", *dateText)
		}

		sale, err := service.RecordSale(ctx, &domain.RecordSaleRequest{
			LeadID:     *leadID,
			AmountText: *amount,
			Date:       date,
		})
		if err != nil {
			return errors.Wrap(err, "erro ao registrar venda")
		}

		return writeOutput(inv.Stdout, *asJSON, sale, func(w io.Writer) {
			fmt.Fprintf(w, "Venda %d registrada para %s: %s em %s\n",
				sale.ID, sale.CustomerName, sale.Amount.StringFixed(utils.CurrencyPlaces), sale.Date.Format(time.DateOnly))
		})
	})
}
