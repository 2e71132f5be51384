package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyPlaces é a precisão usada para valores monetários
const CurrencyPlaces = 2

// MaxAmountIntegerDigits é o maior número de dígitos aceito na parte inteira
const MaxAmountIntegerDigits = 13

const maxAmountFractionDigits = 8

var (
	ErrEmptyAmount     = errors.New("amount is empty")
	ErrNegativeAmount  = errors.New("amount is negative")
	ErrMalformedAmount = errors.New("amount is malformed")
	ErrAmountTooLarge  = errors.New("amount is too large")
)

// Dígitos simples ou agrupados de três em três por vírgula, com fração opcional
var amountPattern = regexp.MustCompile(`^-?(\d+|\d{1,3}(,\d{3})+)(\.\d+)?$`)

// ParseAmount converte um texto em valor monetário com duas casas decimais
func ParseAmount(text string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return decimal.Zero, ErrEmptyAmount
	}

	if !amountPattern.MatchString(trimmed) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedAmount, trimmed)
	}

	cleaned := strings.ReplaceAll(strings.TrimPrefix(trimmed, "-"), ",", "")
	intPart, fracPart, _ := strings.Cut(cleaned, ".")

	if len(strings.TrimLeft(intPart, "0")) > MaxAmountIntegerDigits || len(fracPart) > maxAmountFractionDigits {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrAmountTooLarge, trimmed)
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrMalformedAmount, err)
	}

	if strings.HasPrefix(trimmed, "-") && !amount.IsZero() {
		return decimal.Zero, ErrNegativeAmount
	}

	return amount.Round(CurrencyPlaces), nil
}

// FormatCurrency formata o valor com separador de milhar e duas casas decimais
func FormatCurrency(symbol string, amount decimal.Decimal) string {
	fixed := amount.StringFixed(CurrencyPlaces)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	return sign + symbol + b.String() + "." + fracPart
}
