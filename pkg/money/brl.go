// Package money formatea importes y porcentajes con las convenciones de pt-BR.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var brazil = language.BrazilianPortuguese

// FormatBRL devuelve el importe como "R$ 1.234,56". Trabaja sobre el texto del
// decimal redondeado, sin pasar por float64.
func FormatBRL(d decimal.Decimal) string {
	fixed := d.Round(2).StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")
	if sign != "" && strings.Trim(intPart+frac, "0") == "" {
		sign = ""
	}
	return sign + "R$ " + groupThousands(intPart) + "," + frac
}

// groupThousands separa los miles con punto: "1234567" -> "1.234.567".
func groupThousands(digits string) string {
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	var b strings.Builder
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatPercent devuelve un porcentaje 0–100 con un decimal: "25,5%".
func FormatPercent(d decimal.Decimal) string {
	f, _ := d.Round(1).Float64()
	p := message.NewPrinter(brazil)
	return p.Sprintf("%v%%", number.Decimal(f, number.MinFractionDigits(1), number.MaxFractionDigits(1)))
}
