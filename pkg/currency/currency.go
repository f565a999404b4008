// Package currency formatea montos para recibos, comandas y reportes.
package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Code moneda por defecto de los montos del POS.
const Code = "KES"

var printer = message.NewPrinter(language.AmericanEnglish)

// Format devuelve el monto con separador de miles y dos decimales, ej: 1,234.50.
func Format(amount decimal.Decimal) string {
	return printer.Sprintf("%.2f", amount.Round(2).InexactFloat64())
}

// FormatKES antepone el código de moneda, ej: KES 1,234.50.
func FormatKES(amount decimal.Decimal) string {
	return Code + " " + Format(amount)
}
