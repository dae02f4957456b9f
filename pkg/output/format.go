// Package output provides pure projections of a computed Deal to the text
// formats the back office shares: clipboard quotes, CSV exports, and a
// human-readable table.
package output

import (
	"fmt"
	"strings"

	"github.com/megamarcio/bhph-engine/internal/financing"
	"github.com/megamarcio/bhph-engine/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Disclaimer is the fixed line appended to every shared quote.
const Disclaimer = "no credit check; fast approval"

// ClipboardText renders the short plain-text quote pasted into customer
// messages.
func ClipboardText(deal financing.Deal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", deal.Vehicle.Identity())
	fmt.Fprintf(&b, "VIN: %s\n", deal.Vehicle.VIN)
	fmt.Fprintf(&b, "Price: %s\n", format.WholeCurrency(deal.Vehicle.SalePrice))
	fmt.Fprintf(&b, "Down payment: %s\n", format.WholeCurrency(deal.DownPayment))
	fmt.Fprintf(&b, "%dx of %s\n", deal.Installments, format.WholeCurrency(deal.InstallmentValue))
	b.WriteString(Disclaimer + "\n")
	return b.String()
}

// Fields returns the export rows for a deal as ordered (field, value)
// pairs. The order is stable; existing spreadsheet imports depend on it.
func Fields(deal financing.Deal) [][2]string {
	return [][2]string{
		{"vehicle", deal.Vehicle.Identity()},
		{"vin", deal.Vehicle.VIN},
		{"internal code", deal.Vehicle.InternalCode},
		{"purchase price", format.NumericCurrency(deal.Vehicle.PurchasePrice)},
		{"sale price", format.NumericCurrency(deal.Vehicle.SalePrice)},
		{"down payment", format.NumericCurrency(deal.DownPayment)},
		{"installments", fmt.Sprintf("%d", deal.Installments)},
		{"installment value", format.NumericCurrency(deal.InstallmentValue)},
		{"interest rate", fmt.Sprintf("%.2f%%", deal.InterestRate)},
		{"amount financed", format.NumericCurrency(deal.AmountFinanced())},
		{"total receivable", format.NumericCurrency(deal.TotalReceivable())},
		{"gross margin", format.NumericCurrency(deal.GrossMargin())},
	}
}

// CsvFormat renders the deal in comma-separated value format, one
// (field, value) pair per line.
func CsvFormat(deal financing.Deal) string {
	var b strings.Builder
	b.WriteString("\"field\",\"value\"\n")
	for _, pair := range Fields(deal) {
		fmt.Fprintf(&b, "%q,%q\n", pair[0], pair[1])
	}
	return b.String()
}

// PrettyFormat renders a human-readable table of the deal, including the
// month-by-month payment schedule.
func PrettyFormat(deal financing.Deal) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	fmt.Fprintf(&b, "--- Deal for %s ---\n", deal.Vehicle.Identity())
	for _, pair := range Fields(deal) {
		fmt.Fprintf(&b, "%-17s | %s\n", pair[0], pair[1])
	}

	schedule := deal.Schedule()
	if len(schedule) > 0 {
		b.WriteString("\nMonth | Payment      | Interest    | Remaining\n")
		b.WriteString("_____ | ____________ | ___________ | _________\n")
		for i, payment := range schedule {
			_, _ = p.Fprintf(&b, "%5d | $%.2f | $%.2f | $%.2f\n",
				i+1, payment.Payment, payment.Interest, payment.RemainingPrincipal)
		}
	}

	return b.String()
}
