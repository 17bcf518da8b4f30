package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem is one debit or credit line typed by the user.
// Amount is stored in minor units (cents).
type LineItem struct {
	Payee   string
	Amount  int64
	IsDebit bool
}

// Marker returns "Dr" for debits and "Cr" for credits.
func (i LineItem) Marker() string {
	if i.IsDebit {
		return "Dr"
	}
	return "Cr"
}

// String renders the item the way it is shown to the user and sent to the backend,
// e.g. "Dr. Acme Corp.... $100.00".
func (i LineItem) String() string {
	return fmt.Sprintf("%s. %s.... $%s", i.Marker(), i.Payee, FormatMinorUnits(i.Amount))
}

// Batch is the ordered set of line items from one submission.
type Batch []LineItem

// SignedSum returns debits minus credits, in minor units. It is summed as a
// decimal so that large batches cannot wrap around.
func (b Batch) SignedSum() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b {
		amount := decimal.NewFromInt(item.Amount)
		if item.IsDebit {
			total = total.Add(amount)
		} else {
			total = total.Sub(amount)
		}
	}
	return total
}

// Render joins the items one per line.
func (b Batch) Render() string {
	lines := make([]string, 0, len(b))
	for _, item := range b {
		lines = append(lines, item.String())
	}
	return strings.Join(lines, "\n")
}

// FormatMinorUnits formats cents as a fixed two-decimal dollar amount without the currency symbol.
func FormatMinorUnits(amount int64) string {
	return FormatMinor(decimal.NewFromInt(amount))
}

// FormatMinor is FormatMinorUnits for amounts already held as decimals.
func FormatMinor(amount decimal.Decimal) string {
	return amount.Shift(-2).StringFixed(2)
}
