package accounting

import (
	"github.com/SscSPs/chart_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Totals sums the debit-signed and credit-signed lines of an entry. Both results are
// non-negative; a balanced entry has equal totals.
func Totals(details []domain.Detail) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, d := range details {
		if d.IsDebit() {
			debits = debits.Add(d.Amount)
		} else {
			credits = credits.Add(d.Amount.Neg())
		}
	}
	return debits, credits
}

// Imbalance returns |debits - credits|.
func Imbalance(details []domain.Detail) decimal.Decimal {
	debits, credits := Totals(details)
	return debits.Sub(credits).Abs()
}

// Split renders a signed line amount as separate debit and credit columns; the unused
// column is empty.
func Split(d domain.Detail) (debit, credit string) {
	if d.IsDebit() {
		return d.Amount.String(), ""
	}
	return "", d.Amount.Neg().String()
}
