package accounting

import (
	"testing"

	"github.com/SscSPs/chart_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func detail(amount string) domain.Detail {
	return domain.Detail{Amount: decimal.RequireFromString(amount)}
}

func TestTotals(t *testing.T) {
	tests := []struct {
		name      string
		details   []domain.Detail
		debits    string
		credits   string
		imbalance string
	}{
		{"empty", nil, "0", "0", "0"},
		{"balanced one to one", []domain.Detail{detail("10.50"), detail("-10.50")}, "10.5", "10.5", "0"},
		{"split debit", []domain.Detail{detail("4"), detail("6"), detail("-10")}, "10", "10", "0"},
		{"out of balance", []domain.Detail{detail("4"), detail("-3.25")}, "4", "3.25", "0.75"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debits, credits := Totals(tt.details)
			assert.True(t, decimal.RequireFromString(tt.debits).Equal(debits), "debits %s", debits)
			assert.True(t, decimal.RequireFromString(tt.credits).Equal(credits), "credits %s", credits)
			assert.True(t, decimal.RequireFromString(tt.imbalance).Equal(Imbalance(tt.details)))
		})
	}
}

func TestSplit(t *testing.T) {
	debit, credit := Split(detail("12.30"))
	assert.Equal(t, "12.3", debit)
	assert.Empty(t, credit)

	debit, credit = Split(detail("-7"))
	assert.Empty(t, debit)
	assert.Equal(t, "7", credit)
}
