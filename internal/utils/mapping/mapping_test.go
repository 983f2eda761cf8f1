package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/chart_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToModelEntry_NumbersLines(t *testing.T) {
	entry := domain.Entry{
		ID:        "e1",
		TransDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Details: []domain.Detail{
			{AccountUUID: "a1", AccountCode: "1010", Amount: decimal.NewFromInt(5)},
			{AccountUUID: "a2", AccountCode: "4000", Amount: decimal.NewFromInt(-5), Memo: "fee"},
		},
	}

	m := ToModelEntry(entry)
	assert.Equal(t, []string{}, m.Arguments, "arguments column is never NULL")
	assert.Len(t, m.Details, 2)
	assert.Equal(t, 1, m.Details[0].LineNo)
	assert.Equal(t, 2, m.Details[1].LineNo)
	assert.Equal(t, "e1", m.Details[1].EntryUUID)

	back := ToDomainEntry(m)
	assert.Nil(t, back.Arguments)
	assert.Equal(t, entry.Details, back.Details)
}

func TestToDomainAccount_RootHasNoParent(t *testing.T) {
	root := domain.Account{UUID: "r", Code: domain.RootCode, Category: domain.Asset, Names: []domain.Name{{Name: "Chart", Language: "en"}}}
	got := ToDomainAccount(ToModelAccount(root))
	assert.True(t, got.IsRoot())
	assert.Equal(t, root.Names, got.Names)
}

func TestToModelAccount_RootStoresNoCategory(t *testing.T) {
	root := domain.Account{UUID: "r", Code: domain.RootCode}
	m := ToModelAccount(root)
	assert.Empty(t, m.ParentUUID)
	assert.Empty(t, string(m.Category), "the accounts check constraint only admits an empty category without a parent")
}
