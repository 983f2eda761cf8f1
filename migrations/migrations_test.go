package migrations_test

import (
	"io"
	"testing"

	"github.com/SscSPs/chart_ledger/internal/core/domain"
	"github.com/SscSPs/chart_ledger/migrations"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readUp(t *testing.T) string {
	t.Helper()
	src, err := iofs.New(migrations.FS, ".")
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	r, _, err := src.ReadUp(first)
	require.NoError(t, err)
	defer r.Close()
	body, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(body)
}

func TestAccountsCategoryConstraint(t *testing.T) {
	up := readUp(t)

	// CreateRoot stores the root with no parent and an empty category.
	root := domain.Account{Code: domain.RootCode}
	assert.True(t, root.IsRoot())
	assert.Contains(t, up, "WHEN parent_uuid IS NULL THEN category = '"+string(root.Category)+"'")

	for _, c := range []domain.AccountCategory{domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense} {
		assert.Contains(t, up, "'"+string(c)+"'", "category %s must be accepted for child accounts", c)
	}
	assert.NotContains(t, up, "category         TEXT NOT NULL CHECK", "category must not be checked without regard to the parent")
}

func TestDownDropsEveryTable(t *testing.T) {
	src, err := iofs.New(migrations.FS, ".")
	require.NoError(t, err)
	defer src.Close()

	r, _, err := src.ReadDown(1)
	require.NoError(t, err)
	defer r.Close()
	body, err := io.ReadAll(r)
	require.NoError(t, err)

	for _, table := range []string{"entry_details", "entries", "sub_journals", "ledger_domains", "accounts"} {
		assert.Contains(t, string(body), "DROP TABLE IF EXISTS "+table+";")
	}
}
