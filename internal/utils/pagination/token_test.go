package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	transDate := time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC)
	entryID := "7c9e6679-7425-40de-944b-e07fc1f90ae7"

	token := EncodeToken(transDate, entryID)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, transDate.Equal(decodedDate), "Transaction date should match after decode")
	assert.Equal(t, entryID, decodedID)

	// Non-UTC inputs round-trip to the same instant
	local := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
	decodedDate, _, err = DecodeToken(EncodeToken(local, entryID))
	require.NoError(t, err)
	assert.True(t, local.Equal(decodedDate))
}

func TestDecodeTokenError(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		contains string
	}{
		{"not base64", "this is not base64!", "base64 decode"},
		{"missing separator", base64.URLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z")), "split"},
		{"missing id", base64.URLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z|")), "split"},
		{"bad date", base64.URLEncoding.EncodeToString([]byte("notadate|abc")), "date parse"},
		{"id not a uuid", base64.URLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z|abc")), "id parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeToken(tt.token)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestAfter(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, After(day.Add(-time.Hour), "z", day, "a"), "earlier date sorts after in descending order")
	assert.False(t, After(day.Add(time.Hour), "a", day, "z"))
	assert.True(t, After(day, "a", day, "b"), "same date falls back to id")
	assert.False(t, After(day, "b", day, "b"), "the cursor row itself is excluded")
}
