package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeToken creates a base64 encoded cursor from the transaction date and id of the last
// entry on a page. Entries are listed by (transDate, id) descending.
func EncodeToken(transDate time.Time, entryID string) string {
	tokenStr := fmt.Sprintf("%s|%s", transDate.UTC().Format(timeFormat), entryID)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a cursor produced by EncodeToken.
func DecodeToken(token string) (time.Time, string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (split)")
	}

	transDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}

	if _, err := uuid.Parse(parts[1]); err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (id parse): %w", err)
	}

	return transDate, parts[1], nil
}

// After reports whether the row (transDate, id) comes after the cursor in descending order.
func After(transDate time.Time, id string, cursorDate time.Time, cursorID string) bool {
	if !transDate.Equal(cursorDate) {
		return transDate.Before(cursorDate)
	}
	return id < cursorID
}
