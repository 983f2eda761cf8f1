package revision

import (
	"errors"
	"sync"
	"testing"

	"github.com/SscSPs/chart_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_IssueDiffersFromPrevious(t *testing.T) {
	c := NewController()

	first := c.Issue(None)
	require.False(t, first.IsZero())

	second := c.Issue(first)
	assert.NotEqual(t, first, second)
	assert.Len(t, second.String(), 32)
}

func TestController_IssueWithoutRandomness(t *testing.T) {
	c := &Controller{nonce: func([]byte) (int, error) { return 0, errors.New("no entropy") }}

	a := c.Issue(None)
	b := c.Issue(None)
	assert.NotEqual(t, a, b, "the write counter keeps tokens apart")
}

func TestController_ConcurrentIssueIsUnique(t *testing.T) {
	c := NewController()
	const workers = 16
	const perWorker = 200

	var mu sync.Mutex
	seen := make(map[Token]struct{}, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]Token, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				local = append(local, c.Issue(None))
			}
			mu.Lock()
			defer mu.Unlock()
			for _, tok := range local {
				seen[tok] = struct{}{}
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		current  Token
		supplied Token
		wantErr  bool
	}{
		{"matching", "abc", "abc", false},
		{"stale", "abc", "abd", true},
		{"missing", "abc", None, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.current, tt.supplied)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrStaleRevision)
				return
			}
			assert.NoError(t, err)
		})
	}
}
