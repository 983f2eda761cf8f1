// Package revision issues and checks the opaque tokens that guard account and entry
// mutations. Tokens are compared by equality only.
package revision

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sync/atomic"

	"github.com/SscSPs/chart_ledger/internal/apperrors"
	"golang.org/x/crypto/blake2b"
)

// Token is an opaque revision marker.
type Token string

// None is the token of an aggregate that has never been written.
const None Token = ""

// String returns the token text for transport.
func (t Token) String() string {
	return string(t)
}

// IsZero reports whether the token is empty.
func (t Token) IsZero() bool {
	return t == None
}

// Controller issues fresh tokens. The zero value is ready to use.
type Controller struct {
	counter atomic.Uint64
	// nonce is swapped in tests to make issuance deterministic.
	nonce func([]byte) (int, error)
}

// NewController returns a controller backed by crypto/rand nonces.
func NewController() *Controller {
	return &Controller{}
}

// Issue returns a token guaranteed to differ from previous. It hashes the previous token,
// a process-wide write counter and a random nonce.
func (c *Controller) Issue(previous Token) Token {
	for {
		seq := c.counter.Add(1)
		buf := make([]byte, 8, 8+16+len(previous))
		binary.BigEndian.PutUint64(buf, seq)
		nonce := make([]byte, 16)
		read := c.nonce
		if read == nil {
			read = rand.Read
		}
		if _, err := read(nonce); err != nil {
			// The counter alone still makes the token unique within this process.
			nonce = nonce[:0]
		}
		buf = append(buf, nonce...)
		buf = append(buf, previous...)
		sum := blake2b.Sum256(buf)
		next := Token(hex.EncodeToString(sum[:16]))
		if next != previous {
			return next
		}
	}
}

// Check fails with apperrors.ErrStaleRevision unless supplied matches current.
func Check(current, supplied Token) error {
	if supplied != current {
		return fmt.Errorf("%w: supplied revision does not match current revision", apperrors.ErrStaleRevision)
	}
	return nil
}
