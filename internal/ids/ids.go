package ids

import (
	mathrand "math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

// New returns a lexicographically sortable identifier for locally created records.
func New() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// Prefixed returns a prefixed identifier, e.g. "res-01J...". Locally minted
// records carry a prefix so they never collide with the upstream id space.
func Prefixed(prefix string) string {
	prefix = strings.TrimSuffix(prefix, "-")
	if prefix == "" {
		return New()
	}
	return prefix + "-" + New()
}
