package chatid

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

// New returns a lowercase ULID string. ULIDs sort lexicographically by
// creation time, so identifier order is a deterministic tie-breaker for
// rows sharing a timestamp.
func New() string {
	mu.Lock()
	defer mu.Unlock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
	return strings.ToLower(id.String())
}

// IsValid reports whether the string parses as a ULID.
func IsValid(value string) bool {
	_, err := ulid.Parse(strings.TrimSpace(value))
	return err == nil
}
