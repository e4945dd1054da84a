package util

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

// NewULID generates a new ULID string.
// ULIDs are time-sortable unique identifiers, so ids generated by the same
// process compare in issue order. Fetch request tokens rely on this.
func NewULID() string {
	entropyLock.Lock()
	defer entropyLock.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// ValidateULID checks if a string is a valid ULID.
func ValidateULID(s string) bool {
	_, err := ulid.Parse(s)
	return err == nil
}

// ShortID returns the last 7 characters of an ID in lowercase.
// Useful for compact row display; UUIDs and ULIDs both keep most of their
// entropy at the end.
func ShortID(id string) string {
	id = strings.ToLower(id)
	if len(id) <= 7 {
		return id
	}
	return id[len(id)-7:]
}
