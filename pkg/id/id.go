// Package id generates identifiers for records and requests.
package id

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NextLength is the length of identifiers produced by Next.
const NextLength = 50

// Next returns a 50 character record identifier: a zero padded 15 digit
// millisecond timestamp, 32 hex digits of a random UUID and a "000" suffix.
// Identifiers sort by creation time, which keeps primary key order stable.
func Next() string {
	return nextAt(time.Now())
}

func nextAt(t time.Time) string {
	u := uuid.New()
	return fmt.Sprintf("%015d%s000", t.UnixMilli(), strings.ReplaceAll(u.String(), "-", ""))
}

// New returns a random UUID string. Used for request IDs.
func New() string {
	return uuid.NewString()
}
