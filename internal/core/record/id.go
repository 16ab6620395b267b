package record

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewID derives a record id from wall-clock milliseconds. Two creates inside
// the same millisecond collide; the coordinator detects that against the
// existing collection and calls RederiveID instead of overwriting.
func NewID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}

// RederiveID derives a replacement id after a collision: the same millisecond
// stamp plus a random suffix, so ids stay roughly sortable by creation time.
func RederiveID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}
