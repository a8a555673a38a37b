package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewID generates a record identifier of the form
// "<millisecond-timestamp>-<random suffix>". IDs are generated once and
// immutable; the uuid fragment makes same-millisecond collisions negligible.
func NewID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
