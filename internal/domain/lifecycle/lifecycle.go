// Package lifecycle holds shared constants for process lifecycle handling.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of every delivery.
const DefaultTimeout = 10 * time.Second
