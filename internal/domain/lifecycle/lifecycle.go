// Package lifecycle holds shared timing constants for start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds fx OnStart/OnStop work such as pinging the database or draining the HTTP server.
const DefaultTimeout = 10 * time.Second
