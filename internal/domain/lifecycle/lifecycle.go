// Package lifecycle holds process lifecycle constants shared by the infrastructure and delivery layers.
package lifecycle

import "time"

// DefaultTimeout bounds start hooks (database ping, migrations) and graceful shutdown.
const DefaultTimeout = 10 * time.Second
