package driver

import (
	"fmt"
	"sync/atomic"
)

// batchMetrics tracks counters across concurrent translation-unit jobs.
type batchMetrics struct {
	unitsCompleted   atomic.Int64
	unitsAborted     atomic.Int64
	unitsFailedLoad  atomic.Int64
	commandsResolved atomic.Int64
}

// Summary returns a one-line human-readable report.
func (m *batchMetrics) Summary() string {
	return fmt.Sprintf("units: %d ok, %d aborted, %d unreadable; commands resolved: %d",
		m.unitsCompleted.Load(), m.unitsAborted.Load(), m.unitsFailedLoad.Load(), m.commandsResolved.Load())
}
