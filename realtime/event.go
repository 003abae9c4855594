package realtime

import (
	"sort"

	"github.com/comalice/gearbox/internal/core"
)

// OpWithMeta adds sequencing metadata for deterministic ordering.
type OpWithMeta struct {
	Op          core.Op
	SequenceNum uint64
	Priority    int
}

// sortOps orders a tick's batch: higher priority first, then FIFO.
func sortOps(ops []OpWithMeta) {
	sort.SliceStable(ops, func(i, j int) bool {
		if ops[i].Priority != ops[j].Priority {
			return ops[i].Priority > ops[j].Priority
		}
		return ops[i].SequenceNum < ops[j].SequenceNum
	})
}
