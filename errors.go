// SPDX-License-Identifier: MIT

package aig

import (
	"errors"
	"fmt"
)

// Sentinel errors for the non-fatal categories of §7: SAT undecided
// and resource exhaustion are absorbed inside a pass and surface as
// Stats. No function in this package returns either sentinel.
var (
	ErrResourceExhausted = errors.New("aig: resource exhausted")
	ErrSATUndecided      = errors.New("aig: SAT query undecided")
)

// CycleError is returned by acyclicity checks and marks the Manager
// invalid for further algorithms (§7 "Cycle detected").
type CycleError struct {
	Path []NodeID
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("aig: cycle detected, path length %d", len(e.Path))
}

// StructuralInvariantError reports a fatal internal-bug class failure
// detected by a check routine (§7 "Structural invariant violation").
type StructuralInvariantError struct {
	Invariant string
	NodeID    NodeID
	Detail    string
}

func (e *StructuralInvariantError) Error() string {
	return fmt.Sprintf("aig: invariant %q violated at node %d: %s", e.Invariant, e.NodeID, e.Detail)
}

// ContractViolation is panicked (never returned) when a caller
// violates a construction contract: a constant latch fanin, a Po or
// Buf replacement target, a cut that does not bound its root, and
// similar §7 "Caller contract violation" cases. It is a typed value, not a bare string,
// so a recovering caller can errors.As it out of a recovered any.
type ContractViolation struct {
	Op     string
	Detail string
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("aig: contract violation in %s: %s", e.Op, e.Detail)
}

func violate(op, detail string) {
	panic(&ContractViolation{Op: op, Detail: detail})
}
