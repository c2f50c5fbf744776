// SPDX-License-Identifier: MIT

// Package aig implements the core of a logic-synthesis And-Inverter
// Graph engine: an in-memory, mutable Boolean circuit representation
// and the algorithms that transform it while preserving functional
// equivalence.
//
// The package provides:
//
//   - Manager: an arena of typed nodes (constants, combinational I/O,
//     AND/EXOR nodes, latches, buffers) with structural hashing,
//     reference counting and an optional fanout index.
//   - A rewriting engine that enumerates small cuts, canonicalises
//     them by NPN class, and splices in cheaper equivalent subgraphs.
//   - A SAT-backed FRAIG pass that merges functionally equivalent
//     nodes using simulation plus SAT equivalence proofs.
//   - FORCE placement, a one-dimensional hypergraph-ordering
//     heuristic producing a DFS order with small cross-cut.
//
// All operations on a single Manager are single-threaded; there is no
// internal locking. Persisted state is not modelled: a Manager can be
// rebuilt deterministically by walking nodes in topological order and
// re-issuing constructors against a fresh Manager.
package aig
