// Package gitgraph parses a branch-and-commit description language into a
// positioned graph model.
//
// The input is an ordered list of graph-construction directives, one per
// line. The four recognized forms are:
//
//	commit [id: "<id>"] [tag: "<tag>"]
//	branch <name>
//	checkout <name>
//	merge <name>
//
// Lines are replayed in order through a single-pass state machine that
// tracks one timeline per branch. Each commit-like directive (commit or
// merge) produces a node whose horizontal position comes from a global step
// counter shared across all branches and whose vertical position comes from
// the owning branch's lane. The result is a [Model]: branches, positioned
// nodes, and colored edges, ready for an emitter to serialize.
//
// # Permissiveness
//
// The parser never fails. Unrecognized lines, checkouts of unknown
// branches, duplicate branch declarations, and merges of unknown or empty
// branches all degrade to no-ops or partial output instead of raising
// errors. This favors best-effort visualization of sloppy input over strict
// validation; callers that want stricter guarantees can inspect the model.
//
// # Determinism
//
// For a fixed input text the produced model is identical across runs:
// synthetic ids derive from source line numbers, colors from lane indexes,
// and positions from directive order. Nothing reads the clock or random
// state.
package gitgraph
