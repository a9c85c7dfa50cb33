// Package controller drives a single candidate through the DISCOVERED →
// PROBING → PLANNING → ENCODING → VALIDATING → SIZE_GATING → REPLACING
// state machine, persisting a job record on every transition, adapted
// from the reference daemon's per-stage run helper (internal/stageexec)
// which applies the same transition-then-persist-then-log discipline to
// a fixed sequence of stage handlers.
package controller
