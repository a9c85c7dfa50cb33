// Package daemon coordinates the long-running avreapd process.
//
// It wires configuration, the job record store, and the scheduler into a
// single lifecycle with flock-based locking to prevent multiple instances
// from touching the same library roots concurrently. The daemon itself owns
// only startup, shutdown, and status reporting; the scan cycle and pipeline
// state machine live in scheduler and controller respectively.
package daemon
