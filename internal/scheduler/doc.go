// Package scheduler drives the periodic scan cycle and admits discovered
// candidates into a bounded worker pool, adapted from the reference
// daemon's lane-polling run loop (internal/workflow) but replacing its
// one-item-per-lane model with a buffered-semaphore pool sized for
// multiple concurrent jobs.
package scheduler
