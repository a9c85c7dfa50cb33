// Package policy translates probed video metadata and classifier output
// into encoder parameters: CRF, preset, tile layout, cpu-used, pad filter,
// and timestamp-safety flags. It is pure — same input always yields the
// same decision — so the controller never needs to serialize policy calls
// across concurrent jobs.
package policy
