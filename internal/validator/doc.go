// Package validator re-probes an encoder's temporary output and enforces
// the stream-count and duration contracts a successful encode must meet.
package validator
