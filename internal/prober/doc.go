// Package prober wraps the external inspection binary (ffprobe) and
// exposes a typed view of its JSON output: container format fields and an
// ordered stream list, plus the deterministic main-video-stream selection
// rule the controller relies on at PROBING and VALIDATING.
package prober
