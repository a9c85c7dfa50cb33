// Package scanner walks library roots for candidate video files and
// applies the stable-size gate that keeps the pipeline from touching a
// file still being written, adapted from the reference daemon's staging
// directory walk (internal/staging) which applies the same best-effort,
// never-fatal error handling to filesystem traversal.
package scanner
