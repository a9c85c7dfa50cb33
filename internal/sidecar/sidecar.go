// Package sidecar manages the two sidecar file kinds written next to a
// source video: a permanent-skip marker and a human-readable reason file.
package sidecar

import (
	"fmt"
	"os"
)

const (
	skipSuffix   = ".av1skip"
	reasonSuffix = ".why.txt"
)

// SkipPath returns the permanent-skip marker path for a source path.
func SkipPath(sourcePath string) string {
	return sourcePath + skipSuffix
}

// ReasonPath returns the reason-file path for a source path.
func ReasonPath(sourcePath string) string {
	return sourcePath + reasonSuffix
}

// HasSkip reports whether sourcePath already carries a permanent-skip
// marker. Tested before probing so a previously-rejected file is never
// re-probed.
func HasSkip(sourcePath string) bool {
	_, err := os.Stat(SkipPath(sourcePath))
	return err == nil
}

// MarkSkip writes the zero-byte permanent-skip marker for sourcePath.
func MarkSkip(sourcePath string) error {
	f, err := os.OpenFile(SkipPath(sourcePath), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("mark skip %s: %w", sourcePath, err)
	}
	return f.Close()
}

// WriteReason writes a UTF-8 reason string to sourcePath's reason file.
func WriteReason(sourcePath, text string) error {
	if err := os.WriteFile(ReasonPath(sourcePath), []byte(text), 0o644); err != nil {
		return fmt.Errorf("write reason %s: %w", sourcePath, err)
	}
	return nil
}
