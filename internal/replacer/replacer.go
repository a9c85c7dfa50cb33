package replacer

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"avreap/internal/fileutil"
	"avreap/internal/services"
)

// BackupPath returns the time-suffixed backup path for a source path.
func BackupPath(sourcePath string, now time.Time) string {
	return fmt.Sprintf("%s.orig.%d", sourcePath, now.Unix())
}

// Replace performs the two-rename atomic swap: sourcePath is renamed to
// its backup path, then tempOutputPath is renamed to sourcePath. Both
// renames fall back to copy-then-unlink on a cross-device error. On
// failure after the first rename succeeds, it attempts to roll the backup
// back into place before returning. On success, the backup is deleted
// unless keepOriginal is set.
//
// No suspension point exists between the first successful rename and the
// second rename attempt or rollback: this function must run to completion
// without yielding to another caller touching the same paths, so callers
// must serialize replacement per source path themselves.
func Replace(sourcePath, tempOutputPath string, keepOriginal bool, now time.Time) error {
	backupPath := BackupPath(sourcePath, now)

	if err := renameOrCopy(sourcePath, backupPath); err != nil {
		return services.Wrap(services.ErrReplacement, "replacer", "backup", "failed to move source aside", err)
	}

	if err := renameOrCopy(tempOutputPath, sourcePath); err != nil {
		if rollbackErr := renameOrCopy(backupPath, sourcePath); rollbackErr != nil {
			return services.Wrap(services.ErrReplacement, "replacer", "install",
				fmt.Sprintf("install failed and rollback also failed: %v", rollbackErr), err)
		}
		return services.Wrap(services.ErrReplacement, "replacer", "install", "failed to install encoded output; rolled back", err)
	}

	if !keepOriginal {
		if err := os.Remove(backupPath); err != nil && !os.IsNotExist(err) {
			return services.Wrap(services.ErrReplacement, "replacer", "cleanup", "failed to delete backup after successful replacement", err)
		}
	}

	return nil
}

// renameOrCopy renames src to dst, falling back to a verified copy plus
// unlink when src and dst are on different filesystems.
func renameOrCopy(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !isCrossDevice(err) {
		return err
	}
	if copyErr := fileutil.CopyFileVerified(src, dst); copyErr != nil {
		return copyErr
	}
	return os.Remove(src)
}

func isCrossDevice(err error) bool {
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return errors.Is(linkErr.Err, syscall.EXDEV)
	}
	return false
}
