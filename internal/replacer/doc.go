// Package replacer performs the two-rename atomic swap that installs an
// encoded output over its source, with a cross-device copy-then-unlink
// fallback and rollback on partial failure, adapted from the reference
// daemon's disc-review file-move helper (os.Rename plus an os.ErrExist and
// EXDEV fallback) and its verified-copy utility.
package replacer
