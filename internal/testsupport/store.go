package testsupport

import (
	"testing"

	"avreap/internal/jobstore"
)

// OpenStore opens a jobstore.Store rooted at a fresh per-test temp
// directory, for tests that need the one-file-per-job harness; the
// controller tests use it.
func OpenStore(t testing.TB) *jobstore.Store {
	t.Helper()
	store, err := jobstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("jobstore.Open: %v", err)
	}
	return store
}
