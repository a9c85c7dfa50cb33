package jobstore_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"avreap/internal/job"
	"avreap/internal/jobstore"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := jobstore.Open(dir)
	if err != nil {
		t.Fatal(err)
	}

	rec := &job.Record{
		ID:         jobstore.NewID(),
		SourcePath: "/media/movie.mkv",
		Status:     job.StatusRunning,
		Phase:      job.PhaseProbing,
		CreatedAt:  time.Now(),
	}
	if err := store.Save(rec); err != nil {
		t.Fatal(err)
	}

	got, err := store.Load(rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.SourcePath != rec.SourcePath || got.Status != rec.Status {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestLoadAllSkipsUnparseableFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := jobstore.Open(dir)
	if err != nil {
		t.Fatal(err)
	}

	good := &job.Record{ID: jobstore.NewID(), SourcePath: "/a.mkv", Status: job.StatusPending, CreatedAt: time.Now()}
	if err := store.Save(good); err != nil {
		t.Fatal(err)
	}

	garbage := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(garbage, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := store.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].ID != good.ID {
		t.Fatalf("expected only the valid record, got %+v", records)
	}
}

func TestFindBySourcePathIgnoresTerminal(t *testing.T) {
	dir := t.TempDir()
	store, err := jobstore.Open(dir)
	if err != nil {
		t.Fatal(err)
	}

	done := &job.Record{ID: jobstore.NewID(), SourcePath: "/movie.mkv", Status: job.StatusSuccess, CreatedAt: time.Now()}
	inFlight := &job.Record{ID: jobstore.NewID(), SourcePath: "/movie.mkv", Status: job.StatusRunning, Phase: job.PhaseEncoding, CreatedAt: time.Now().Add(time.Second)}
	if err := store.Save(done); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(inFlight); err != nil {
		t.Fatal(err)
	}

	found, err := store.FindBySourcePath("/movie.mkv")
	if err != nil {
		t.Fatal(err)
	}
	if found == nil || found.ID != inFlight.ID {
		t.Fatalf("expected in-flight record, got %+v", found)
	}
}
