package history_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"reelmatch/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAppendAndList(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	batch := history.NewBatchID()
	entries := []history.Entry{
		{SourcePath: "/dl/a.mkv", TargetPath: "/lib/tv/A.mkv", Action: "move", DisplayName: "Show S01E01"},
		{SourcePath: "/dl/b.mkv", TargetPath: "/lib/tv/B.mkv", Action: "move", DisplayName: "Show S01E02"},
	}
	if err := store.Append(ctx, batch, entries); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}

	listed, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("got %d entries, want 2", len(listed))
	}
	// Newest first.
	if listed[0].SourcePath != "/dl/b.mkv" {
		t.Errorf("first listed entry = %q, want newest", listed[0].SourcePath)
	}
	if listed[0].BatchID != batch {
		t.Errorf("batch id = %q, want %q", listed[0].BatchID, batch)
	}
	if listed[0].CreatedAt.IsZero() {
		t.Error("created_at not recorded")
	}
}

func TestListLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := store.Append(ctx, history.NewBatchID(), []history.Entry{
			{SourcePath: "/a", TargetPath: "/b", Action: "move"},
		}); err != nil {
			t.Fatal(err)
		}
	}
	listed, err := store.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 2 {
		t.Errorf("got %d entries, want limit of 2", len(listed))
	}
}

func TestBatchAndRevertFlags(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first := history.NewBatchID()
	second := history.NewBatchID()
	if err := store.Append(ctx, first, []history.Entry{{SourcePath: "/1", TargetPath: "/x", Action: "move"}}); err != nil {
		t.Fatal(err)
	}
	if err := store.Append(ctx, second, []history.Entry{{SourcePath: "/2", TargetPath: "/y", Action: "copy"}}); err != nil {
		t.Fatal(err)
	}

	latest, err := store.LatestBatchID(ctx)
	if err != nil {
		t.Fatalf("LatestBatchID returned error: %v", err)
	}
	if latest != second {
		t.Errorf("latest batch = %q, want %q", latest, second)
	}

	if err := store.MarkReverted(ctx, second); err != nil {
		t.Fatalf("MarkReverted returned error: %v", err)
	}
	entries, err := store.Batch(ctx, second)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !entries[0].Reverted {
		t.Errorf("batch entries not flagged reverted: %+v", entries)
	}

	// A reverted batch no longer counts as latest.
	latest, err = store.LatestBatchID(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if latest != first {
		t.Errorf("latest after revert = %q, want %q", latest, first)
	}
}

func TestLatestBatchIDEmpty(t *testing.T) {
	store := openStore(t)
	if _, err := store.LatestBatchID(context.Background()); err == nil {
		t.Fatal("expected error for empty history")
	}
}

func TestAppendRequiresBatchID(t *testing.T) {
	store := openStore(t)
	err := store.Append(context.Background(), "  ", []history.Entry{{SourcePath: "/a", TargetPath: "/b", Action: "move"}})
	if err == nil {
		t.Fatal("expected error for blank batch id")
	}
}

func TestReopenExistingDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")

	store, err := history.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	batch := history.NewBatchID()
	if err := store.Append(context.Background(), batch, []history.Entry{{SourcePath: "/a", TargetPath: "/b", Action: "move"}}); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := history.Open(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer reopened.Close()
	entries, err := reopened.List(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d entries after reopen, want 1", len(entries))
	}
}

func TestLockExcludesSecondHolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	lock := history.NewLock(path)
	if err := lock.Acquire(); err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	defer lock.Release()

	second := history.NewLock(path)
	if err := second.Acquire(); !errors.Is(err, history.ErrLocked) {
		t.Fatalf("err = %v, want ErrLocked", err)
	}
}
