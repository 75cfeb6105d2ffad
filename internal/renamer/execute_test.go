package renamer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"reelmatch/internal/config"
	"reelmatch/internal/history"
	"reelmatch/internal/logging"
)

func writeSource(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func executeFixture(t *testing.T) (*config.Config, *history.Store, string) {
	t.Helper()
	cfg := testConfig(t)
	dl := t.TempDir()
	cfg.Paths.HistoryDB = filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(cfg.Paths.HistoryDB)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return cfg, store, dl
}

func TestExecuteMoveRecordsHistory(t *testing.T) {
	cfg, store, dl := executeFixture(t)
	source := writeSource(t, dl, "show.s01e01.mkv")
	target := filepath.Join(cfg.Paths.LibraryDir, "tv", "Show", "Season 01", "Show - S01E01.mkv")

	plan := Plan{Action: "move", Items: []PlanItem{{Source: source, Target: target, DisplayName: "Show S01E01"}}}
	result, err := Execute(context.Background(), cfg, plan, store, logging.NewNop())
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(result.Applied) != 1 || result.BatchID == "" {
		t.Fatalf("unexpected result: %+v", result)
	}

	if _, err := os.Stat(target); err != nil {
		t.Errorf("target missing: %v", err)
	}
	if _, err := os.Stat(source); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("source still present after move")
	}

	entries, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].TargetPath != target || entries[0].Action != "move" {
		t.Errorf("unexpected history: %+v", entries)
	}
}

func TestExecuteCopyKeepsSource(t *testing.T) {
	cfg, store, dl := executeFixture(t)
	source := writeSource(t, dl, "movie.mkv")
	target := filepath.Join(cfg.Paths.LibraryDir, "movies", "Movie (2020)", "Movie (2020).mkv")

	plan := Plan{Action: "copy", Items: []PlanItem{{Source: source, Target: target}}}
	if _, err := Execute(context.Background(), cfg, plan, store, logging.NewNop()); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if _, err := os.Stat(source); err != nil {
		t.Errorf("source removed by copy: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("target unreadable: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("target content = %q", data)
	}
}

func TestExecuteDryRunTouchesNothing(t *testing.T) {
	cfg, store, dl := executeFixture(t)
	source := writeSource(t, dl, "movie.mkv")
	target := filepath.Join(cfg.Paths.LibraryDir, "movies", "X", "X.mkv")

	plan := Plan{Action: "dryrun", Items: []PlanItem{{Source: source, Target: target}}}
	result, err := Execute(context.Background(), cfg, plan, store, logging.NewNop())
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(result.Applied) != 0 || len(result.Skipped) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if _, err := os.Stat(target); !errors.Is(err, os.ErrNotExist) {
		t.Error("dryrun created the target")
	}
	entries, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("dryrun recorded history: %+v", entries)
	}
}

func TestExecuteConflictSkip(t *testing.T) {
	cfg, store, dl := executeFixture(t)
	source := writeSource(t, dl, "movie.mkv")
	target := filepath.Join(cfg.Paths.LibraryDir, "existing.mkv")
	if err := os.WriteFile(target, []byte("original"), 0o644); err != nil {
		t.Fatal(err)
	}

	plan := Plan{Action: "move", Items: []PlanItem{{Source: source, Target: target}}}
	result, err := Execute(context.Background(), cfg, plan, store, logging.NewNop())
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(result.Skipped) != 1 || len(result.Applied) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	data, _ := os.ReadFile(target)
	if string(data) != "original" {
		t.Error("existing target was overwritten under skip policy")
	}
	if _, err := os.Stat(source); err != nil {
		t.Error("source moved despite skip")
	}
}

func TestExecuteConflictFail(t *testing.T) {
	cfg, store, dl := executeFixture(t)
	cfg.Rename.OnConflict = "fail"
	source := writeSource(t, dl, "movie.mkv")
	target := filepath.Join(cfg.Paths.LibraryDir, "existing.mkv")
	if err := os.WriteFile(target, []byte("original"), 0o644); err != nil {
		t.Fatal(err)
	}

	plan := Plan{Action: "move", Items: []PlanItem{{Source: source, Target: target}}}
	if _, err := Execute(context.Background(), cfg, plan, store, logging.NewNop()); !errors.Is(err, ErrTargetExists) {
		t.Fatalf("err = %v, want ErrTargetExists", err)
	}
}

func TestExecuteConflictOverride(t *testing.T) {
	cfg, store, dl := executeFixture(t)
	cfg.Rename.OnConflict = "override"
	source := writeSource(t, dl, "movie.mkv")
	target := filepath.Join(cfg.Paths.LibraryDir, "existing.mkv")
	if err := os.WriteFile(target, []byte("original"), 0o644); err != nil {
		t.Fatal(err)
	}

	plan := Plan{Action: "move", Items: []PlanItem{{Source: source, Target: target}}}
	result, err := Execute(context.Background(), cfg, plan, store, logging.NewNop())
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(result.Applied) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	data, _ := os.ReadFile(target)
	if string(data) != "payload" {
		t.Error("target not replaced under override policy")
	}
}

func TestRevertRestoresMovedFiles(t *testing.T) {
	cfg, store, dl := executeFixture(t)
	source := writeSource(t, dl, "show.s01e01.mkv")
	target := filepath.Join(cfg.Paths.LibraryDir, "tv", "Show", "Show - S01E01.mkv")

	plan := Plan{Action: "move", Items: []PlanItem{{Source: source, Target: target}}}
	result, err := Execute(context.Background(), cfg, plan, store, logging.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	if err := Revert(context.Background(), store, result.BatchID, logging.NewNop()); err != nil {
		t.Fatalf("Revert returned error: %v", err)
	}
	if _, err := os.Stat(source); err != nil {
		t.Errorf("source not restored: %v", err)
	}
	if _, err := os.Stat(target); !errors.Is(err, os.ErrNotExist) {
		t.Error("target still present after revert")
	}

	entries, err := store.Batch(context.Background(), result.BatchID)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !entries[0].Reverted {
		t.Errorf("batch not flagged reverted: %+v", entries)
	}
}

func TestRevertRemovesCopies(t *testing.T) {
	cfg, store, dl := executeFixture(t)
	source := writeSource(t, dl, "movie.mkv")
	target := filepath.Join(cfg.Paths.LibraryDir, "copy.mkv")

	plan := Plan{Action: "copy", Items: []PlanItem{{Source: source, Target: target}}}
	result, err := Execute(context.Background(), cfg, plan, store, logging.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if err := Revert(context.Background(), store, result.BatchID, logging.NewNop()); err != nil {
		t.Fatalf("Revert returned error: %v", err)
	}
	if _, err := os.Stat(target); !errors.Is(err, os.ErrNotExist) {
		t.Error("copy not removed by revert")
	}
	if _, err := os.Stat(source); err != nil {
		t.Error("source harmed by revert of a copy")
	}
}
