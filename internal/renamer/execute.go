package renamer

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"reelmatch/internal/config"
	"reelmatch/internal/history"
	"reelmatch/internal/logging"
)

// ErrTargetExists reports a conflict under on_conflict = "fail".
var ErrTargetExists = errors.New("target already exists")

// ExecuteResult summarizes an applied plan.
type ExecuteResult struct {
	BatchID string
	Applied []PlanItem
	Skipped []PlanItem
}

// Execute applies a plan to the filesystem and records the applied items in
// history. Conflict handling follows cfg.Rename.OnConflict: "skip" leaves
// the source in place, "fail" aborts before touching anything else, and
// "override" replaces the target. The dryrun action records nothing.
func Execute(ctx context.Context, cfg *config.Config, plan Plan, store *history.Store, logger *slog.Logger) (*ExecuteResult, error) {
	logger = logging.NewComponentLogger(logger, "rename")
	result := &ExecuteResult{}
	if len(plan.Items) == 0 {
		return result, nil
	}
	if plan.Action == "dryrun" {
		result.Skipped = append(result.Skipped, plan.Items...)
		return result, nil
	}

	lock := history.NewLock(cfg.Paths.HistoryDB)
	if err := lock.Acquire(); err != nil {
		return nil, err
	}
	defer func() { _ = lock.Release() }()

	for _, item := range plan.Items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := os.Lstat(item.Target); err == nil {
			switch cfg.Rename.OnConflict {
			case "fail":
				return nil, fmt.Errorf("%w: %s", ErrTargetExists, item.Target)
			case "override":
				if err := os.Remove(item.Target); err != nil {
					return nil, fmt.Errorf("remove existing target: %w", err)
				}
			default:
				logger.Info("skipping existing target",
					logging.String(logging.FieldPath, item.Target))
				result.Skipped = append(result.Skipped, item)
				continue
			}
		}

		if err := applyAction(plan.Action, item.Source, item.Target); err != nil {
			return nil, fmt.Errorf("%s %s: %w", plan.Action, item.Source, err)
		}
		logger.Info("renamed",
			logging.String("from", item.Source),
			logging.String("to", item.Target))
		result.Applied = append(result.Applied, item)
	}

	if len(result.Applied) > 0 && store != nil {
		result.BatchID = history.NewBatchID()
		entries := make([]history.Entry, 0, len(result.Applied))
		for _, item := range result.Applied {
			entries = append(entries, history.Entry{
				SourcePath:  item.Source,
				TargetPath:  item.Target,
				Action:      plan.Action,
				DisplayName: item.DisplayName,
			})
		}
		if err := store.Append(ctx, result.BatchID, entries); err != nil {
			return nil, fmt.Errorf("record history: %w", err)
		}
	}
	return result, nil
}

// Revert undoes one history batch: moved files go back to their source,
// copies and links are removed. Entries are reverted in reverse order and
// the batch is flagged afterwards.
func Revert(ctx context.Context, store *history.Store, batchID string, logger *slog.Logger) error {
	logger = logging.NewComponentLogger(logger, "revert")
	entries, err := store.Batch(ctx, batchID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no history for batch %s", batchID)
	}

	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		if entry.Reverted {
			continue
		}
		switch entry.Action {
		case "move":
			if err := os.MkdirAll(filepath.Dir(entry.SourcePath), 0o755); err != nil {
				return fmt.Errorf("restore directory: %w", err)
			}
			if err := moveFile(entry.TargetPath, entry.SourcePath); err != nil {
				return fmt.Errorf("restore %s: %w", entry.SourcePath, err)
			}
		case "copy", "hardlink", "symlink":
			if err := os.Remove(entry.TargetPath); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("remove %s: %w", entry.TargetPath, err)
			}
		}
		logger.Info("reverted", logging.String(logging.FieldPath, entry.TargetPath))
	}
	return store.MarkReverted(ctx, batchID)
}

func applyAction(action, source, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	switch action {
	case "move":
		return moveFile(source, target)
	case "copy":
		return copyFile(source, target)
	case "hardlink":
		return os.Link(source, target)
	case "symlink":
		return os.Symlink(source, target)
	default:
		return fmt.Errorf("unknown action %q", action)
	}
}

// moveFile renames, falling back to copy-and-delete across filesystems.
func moveFile(source, target string) error {
	if err := os.Rename(source, target); err == nil {
		return nil
	}
	if err := copyFile(source, target); err != nil {
		return err
	}
	return os.Remove(source)
}

// copyFile copies source to target, verifying both size and content hash.
func copyFile(source, target string) error {
	srcInfo, err := os.Stat(source)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, dstHasher)

	written, err := io.Copy(multi, tee)
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if written != srcInfo.Size() {
		_ = os.Remove(target)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcInfo.Size(), written)
	}
	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = os.Remove(target)
		return errors.New("copy hash mismatch: file corrupted during copy")
	}
	return nil
}
