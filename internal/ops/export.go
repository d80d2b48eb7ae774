package ops

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/chytanka/chytanka/internal/db"
	"github.com/chytanka/chytanka/internal/errors"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Path  string // optional, default: ~/.chytanka/exports/vocab-<stage>-<timestamp>.jsonl
	Stage string // optional filter by learning stage
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path       string `json:"path"`
	Count      int    `json:"count"`
	ExportedAt int64  `json:"exported_at"`
}

// ExportHeader represents the header line in a JSONL export file.
type ExportHeader struct {
	ChytankaExport bool   `json:"_chytanka_export"`
	SchemaVersion  string `json:"schema_version"`
	ExportedAt     int64  `json:"exported_at"`
}

// Export writes vocabulary entries to a JSONL file, one word per line after
// a header line.
func Export(ctx context.Context, env *Env, input ExportInput) (*ExportOutput, error) {
	now := time.Now()
	exportedAt := now.Unix()

	words, err := exportWords(env, input.Stage)
	if err != nil {
		return nil, err
	}

	exportPath := input.Path
	if exportPath == "" {
		exportPath, err = defaultExportPath(input.Stage, now)
		if err != nil {
			return nil, err
		}
	}

	// Validate ALL paths (both user-provided and default) for security.
	if err := ValidatePath(exportPath, PathCheckWrite, env.Config); err != nil {
		return nil, err
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	// Write to temp file first, then atomic rename to preserve any existing
	// file on failure.
	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := exportPath + "." + hex.EncodeToString(randBytes) + ".tmp"
	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	header := ExportHeader{
		ChytankaExport: true,
		SchemaVersion:  "1.0",
		ExportedAt:     exportedAt,
	}
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	if _, err := file.Write(append(headerJSON, '\n')); err != nil {
		return nil, errors.NewInternal(err)
	}

	count := 0
	for _, w := range words {
		select {
		case <-ctx.Done():
			return nil, errors.NewCancelled()
		default:
		}

		recordJSON, err := json.Marshal(w)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		if _, err := file.Write(append(recordJSON, '\n')); err != nil {
			return nil, errors.NewInternal(err)
		}
		count++
	}

	if err := file.Sync(); err != nil {
		return nil, errors.NewInternal(err)
	}

	// Close before atomic replace (required on Windows; fine elsewhere).
	if err := file.Close(); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to close export file: %w", err))
	}
	file = nil

	// Check if destination is a symlink (os.Rename would follow it)
	if info, err := os.Lstat(exportPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return nil, errors.NewInternal(fmt.Errorf("export path is a symlink"))
	}

	// Finalize export by renaming the temp file into place.
	//
	// Note: On Windows, os.Rename fails if the destination exists. We
	// intentionally fail safely (preserving the existing file) instead of
	// doing a non-atomic delete+rename that could lose the original.
	if err := os.Rename(tempPath, exportPath); err != nil {
		if runtime.GOOS == "windows" {
			if _, statErr := os.Stat(exportPath); statErr == nil {
				return nil, errors.NewInvalidRequest("export destination already exists; overwriting is not supported on Windows yet (choose a new path or delete the existing file)")
			}
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}

	success = true
	return &ExportOutput{
		Path:       exportPath,
		Count:      count,
		ExportedAt: exportedAt,
	}, nil
}

func exportWords(env *Env, stageName string) ([]*db.Word, error) {
	if stageName == "" {
		return env.Vocab.AllWords()
	}
	stage, err := ParseStage(stageName)
	if err != nil {
		return nil, err
	}
	return env.Vocab.WordsByStage(stage)
}

// defaultExportPath generates the default export path.
// Format: ~/.chytanka/exports/vocab-<stage>-<timestamp>.jsonl or
// vocab-all-<timestamp>.jsonl.
func defaultExportPath(stageName string, now time.Time) (string, error) {
	dir, err := DefaultExportsDir()
	if err != nil {
		return "", err
	}

	timestamp := now.Format("2006-01-02T150405")
	name := "all"
	if stageName != "" {
		name = SanitizeForFilename(stageName)
	}

	filename := fmt.Sprintf("vocab-%s-%s.jsonl", name, timestamp)
	return filepath.Join(dir, filename), nil
}
