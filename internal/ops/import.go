package ops

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chytanka/chytanka/internal/db"
	"github.com/chytanka/chytanka/internal/errors"
	"github.com/chytanka/chytanka/internal/uktext"
)

// ImportMode controls collision behavior during import.
type ImportMode string

const (
	ImportModeSkip    ImportMode = "skip"    // keep existing entries
	ImportModeReplace ImportMode = "replace" // overwrite on collision
)

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	Path string     // required
	Mode ImportMode // default: skip
}

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Errors   []ImportError `json:"errors"`
}

// ImportError represents an error that occurred during import.
type ImportError struct {
	Line    int    `json:"line"`
	Word    string `json:"word,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// importRecord is one line of an export file. The header fields let the
// parser recognize and skip the header line.
type importRecord struct {
	ChytankaExport bool `json:"_chytanka_export"`
	db.Word
}

// Import reads vocabulary entries from a JSONL export file into the
// vocabulary. Malformed lines are reported, not fatal.
func Import(env *Env, input ImportInput) (*ImportOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}
	if input.Mode == "" {
		input.Mode = ImportModeSkip
	}
	if input.Mode != ImportModeSkip && input.Mode != ImportModeReplace {
		return nil, errors.NewInvalidRequest("mode must be one of: skip, replace")
	}

	if err := ValidatePath(input.Path, PathCheckRead, env.Config); err != nil {
		return nil, err
	}

	file, err := openFileNoFollowRead(input.Path)
	if err != nil {
		if _, ok := err.(*errors.Error); ok {
			return nil, err
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to open import file: %w", err))
	}
	defer file.Close()

	out := &ImportOutput{}
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		var record importRecord
		if err := json.Unmarshal(line, &record); err != nil {
			out.Errors = append(out.Errors, ImportError{
				Line:    lineNum,
				Code:    "PARSE_ERROR",
				Message: fmt.Sprintf("invalid JSON: %v", err),
			})
			continue
		}
		if record.ChytankaExport {
			continue
		}
		if strings.TrimSpace(record.Word.Word) == "" {
			out.Errors = append(out.Errors, ImportError{
				Line:    lineNum,
				Code:    "INVALID_RECORD",
				Message: "missing word field",
			})
			continue
		}
		if !record.Stage.Valid() {
			out.Errors = append(out.Errors, ImportError{
				Line:    lineNum,
				Word:    record.Word.Word,
				Code:    "INVALID_STAGE",
				Message: fmt.Sprintf("unknown stage %q", record.Stage),
			})
			continue
		}

		if input.Mode == ImportModeSkip {
			norm := uktext.NormalizeWord(record.Word.Word)
			if _, err := env.Vocab.Word(norm); err == nil {
				out.Skipped++
				continue
			} else if !errors.Is(err, errors.ErrNotFound) {
				return nil, err
			}
		}

		if err := env.Vocab.AddWord(&record.Word); err != nil {
			return nil, err
		}
		out.Imported++
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to read import file: %w", err))
	}
	return out, nil
}
