package content

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// idPattern matches the ULIDs used as file names. Anything else is rejected
// before it reaches the filesystem.
var idPattern = regexp.MustCompile(`^[0-9A-Za-z]{1,40}$`)

// store is a generic one-file-per-item JSON store.
type store[T any] struct {
	dir       string
	createdAt func(*T) int64
}

func newStore[T any](dir string, createdAt func(*T) int64) (*store[T], error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create content directory: %w", err)
	}
	return &store[T]{dir: dir, createdAt: createdAt}, nil
}

func (s *store[T]) path(id string) (string, error) {
	if !idPattern.MatchString(id) {
		return "", fmt.Errorf("invalid content id %q", id)
	}
	return filepath.Join(s.dir, id+".json"), nil
}

// listAll loads every item, newest first. Unreadable files are logged and
// skipped rather than failing the whole listing.
func (s *store[T]) listAll() ([]*T, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var items []*T
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			log.Printf("warning: could not read %s: %v", entry.Name(), err)
			continue
		}
		item := new(T)
		if err := json.Unmarshal(data, item); err != nil {
			log.Printf("warning: could not parse %s: %v", entry.Name(), err)
			continue
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return s.createdAt(items[i]) > s.createdAt(items[j])
	})
	return items, nil
}

// get loads one item, or nil if it does not exist.
func (s *store[T]) get(id string) (*T, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	item := new(T)
	if err := json.Unmarshal(data, item); err != nil {
		return nil, err
	}
	return item, nil
}

// save writes the item to a temp file and renames it into place so a crash
// mid-write never leaves a truncated item.
func (s *store[T]) save(id string, item *T) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(item, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Chmod(path, 0600)
}

// delete removes the item. Returns false if it did not exist.
func (s *store[T]) delete(id string) (bool, error) {
	path, err := s.path(id)
	if err != nil {
		return false, err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *store[T]) exists(id string) bool {
	path, err := s.path(id)
	if err != nil {
		return false
	}
	_, statErr := os.Stat(path)
	return statErr == nil
}
