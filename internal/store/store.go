package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/rohmanhakim/aoc-cache/internal/scratch"
	"github.com/rohmanhakim/aoc-cache/pkg/failure"
)

/*
Responsibilities
- Map a cache identifier to persisted bytes under the scratch root
- Report absence as a miss, never as an error

Storage Characteristics
- One flat directory per namespace, one file per entry
- Entry files are named by the identifier plus a versioned extension
- Idempotent, overwrite-safe writes
- Round-trip fidelity: Read returns exactly the bytes Write persisted,
  no envelope, no metadata, no transformation
*/

// Namespace keys the scratch directory owned by this package.
const Namespace = "aoc-cache"

// entryExt versions the on-disk entry name. A change to the key
// scheme must change this extension so old entries cannot be
// misread as new-scheme hits.
const entryExt = ".v1.input"

type Store interface {
	Read(id string) (string, bool, failure.ClassifiedError)
	Write(id string, content string) failure.ClassifiedError
}

// LocalStore persists entries as flat files under a directory
// resolved once per process from the scratch provider.
type LocalStore struct {
	provider scratch.Provider

	resolveOnce sync.Once
	root        string
	resolveErr  failure.ClassifiedError
}

func NewLocalStore(provider scratch.Provider) *LocalStore {
	return &LocalStore{
		provider: provider,
	}
}

func (s *LocalStore) resolveRoot() (string, failure.ClassifiedError) {
	s.resolveOnce.Do(func() {
		root, err := s.provider.Resolve(Namespace)
		if err != nil {
			s.resolveErr = &StorageError{
				Message:   err.Error(),
				Retryable: false,
				Cause:     ErrCausePathError,
				Path:      "",
			}
			return
		}
		s.root = root
	})
	return s.root, s.resolveErr
}

// Read returns the content stored for id, or found=false when no
// entry exists. Only failures distinct from absence (permission
// denied, unreadable entry) are reported as errors.
func (s *LocalStore) Read(id string) (string, bool, failure.ClassifiedError) {
	root, err := s.resolveRoot()
	if err != nil {
		return "", false, err
	}

	entryPath := filepath.Join(root, id+entryExt)
	content, readErr := os.ReadFile(entryPath)
	if readErr != nil {
		if errors.Is(readErr, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, &StorageError{
			Message:   readErr.Error(),
			Retryable: false,
			Cause:     ErrCauseReadFailure,
			Path:      entryPath,
		}
	}
	return string(content), true, nil
}

// Write creates or overwrites the entry for id with content.
// Entries for the same id are expected to be content-identical, so
// concurrent last-writer-wins overwrites are harmless.
func (s *LocalStore) Write(id string, content string) failure.ClassifiedError {
	root, err := s.resolveRoot()
	if err != nil {
		return err
	}

	entryPath := filepath.Join(root, id+entryExt)
	if writeErr := os.WriteFile(entryPath, []byte(content), 0644); writeErr != nil {
		cause := ErrCauseWriteFailure
		retryable := false
		if errors.Is(writeErr, syscall.ENOSPC) {
			cause = ErrCauseDiskFull
			retryable = true
		}
		return &StorageError{
			Message:   writeErr.Error(),
			Retryable: retryable,
			Cause:     cause,
			Path:      entryPath,
		}
	}
	return nil
}
