package scratch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rohmanhakim/aoc-cache/pkg/failure"
)

// LocalProvider resolves scratch directories under the user cache
// directory (os.UserCacheDir). A non-empty base overrides that
// location, which is how a --cache-dir flag reaches the store.
type LocalProvider struct {
	base string
}

func NewLocalProvider(base string) *LocalProvider {
	return &LocalProvider{
		base: base,
	}
}

func (p *LocalProvider) Resolve(namespace string) (string, failure.ClassifiedError) {
	base := p.base
	if base == "" {
		userCacheDir, err := os.UserCacheDir()
		if err != nil {
			return "", &ScratchError{
				Message:   fmt.Sprintf("%v", err),
				Retryable: false,
				Cause:     ErrCausePathError,
			}
		}
		base = userCacheDir
	}

	dir := filepath.Join(base, namespace)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &ScratchError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: false,
			Cause:     ErrCausePathError,
		}
	}
	return dir, nil
}
