package scratch

import "github.com/rohmanhakim/aoc-cache/pkg/failure"

// Provider defines the port interface for scratch-directory resolution.
// This interface follows the port-adapter pattern, allowing different
// storage locations to be swapped without changing the store logic,
// and letting tests substitute a temporary directory.
type Provider interface {
	// Resolve returns a writable directory unique to namespace,
	// creating it if absent. The directory persists across process
	// invocations but not across an external wipe of the scratch
	// root (e.g., a full clean of build artifacts).
	Resolve(namespace string) (string, failure.ClassifiedError)
}
