// Package inspect dumps overlay state as JSON for debugging and automated
// testing, so tools can follow the overlay without looking at the screen.
package inspect

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// EnvVar turns inspection on when set to "1".
const EnvVar = "OW_INSPECT"

// Introspectable is implemented by UI components that can report their state.
type Introspectable interface {
	// InspectNode returns a structured representation of this component.
	InspectNode() *Node
}

// Global state
var (
	enabled     bool
	enabledOnce sync.Once
	inspectFile string
)

// IsEnabled returns true if inspection mode is active.
func IsEnabled() bool {
	enabledOnce.Do(func() {
		enabled = os.Getenv(EnvVar) == "1"
		if enabled {
			inspectFile = filepath.Join(os.TempDir(), "overlaywindow-inspect.json")
		}
	})
	return enabled
}

// GetInspectFile returns the path to the inspection output file.
func GetInspectFile() string {
	if !IsEnabled() {
		return ""
	}
	return inspectFile
}

// WriteSnapshot writes a snapshot to the inspection file. It does nothing
// unless inspection is enabled.
func WriteSnapshot(snapshot *Snapshot) error {
	if !IsEnabled() {
		return nil
	}
	return WriteSnapshotToPath(snapshot, inspectFile)
}

// WriteSnapshotToPath writes a snapshot to a specific path.
func WriteSnapshotToPath(snapshot *Snapshot, path string) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	return nil
}
