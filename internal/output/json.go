// Package output defines the statistics snapshot model, the atomic JSON
// writer, and the console summary rendering.
//
// This file (json.go) handles file persistence. Writes are atomic (temp file
// + fsync + rename) so an interrupted run never leaves a truncated snapshot
// behind, and a previous snapshot survives until the new one is complete.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// fileMu serializes file writes so concurrent callers cannot corrupt the
// output file.
var fileMu sync.Mutex

// WriteSnapshot writes the snapshot to filePath atomically as pretty-printed
// JSON. If filePath already exists it is replaced only after the new content
// has been fully written and synced.
func WriteSnapshot(filePath string, snap *Snapshot) (err error) {
	fileMu.Lock()
	defer fileMu.Unlock()

	// 1. Write to a temporary file next to the target
	tmpFile := filePath + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return fmt.Errorf("failed to create temp file %s: %w", tmpFile, err)
	}

	// Ensure cleanup on error
	defer func() {
		if err != nil {
			_ = file.Close()
			_ = os.Remove(tmpFile)
		}
	}()

	// 2. Write JSON data
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err = encoder.Encode(snap); err != nil {
		return fmt.Errorf("failed to write JSON to %s: %w", tmpFile, err)
	}

	// 3. Sync to disk before the rename makes the file visible
	if err = file.Sync(); err != nil {
		return fmt.Errorf("failed to sync file %s: %w", tmpFile, err)
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("failed to close file %s: %w", tmpFile, err)
	}

	// 4. Atomic rename (POSIX guarantees atomicity)
	if err = os.Rename(tmpFile, filePath); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to rename temp file to %s: %w", filePath, err)
	}

	return nil
}

// ReadSnapshot reads a previously written snapshot from filePath.
// Returns os.ErrNotExist (wrapped) when no snapshot has been written yet.
func ReadSnapshot(filePath string) (*Snapshot, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}
	return &snap, nil
}
