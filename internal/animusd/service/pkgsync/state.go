package pkgsync

import (
	"os"
	"path/filepath"
	"time"

	"github.com/kiosk404/animus/pkg/utils/json"
)

// updateState is the persisted auto-update record.
type updateState struct {
	// LastUpdated is epoch milliseconds of the last successful update run.
	LastUpdated int64 `json:"lastUpdated"`
}

// readState loads the last-update timestamp. A missing or unreadable state
// file reports ok=false, which callers treat as "update due".
func readState(path string) (time.Time, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return time.Time{}, false
	}
	var st updateState
	if err := json.Unmarshal(data, &st); err != nil {
		return time.Time{}, false
	}
	if st.LastUpdated <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(st.LastUpdated), true
}

// writeState persists a fresh last-update timestamp.
func writeState(path string, t time.Time) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(updateState{LastUpdated: t.UnixMilli()})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
