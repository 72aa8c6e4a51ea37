package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// TouchNotifySignal records a save in the signal file as
// "<store revision>-<unix nanos>". Watchers in this or another process
// compare the contents to detect changes. The file is replaced atomically
// so a reader never sees a partial write. An empty path is a no-op.
func TouchNotifySignal(signalPath string, revision uint64) error {
	if signalPath == "" {
		return nil
	}
	dir := filepath.Dir(signalPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create signal file dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(signalPath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create signal temp file: %w", err)
	}
	value := strconv.FormatUint(revision, 10) + "-" + strconv.FormatInt(time.Now().UnixNano(), 10)
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write signal file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close signal file: %w", err)
	}
	if err := os.Rename(tmp.Name(), signalPath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace signal file: %w", err)
	}
	return nil
}

// signalRevision extracts the store revision from a signal value. Values
// without a revision prefix yield ok=false.
func signalRevision(value string) (uint64, bool) {
	head, _, found := strings.Cut(strings.TrimSpace(value), "-")
	if !found {
		return 0, false
	}
	rev, err := strconv.ParseUint(head, 10, 64)
	if err != nil {
		return 0, false
	}
	return rev, true
}
