package repository

import (
	"github.com/jaakkos/tourism-cms/internal/app"
	"github.com/jaakkos/tourism-cms/internal/repository/sqlite"
)

// NewSnapshotRepository returns a SnapshotRepository backed by SQLite at the given path.
// The path is typically from config.StateFile() (default ~/.config/tourism-cms/state.sqlite).
// The returned value also implements io.Closer.
func NewSnapshotRepository(path, key string) (app.SnapshotRepository, error) {
	st, err := sqlite.New(path, key)
	if err != nil {
		return nil, err
	}
	return st, nil
}
