package storage

import (
	"os"
)

// DiskUsageBytes returns the size of the database file plus its WAL and
// shared-memory side files. Missing files contribute 0.
func DiskUsageBytes(dbPath string) (int64, error) {
	var total int64
	for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		info, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return 0, err
		}
		total += info.Size()
	}
	return total, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}
