package csvfile

import (
	"fmt"
	"io"
	"os"
)

const (
	// backupSuffix is the file extension for backup files
	backupSuffix = ".bak"
	// maxBackupCount is the maximum number of backup files kept per data file
	maxBackupCount = 3
)

// backupPath returns the path of the n-th backup for a data file.
// Lower numbers are more recent: file.bak.1 is the newest backup.
func backupPath(path string, n int) string {
	return fmt.Sprintf("%s%s.%d", path, backupSuffix, n)
}

// rotateBackups shifts existing backup files to make room for a new
// one: .bak.2 becomes .bak.3, .bak.1 becomes .bak.2, and the oldest
// is dropped. Missing files are fine.
func rotateBackups(path string) error {
	if err := os.Remove(backupPath(path, maxBackupCount)); err != nil && !os.IsNotExist(err) {
		return err
	}
	for i := maxBackupCount - 1; i >= 1; i-- {
		if err := os.Rename(backupPath(path, i), backupPath(path, i+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// createBackup copies a data file to its .bak.1 slot before a
// destructive rewrite. Manual repairs can start from the backup when
// a rewrite goes wrong. A missing source file is not an error.
func createBackup(path string) error {
	src, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer src.Close()

	if err := rotateBackups(path); err != nil {
		return err
	}

	dst, err := os.OpenFile(backupPath(path, 1), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return err
	}
	return dst.Sync()
}
