//go:build unix

package nativelog

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

const lockFilename = ".nativelog.lock"

// withProcessLogLock serialises log file appends across processes sharing the log dir.
func withProcessLogLock(dir string, fn func() error) error {
	f, err := os.OpenFile(filepath.Join(dir, lockFilename), os.O_CREATE|os.O_RDWR, defaultLogFilePerm)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		return err
	}
	defer func() {
		_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
	}()
	return fn()
}
