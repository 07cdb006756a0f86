//go:build !unix && !windows

package nativelog

func withProcessLogLock(_ string, fn func() error) error {
	return fn()
}
