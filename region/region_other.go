//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package region

import "os"

func mapAnon(size int) ([]byte, bool, error) {
	return make([]byte, size), false, nil
}

func unmap([]byte) error {
	return nil
}

func pageSize() int {
	return os.Getpagesize()
}
