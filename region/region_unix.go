//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package region

import "golang.org/x/sys/unix"

func mapAnon(size int) ([]byte, bool, error) {
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func unmap(data []byte) error {
	return unix.Munmap(data)
}

func pageSize() int {
	return unix.Getpagesize()
}
