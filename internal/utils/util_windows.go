//go:build windows

package utils

import "os"

// os.Rename is believed to be atomic on NTFS, but there is no hard guarantee
// from Microsoft on that.
func atomicWriteFile(name string, data []byte, perm os.FileMode) error {
	tmp := name + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	return os.Rename(tmp, name)
}
