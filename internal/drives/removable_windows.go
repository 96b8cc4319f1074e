//go:build windows

package drives

import "golang.org/x/sys/windows"

func isRemovable(mountpoint string, opts []string) bool {
	if hasRemovableOpt(opts) {
		return true
	}
	pointer, err := windows.UTF16PtrFromString(mountpoint)
	if err != nil {
		return false
	}
	return windows.GetDriveType(pointer) == windows.DRIVE_REMOVABLE
}
