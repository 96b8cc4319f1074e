package storage

import (
	"errors"
	"fmt"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

// FormatBytes renders a size using base-1024 units with two decimals.
func FormatBytes(size float64) (string, error) {
	if size < 0 {
		return "", errors.New("size must be a non-negative number")
	}
	for _, unit := range byteUnits {
		if size < 1024 {
			return fmt.Sprintf("%.2f %s", size, unit), nil
		}
		size /= 1024
	}
	return fmt.Sprintf("%.2f %s", size, byteUnits[len(byteUnits)-1]), nil
}
