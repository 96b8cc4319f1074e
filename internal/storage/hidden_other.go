//go:build !windows

package storage

func hasHiddenAttribute(string) bool {
	return false
}
