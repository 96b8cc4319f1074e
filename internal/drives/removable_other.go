//go:build !windows

package drives

func isRemovable(_ string, opts []string) bool {
	return hasRemovableOpt(opts)
}
