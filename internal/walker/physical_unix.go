//go:build unix

package walker

import (
	"os"
	"syscall"
)

// physicalSize returns the file's allocated-block size rather than its
// logical length, so sparse and filesystem-compressed files are reported
// by actual disk occupancy.
func physicalSize(info os.FileInfo) int64 {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.Size()
	}
	return int64(st.Blocks) * 512
}
