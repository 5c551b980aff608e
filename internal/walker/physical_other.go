//go:build !unix

package walker

import "os"

// physicalSize falls back to logical size on platforms without a
// blocks-based stat structure.
func physicalSize(info os.FileInfo) int64 {
	return info.Size()
}
