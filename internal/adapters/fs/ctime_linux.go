//go:build linux

package fs

import (
	"io/fs"
	"syscall"
	"time"
)

// creationTime returns the inode change time. Linux exposes no portable birth
// time through stat(2).
func creationTime(info fs.FileInfo) time.Time {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime()
	}
	return time.Unix(st.Ctim.Unix())
}
