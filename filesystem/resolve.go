package filesystem

import (
	"regexp"
	"strings"

	"github.com/brettbedarf/memfs"
)

const (
	pathSep   = "/"
	parentSeg = ".."
)

var validName = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)

// IsValidName reports whether name may be used for a new directory or file
func IsValidName(name string) bool {
	return validName.MatchString(name)
}

// splitPath splits p on "/" keeping empty segments; callers treat them as "stay"
func splitPath(p string) []string {
	return strings.Split(p, pathSep)
}

// lastSegment returns the final non-empty segment of p, or "" if there is none
func lastSegment(p string) string {
	segs := splitPath(p)
	for i := len(segs) - 1; i >= 0; i-- {
		if segs[i] != "" {
			return segs[i]
		}
	}
	return ""
}

// walkFromRoot resolves p to a directory starting at root. Every non-empty
// segment, ".." included, must name an existing child directory.
func (fs *FileSystem) walkFromRoot(p string) (*Dir, error) {
	cur := fs.root
	for _, seg := range splitPath(p) {
		if seg == "" {
			continue
		}
		child, ok := cur.Dir(seg)
		if !ok {
			return nil, memfs.ErrPathNotFound
		}
		cur = child
	}
	return cur, nil
}

// walkCursor moves the cursor along p one segment at a time. It stops at the
// first unknown segment and leaves the cursor where the walk got to.
func (fs *FileSystem) walkCursor(p string) error {
	if p == pathSep {
		fs.cwd = fs.root
		return nil
	}
	for _, seg := range splitPath(p) {
		switch seg {
		case "":
			continue
		case parentSeg:
			if parent := fs.cwd.Parent(); parent != nil {
				fs.cwd = parent
			}
		default:
			child, ok := fs.cwd.Dir(seg)
			if !ok {
				return memfs.ErrPathNotFound
			}
			fs.cwd = child
		}
	}
	return nil
}

// splitLeaf splits p at its last "/" into a directory prefix and a leaf name
func splitLeaf(p string) (dir, leaf string) {
	idx := strings.LastIndex(p, pathSep)
	return p[:idx+1], p[idx+1:]
}
