package filesystem

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/brettbedarf/memfs"
)

// RootName is the name reported for the root directory
const RootName = "/"

// Node is implemented by [Dir] and [File]
type Node interface {
	Name() string
	IsDir() bool
	// NodeID returns the active registry ID; 0 if not registered
	NodeID() uint64
	// CompareAndSwapNodeID sets the registry ID if it currently equals old
	CompareAndSwapNodeID(old, id uint64) bool
	IsDel() bool
}

// nodeMeta holds the bookkeeping shared by both node kinds
type nodeMeta struct {
	nodeID atomic.Uint64 // Active registry ID; 0 if not registered
	isDel  atomic.Bool
}

func (m *nodeMeta) NodeID() uint64 {
	return m.nodeID.Load()
}

func (m *nodeMeta) CompareAndSwapNodeID(old, id uint64) bool {
	return m.nodeID.CompareAndSwap(old, id)
}

func (m *nodeMeta) IsDel() bool {
	return m.isDel.Load()
}

// Dir is a directory node. It exclusively owns its child directories and
// files, which are kept in two separate maps so a directory and a file may
// share a name under the same parent.
type Dir struct {
	nodeMeta
	name   string
	parent *Dir // back-link only; nil for root and detached dirs
	dirs   *xsync.Map[string, *Dir]
	files  *xsync.Map[string, *File]
}

// NewDir creates a detached, empty directory.
//
// NOTE: Parent dir is responsible for setting the back-link when linking it as child
func NewDir(name string) *Dir {
	return &Dir{
		name:  name,
		dirs:  xsync.NewMap[string, *Dir](),
		files: xsync.NewMap[string, *File](),
	}
}

func (d *Dir) Name() string {
	return d.name
}

func (d *Dir) IsDir() bool {
	return true
}

// Parent returns the containing directory or nil for the root
func (d *Dir) Parent() *Dir {
	return d.parent
}

// IsRoot reports whether d has no parent and was never removed
func (d *Dir) IsRoot() bool {
	return d.parent == nil && !d.IsDel()
}

// Path returns the path of the dir relative from root.
// If the dir is the root, returns ""
func (d *Dir) Path() string {
	if d.parent == nil {
		return ""
	}
	pPath := d.parent.Path()
	if pPath == "" {
		return d.name
	}
	return pPath + "/" + d.name
}

// InsertDir links child under d, failing if a directory of that name exists
func (d *Dir) InsertDir(child *Dir) error {
	if _, loaded := d.dirs.LoadOrStore(child.name, child); loaded {
		return memfs.ErrDuplicateName
	}
	child.parent = d
	return nil
}

// PutDir links child under d, destroying any directory it replaces
func (d *Dir) PutDir(child *Dir) {
	if old, loaded := d.dirs.LoadAndStore(child.name, child); loaded && old != child {
		old.destroy()
	}
	child.parent = d
}

// Dir returns the child directory called name
func (d *Dir) Dir(name string) (child *Dir, ok bool) {
	return d.dirs.Load(name)
}

// InsertFile links child under d, failing if a file of that name exists
func (d *Dir) InsertFile(child *File) error {
	if _, loaded := d.files.LoadOrStore(child.name, child); loaded {
		return memfs.ErrDuplicateName
	}
	return nil
}

// PutFile links child under d, replacing any file of the same name
func (d *Dir) PutFile(child *File) {
	if old, loaded := d.files.LoadAndStore(child.name, child); loaded && old != child {
		old.isDel.Store(true)
	}
}

// File returns the child file called name
func (d *Dir) File(name string) (child *File, ok bool) {
	return d.files.Load(name)
}

// RemoveFile unlinks the file called name and hands it back to the caller
func (d *Dir) RemoveFile(name string) (*File, bool) {
	return d.files.LoadAndDelete(name)
}

// Dirs returns the child directories sorted by name
func (d *Dir) Dirs() []*Dir {
	dirs := make([]*Dir, 0, d.dirs.Size())
	d.dirs.Range(func(_ string, ch *Dir) bool {
		dirs = append(dirs, ch)
		return true
	})
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].name < dirs[j].name })
	return dirs
}

// Files returns the child files sorted by name
func (d *Dir) Files() []*File {
	files := make([]*File, 0, d.files.Size())
	d.files.Range(func(_ string, ch *File) bool {
		files = append(files, ch)
		return true
	})
	sort.Slice(files, func(i, j int) bool { return files[i].name < files[j].name })
	return files
}

// destroy detaches d and marks its whole subtree deleted
func (d *Dir) destroy() {
	d.isDel.Store(true)
	d.parent = nil
	d.files.Range(func(_ string, f *File) bool {
		f.isDel.Store(true)
		return true
	})
	d.dirs.Range(func(_ string, ch *Dir) bool {
		ch.destroy()
		return true
	})
}

// File is a leaf node holding a single text blob.
type File struct {
	nodeMeta
	name    string
	mu      sync.RWMutex // Protects content
	content string
}

// NewFile creates a detached file with the given content
func NewFile(name, content string) *File {
	return &File{name: name, content: content}
}

func (f *File) Name() string {
	return f.name
}

func (f *File) IsDir() bool {
	return false
}

// Content returns the current text blob
func (f *File) Content() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.content
}

// SetContent overwrites the whole text blob
func (f *File) SetContent(content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.content = content
}

// Clone returns a new detached file with the same name and content
func (f *File) Clone() *File {
	return NewFile(f.name, f.Content())
}
