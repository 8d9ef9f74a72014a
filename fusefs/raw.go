// Package fusefs exports a live namespace tree read-only over the FUSE wire protocol.
package fusefs

import (
	"os"
	"syscall"
	"time"

	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/brettbedarf/memfs/config"
	"github.com/brettbedarf/memfs/filesystem"
	"github.com/brettbedarf/memfs/internal/util"
)

const (
	dirMode  = fuse.S_IFDIR | 0o555
	fileMode = fuse.S_IFREG | 0o444
	blksize  = 4096
)

// Tree is the read side of a namespace shared with other callers. All
// node access from FUSE handlers happens between RLock and RUnlock.
type Tree interface {
	Root() *filesystem.Dir
	RLock()
	RUnlock()
}

// FuseRaw implements the low-level FUSE wire protocol
// It serves as protocol adapter between the FUSE and the namespace tree
// See https://www.man7.org/linux//man-pages/man4/fuse.4.html
type FuseRaw struct {
	fuse.RawFileSystem
	tree     Tree
	cfg      *config.Config
	registry *registry
	started  time.Time // reported as every node's times; the namespace keeps none
	server   *fuse.Server
}

func NewFuseRaw(tree Tree, cfg *config.Config) *FuseRaw {
	return &FuseRaw{
		RawFileSystem: fuse.NewDefaultRawFileSystem(),
		tree:          tree,
		cfg:           cfg,
		registry:      newRegistry(tree.Root()),
		started:       time.Now(),
	}
}

func (r *FuseRaw) Init(s *fuse.Server) {
	logger := util.GetLogger("Fuse.Init")
	logger.Debug().Msg("FUSE initialized")
	r.server = s
}

func (r *FuseRaw) OnUnmount() {
	logger := util.GetLogger("Fuse.OnUnmount")
	logger.Info().Msg("FUSE unmounted")
}

func (r *FuseRaw) String() string {
	return "FuseRaw"
}

// Access allows read access to everything; writes are refused at Open.
func (r *FuseRaw) Access(cancel <-chan struct{}, input *fuse.AccessIn) fuse.Status {
	return fuse.OK
}

// Lookup retrieves a child by name and registers it in the registry.
// A directory shadows a file of the same name.
func (r *FuseRaw) Lookup(cancel <-chan struct{}, header *fuse.InHeader, name string, out *fuse.EntryOut) fuse.Status {
	logger := util.GetLogger("Fuse.Lookup")
	logger.Trace().Uint64("parent", header.NodeId).Str("name", name).Msg("Lookup called")

	r.tree.RLock()
	defer r.tree.RUnlock()

	parent, ok := r.loadDir(header.NodeId)
	if !ok {
		return fuse.ENOENT
	}
	child, ok := lookupChild(parent, name)
	if !ok {
		return fuse.ENOENT
	}
	r.fillEntry(child, out)
	return fuse.OK
}

// Forget is called when the kernel discards entries from its dentry cache.
func (r *FuseRaw) Forget(nodeid, nlookup uint64) {
	r.registry.forget(nodeid)
}

func (r *FuseRaw) GetAttr(cancel <-chan struct{}, input *fuse.GetAttrIn, out *fuse.AttrOut) fuse.Status {
	r.tree.RLock()
	defer r.tree.RUnlock()

	n, ok := r.registry.load(input.NodeId)
	if !ok {
		return fuse.ENOENT
	}
	out.Attr = r.attr(n, input.NodeId)
	out.SetTimeout(seconds(r.cfg.AttrTimeout))
	return fuse.OK
}

func (r *FuseRaw) OpenDir(cancel <-chan struct{}, input *fuse.OpenIn, out *fuse.OpenOut) fuse.Status {
	r.tree.RLock()
	defer r.tree.RUnlock()

	if _, ok := r.loadDir(input.NodeId); !ok {
		return fuse.ENOTDIR
	}
	return fuse.OK
}

func (r *FuseRaw) ReadDir(cancel <-chan struct{}, input *fuse.ReadIn, out *fuse.DirEntryList) fuse.Status {
	logger := util.GetLogger("Fuse.ReadDir")
	logger.Trace().Uint64("node", input.NodeId).Uint64("offset", input.Offset).Msg("ReadDir called")

	r.tree.RLock()
	defer r.tree.RUnlock()

	dir, ok := r.loadDir(input.NodeId)
	if !ok {
		return fuse.ENOTDIR
	}
	entries := r.dirEntries(dir, input.NodeId)
	for i := int(input.Offset); i < len(entries); i++ {
		if !out.AddDirEntry(entries[i].DirEntry) {
			// The buffer is full; the kernel will call again with a new offset.
			break
		}
	}
	return fuse.OK
}

func (r *FuseRaw) ReadDirPlus(cancel <-chan struct{}, input *fuse.ReadIn, out *fuse.DirEntryList) fuse.Status {
	r.tree.RLock()
	defer r.tree.RUnlock()

	dir, ok := r.loadDir(input.NodeId)
	if !ok {
		return fuse.ENOTDIR
	}
	entries := r.dirEntries(dir, input.NodeId)
	for i := int(input.Offset); i < len(entries); i++ {
		entryOut := out.AddDirLookupEntry(entries[i].DirEntry)
		if entryOut == nil {
			break
		}
		if entries[i].node == nil {
			// "." and ".." carry no lookup
			continue
		}
		r.fillEntry(entries[i].node, entryOut)
	}
	return fuse.OK
}

func (r *FuseRaw) Open(cancel <-chan struct{}, input *fuse.OpenIn, out *fuse.OpenOut) fuse.Status {
	logger := util.GetLogger("Fuse.Open")

	r.tree.RLock()
	defer r.tree.RUnlock()

	n, ok := r.registry.load(input.NodeId)
	if !ok {
		return fuse.ENOENT
	}
	if n.IsDir() {
		return fuse.EISDIR
	}
	if input.Flags&(syscall.O_WRONLY|syscall.O_RDWR|syscall.O_TRUNC|syscall.O_APPEND) != 0 {
		logger.Debug().Uint64("node", input.NodeId).Uint32("flags", input.Flags).Msg("Refusing write open")
		return fuse.EPERM
	}
	if r.cfg.DirectIO {
		out.OpenFlags |= fuse.FOPEN_DIRECT_IO
	}
	return fuse.OK
}

func (r *FuseRaw) Read(cancel <-chan struct{}, input *fuse.ReadIn, buf []byte) (fuse.ReadResult, fuse.Status) {
	r.tree.RLock()
	defer r.tree.RUnlock()

	n, ok := r.registry.load(input.NodeId)
	if !ok {
		return nil, fuse.ENOENT
	}
	file, ok := n.(*filesystem.File)
	if !ok {
		return nil, fuse.EISDIR
	}
	content := file.Content()
	if input.Offset >= uint64(len(content)) {
		return fuse.ReadResultData(nil), fuse.OK
	}
	end := min(input.Offset+uint64(input.Size), uint64(len(content)))
	nRead := copy(buf, content[input.Offset:end])
	return fuse.ReadResultData(buf[:nRead]), fuse.OK
}

// loadDir returns the live directory registered under id
func (r *FuseRaw) loadDir(id uint64) (*filesystem.Dir, bool) {
	n, ok := r.registry.load(id)
	if !ok {
		return nil, false
	}
	dir, ok := n.(*filesystem.Dir)
	return dir, ok
}

func lookupChild(parent *filesystem.Dir, name string) (filesystem.Node, bool) {
	if d, ok := parent.Dir(name); ok {
		return d, true
	}
	if f, ok := parent.File(name); ok {
		return f, true
	}
	return nil, false
}

func (r *FuseRaw) fillEntry(n filesystem.Node, out *fuse.EntryOut) {
	id := r.registry.ensureID(n)
	out.NodeId = id
	out.Attr = r.attr(n, id)
	out.SetEntryTimeout(seconds(r.cfg.EntryTimeout))
	out.SetAttrTimeout(seconds(r.cfg.AttrTimeout))
}

// dirEntry pairs a wire entry with the node it describes; node is nil for "." and ".."
type dirEntry struct {
	fuse.DirEntry
	node filesystem.Node
}

// dirEntries snapshots a directory as ".", "..", its dirs, then files that
// are not shadowed by a dir of the same name.
func (r *FuseRaw) dirEntries(dir *filesystem.Dir, id uint64) []dirEntry {
	parentIno := uint64(fuse.FUSE_ROOT_ID)
	if p := dir.Parent(); p != nil && p.NodeID() != 0 {
		parentIno = p.NodeID()
	}
	entries := []dirEntry{
		{DirEntry: fuse.DirEntry{Name: ".", Mode: dirMode, Ino: id}},
		{DirEntry: fuse.DirEntry{Name: "..", Mode: dirMode, Ino: parentIno}},
	}
	for _, d := range dir.Dirs() {
		entries = append(entries, dirEntry{
			DirEntry: fuse.DirEntry{Name: d.Name(), Mode: dirMode, Ino: r.registry.ensureID(d)},
			node:     d,
		})
	}
	for _, f := range dir.Files() {
		if _, shadowed := dir.Dir(f.Name()); shadowed {
			continue
		}
		entries = append(entries, dirEntry{
			DirEntry: fuse.DirEntry{Name: f.Name(), Mode: fileMode, Ino: r.registry.ensureID(f)},
			node:     f,
		})
	}
	return entries
}

// attr builds the wire attributes for a node
func (r *FuseRaw) attr(n filesystem.Node, id uint64) fuse.Attr {
	ts := r.started
	attr := fuse.Attr{
		Ino:   id,
		Nlink: 1,
		Owner: fuse.Owner{
			Uid: uint32(os.Getuid()),
			Gid: uint32(os.Getgid()),
		},
		Atime:     uint64(ts.Unix()),
		Mtime:     uint64(ts.Unix()),
		Ctime:     uint64(ts.Unix()),
		Atimensec: uint32(ts.Nanosecond()),
		Mtimensec: uint32(ts.Nanosecond()),
		Ctimensec: uint32(ts.Nanosecond()),
		Blksize:   blksize, // preferred size for fs ops
	}
	switch node := n.(type) {
	case *filesystem.Dir:
		attr.Mode = dirMode
		attr.Nlink = 2
	case *filesystem.File:
		attr.Mode = fileMode
		attr.Size = uint64(len(node.Content()))
		attr.Blocks = (attr.Size + 511) / 512
	}
	return attr
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
