package fusefs

import (
	"sync/atomic"

	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/brettbedarf/memfs/filesystem"
	"github.com/brettbedarf/memfs/internal/util"
)

// registry maps FUSE NodeIDs to namespace nodes. IDs are assigned on demand
// when the kernel looks a node up and dropped again when it forgets it.
type registry struct {
	lastNodeID atomic.Uint64 // Last NodeID assigned
	nodes      *xsync.Map[uint64, filesystem.Node]
}

func newRegistry(root *filesystem.Dir) *registry {
	r := &registry{nodes: xsync.NewMap[uint64, filesystem.Node]()}
	r.lastNodeID.Store(fuse.FUSE_ROOT_ID)
	root.CompareAndSwapNodeID(0, fuse.FUSE_ROOT_ID)
	r.nodes.Store(fuse.FUSE_ROOT_ID, root)
	return r
}

// load returns the live node registered under id
func (r *registry) load(id uint64) (filesystem.Node, bool) {
	n, ok := r.nodes.Load(id)
	if !ok || n.IsDel() {
		return nil, false
	}
	return n, true
}

// ensureID retrieves or allocates & sets the node's NodeID; safe with or without held locks.
// returns NodeID
func (r *registry) ensureID(n filesystem.Node) uint64 {
	// fast path
	if id := n.NodeID(); id != 0 {
		return id
	}
	// allocate a new one
	newID := r.lastNodeID.Add(1)
	// only one CAS will succeed
	if n.CompareAndSwapNodeID(0, newID) {
		r.nodes.Store(newID, n)
		return newID
	}
	// someone else won the race, load the real value
	return n.NodeID()
}

// forget removes the registry entry so the node gets a fresh ID on its next lookup
func (r *registry) forget(id uint64) {
	logger := util.GetLogger("Fuse.Registry")
	if id == fuse.FUSE_ROOT_ID {
		return
	}
	n, ok := r.nodes.LoadAndDelete(id)
	if !ok {
		logger.Debug().Uint64("id", id).Msg("No node found")
		return
	}
	n.CompareAndSwapNodeID(id, 0)
}
