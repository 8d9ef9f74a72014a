package server

import (
	"sync"

	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/brettbedarf/memfs"
	"github.com/brettbedarf/memfs/config"
	"github.com/brettbedarf/memfs/filesystem"
	"github.com/brettbedarf/memfs/fusefs"
	"github.com/brettbedarf/memfs/internal/util"
)

// MemFs owns a namespace and makes it safe to share: every operation runs
// under one global lock, and the tree can be exported read-only over FUSE
// while the shell keeps mutating it.
type MemFs struct {
	fs     *filesystem.FileSystem
	cfg    *config.Config
	mu     sync.RWMutex // Guards fs, including its cursor
	server *fuse.Server
}

// New creates a MemFs instance given your config.
func New(cfg *config.Config) *MemFs {
	return &MemFs{
		fs:  filesystem.NewFS(cfg),
		cfg: cfg,
	}
}

func (m *MemFs) logger(component string) util.Logger {
	return util.GetLogger(component).With().Str("ns", m.fs.ID()).Logger()
}

// Root returns the root directory. Callers must hold RLock while reading nodes.
func (m *MemFs) Root() *filesystem.Dir {
	return m.fs.Root()
}

func (m *MemFs) RLock() {
	m.mu.RLock()
}

func (m *MemFs) RUnlock() {
	m.mu.RUnlock()
}

func (m *MemFs) Mkdir(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Mkdir(name)
}

func (m *MemFs) Cd(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Cd(path)
}

func (m *MemFs) Ls(path string) (*memfs.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fs.Ls(path)
}

func (m *MemFs) Touch(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Touch(name)
}

func (m *MemFs) Cat(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fs.Cat(name)
}

func (m *MemFs) Echo(name, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Echo(name, content)
}

func (m *MemFs) Mv(src, dst string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Mv(src, dst)
}

func (m *MemFs) Cp(src, dst string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Cp(src, dst)
}

func (m *MemFs) Rm(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rm(path)
}

func (m *MemFs) Find(pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fs.Find(pattern)
}

func (m *MemFs) Pwd() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fs.Pwd()
}

func (m *MemFs) CwdName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fs.CwdName()
}

// Serve mounts and serves the namespace read-only at the given mountPoint.
func (m *MemFs) Serve(mountPoint string) error {
	logger := m.logger("MemFs.Serve")

	raw := fusefs.NewFuseRaw(m, m.cfg)
	opts := m.cfg.MountOptions
	srv, err := fuse.NewServer(raw, mountPoint, &fuse.MountOptions{
		Name:   opts.Name,
		FsName: opts.FsName,
		Debug:  opts.Debug,
		Logger: util.NewLogLogger("FuseServer", util.TraceLevel),
	})
	if err != nil {
		return err
	}
	m.server = srv

	go srv.Serve()
	if err := srv.WaitMount(); err != nil {
		return err
	}
	logger.Info().Str("mountpoint", mountPoint).Msg("Namespace mounted")
	return nil
}

// Unmount cleanly unmounts the namespace; a no-op when it was never mounted.
func (m *MemFs) Unmount() error {
	if m.server == nil {
		return nil
	}
	if err := m.server.Unmount(); err != nil {
		return err
	}
	logger := m.logger("MemFs.Unmount")
	logger.Info().Msg("Namespace unmounted")
	m.server = nil
	return nil
}

var _ memfs.Namespace = (*MemFs)(nil)
var _ fusefs.Tree = (*MemFs)(nil)
