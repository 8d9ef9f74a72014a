package filesystem

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/brettbedarf/memfs"
	"github.com/brettbedarf/memfs/config"
	"github.com/brettbedarf/memfs/internal/util"
)

// FileSystem is one namespace instance: the tree plus its current directory
// cursor. It has no locking of its own; see server.MemFs for shared use.
type FileSystem struct {
	id        string // Instance ID used to tell namespaces apart in logs
	root      *Dir   // Root of the tree; never removed
	cwd       *Dir   // Current directory cursor; never nil
	overwrite bool   // mkdir/touch replace existing nodes instead of failing
}

func NewFS(cfg *config.Config) *FileSystem {
	root := NewDir(RootName)
	fs := FileSystem{
		id:        uuid.NewString(),
		root:      root,
		cwd:       root,
		overwrite: cfg.OverwriteOnCreate,
	}
	logger := fs.logger("NewFS")
	logger.Debug().Bool("overwrite", fs.overwrite).Msg("Namespace created")
	return &fs
}

func (fs *FileSystem) logger(component string) util.Logger {
	return util.GetLogger(component).With().Str("ns", fs.id).Logger()
}

// ID returns the instance ID
func (fs *FileSystem) ID() string {
	return fs.id
}

// Root returns the root directory
func (fs *FileSystem) Root() *Dir {
	return fs.root
}

// Cwd returns the directory the cursor points at
func (fs *FileSystem) Cwd() *Dir {
	return fs.cwd
}

// Pwd returns the absolute path of the cursor
func (fs *FileSystem) Pwd() string {
	return pathSep + fs.cwd.Path()
}

// CwdName returns the name of the cursor directory
func (fs *FileSystem) CwdName() string {
	return fs.cwd.Name()
}

// Mkdir creates an empty directory called name under the cursor
func (fs *FileSystem) Mkdir(name string) error {
	logger := fs.logger("FS.Mkdir")

	if !IsValidName(name) {
		logger.Debug().Str("name", name).Msg("Invalid directory name")
		return memfs.NewPathError("mkdir", name, memfs.ErrInvalidName)
	}
	dir := NewDir(name)
	if fs.overwrite {
		fs.cwd.PutDir(dir)
	} else if err := fs.cwd.InsertDir(dir); err != nil {
		logger.Debug().Str("name", name).Msg("Directory already exists")
		return memfs.NewPathError("mkdir", name, err)
	}
	logger.Trace().Str("name", name).Str("cwd", fs.Pwd()).Msg("Created directory")
	return nil
}

// Cd moves the cursor along path, see [memfs.Namespace.Cd]
func (fs *FileSystem) Cd(path string) error {
	logger := fs.logger("FS.Cd")

	if err := fs.walkCursor(path); err != nil {
		logger.Debug().Str("path", path).Str("cwd", fs.Pwd()).Msg("Directory not found; cursor left at partial walk")
		return memfs.NewPathError("cd", path, err)
	}
	logger.Trace().Str("path", path).Str("cwd", fs.Pwd()).Msg("Changed directory")
	return nil
}

// Ls lists the cursor when path is empty, else the directory at path from root
func (fs *FileSystem) Ls(path string) (*memfs.Listing, error) {
	dir := fs.cwd
	if path != "" {
		var err error
		if dir, err = fs.walkFromRoot(path); err != nil {
			return nil, memfs.NewPathError("ls", path, err)
		}
	}

	dirs, files := dir.Dirs(), dir.Files()
	listing := &memfs.Listing{
		Name:    dir.Name(),
		Entries: make([]memfs.Entry, 0, len(dirs)+len(files)),
	}
	for _, d := range dirs {
		listing.Entries = append(listing.Entries, memfs.Entry{Kind: memfs.DirKind, Name: d.Name()})
	}
	for _, f := range files {
		listing.Entries = append(listing.Entries, memfs.Entry{Kind: memfs.FileKind, Name: f.Name()})
	}
	return listing, nil
}

// Touch creates a fresh empty file called name under the cursor
func (fs *FileSystem) Touch(name string) error {
	logger := fs.logger("FS.Touch")

	if !IsValidName(name) {
		logger.Debug().Str("name", name).Msg("Invalid file name")
		return memfs.NewPathError("touch", name, memfs.ErrInvalidName)
	}
	file := NewFile(name, "")
	if fs.overwrite {
		fs.cwd.PutFile(file)
	} else if err := fs.cwd.InsertFile(file); err != nil {
		logger.Debug().Str("name", name).Msg("File already exists")
		return memfs.NewPathError("touch", name, err)
	}
	logger.Trace().Str("name", name).Str("cwd", fs.Pwd()).Msg("Created file")
	return nil
}

// Cat returns the content of the cursor's file called name
func (fs *FileSystem) Cat(name string) (string, error) {
	file, ok := fs.cwd.File(name)
	if !ok {
		return "", memfs.NewPathError("cat", name, memfs.ErrFileNotFound)
	}
	return file.Content(), nil
}

// Echo overwrites the content of the cursor's file called name, creating it if missing
func (fs *FileSystem) Echo(name, content string) error {
	logger := fs.logger("FS.Echo")

	if !IsValidName(name) {
		logger.Debug().Str("name", name).Msg("Invalid file name")
		return memfs.NewPathError("echo", name, memfs.ErrInvalidName)
	}
	if file, ok := fs.cwd.File(name); ok {
		file.SetContent(content)
	} else {
		fs.cwd.PutFile(NewFile(name, content))
	}
	logger.Trace().Str("name", name).Int("size", len(content)).Msg("Wrote file")
	return nil
}

// Mv moves a file between directories, see [memfs.Namespace.Mv]
func (fs *FileSystem) Mv(src, dst string) error {
	srcDir, dstDir, file, err := fs.resolveTransfer("mv", src, dst)
	if err != nil {
		return err
	}
	if srcDir != dstDir {
		dstDir.PutFile(file)
		srcDir.RemoveFile(file.Name())
	}
	logger := fs.logger("FS.Mv")
	logger.Trace().Str("src", src).Str("dst", dst).Str("file", file.Name()).Msg("Moved file")
	return nil
}

// Cp copies a file between directories, see [memfs.Namespace.Cp]
func (fs *FileSystem) Cp(src, dst string) error {
	_, dstDir, file, err := fs.resolveTransfer("cp", src, dst)
	if err != nil {
		return err
	}
	dstDir.PutFile(file.Clone())
	logger := fs.logger("FS.Cp")
	logger.Trace().Str("src", src).Str("dst", dst).Str("file", file.Name()).Msg("Copied file")
	return nil
}

// resolveTransfer resolves both paths from root and finds the file in the
// source directory named like the last segment of src.
func (fs *FileSystem) resolveTransfer(op, src, dst string) (srcDir, dstDir *Dir, file *File, err error) {
	if src == "" || dst == "" {
		return nil, nil, nil, memfs.NewPathError(op, src+" "+dst, memfs.ErrInvalidPath)
	}
	if srcDir, err = fs.walkFromRoot(src); err != nil {
		return nil, nil, nil, memfs.NewPathError(op, src, err)
	}
	if dstDir, err = fs.walkFromRoot(dst); err != nil {
		return nil, nil, nil, memfs.NewPathError(op, dst, err)
	}
	name := lastSegment(src)
	file, ok := srcDir.File(name)
	if !ok {
		return nil, nil, nil, memfs.NewPathError(op, name, memfs.ErrFileNotFound)
	}
	return srcDir, dstDir, file, nil
}

// Rm removes the file named by the part of path after its last "/" from the
// directory named by the part before it (root when there is no "/").
func (fs *FileSystem) Rm(path string) error {
	logger := fs.logger("FS.Rm")

	if path == "" {
		return memfs.NewPathError("rm", path, memfs.ErrInvalidPath)
	}
	dirPath, name := splitLeaf(path)
	dir, err := fs.walkFromRoot(dirPath)
	if err != nil {
		logger.Debug().Str("path", path).Msg("Parent directory not found")
		return memfs.NewPathError("rm", path, memfs.ErrFileNotFound)
	}
	file, ok := dir.RemoveFile(name)
	if !ok {
		return memfs.NewPathError("rm", path, memfs.ErrFileNotFound)
	}
	file.isDel.Store(true)
	logger.Trace().Str("path", path).Msg("Removed file")
	return nil
}

// Find returns the path from root of every node matching the doublestar
// pattern. Directory paths end with "/".
func (fs *FileSystem) Find(pattern string) ([]string, error) {
	pattern = strings.TrimPrefix(pattern, pathSep)
	if !doublestar.ValidatePattern(pattern) {
		return nil, memfs.NewPathError("find", pattern, memfs.ErrInvalidPattern)
	}

	var matches []string
	var walk func(dir *Dir, prefix string)
	walk = func(dir *Dir, prefix string) {
		for _, d := range dir.Dirs() {
			p := prefix + d.Name()
			if ok, _ := doublestar.Match(pattern, p); ok {
				matches = append(matches, p+pathSep)
			}
			walk(d, p+pathSep)
		}
		for _, f := range dir.Files() {
			p := prefix + f.Name()
			if ok, _ := doublestar.Match(pattern, p); ok {
				matches = append(matches, p)
			}
		}
	}
	walk(fs.root, "")
	return matches, nil
}

// AddDirNode adds all missing directories in path starting at root and
// returns the leaf. It is equivalent to `mkdir -p` from a shell and will not
// error if the leaf already exists. Every missing segment is validated before
// any is created, so a failed call leaves the tree unchanged.
func (fs *FileSystem) AddDirNode(path string) (*Dir, error) {
	logger := fs.logger("FS.AddDirNode")

	cur := fs.root
	segs := splitPath(path)
	i := 0
	for ; i < len(segs); i++ {
		if segs[i] == "" {
			continue
		}
		child, ok := cur.Dir(segs[i])
		if !ok {
			break
		}
		cur = child
	}

	missing := segs[i:]
	for _, name := range missing {
		if name != "" && !IsValidName(name) {
			return nil, memfs.NewPathError("mkdir", path, memfs.ErrInvalidName)
		}
	}
	newCnt := 0
	for _, name := range missing {
		if name == "" {
			continue
		}
		child := NewDir(name)
		cur.PutDir(child)
		newCnt++
		cur = child
	}
	if newCnt > 0 {
		logger.Debug().Str("path", path).Msg(fmt.Sprintf("Created %d new dir(s)", newCnt))
	}
	return cur, nil
}

// AddFileNode adds a file with content at path from root, creating any
// missing ancestor directories. It fails if the file already exists.
func (fs *FileSystem) AddFileNode(path, content string) (*File, error) {
	logger := fs.logger("FS.AddFileNode")

	dirPath, name := splitLeaf(path)
	if !IsValidName(name) {
		return nil, memfs.NewPathError("touch", path, memfs.ErrInvalidName)
	}
	parent, err := fs.AddDirNode(dirPath)
	if err != nil {
		logger.Debug().Err(err).Str("path", dirPath).Msg("Failed to create file's ancestor directory(s)")
		return nil, err
	}
	file := NewFile(name, content)
	if err := parent.InsertFile(file); err != nil {
		return nil, memfs.NewPathError("touch", path, err)
	}
	logger.Debug().Str("path", path).Msg("Added new file node")
	return file, nil
}

var _ memfs.Namespace = (*FileSystem)(nil)
