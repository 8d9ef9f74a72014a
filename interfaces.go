// Package memfs contains the core domain types and interfaces of an
// in-memory hierarchical namespace of directories and files.
package memfs

// Namespace defines the operations a front end can call on the tree.
//
// NOTE: Cd resolves its path against the current directory, while Ls, Mv, Cp
// and Rm always resolve their paths from the root, with or without a leading
// "/". Mkdir, Touch, Cat and Echo take a bare name inside the current directory.
type Namespace interface {
	// Mkdir creates an empty directory in the current directory
	Mkdir(name string) error
	// Cd moves the current directory. A failing multi-segment walk leaves the
	// current directory wherever the walk stopped.
	Cd(path string) error
	// Ls lists the current directory when path is empty, else the directory at path
	Ls(path string) (*Listing, error)
	// Touch creates an empty file in the current directory
	Touch(name string) error
	// Cat returns the content of a file in the current directory
	Cat(name string) (string, error)
	// Echo writes content to a file in the current directory, creating it if needed
	Echo(name, content string) error
	// Mv moves the file named like the last segment of src out of the
	// directory at src and into the directory at dst
	Mv(src, dst string) error
	// Cp is Mv but leaves the source in place and copies its content
	Cp(src, dst string) error
	// Rm removes the file at path
	Rm(path string) error
	// Find returns the path of every node matching a glob pattern
	Find(pattern string) ([]string, error)
	// Pwd returns the absolute path of the current directory
	Pwd() string
	// CwdName returns the name of the current directory
	CwdName() string
}
