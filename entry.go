package memfs

// EntryKind distinguishes the two node kinds of the namespace.
type EntryKind string

const (
	DirKind  EntryKind = "dir"
	FileKind EntryKind = "file"
)

// Entry is a single item of a directory listing
type Entry struct {
	Kind EntryKind
	Name string
}

// Listing is the result of listing a directory: its own name followed by
// its subdirectories and then its files.
type Listing struct {
	Name    string
	Entries []Entry
}

// Dirs returns the names of the directory entries in listing order
func (l *Listing) Dirs() []string {
	return l.names(DirKind)
}

// Files returns the names of the file entries in listing order
func (l *Listing) Files() []string {
	return l.names(FileKind)
}

func (l *Listing) names(kind EntryKind) []string {
	names := make([]string, 0, len(l.Entries))
	for _, e := range l.Entries {
		if e.Kind == kind {
			names = append(names, e.Name)
		}
	}
	return names
}
