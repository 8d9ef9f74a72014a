package memfs

// NodeRequest has common fields embedded in concrete request types
type NodeRequest struct {
	Path string // Path from root
	Type NodeCreateRequestType
	UUID string // Identifies the request in logs
}

// NodeCreateRequestType valid types are FileNodeType "file", DirNodeType "dir"
type NodeCreateRequestType string

const (
	FileNodeType NodeCreateRequestType = "file"
	DirNodeType  NodeCreateRequestType = "dir"
)

// FileCreateRequest asks for a file at Path holding Content. Missing
// ancestor directories are created.
type FileCreateRequest struct {
	NodeRequest
	Content string
}

// DirCreateRequest asks for every missing directory along Path
type DirCreateRequest struct {
	NodeRequest
}
