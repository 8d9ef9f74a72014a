package requests

import "github.com/brettbedarf/memfs"

// NodeRequestDTO is the YAML/JSON representation of one seed node definition
//
// Ex.
//
//	- type: dir
//	  path: docs
//	- type: file
//	  path: docs/readme.txt
//	  content: hello
type NodeRequestDTO struct {
	Path    string                      `yaml:"path" json:"path"`
	Type    memfs.NodeCreateRequestType `yaml:"type" json:"type"`
	UUID    *string                     `yaml:"uuid,omitempty" json:"uuid,omitempty"` // Optional ID to correlate logs
	Content *string                     `yaml:"content,omitempty" json:"content,omitempty"`
}
