// Package requests decodes seed node definition files into create requests.
package requests

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/memfs"
)

// Requests holds decoded definitions split by node type
type Requests struct {
	Dirs  []*memfs.DirCreateRequest
	Files []*memfs.FileCreateRequest
}

// LoadFile reads a YAML (.yaml, .yml) or JSON (.json) seed file
func LoadFile(path string) (*Requests, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data, filepath.Ext(path))
}

// Unmarshal decodes a list of node definitions in the format named by ext
func Unmarshal(data []byte, ext string) (*Requests, error) {
	var dtos []NodeRequestDTO
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &dtos); err != nil {
			return nil, fmt.Errorf("failed to unmarshal seed file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &dtos); err != nil {
			return nil, fmt.Errorf("failed to unmarshal seed file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown seed file extension: %q", ext)
	}

	reqs := &Requests{}
	for i, dto := range dtos {
		if dto.Path == "" {
			return nil, fmt.Errorf("node %d: missing path", i)
		}
		node := convertNodeDTO(dto)
		switch node.Type {
		case memfs.DirNodeType:
			reqs.Dirs = append(reqs.Dirs, &memfs.DirCreateRequest{NodeRequest: node})
		case memfs.FileNodeType:
			reqs.Files = append(reqs.Files, &memfs.FileCreateRequest{
				NodeRequest: node,
				Content:     valueOrDefault(dto.Content, ""),
			})
		default:
			return nil, fmt.Errorf("node %d (%s): unknown node type %q", i, dto.Path, dto.Type)
		}
	}
	return reqs, nil
}

// Conversion logic with defaults in the unmarshaling layer
func convertNodeDTO(dto NodeRequestDTO) memfs.NodeRequest {
	return memfs.NodeRequest{
		Path: dto.Path,
		Type: dto.Type,
		UUID: valueOrDefault(dto.UUID, uuid.New().String()),
	}
}

func valueOrDefault[T any](ptr *T, defaultVal T) T {
	if ptr != nil {
		return *ptr
	}
	return defaultVal
}
