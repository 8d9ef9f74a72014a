package server

import (
	"github.com/brettbedarf/memfs"
)

// Seed adds the requested nodes to the namespace, directories first.
// Requests that fail are logged and skipped; the counts of added nodes are returned.
func (m *MemFs) Seed(dirs []*memfs.DirCreateRequest, files []*memfs.FileCreateRequest) (dirCnt, fileCnt int) {
	logger := m.logger("MemFs.Seed")

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, req := range dirs {
		if _, err := m.fs.AddDirNode(req.Path); err != nil {
			logger.Warn().Str("uuid", req.UUID).Str("path", req.Path).Err(err).Msg("Failed to add directory request")
			continue
		}
		dirCnt++
	}
	for _, req := range files {
		if _, err := m.fs.AddFileNode(req.Path, req.Content); err != nil {
			logger.Warn().Str("uuid", req.UUID).Str("path", req.Path).Err(err).Msg("Failed to add file request")
			continue
		}
		fileCnt++
	}
	logger.Info().Int("directories", dirCnt).Int("files", fileCnt).Msg("Added new nodes to namespace")
	return dirCnt, fileCnt
}
