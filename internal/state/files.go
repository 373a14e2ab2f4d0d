package state

import "time"

// LocalFile is a file in the local upload directory.
type LocalFile struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// LocalFileStore holds the latest snapshot of the upload directory.
type LocalFileStore interface {
	Entries() []LocalFile
	SetEntries([]LocalFile)
	Paths() []string
}

type localFileStore struct {
	entries []LocalFile
}

func NewLocalFileStore() LocalFileStore {
	return &localFileStore{}
}

func (s *localFileStore) Entries() []LocalFile {
	return cloneLocalFiles(s.entries)
}

func (s *localFileStore) SetEntries(entries []LocalFile) {
	s.entries = cloneLocalFiles(entries)
}

func (s *localFileStore) Paths() []string {
	paths := make([]string, len(s.entries))
	for i, entry := range s.entries {
		paths[i] = entry.Path
	}
	return paths
}

func cloneLocalFiles(entries []LocalFile) []LocalFile {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]LocalFile, len(entries))
	copy(dup, entries)
	return dup
}
