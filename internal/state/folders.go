package state

import "time"

// RootID identifies the top of the folder hierarchy.
const RootID = ""

// Folder is one node of the remote folder hierarchy.
type Folder struct {
	ID             string
	Name           string
	ParentID       string
	HasChildren    bool
	Children       []string
	ChildrenLoaded bool
	LoadedAt       time.Time
}

// FolderStore caches the folder hierarchy discovered so far.
type FolderStore interface {
	Get(id string) (Folder, bool)
	Children(id string) ([]Folder, bool)
	SetChildren(parentID string, children []Folder, at time.Time) []Folder
	Fresh(id string, ttl time.Duration, now time.Time) bool
	Path(id string) []Folder
	Len() int
}

type folderStore struct {
	nodes map[string]*Folder
}

// NewFolderStore returns a store holding only the root folder.
func NewFolderStore(rootName string) FolderStore {
	if rootName == "" {
		rootName = "/"
	}
	return &folderStore{nodes: map[string]*Folder{
		RootID: {ID: RootID, Name: rootName, HasChildren: true},
	}}
}

func (s *folderStore) Get(id string) (Folder, bool) {
	node, ok := s.nodes[id]
	if !ok {
		return Folder{}, false
	}
	return cloneFolder(node), true
}

func (s *folderStore) Children(id string) ([]Folder, bool) {
	node, ok := s.nodes[id]
	if !ok || !node.ChildrenLoaded {
		return nil, false
	}
	out := make([]Folder, 0, len(node.Children))
	for _, childID := range node.Children {
		if child, ok := s.nodes[childID]; ok {
			out = append(out, cloneFolder(child))
		}
	}
	return out, true
}

// SetChildren records the listing of parentID. Known children keep their own
// cached listings. The stored children are returned in listing order.
func (s *folderStore) SetChildren(parentID string, children []Folder, at time.Time) []Folder {
	parent, ok := s.nodes[parentID]
	if !ok {
		parent = &Folder{ID: parentID, Name: parentID}
		s.nodes[parentID] = parent
	}
	ids := make([]string, 0, len(children))
	for _, child := range children {
		if child.ID == parentID {
			continue
		}
		node, exists := s.nodes[child.ID]
		if !exists {
			node = &Folder{ID: child.ID}
			s.nodes[child.ID] = node
		}
		node.Name = child.Name
		node.HasChildren = child.HasChildren
		node.ParentID = parentID
		ids = append(ids, child.ID)
	}
	parent.Children = ids
	parent.ChildrenLoaded = true
	parent.HasChildren = len(ids) > 0
	parent.LoadedAt = at
	out, _ := s.Children(parentID)
	return out
}

// Fresh reports whether id's children were loaded within ttl of now.
func (s *folderStore) Fresh(id string, ttl time.Duration, now time.Time) bool {
	if ttl <= 0 {
		return false
	}
	node, ok := s.nodes[id]
	if !ok || !node.ChildrenLoaded {
		return false
	}
	return now.Sub(node.LoadedAt) < ttl
}

// Path returns the folders from the root's first child down to id.
func (s *folderStore) Path(id string) []Folder {
	var path []Folder
	seen := map[string]struct{}{}
	for id != RootID {
		if _, loop := seen[id]; loop {
			break
		}
		seen[id] = struct{}{}
		node, ok := s.nodes[id]
		if !ok {
			break
		}
		path = append(path, cloneFolder(node))
		id = node.ParentID
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func (s *folderStore) Len() int {
	return len(s.nodes)
}

func cloneFolder(f *Folder) Folder {
	dup := *f
	if len(f.Children) > 0 {
		dup.Children = append([]string(nil), f.Children...)
	}
	return dup
}
