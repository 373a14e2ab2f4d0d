package state

import (
	"testing"
	"time"
)

func TestFolderStoreRoot(t *testing.T) {
	s := NewFolderStore("")
	root, ok := s.Get(RootID)
	if !ok || root.Name != "/" {
		t.Fatalf("expected root named /, got %#v", root)
	}
	if _, ok := s.Children(RootID); ok {
		t.Fatalf("expected root children unloaded")
	}
}

func TestFolderStoreSetChildrenLinksParents(t *testing.T) {
	s := NewFolderStore("/")
	at := time.Unix(100, 0)
	kids := s.SetChildren(RootID, []Folder{{ID: "1", Name: "Parts", HasChildren: true}, {ID: "2", Name: "Docs"}}, at)
	if len(kids) != 2 || kids[0].ParentID != RootID || kids[1].Name != "Docs" {
		t.Fatalf("unexpected children %#v", kids)
	}
	s.SetChildren("1", []Folder{{ID: "11", Name: "Gears"}}, at)

	path := s.Path("11")
	if len(path) != 2 || path[0].Name != "Parts" || path[1].Name != "Gears" {
		t.Fatalf("unexpected path %#v", path)
	}
	if got := s.Path(RootID); len(got) != 0 {
		t.Fatalf("expected empty path for root, got %#v", got)
	}
}

func TestFolderStoreRelistKeepsGrandchildren(t *testing.T) {
	s := NewFolderStore("/")
	at := time.Unix(100, 0)
	s.SetChildren(RootID, []Folder{{ID: "1", Name: "Parts", HasChildren: true}}, at)
	s.SetChildren("1", []Folder{{ID: "11", Name: "Gears"}}, at)
	s.SetChildren(RootID, []Folder{{ID: "1", Name: "Parts (renamed)", HasChildren: true}}, at)

	kids, ok := s.Children("1")
	if !ok || len(kids) != 1 || kids[0].ID != "11" {
		t.Fatalf("expected grandchildren preserved, got %#v", kids)
	}
	node, _ := s.Get("1")
	if node.Name != "Parts (renamed)" {
		t.Fatalf("expected name refreshed, got %q", node.Name)
	}
}

func TestFolderStoreFreshness(t *testing.T) {
	s := NewFolderStore("/")
	at := time.Unix(100, 0)
	s.SetChildren(RootID, nil, at)
	if s.Fresh(RootID, 0, at) {
		t.Fatalf("zero ttl must never be fresh")
	}
	if !s.Fresh(RootID, time.Minute, at.Add(30*time.Second)) {
		t.Fatalf("expected listing to be fresh within ttl")
	}
	if s.Fresh(RootID, time.Minute, at.Add(2*time.Minute)) {
		t.Fatalf("expected listing to expire")
	}
	if s.Fresh("missing", time.Minute, at) {
		t.Fatalf("unknown folders are never fresh")
	}
}

func TestFolderStoreReturnsCopies(t *testing.T) {
	s := NewFolderStore("/")
	s.SetChildren(RootID, []Folder{{ID: "1", Name: "A"}}, time.Now())
	root, _ := s.Get(RootID)
	root.Children[0] = "mutated"
	again, _ := s.Get(RootID)
	if again.Children[0] != "1" {
		t.Fatalf("expected store to be isolated from callers")
	}
}
