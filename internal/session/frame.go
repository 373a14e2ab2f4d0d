package session

import (
	"github.com/atomicstack/assetnav/internal/state"
	uistate "github.com/atomicstack/assetnav/internal/ui/state"
	"github.com/google/uuid"
)

// View is the screen a frame presents.
type View int

const (
	ViewFolderBrowser View = iota
	ViewAssetBrowser
	ViewSearch
	ViewUpload
	ViewDownload
)

func (v View) String() string {
	switch v {
	case ViewFolderBrowser:
		return "folders"
	case ViewAssetBrowser:
		return "assets"
	case ViewSearch:
		return "search"
	case ViewUpload:
		return "upload"
	case ViewDownload:
		return "download"
	}
	return "unknown"
}

// Origin tells folder-browser frames holding folders apart from those
// holding search results.
type Origin int

const (
	OriginFolder Origin = iota
	OriginSearch
)

// Frame is one entry of the navigation stack. Its ID identifies the context
// that issued an operation.
type Frame struct {
	ID       string
	View     View
	Origin   Origin
	FolderID string
	Query    string
	List     *uistate.List
	Prompt   *uistate.Prompt
	Folders  []state.Folder
	Assets   []state.Asset
	Target   state.Asset
	// Awaiting holds the operation whose result this frame is waiting on.
	Awaiting string
	// Busy maps asset ids to the operation transferring them.
	Busy map[string]string
}

func newFrame(view View) *Frame {
	return &Frame{
		ID:   uuid.NewString(),
		View: view,
		List: uistate.NewList(nil),
		Busy: map[string]string{},
	}
}

// NewFolderFrame creates a folder browser positioned at folderID.
func NewFolderFrame(folderID string) *Frame {
	f := newFrame(ViewFolderBrowser)
	f.FolderID = folderID
	return f
}

// NewAssetFrame creates an asset browser for folderID.
func NewAssetFrame(folderID string) *Frame {
	f := newFrame(ViewAssetBrowser)
	f.FolderID = folderID
	return f
}

// NewSearchFrame creates a search prompt with an empty buffer.
func NewSearchFrame() *Frame {
	f := newFrame(ViewSearch)
	f.Prompt = &uistate.Prompt{}
	return f
}

// NewResultsFrame creates a folder browser listing the results of query.
func NewResultsFrame(query string, assets []state.Asset) *Frame {
	f := newFrame(ViewFolderBrowser)
	f.Origin = OriginSearch
	f.Query = query
	f.SetAssets(assets, false)
	return f
}

// NewUploadFrame creates a path prompt for uploading into folderID.
func NewUploadFrame(folderID string) *Frame {
	f := newFrame(ViewUpload)
	f.FolderID = folderID
	f.Prompt = &uistate.Prompt{}
	return f
}

// NewDownloadFrame creates a path prompt for downloading target.
func NewDownloadFrame(target state.Asset) *Frame {
	f := newFrame(ViewDownload)
	f.FolderID = target.FolderID
	f.Target = target
	f.Prompt = &uistate.Prompt{}
	return f
}

// IsResults reports whether the frame lists search results.
func (f *Frame) IsResults() bool {
	return f.View == ViewFolderBrowser && f.Origin == OriginSearch
}

// ListsAssets reports whether the frame's rows are assets.
func (f *Frame) ListsAssets() bool {
	return f.View == ViewAssetBrowser || f.IsResults()
}

// SetFolders replaces the rows with folders. With keepCursor the selection
// stays on the same folder when it is still listed.
func (f *Frame) SetFolders(folders []state.Folder, keepCursor bool) {
	f.Folders = append([]state.Folder(nil), folders...)
	f.Assets = nil
	items := make([]uistate.Item, len(folders))
	for i, folder := range folders {
		items[i] = uistate.Item{ID: folder.ID, Label: folder.Name}
	}
	f.setItems(items, keepCursor)
}

// SetAssets replaces the rows with assets.
func (f *Frame) SetAssets(assets []state.Asset, keepCursor bool) {
	f.Assets = append([]state.Asset(nil), assets...)
	f.Folders = nil
	items := make([]uistate.Item, len(assets))
	for i, asset := range assets {
		items[i] = uistate.Item{ID: asset.ID, Label: asset.Name}
	}
	f.setItems(items, keepCursor)
	for id := range f.Busy {
		if f.List.IndexOf(id) < 0 {
			delete(f.Busy, id)
		}
	}
}

func (f *Frame) setItems(items []uistate.Item, keepCursor bool) {
	if !keepCursor {
		f.List.Reset(items)
		return
	}
	selected, had := f.List.Selected()
	f.List.UpdateItems(items)
	if had {
		f.List.Select(selected.ID)
	}
}

// SelectedFolder returns the folder under the cursor.
func (f *Frame) SelectedFolder() (state.Folder, bool) {
	idx := f.List.Cursor
	if idx < 0 || idx >= len(f.Folders) {
		return state.Folder{}, false
	}
	return f.Folders[idx], true
}

// SelectedAsset returns the asset under the cursor.
func (f *Frame) SelectedAsset() (state.Asset, bool) {
	idx := f.List.Cursor
	if idx < 0 || idx >= len(f.Assets) {
		return state.Asset{}, false
	}
	return f.Assets[idx], true
}

// UpdateAssetStatus rewrites the status of a listed asset.
func (f *Frame) UpdateAssetStatus(id, status string) bool {
	for i := range f.Assets {
		if f.Assets[i].ID == id {
			f.Assets[i].Status = status
			return true
		}
	}
	return false
}

// Loading reports whether the frame waits on an operation.
func (f *Frame) Loading() bool {
	return f.Awaiting != ""
}

// MarkBusy records that opID is transferring assetID.
func (f *Frame) MarkBusy(assetID, opID string) {
	f.Busy[assetID] = opID
}

// ClearBusy forgets the transfer of assetID.
func (f *Frame) ClearBusy(assetID string) {
	delete(f.Busy, assetID)
}

// IsBusy reports whether assetID is being transferred.
func (f *Frame) IsBusy(assetID string) bool {
	_, ok := f.Busy[assetID]
	return ok
}

// Expects reports whether op's result still belongs to this frame.
func (f *Frame) Expects(op PendingOperation) bool {
	if f.Awaiting != "" && f.Awaiting == op.ID {
		return true
	}
	busy, ok := f.Busy[op.Target]
	return ok && busy == op.ID
}
