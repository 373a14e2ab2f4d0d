// Package dispatcher applies watcher events and gateway payloads to the
// shared caches.
package dispatcher

import (
	"time"

	"github.com/atomicstack/assetnav/internal/backend"
	"github.com/atomicstack/assetnav/internal/gateway"
	"github.com/atomicstack/assetnav/internal/state"
)

type Result struct {
	LocalFilesUpdated bool
}

type Dispatcher struct {
	folders state.FolderStore
	assets  state.AssetStore
	files   state.LocalFileStore
}

func New(f state.FolderStore, a state.AssetStore, l state.LocalFileStore) *Dispatcher {
	return &Dispatcher{folders: f, assets: a, files: l}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		return res
	}
	switch evt.Kind {
	case backend.KindLocalFiles:
		if files, ok := evt.Data.([]state.LocalFile); ok {
			d.files.SetEntries(files)
			res.LocalFilesUpdated = true
		}
	}
	return res
}

// ApplyFolderListing caches the children of parentID and returns them.
func (d *Dispatcher) ApplyFolderListing(parentID string, listing []gateway.Folder, at time.Time) []state.Folder {
	children := make([]state.Folder, 0, len(listing))
	for _, f := range listing {
		children = append(children, state.Folder{ID: f.ID, Name: f.Name, HasChildren: f.HasChildren})
	}
	return d.folders.SetChildren(parentID, children, at)
}

// ApplyAssetListing caches the assets of folderID and returns them.
func (d *Dispatcher) ApplyAssetListing(folderID string, listing []gateway.Asset) []state.Asset {
	assets := ConvertAssets(listing)
	for i := range assets {
		if assets[i].FolderID == "" {
			assets[i].FolderID = folderID
		}
	}
	d.assets.SetAssets(folderID, assets)
	return assets
}

// ApplyTransfer records the status reported for a transferred asset.
func (d *Dispatcher) ApplyTransfer(t gateway.Transfer) bool {
	if t.ID == "" || t.ResultingStatus == "" {
		return false
	}
	return d.assets.UpdateStatus(t.ID, t.ResultingStatus)
}

// InvalidateAssets drops the cached listing of folderID.
func (d *Dispatcher) InvalidateAssets(folderID string) {
	d.assets.Invalidate(folderID)
}

// ConvertAssets maps gateway assets onto cache entries without storing them.
func ConvertAssets(listing []gateway.Asset) []state.Asset {
	assets := make([]state.Asset, 0, len(listing))
	for _, a := range listing {
		assets = append(assets, state.Asset{
			ID:       a.ID,
			Name:     a.Name,
			Size:     a.Size,
			Status:   a.Status,
			FolderID: a.FolderID,
			Path:     a.Path,
		})
	}
	return assets
}
