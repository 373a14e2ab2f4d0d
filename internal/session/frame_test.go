package session

import (
	"testing"

	"github.com/atomicstack/assetnav/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameSetFoldersResetsOrKeepsCursor(t *testing.T) {
	f := NewFolderFrame("")
	f.SetFolders([]state.Folder{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}, {ID: "3", Name: "C"}}, false)
	f.List.MoveCursorEnd()

	f.SetFolders([]state.Folder{{ID: "0", Name: "Z"}, {ID: "1", Name: "A"}, {ID: "3", Name: "C"}}, true)
	sel, ok := f.SelectedFolder()
	require.True(t, ok)
	assert.Equal(t, "3", sel.ID, "refresh keeps the same folder selected")

	f.SetFolders([]state.Folder{{ID: "9", Name: "N"}}, false)
	assert.Equal(t, 0, f.List.Cursor)

	f.SetFolders(nil, true)
	_, ok = f.SelectedFolder()
	assert.False(t, ok)
	assert.Equal(t, -1, f.List.Cursor)
}

func TestFrameAssetsAndBusySet(t *testing.T) {
	f := NewAssetFrame("f1")
	f.SetAssets([]state.Asset{{ID: "a1", Name: "gear.stl"}, {ID: "a2", Name: "box.stl"}}, false)
	f.MarkBusy("a1", "op-1")
	assert.True(t, f.IsBusy("a1"))
	assert.True(t, f.Expects(PendingOperation{ID: "op-1", Target: "a1"}))
	assert.False(t, f.Expects(PendingOperation{ID: "op-2", Target: "a1"}))

	require.True(t, f.UpdateAssetStatus("a1", "downloaded"))
	asset, ok := f.SelectedAsset()
	require.True(t, ok)
	assert.Equal(t, "downloaded", asset.Status)

	f.SetAssets([]state.Asset{{ID: "a2", Name: "box.stl"}}, true)
	assert.False(t, f.IsBusy("a1"), "busy entries for vanished rows are dropped")

	f.ClearBusy("a2")
	assert.Empty(t, f.Busy)
}

func TestFrameAwaiting(t *testing.T) {
	f := NewSearchFrame()
	assert.False(t, f.Loading())
	f.Awaiting = "op-9"
	assert.True(t, f.Loading())
	assert.True(t, f.Expects(PendingOperation{ID: "op-9"}))
	assert.False(t, f.Expects(PendingOperation{ID: "op-8"}))
	assert.NotNil(t, f.Prompt)
}

func TestFrameKinds(t *testing.T) {
	results := NewResultsFrame("gear", nil)
	assert.True(t, results.IsResults())
	assert.True(t, results.ListsAssets())
	assert.False(t, NewFolderFrame("").ListsAssets())
	assert.True(t, NewAssetFrame("x").ListsAssets())

	dl := NewDownloadFrame(state.Asset{ID: "a1", FolderID: "f1"})
	assert.Equal(t, "f1", dl.FolderID)
	assert.Equal(t, "download", dl.View.String())
	assert.NotEqual(t, NewFolderFrame("").ID, NewFolderFrame("").ID)
}
