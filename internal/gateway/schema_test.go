package gateway

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFolderListing(t *testing.T) {
	raw := `{"success":true,"payload":[{"id":"1","name":"A","has_children":false,"extra":7}],"error":null}`
	out, err := Decode(KindListFolder, []byte(raw))
	require.NoError(t, err)
	assert.Equal(t, []Folder{{ID: "1", Name: "A"}}, out.Folders)
}

func TestDecodeAssetListing(t *testing.T) {
	raw := `{"success":true,"payload":[{"id":"a1","name":"gear.stl","size":2048,"status":"uploaded","folder_id":"f1"}]}`
	out, err := Decode(KindSearch, []byte(raw))
	require.NoError(t, err)
	require.Len(t, out.Assets, 1)
	assert.Equal(t, Asset{ID: "a1", Name: "gear.stl", Size: 2048, Status: "uploaded", FolderID: "f1"}, out.Assets[0])
}

func TestDecodeTransfer(t *testing.T) {
	raw := `{"success":true,"payload":{"id":"a9","resulting_status":"pending"}}`
	out, err := Decode(KindUpload, []byte(raw))
	require.NoError(t, err)
	assert.Equal(t, Transfer{ID: "a9", ResultingStatus: "pending"}, out.Transfer)
}

func TestDecodeEmptyListing(t *testing.T) {
	out, err := Decode(KindListAssets, []byte(`{"success":true,"payload":[]}`))
	require.NoError(t, err)
	assert.Empty(t, out.Assets)
}

func TestDecodeReportedFailure(t *testing.T) {
	_, err := Decode(KindListFolder, []byte(`{"success":false,"payload":null,"error":"token expired"}`))
	var reported *ReportedFailure
	require.True(t, errors.As(err, &reported))
	assert.Equal(t, "token expired", reported.Message)

	_, err = Decode(KindListFolder, []byte(`{"success":false}`))
	require.True(t, errors.As(err, &reported))
	assert.Equal(t, "tool reported failure", reported.Message)
}

func TestDecodeRejectsSchemaViolations(t *testing.T) {
	cases := []struct {
		name string
		kind Kind
		raw  string
	}{
		{"empty", KindListFolder, ``},
		{"not json", KindListFolder, `Folders: A, B`},
		{"missing success", KindListFolder, `{"payload":[]}`},
		{"success wrong type", KindListFolder, `{"success":"yes","payload":[]}`},
		{"trailing data", KindListFolder, `{"success":true,"payload":[]} {}`},
		{"top-level array", KindListFolder, `[{"id":"1"}]`},
		{"missing payload", KindListFolder, `{"success":true}`},
		{"null payload", KindListAssets, `{"success":true,"payload":null}`},
		{"object instead of list", KindListFolder, `{"success":true,"payload":{"id":"1"}}`},
		{"list instead of object", KindDownload, `{"success":true,"payload":[]}`},
		{"folder missing id", KindListFolder, `{"success":true,"payload":[{"name":"A","has_children":false}]}`},
		{"folder empty id", KindListFolder, `{"success":true,"payload":[{"id":"","name":"A","has_children":false}]}`},
		{"folder missing has_children", KindListFolder, `{"success":true,"payload":[{"id":"1","name":"A"}]}`},
		{"folder name wrong type", KindListFolder, `{"success":true,"payload":[{"id":"1","name":5,"has_children":false}]}`},
		{"asset missing size", KindListAssets, `{"success":true,"payload":[{"id":"a","name":"n","status":"ok"}]}`},
		{"asset fractional size", KindListAssets, `{"success":true,"payload":[{"id":"a","name":"n","size":1.5,"status":"ok"}]}`},
		{"asset negative size", KindListAssets, `{"success":true,"payload":[{"id":"a","name":"n","size":-1,"status":"ok"}]}`},
		{"asset missing status", KindSearch, `{"success":true,"payload":[{"id":"a","name":"n","size":1}]}`},
		{"null element", KindListFolder, `{"success":true,"payload":[null]}`},
		{"transfer missing status", KindUpload, `{"success":true,"payload":{"id":"a"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.kind, []byte(tc.raw))
			require.Error(t, err)
			var reported *ReportedFailure
			assert.False(t, errors.As(err, &reported), "schema violations must not look like reported failures")
		})
	}
}
