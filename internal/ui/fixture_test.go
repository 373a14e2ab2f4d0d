package ui

import (
	"context"
	"testing"
	"time"

	"github.com/atomicstack/assetnav/internal/gateway"
	tea "github.com/charmbracelet/bubbletea"
)

// fakeExec answers gateway calls from an in-memory folder tree.
type fakeExec struct {
	calls   []gateway.CommandSpec
	folders map[string][]gateway.Folder
	assets  map[string][]gateway.Asset
	// fail returns an error for matching calls when set.
	fail func(spec gateway.CommandSpec) error
}

func newFakeExec() *fakeExec {
	return &fakeExec{
		folders: map[string][]gateway.Folder{
			"":  {{ID: "1", Name: "A", HasChildren: true}, {ID: "2", Name: "B", HasChildren: true}},
			"1": {{ID: "11", Name: "A1"}},
			"2": {{ID: "21", Name: "B1"}, {ID: "22", Name: "B2"}},
		},
		assets: map[string][]gateway.Asset{
			"1": {
				{ID: "a1", Name: "gear.stl", Size: 1234, Status: "uploaded"},
				{ID: "a2", Name: "box.stl", Size: 20, Status: "uploaded"},
			},
		},
	}
}

func (f *fakeExec) Execute(_ context.Context, spec gateway.CommandSpec) (gateway.Output, error) {
	f.calls = append(f.calls, spec)
	if f.fail != nil {
		if err := f.fail(spec); err != nil {
			return gateway.Output{}, err
		}
	}
	out := gateway.Output{Kind: spec.Kind}
	switch spec.Kind {
	case gateway.KindListFolder:
		out.Folders = f.folders[spec.Target]
	case gateway.KindListAssets:
		out.Assets = f.assets[spec.Target]
	case gateway.KindSearch:
		for _, list := range f.assets {
			for _, a := range list {
				if a.Name == spec.Target+".stl" {
					out.Assets = append(out.Assets, a)
				}
			}
		}
	case gateway.KindUpload:
		out.Transfer = gateway.Transfer{ID: "new", ResultingStatus: "uploaded"}
	case gateway.KindDownload:
		out.Transfer = gateway.Transfer{ID: spec.Target, ResultingStatus: "downloaded"}
	}
	return out, nil
}

func (f *fakeExec) CommandLine(spec gateway.CommandSpec) string {
	return gateway.CommandLine("pcli2", spec)
}

func (f *fakeExec) count(kind gateway.Kind) int {
	n := 0
	for _, c := range f.calls {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func newTestHarness(t *testing.T, exec *fakeExec, opts Options) *Harness {
	t.Helper()
	if opts.Width == 0 {
		opts.Width = 80
	}
	if opts.Height == 0 {
		opts.Height = 30
	}
	if opts.DownloadDir == "" {
		opts.DownloadDir = "/tmp/downloads"
	}
	h := NewHarness(NewModel(exec, opts))
	h.Init()
	return h
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func typeText(h *Harness, text string) {
	for _, r := range text {
		h.Send(runes(string(r)))
	}
}

func selectRow(t *testing.T, h *Harness, id string) {
	t.Helper()
	if !h.Model().Session().Active().List.Select(id) {
		t.Fatalf("row %q not listed", id)
	}
}
