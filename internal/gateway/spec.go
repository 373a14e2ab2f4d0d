package gateway

import (
	"github.com/kballard/go-shellquote"
)

// DefaultTool is the external command used when none is configured.
const DefaultTool = "pcli2"

// CommandSpec describes one invocation of the external tool.
type CommandSpec struct {
	Kind       Kind
	Subcommand []string
	Args       []string
	// Structured requests machine-readable output from the tool.
	Structured bool
	// Target is the folder or asset the call is about. It is not part of argv.
	Target string
}

// Argv returns the argument vector handed to the tool.
func (s CommandSpec) Argv() []string {
	argv := make([]string, 0, len(s.Subcommand)+len(s.Args)+2)
	argv = append(argv, s.Subcommand...)
	argv = append(argv, s.Args...)
	if s.Structured {
		argv = append(argv, "--format", "json")
	}
	return argv
}

// CommandLine renders the invocation as a shell-quoted string for logs.
func CommandLine(tool string, s CommandSpec) string {
	return shellquote.Join(append([]string{tool}, s.Argv()...)...)
}

// ListFolder lists the children of a folder. An empty id lists the root.
func ListFolder(folderID string) CommandSpec {
	spec := CommandSpec{
		Kind:       KindListFolder,
		Subcommand: []string{"folder", "list"},
		Structured: true,
		Target:     folderID,
	}
	if folderID != "" {
		spec.Args = []string{"--folder-id", folderID}
	}
	return spec
}

func ListAssets(folderID string) CommandSpec {
	return CommandSpec{
		Kind:       KindListAssets,
		Subcommand: []string{"asset", "list"},
		Args:       []string{"--folder-id", folderID},
		Structured: true,
		Target:     folderID,
	}
}

func Search(query string) CommandSpec {
	return CommandSpec{
		Kind:       KindSearch,
		Subcommand: []string{"asset", "text-match"},
		Args:       []string{"--text", query},
		Structured: true,
		Target:     query,
	}
}

func Upload(folderID, localPath string) CommandSpec {
	return CommandSpec{
		Kind:       KindUpload,
		Subcommand: []string{"asset", "create"},
		Args:       []string{"--folder-id", folderID, "--file", localPath},
		Structured: true,
		Target:     folderID,
	}
}

func Download(assetID, localPath string) CommandSpec {
	return CommandSpec{
		Kind:       KindDownload,
		Subcommand: []string{"asset", "download"},
		Args:       []string{"--uuid", assetID, "--output", localPath},
		Structured: true,
		Target:     assetID,
	}
}
