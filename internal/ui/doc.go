// Package ui contains the Bubble Tea program that browses the remote asset
// service. The Model type focuses on message orchestration, while dedicated
// helpers own navigation, text input, operation dispatch and rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key presses are interpreted against the active frame of the session
//     (internal/session). Navigation helpers (navigation.go) move cursors and
//     push or pop frames; input helpers (input.go) edit the prompt buffer of
//     the search, upload and download modes.
//   - Operations that need the external tool are reserved in the session's
//     pending table and handed to the command bus (internal/ui/command),
//     which runs them on a worker goroutine and reports back with an
//     OperationCompletedMsg. commands.go reconciles those results, dropping
//     any whose originating frame is gone or no longer waits for them.
//
// State ownership:
//   - The session is the single mutable state value and is only touched from
//     Update.
//   - Folder and asset listings are cached in internal/state and kept in sync
//     by the dispatcher, so returning to a folder never needs a fetch.
//
// Backend interactions:
//   - A backend.Watcher streams snapshots of the local upload directory;
//     Update waits for those events and feeds them to the upload suggestions.
package ui
