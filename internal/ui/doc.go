// Package ui contains the Bubble Tea program that shows the movie grid.
// The Model type focuses on message orchestration, while dedicated helpers
// own navigation, input, rendering, and the detail screen.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are
//     routed through a typed handler registry so each tea.Msg is handled by
//     a focused function.
//   - Key presses either feed the filter of the current level
//     (internal/ui/input.go) or move through the grid and the sort popup
//     (internal/ui/navigation.go).
//
// State ownership:
//   - catalog.Controller owns the view state, the sort order and the loaded
//     items. Only Update calls into it, so it has a single writer.
//   - The grid and the sort popup are internal/ui/state.Level values stacked
//     with the grid at the bottom. The grid mirrors the controller's items
//     through syncGrid; filtering and cursor movement never reach the
//     controller.
//
// Fetches:
//   - Controller operations hand back a catalog.Job. The command bus
//     (internal/ui/command) runs it inside a tea.Cmd and returns a ResultMsg,
//     which handleResultMsg folds back through Controller.Apply. Results from
//     superseded requests are dropped there.
//   - A successful detail fetch opens the detail screen built by
//     internal/detail.
//
// Backend interactions:
//   - A backend.Watcher polls connectivity; its events only drive the status
//     indicator in the header.
package ui
