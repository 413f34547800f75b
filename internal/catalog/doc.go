// Package catalog holds the browsing state machine: which sort order is
// active, which items are on screen, and whether the screen shows a spinner,
// the grid, or the error view.
//
// The Controller never performs I/O itself. Operations that need the network
// return a Job; the caller runs the Job off the UI goroutine and hands the
// Result back through Apply, which is the only method that writes state
// produced by a fetch. Results belonging to a superseded request are dropped
// by Apply, so the last request started always wins.
package catalog
