// Package ui draws fitlog's day view.
//
// The TUI is a bubbletea program. It never talks to the backend itself: it
// reads state.Store snapshots on a short tick and asks the poller for a
// refresh through Options.Trigger when the user presses r or changes day.
//
// The Render* functions are plain string builders shared with the
// non-interactive `fitlog today` command.
package ui
