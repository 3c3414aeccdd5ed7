// Package state provides thread-safe state management for the fitlog TUI.
//
// # Overview
//
// The Store shares the selected day's timeline and stats between the
// background poller and the UI. The poller is the only writer of refresh
// results; the UI reads snapshots and changes the selected day.
//
//	Producer (Poller):             Consumer (UI):
//	┌─────────────────────┐        ┌────────────────────┐
//	│ FoodRecords()       │        │ store.SetDate()    │
//	│ ExerciseRecords()   │        │                    │
//	│ timeline.Aggregate()│        │                    │
//	│ store.Update()      │──────→ │ store.Snapshot()   │
//	└─────────────────────┘ (mutex)└────────────────────┘
//
// # Update Semantics
//
// A successful Update replaces the timeline, stats and skipped-record list
// and resets the failure counter. A failed Update keeps the previous data and
// records the error, so the UI degrades to the last good view plus a notice.
// Results for a day other than the selected one are ignored, which makes a
// slow refresh that finishes after the user switched days harmless.
//
// # Copying
//
// Snapshot returns deep copies of the timeline groups and error slices. The
// UI may hold a snapshot across frames without racing the poller.
//
// The zero Store is ready to use.
package state
