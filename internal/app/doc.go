// Package app is the composition root of fitlog.
//
// # Overview
//
// It wires configuration, logging, the token store, the backend, the day
// store and the UI together. The CLI commands reuse Setup and Refresher.Load
// for one-shot output; the TUI goes through Run.
//
// # Components
//
//   - app.go: Setup, NewBackend and Run
//   - refresh.go: Refresher, which fetches a day, aggregates it and publishes
//     the result
//   - poller.go: background refresh loop with exponential backoff
//
// # Data Flow
//
//	Run()
//	  ├─> config.Load()        read ~/.config/fitlog/config.toml
//	  ├─> logger.Init()        rotating log file
//	  ├─> NewBackend()         api.Client, or fake.Backend in demo mode
//	  ├─> state.Store{}        shared day snapshot
//	  ├─> StartPoller()        background refresh
//	  ├─> prefs.Load()         saved theme and help mode
//	  └─> ui.Run()             blocks until quit
//
//	Poller loop:
//	  Refresher.Refresh(store.Date())
//	    ├─> Backend.FoodRecords / ExerciseRecords
//	    ├─> timeline.Aggregate / timeline.Stats
//	    └─> store.Update()
//
// # Polling Behavior
//
// The first refresh runs immediately. After a success the next one runs after
// the poll interval (default 15s). Consecutive failures double the delay up to
// 30 seconds. An Unauthenticated failure pauses polling entirely: the user has
// to log in again, and Poller.Trigger (bound to the refresh and day-change
// keys) resumes it.
//
// Records that fail to normalize never fail a refresh. They are logged at warn
// level and surfaced through state.Snapshot.Skipped.
package app
