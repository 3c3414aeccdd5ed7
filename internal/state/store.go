package state

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/five82/fitlog/internal/api"
	"github.com/five82/fitlog/internal/timeline"
)

// Snapshot represents the latest day view available to the UI.
type Snapshot struct {
	Date                time.Time
	Timeline            timeline.Timeline
	Stats               timeline.DailyStats
	HasData             bool
	Skipped             []error // records excluded by the aggregator
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive refresh failures
}

// IsOffline returns true when the backend has been unreachable for multiple refreshes.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// NeedsLogin reports whether the last refresh failed for lack of a valid token.
func (s Snapshot) NeedsLogin() bool {
	return api.IsUnauthenticated(s.LastError)
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// SetDate selects the day to display. Changing the day drops the previous
// day's data so stale totals are never shown under the new date.
func (s *Store) SetDate(day time.Time) {
	day = truncateDay(day)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot.Date.Equal(day) {
		return
	}
	failures := s.snapshot.ConsecutiveFailures
	lastErr := s.snapshot.LastError
	s.snapshot = Snapshot{Date: day, ConsecutiveFailures: failures, LastError: lastErr}
}

// Date returns the selected day.
func (s *Store) Date() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Date
}

// Update records the outcome of a refresh for day. When err is non-nil the
// previous data is kept but the error is recorded for visibility. Results for
// a day other than the selected one are dropped.
func (s *Store) Update(day time.Time, tl timeline.Timeline, stats timeline.DailyStats, skipped []error, err error) {
	day = truncateDay(day)
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.snapshot.Date.IsZero() && !s.snapshot.Date.Equal(day) {
		return
	}
	s.snapshot.Date = day

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Timeline = cloneTimeline(tl)
	s.snapshot.Stats = stats
	s.snapshot.HasData = true
	s.snapshot.Skipped = slices.Clone(skipped)
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Timeline = cloneTimeline(s.snapshot.Timeline)
	snap.Skipped = slices.Clone(s.snapshot.Skipped)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneTimeline(tl timeline.Timeline) timeline.Timeline {
	if len(tl) == 0 {
		return nil
	}
	dup := make(timeline.Timeline, len(tl))
	for i, e := range tl {
		if e.Meal != nil {
			g := *e.Meal
			g.Foods = slices.Clone(e.Meal.Foods)
			dup[i].Meal = &g
		}
		if e.Workout != nil {
			g := *e.Workout
			g.Exercises = slices.Clone(e.Workout.Exercises)
			dup[i].Workout = &g
		}
	}
	return dup
}

func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
