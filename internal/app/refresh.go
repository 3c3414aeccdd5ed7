package app

import (
	"context"
	"errors"
	"time"

	"github.com/five82/fitlog/internal/api"
	"github.com/five82/fitlog/internal/logger"
	"github.com/five82/fitlog/internal/model"
	"github.com/five82/fitlog/internal/state"
	"github.com/five82/fitlog/internal/timeline"
)

// Day is one day's aggregated view.
type Day struct {
	Date     time.Time
	Timeline timeline.Timeline
	Stats    timeline.DailyStats
	Skipped  []error
}

// Refresher loads a day from the backend and publishes it to the store.
type Refresher struct {
	Backend api.Backend
	Store   *state.Store
	Targets timeline.Targets
}

// Load fetches and aggregates the records for day. Records that fail to
// normalize are logged and reported in Day.Skipped; they never fail the load.
func (r *Refresher) Load(ctx context.Context, day time.Time) (Day, error) {
	foods, err := r.Backend.FoodRecords(ctx, day)
	if err != nil {
		return Day{}, err
	}
	exercises, err := r.Backend.ExerciseRecords(ctx, day)
	if err != nil {
		return Day{}, err
	}

	tl, skipped := timeline.Aggregate(foods, exercises)
	for _, err := range skipped {
		var de *model.DecodeError
		if errors.As(err, &de) {
			logger.Warn("skipped record", "kind", de.Kind, "id", de.RecordID, "field", de.Field, "value", de.Value)
			continue
		}
		logger.Warn("skipped record", "error", err)
	}
	return Day{
		Date:     day,
		Timeline: tl,
		Stats:    timeline.Stats(tl, r.Targets),
		Skipped:  skipped,
	}, nil
}

// Refresh loads day and records the outcome in the store. On failure the
// store keeps the previous data.
func (r *Refresher) Refresh(ctx context.Context, day time.Time) error {
	d, err := r.Load(ctx, day)
	if err != nil {
		if ctx.Err() != nil {
			// Shutdown or a superseded request; not a backend failure.
			return err
		}
		r.Store.Update(day, nil, timeline.DailyStats{}, nil, err)
		return err
	}
	r.Store.Update(day, d.Timeline, d.Stats, d.Skipped, nil)
	logger.Debug("refreshed day", "date", day.Format(api.DateLayout), "entries", len(d.Timeline), "skipped", len(d.Skipped))
	return nil
}
