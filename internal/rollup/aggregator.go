package rollup

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwehrle/salescockpit/internal/config"
	"github.com/jwehrle/salescockpit/internal/entry"
	"github.com/jwehrle/salescockpit/internal/metric"
	"github.com/jwehrle/salescockpit/internal/period"
)

// Aggregator turns raw daily entries into per-user KPI sums. It only reads;
// a failed fetch is fatal for the call so error states never surface as
// zeroed totals.
type Aggregator struct {
	entries entry.EntryRepository
}

func NewAggregator(entries entry.EntryRepository) *Aggregator {
	return &Aggregator{entries: entries}
}

// SumsByUser folds the achieved counts of every entry inside the window,
// grouped by user. Null counters read as zero; users without entries are
// simply absent from the result.
func (a *Aggregator) SumsByUser(ctx context.Context, userIDs []uuid.UUID, w period.Window) (map[uuid.UUID]map[metric.Key]int, error) {
	rows, err := a.entries.InRange(userIDs, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s entries: %w", w.Kind, err)
	}

	byUser := make(map[uuid.UUID][]metric.Counter)
	for i := range rows {
		byUser[rows[i].UserID] = append(byUser[rows[i].UserID], rows[i].Counter())
	}

	sums := make(map[uuid.UUID]map[metric.Key]int, len(byUser))
	for id, counters := range byUser {
		sums[id] = metric.Fold(counters)
	}
	return sums, nil
}

// Latest bundles the entries the "today"/"yesterday" views are built from.
// Each field matches its calendar date exactly; there is no fallback to a
// nearby day, a missing entry stays nil.
type Latest struct {
	Today      *entry.DailyEntry `json:"today,omitempty"`
	Yesterday  *entry.DailyEntry `json:"yesterday,omitempty"`
	MostRecent *entry.DailyEntry `json:"most_recent,omitempty"`
}

// LatestEntries resolves each user's today, yesterday and most-recent entry
// relative to now.
func (a *Aggregator) LatestEntries(ctx context.Context, userIDs []uuid.UUID, now time.Time) (map[uuid.UUID]Latest, error) {
	log := config.WithContext(ctx)

	today := period.Day(now)
	yesterday := today.AddDate(0, 0, -1)

	todayRows, err := a.entries.ByDate(userIDs, today)
	if err != nil {
		return nil, fmt.Errorf("fetch today entries: %w", err)
	}
	yesterdayRows, err := a.entries.ByDate(userIDs, yesterday)
	if err != nil {
		return nil, fmt.Errorf("fetch yesterday entries: %w", err)
	}
	recent, err := a.entries.MostRecent(userIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch most recent entries: %w", err)
	}

	latest := make(map[uuid.UUID]Latest, len(userIDs))
	for i := range todayRows {
		l := latest[todayRows[i].UserID]
		l.Today = &todayRows[i]
		latest[todayRows[i].UserID] = l
	}
	for i := range yesterdayRows {
		l := latest[yesterdayRows[i].UserID]
		l.Yesterday = &yesterdayRows[i]
		latest[yesterdayRows[i].UserID] = l
	}
	for id, e := range recent {
		l := latest[id]
		mostRecent := e
		l.MostRecent = &mostRecent
		latest[id] = l
	}

	log.WithField("users", len(userIDs)).Debug("Resolved latest entries")
	return latest, nil
}
