package rollup_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/jwehrle/salescockpit/internal/entry"
	"github.com/jwehrle/salescockpit/internal/hierarchy"
	"github.com/jwehrle/salescockpit/internal/metric"
	"github.com/jwehrle/salescockpit/internal/period"
	"github.com/jwehrle/salescockpit/internal/rollup"
	"github.com/jwehrle/salescockpit/internal/user"
)

type fakeEntries struct {
	rows []entry.DailyEntry
	fail bool
}

func (f *fakeEntries) Create(e *entry.DailyEntry) error { return errors.New("read only") }

func (f *fakeEntries) InRange(userIDs []uuid.UUID, from, to time.Time) ([]entry.DailyEntry, error) {
	if f.fail {
		return nil, errors.New("store unavailable")
	}
	ids := idSet(userIDs)
	var out []entry.DailyEntry
	for _, e := range f.rows {
		d := period.Day(e.Date)
		if ids[e.UserID] && !d.Before(period.Day(from)) && !period.Day(to).Before(d) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEntries) ByDate(userIDs []uuid.UUID, day time.Time) ([]entry.DailyEntry, error) {
	if f.fail {
		return nil, errors.New("store unavailable")
	}
	ids := idSet(userIDs)
	var out []entry.DailyEntry
	for _, e := range f.rows {
		if ids[e.UserID] && period.SameDay(e.Date, day) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEntries) MostRecent(userIDs []uuid.UUID) (map[uuid.UUID]entry.DailyEntry, error) {
	if f.fail {
		return nil, errors.New("store unavailable")
	}
	ids := idSet(userIDs)
	latest := map[uuid.UUID]entry.DailyEntry{}
	for _, e := range f.rows {
		if !ids[e.UserID] {
			continue
		}
		if cur, ok := latest[e.UserID]; !ok || e.Date.After(cur.Date) {
			latest[e.UserID] = e
		}
	}
	return latest, nil
}

func datatypesTargets(m map[string]float64) datatypes.JSONType[user.TargetMap] {
	return datatypes.NewJSONType(user.TargetMap(m))
}

func idSet(ids []uuid.UUID) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func intPtr(v int) *int { return &v }

func mkEntry(userID uuid.UUID, date time.Time, fa int) entry.DailyEntry {
	return entry.DailyEntry{
		ID:     uuid.New(),
		UserID: userID,
		Date:   period.Day(date),
		FA:     intPtr(fa),
	}
}

var now = time.Date(2024, time.March, 20, 14, 0, 0, 0, time.UTC) // Wednesday

func TestSumsByUser(t *testing.T) {
	userA := uuid.New()
	userB := uuid.New()
	window := period.Windows(now).Monthly

	repo := &fakeEntries{rows: []entry.DailyEntry{
		mkEntry(userA, now.AddDate(0, 0, -1), 3),
		mkEntry(userA, now.AddDate(0, 0, -2), 2),
		mkEntry(userB, now.AddDate(0, 0, -1), 5),
		// Outside the monthly window.
		mkEntry(userA, now.AddDate(0, -2, 0), 99),
	}}
	agg := rollup.NewAggregator(repo)

	sums, err := agg.SumsByUser(context.Background(), []uuid.UUID{userA, userB}, window)
	require.NoError(t, err)

	assert.Equal(t, 5, sums[userA][metric.FA])
	assert.Equal(t, 5, sums[userB][metric.FA])
	assert.Equal(t, 0, sums[userA][metric.EH], "null counters read as zero")
}

func TestSumsByUserIdempotent(t *testing.T) {
	userA := uuid.New()
	window := period.Windows(now).Weekly
	repo := &fakeEntries{rows: []entry.DailyEntry{
		mkEntry(userA, now, 4),
		mkEntry(userA, now.AddDate(0, 0, -1), 1),
	}}
	agg := rollup.NewAggregator(repo)

	first, err := agg.SumsByUser(context.Background(), []uuid.UUID{userA}, window)
	require.NoError(t, err)
	second, err := agg.SumsByUser(context.Background(), []uuid.UUID{userA}, window)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSumsByUserFetchFailureIsFatal(t *testing.T) {
	repo := &fakeEntries{fail: true}
	agg := rollup.NewAggregator(repo)

	_, err := agg.SumsByUser(context.Background(), []uuid.UUID{uuid.New()}, period.Windows(now).Weekly)
	require.Error(t, err)
}

func TestLatestEntriesExactDates(t *testing.T) {
	userA := uuid.New()
	userB := uuid.New()

	repo := &fakeEntries{rows: []entry.DailyEntry{
		mkEntry(userA, now, 2),
		mkEntry(userA, now.AddDate(0, 0, -1), 3),
		// B's newest entry is three days old: it must not stand in for
		// today or yesterday.
		mkEntry(userB, now.AddDate(0, 0, -3), 7),
	}}
	agg := rollup.NewAggregator(repo)

	latest, err := agg.LatestEntries(context.Background(), []uuid.UUID{userA, userB}, now)
	require.NoError(t, err)

	a := latest[userA]
	require.NotNil(t, a.Today)
	require.NotNil(t, a.Yesterday)
	require.NotNil(t, a.MostRecent)
	assert.True(t, period.SameDay(a.MostRecent.Date, now))

	b := latest[userB]
	assert.Nil(t, b.Today)
	assert.Nil(t, b.Yesterday)
	require.NotNil(t, b.MostRecent)
}

func leaderUser(name string) user.User {
	return user.User{ID: uuid.New(), Name: name, IsTeamLeader: true, TeamName: "Alpha"}
}

func advisorUser(name string) user.User {
	return user.User{ID: uuid.New(), Name: name, TeamName: "Alpha"}
}

func treeFor(root user.User, direct []user.User, descendants map[uuid.UUID][]user.User) *hierarchy.Tree {
	tree := &hierarchy.Tree{
		Root:                root.ID,
		DirectReports:       direct,
		DescendantsByLeader: descendants,
	}
	for _, u := range direct {
		if u.IsTeamLeader {
			tree.DirectLeaders = append(tree.DirectLeaders, u)
		} else {
			tree.PlainReports = append(tree.PlainReports, u)
		}
	}
	return tree
}

func TestComposeNoDoubleCounting(t *testing.T) {
	// A leader with two direct reports, one of whom leads one further
	// report. Everyone also shares the team name, so each member is
	// reachable through both membership sources.
	viewer := leaderUser("Viewer")
	a := advisorUser("A")
	b := leaderUser("B")
	c := advisorUser("C")

	tree := treeFor(viewer, []user.User{a, b}, map[uuid.UUID][]user.User{
		b.ID: {c},
	})
	peers := []user.User{viewer, a, b, c}

	repo := &fakeEntries{rows: []entry.DailyEntry{
		mkEntry(a.ID, now.AddDate(0, 0, -2), 3),
		mkEntry(b.ID, now.AddDate(0, 0, -2), 2),
		mkEntry(c.ID, now.AddDate(0, 0, -2), 1),
	}}
	composer := rollup.NewComposer(rollup.NewAggregator(repo))

	comp, err := composer.Compose(context.Background(), rollup.Scope{Viewer: viewer, TeamName: "Alpha"},
		tree, peers, period.Windows(now), now)
	require.NoError(t, err)

	require.Len(t, comp.Members, 4, "viewer, a, b, c exactly once each")
	seen := map[uuid.UUID]int{}
	for _, m := range comp.Members {
		seen[m.User.ID]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "member %s appears %d times", id, n)
	}

	assert.Equal(t, 6.0, comp.MonthlyTotals[metric.FA].Actual)
}

func TestComposeHierarchyRecordWins(t *testing.T) {
	viewer := leaderUser("Viewer")
	fresh := advisorUser("Fresh")
	fresh.TeamName = "Alpha"

	stale := fresh
	stale.TeamName = "OldTeam" // stale team-name record for the same id

	tree := treeFor(viewer, []user.User{fresh}, map[uuid.UUID][]user.User{})
	peers := []user.User{stale}

	composer := rollup.NewComposer(rollup.NewAggregator(&fakeEntries{}))
	comp, err := composer.Compose(context.Background(), rollup.Scope{Viewer: viewer, TeamName: "Alpha"},
		tree, peers, period.Windows(now), now)
	require.NoError(t, err)

	require.Len(t, comp.Members, 2)
	for _, m := range comp.Members {
		if m.User.ID == fresh.ID {
			assert.Equal(t, "Alpha", m.User.TeamName, "hierarchy-derived record must win")
		}
	}
}

func TestComposeSubteams(t *testing.T) {
	viewer := leaderUser("Viewer")
	a := advisorUser("A")
	b := leaderUser("B")
	c := advisorUser("C")

	tree := treeFor(viewer, []user.User{a, b}, map[uuid.UUID][]user.User{
		b.ID: {c},
	})

	repo := &fakeEntries{rows: []entry.DailyEntry{
		mkEntry(b.ID, now.AddDate(0, 0, -1), 2),
		mkEntry(c.ID, now.AddDate(0, 0, -1), 1),
	}}
	composer := rollup.NewComposer(rollup.NewAggregator(repo))

	comp, err := composer.Compose(context.Background(), rollup.Scope{Viewer: viewer, TeamName: "Alpha"},
		tree, nil, period.Windows(now), now)
	require.NoError(t, err)

	require.Len(t, comp.Subteams, 1, "one subteam per direct leader")
	st := comp.Subteams[0]
	assert.Equal(t, b.ID, st.Leader.ID)
	assert.Len(t, st.MemberIDs, 2, "leader plus descendant")
	assert.Equal(t, 3.0, st.Monthly[metric.FA].Actual)
}

func TestComposeDaySumsFromLatestEntries(t *testing.T) {
	viewer := leaderUser("Viewer")
	a := advisorUser("A")

	tree := treeFor(viewer, []user.User{a}, map[uuid.UUID][]user.User{})

	todayEntry := entry.DailyEntry{
		ID:       uuid.New(),
		UserID:   a.ID,
		Date:     period.Day(now),
		FA:       intPtr(4), // results achieved yesterday, reported today
		FATarget: intPtr(5), // today's plan
	}
	yesterdayEntry := entry.DailyEntry{
		ID:       uuid.New(),
		UserID:   a.ID,
		Date:     period.Day(now).AddDate(0, 0, -1),
		FA:       intPtr(9),
		FATarget: intPtr(6), // yesterday's plan
	}

	repo := &fakeEntries{rows: []entry.DailyEntry{todayEntry, yesterdayEntry}}
	composer := rollup.NewComposer(rollup.NewAggregator(repo))

	comp, err := composer.Compose(context.Background(), rollup.Scope{Viewer: viewer, TeamName: "Alpha"},
		tree, nil, period.Windows(now), now)
	require.NoError(t, err)

	assert.Equal(t, 5.0, comp.TodayGoals[metric.FA].Target)
	assert.Equal(t, 6.0, comp.YesterdayGoals[metric.FA].Target)
	// Yesterday's results come off the entry dated today, not the row
	// dated yesterday.
	assert.Equal(t, 4.0, comp.YesterdayResults[metric.FA].Actual)
}

func TestComposeAggregationFailureSurfaces(t *testing.T) {
	viewer := leaderUser("Viewer")
	tree := treeFor(viewer, nil, map[uuid.UUID][]user.User{})

	composer := rollup.NewComposer(rollup.NewAggregator(&fakeEntries{fail: true}))
	_, err := composer.Compose(context.Background(), rollup.Scope{Viewer: viewer, TeamName: "Alpha"},
		tree, nil, period.Windows(now), now)
	require.Error(t, err)
}

func TestComposeMemberTargets(t *testing.T) {
	viewer := leaderUser("Viewer")
	a := advisorUser("A")
	a.Targets = datatypesTargets(map[string]float64{"fa_weekly": 10, "fa_monthly": 40})

	tree := treeFor(viewer, []user.User{a}, map[uuid.UUID][]user.User{})
	repo := &fakeEntries{rows: []entry.DailyEntry{mkEntry(a.ID, now, 4)}}
	composer := rollup.NewComposer(rollup.NewAggregator(repo))

	comp, err := composer.Compose(context.Background(), rollup.Scope{Viewer: viewer, TeamName: "Alpha"},
		tree, nil, period.Windows(now), now)
	require.NoError(t, err)

	assert.Equal(t, metric.Total{Target: 10, Actual: 4}, comp.WeeklyTotals[metric.FA])
	assert.Equal(t, metric.Total{Target: 40, Actual: 4}, comp.MonthlyTotals[metric.FA])
}
