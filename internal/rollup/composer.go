package rollup

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwehrle/salescockpit/internal/hierarchy"
	"github.com/jwehrle/salescockpit/internal/metric"
	"github.com/jwehrle/salescockpit/internal/period"
	"github.com/jwehrle/salescockpit/internal/user"
)

// MemberView is one user inside a scope with their personal sums.
type MemberView struct {
	User    user.User     `json:"user"`
	Weekly  metric.Totals `json:"weekly"`
	Monthly metric.Totals `json:"monthly"`
	Latest  Latest        `json:"latest"`
}

// SubteamView groups one direct leader with everyone below them.
type SubteamView struct {
	Leader    user.User     `json:"leader"`
	MemberIDs []uuid.UUID   `json:"member_ids"`
	Weekly    metric.Totals `json:"weekly"`
	Monthly   metric.Totals `json:"monthly"`
}

// Composition is the fully rolled-up scope.
type Composition struct {
	Members  []MemberView
	Subteams []SubteamView

	WeeklyTotals  metric.Totals
	MonthlyTotals metric.Totals

	// Goal/result sums taken from each member's own today/yesterday entry,
	// never from a window sum. YesterdayResults reads the counts off the
	// entry dated today: the advisor reports the previous day's outcomes
	// while logging today's plan.
	TodayGoals       metric.Totals
	TodayActuals     metric.Totals
	YesterdayGoals   metric.Totals
	YesterdayResults metric.Totals
}

// Scope names whose numbers are being rolled up: the viewing user (or the
// leader of a foreign team being viewed) and the team name peers are
// matched on.
type Scope struct {
	Viewer   user.User
	TeamName string
}

type Composer struct {
	agg *Aggregator
}

func NewComposer(agg *Aggregator) *Composer {
	return &Composer{agg: agg}
}

// Compose builds the member list, subteam views and scope totals.
//
// The candidate set is the union of the same-team-name peers, the resolved
// hierarchy below the scope's viewer, and the viewer itself. Membership is
// strictly deduplicated by user id: team-name matching and reporting edges
// overlap, and a user reachable both ways must count exactly once. When the
// two sources disagree on field values the hierarchy-derived record wins;
// the team-name match only discovers ids.
func (c *Composer) Compose(ctx context.Context, scope Scope, tree *hierarchy.Tree, peers []user.User, windows period.Set, now time.Time) (*Composition, error) {
	members := collectMembers(scope, tree, peers)

	ids := make([]uuid.UUID, len(members))
	for i := range members {
		ids[i] = members[i].ID
	}

	weeklySums, err := c.agg.SumsByUser(ctx, ids, windows.Weekly)
	if err != nil {
		return nil, err
	}
	monthlySums, err := c.agg.SumsByUser(ctx, ids, windows.Monthly)
	if err != nil {
		return nil, err
	}
	latest, err := c.agg.LatestEntries(ctx, ids, now)
	if err != nil {
		return nil, err
	}

	comp := &Composition{
		WeeklyTotals:     metric.NewTotals(),
		MonthlyTotals:    metric.NewTotals(),
		TodayGoals:       metric.NewTotals(),
		TodayActuals:     metric.NewTotals(),
		YesterdayGoals:   metric.NewTotals(),
		YesterdayResults: metric.NewTotals(),
	}

	memberViews := make(map[uuid.UUID]MemberView, len(members))
	for _, m := range members {
		view := MemberView{
			User:    m,
			Weekly:  memberTotals(&m, user.TargetWeekly, weeklySums[m.ID]),
			Monthly: memberTotals(&m, user.TargetMonthly, monthlySums[m.ID]),
			Latest:  latest[m.ID],
		}
		memberViews[m.ID] = view
		comp.Members = append(comp.Members, view)

		comp.WeeklyTotals.Merge(view.Weekly)
		comp.MonthlyTotals.Merge(view.Monthly)
		addDaySums(comp, view.Latest)
	}

	for _, leader := range tree.DirectLeaders {
		comp.Subteams = append(comp.Subteams, subteamView(leader, tree, memberViews))
	}

	return comp, nil
}

// collectMembers unions the three membership sources and dedupes by id.
func collectMembers(scope Scope, tree *hierarchy.Tree, peers []user.User) []user.User {
	byID := make(map[uuid.UUID]user.User)

	// Team-name matches first: they only discover ids and are overwritten
	// by anything more authoritative.
	for _, p := range peers {
		byID[p.ID] = p
	}

	flat := tree.Flatten()
	for _, u := range flat {
		byID[u.ID] = u
	}
	byID[scope.Viewer.ID] = scope.Viewer

	// Stable order: viewer, hierarchy, then remaining peers.
	seen := make(map[uuid.UUID]bool, len(byID))
	out := make([]user.User, 0, len(byID))
	add := func(id uuid.UUID) {
		if seen[id] {
			return
		}
		seen[id] = true
		out = append(out, byID[id])
	}

	add(scope.Viewer.ID)
	for _, u := range flat {
		add(u.ID)
	}
	for _, p := range peers {
		add(p.ID)
	}
	return out
}

// memberTotals pairs a member's period targets with their summed actuals.
func memberTotals(u *user.User, scopeKind user.TargetScope, sums map[metric.Key]int) metric.Totals {
	totals := u.TargetTotals(scopeKind)
	for _, k := range metric.Keys() {
		totals.Add(k, 0, float64(sums[k]))
	}
	return totals
}

// addDaySums folds one member's today/yesterday pair into the scope-level
// goal and result sums.
func addDaySums(comp *Composition, l Latest) {
	for _, k := range metric.Keys() {
		if l.Today != nil {
			if v, ok := l.Today.DailyTarget(k); ok {
				comp.TodayGoals.Add(k, float64(v), 0)
			}
			if v, ok := l.Today.Count(k); ok {
				comp.TodayActuals.Add(k, 0, float64(v))
				comp.YesterdayResults.Add(k, 0, float64(v))
			}
		}
		if l.Yesterday != nil {
			if v, ok := l.Yesterday.DailyTarget(k); ok {
				comp.YesterdayGoals.Add(k, float64(v), 0)
			}
		}
	}
}

func subteamView(leader user.User, tree *hierarchy.Tree, views map[uuid.UUID]MemberView) SubteamView {
	st := SubteamView{
		Leader:  leader,
		Weekly:  metric.NewTotals(),
		Monthly: metric.NewTotals(),
	}

	seen := make(map[uuid.UUID]bool)
	add := func(id uuid.UUID) {
		if seen[id] {
			return
		}
		seen[id] = true
		if view, ok := views[id]; ok {
			st.MemberIDs = append(st.MemberIDs, id)
			st.Weekly.Merge(view.Weekly)
			st.Monthly.Merge(view.Monthly)
		}
	}

	add(leader.ID)
	for _, u := range tree.DescendantsByLeader[leader.ID] {
		add(u.ID)
	}
	return st
}
