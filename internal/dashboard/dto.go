package dashboard

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwehrle/salescockpit/internal/entry"
	"github.com/jwehrle/salescockpit/internal/metric"
	"github.com/jwehrle/salescockpit/internal/period"
	"github.com/jwehrle/salescockpit/internal/progress"
	"github.com/jwehrle/salescockpit/internal/rollup"
	"github.com/jwehrle/salescockpit/internal/user"
)

// Query carries the request-level selectors.
type Query struct {
	Timeframe    period.Kind
	TargetUserID *uuid.UUID
	TeamName     string
}

// FlatTotals is the wire shape of one totals block: a flat map of
// "<metric>_<scope>_target" / "<metric>_actual" numbers.
type FlatTotals map[string]float64

// Evaluation maps each metric to its progress result for the selected
// timeframe.
type Evaluation map[string]progress.Result

type ScopeResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	Role         user.Role `json:"role"`
	TeamName     string    `json:"team_name"`
	IsTeamLeader bool      `json:"is_team_leader"`
}

type MemberResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Role         user.Role `json:"role"`
	TeamName     string    `json:"team_name"`
	IsTeamLeader bool      `json:"is_team_leader"`

	WeeklyProgress   FlatTotals `json:"weekly_progress"`
	MonthlyProgress  FlatTotals `json:"monthly_progress"`
	YesterdayGoals   FlatTotals `json:"yesterday_goals"`
	YesterdayResults FlatTotals `json:"yesterday_results"`
	TodayGoals       FlatTotals `json:"today_goals"`
	TodayActuals     FlatTotals `json:"today_actuals"`

	Evaluation Evaluation `json:"evaluation"`

	Highlight string   `json:"highlight,omitempty"`
	Obstacle  string   `json:"obstacle,omitempty"`
	Todos     []string `json:"todos,omitempty"`
	TodosDone []bool   `json:"todos_done,omitempty"`
}

type SubteamResponse struct {
	LeaderID        uuid.UUID   `json:"leader_id"`
	LeaderName      string      `json:"leader_name"`
	MemberIDs       []uuid.UUID `json:"member_ids"`
	WeeklyProgress  FlatTotals  `json:"weekly_progress"`
	MonthlyProgress FlatTotals  `json:"monthly_progress"`
	Evaluation      Evaluation  `json:"evaluation"`
}

type Response struct {
	Timeframe period.Kind   `json:"timeframe"`
	Windows   period.Set    `json:"windows"`
	Scope     ScopeResponse `json:"scope"`

	WeeklyProgress   FlatTotals `json:"weekly_progress"`
	MonthlyProgress  FlatTotals `json:"monthly_progress"`
	YesterdayGoals   FlatTotals `json:"yesterday_goals"`
	YesterdayResults FlatTotals `json:"yesterday_results"`
	TodayGoals       FlatTotals `json:"today_goals"`
	TodayActuals     FlatTotals `json:"today_actuals"`

	Evaluation Evaluation `json:"evaluation"`

	Members  []MemberResponse  `json:"members"`
	Subteams []SubteamResponse `json:"subteams"`
}

// flatten renders a totals map with the period-scoped target suffix, e.g.
// "fa_weekly_target" next to "fa_actual".
func flatten(totals metric.Totals, scope string) FlatTotals {
	flat := make(FlatTotals, len(totals)*2)
	for _, k := range metric.Keys() {
		t := totals[k]
		flat[fmt.Sprintf("%s_%s_target", k, scope)] = t.Target
		flat[fmt.Sprintf("%s_actual", k)] = t.Actual
	}
	return flat
}

// evaluate runs the progress math for every metric of one totals map,
// projecting against the given window.
func evaluate(totals metric.Totals, window period.Window, now time.Time) Evaluation {
	ev := make(Evaluation, len(totals))
	for _, k := range metric.Keys() {
		t := totals[k]
		ev[string(k)] = progress.EvaluateWithProjection(t.Actual, t.Target, window, now)
	}
	return ev
}

// entryGoals flattens one entry's daily-target snapshot; a nil entry yields
// all-zero values, the legitimate "no entry for this date" state.
func entryGoals(e *entry.DailyEntry) FlatTotals {
	flat := make(FlatTotals)
	for _, k := range metric.Keys() {
		v := 0
		if e != nil {
			if t, ok := e.DailyTarget(k); ok {
				v = t
			}
		}
		flat[fmt.Sprintf("%s_daily_target", k)] = float64(v)
	}
	return flat
}

// entryActuals flattens one entry's achieved counts.
func entryActuals(e *entry.DailyEntry) FlatTotals {
	flat := make(FlatTotals)
	for _, k := range metric.Keys() {
		v := 0
		if e != nil {
			if c, ok := e.Count(k); ok {
				v = c
			}
		}
		flat[fmt.Sprintf("%s_actual", k)] = float64(v)
	}
	return flat
}

func toMemberResponse(m rollup.MemberView, window period.Window, now time.Time, timeframe period.Kind) MemberResponse {
	selected := m.Weekly
	if timeframe == period.Monthly {
		selected = m.Monthly
	}

	resp := MemberResponse{
		ID:           m.User.ID,
		Name:         m.User.Name,
		Role:         m.User.Role,
		TeamName:     m.User.TeamName,
		IsTeamLeader: m.User.IsTeamLeader,

		WeeklyProgress:   flatten(m.Weekly, "weekly"),
		MonthlyProgress:  flatten(m.Monthly, "monthly"),
		YesterdayGoals:   entryGoals(m.Latest.Yesterday),
		YesterdayResults: entryActuals(m.Latest.Today),
		TodayGoals:       entryGoals(m.Latest.Today),
		TodayActuals:     entryActuals(m.Latest.Today),

		Evaluation: evaluate(selected, window, now),
	}

	if today := m.Latest.Today; today != nil {
		resp.Highlight = today.Highlight
		resp.Obstacle = today.Obstacle
		resp.Todos = []string(today.Todos)
		resp.TodosDone = []bool(today.TodosDone)
	}
	return resp
}

func toSubteamResponse(st rollup.SubteamView, window period.Window, now time.Time, timeframe period.Kind) SubteamResponse {
	selected := st.Weekly
	if timeframe == period.Monthly {
		selected = st.Monthly
	}
	return SubteamResponse{
		LeaderID:        st.Leader.ID,
		LeaderName:      st.Leader.Name,
		MemberIDs:       st.MemberIDs,
		WeeklyProgress:  flatten(st.Weekly, "weekly"),
		MonthlyProgress: flatten(st.Monthly, "monthly"),
		Evaluation:      evaluate(selected, window, now),
	}
}
