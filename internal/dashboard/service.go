package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwehrle/salescockpit/internal/auth"
	"github.com/jwehrle/salescockpit/internal/config"
	"github.com/jwehrle/salescockpit/internal/hierarchy"
	"github.com/jwehrle/salescockpit/internal/period"
	"github.com/jwehrle/salescockpit/internal/rollup"
	"github.com/jwehrle/salescockpit/internal/team"
	"github.com/jwehrle/salescockpit/internal/user"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrTargetNotFound = errors.New("target user not found")
	ErrBadTimeframe   = errors.New("timeframe must be weekly or monthly")
)

type DashboardService interface {
	Overview(ctx context.Context, q Query) (*Response, error)
}

type dashboardService struct {
	users    user.UserRepository
	teams    team.TeamRepository
	resolver *hierarchy.Resolver
	composer *rollup.Composer
	now      func() time.Time
}

func NewService(users user.UserRepository, teams team.TeamRepository, resolver *hierarchy.Resolver, composer *rollup.Composer) DashboardService {
	return &dashboardService{
		users:    users,
		teams:    teams,
		resolver: resolver,
		composer: composer,
		now:      config.Now,
	}
}

// NewServiceWithClock is used by tests to pin "now".
func NewServiceWithClock(users user.UserRepository, teams team.TeamRepository, resolver *hierarchy.Resolver, composer *rollup.Composer, now func() time.Time) DashboardService {
	return &dashboardService{
		users:    users,
		teams:    teams,
		resolver: resolver,
		composer: composer,
		now:      now,
	}
}

// Overview computes the rolled-up dashboard for the requester's scope, an
// explicit target user, or a named team. The whole computation reads an
// immutable snapshot within this one request and caches nothing.
func (s *dashboardService) Overview(ctx context.Context, q Query) (*Response, error) {
	log := config.WithContext(ctx)

	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.Warn("Dashboard requested without authentication")
		return nil, ErrUnauthorized
	}

	if q.Timeframe == "" {
		q.Timeframe = period.Weekly
	}
	if !q.Timeframe.IsValid() {
		return nil, ErrBadTimeframe
	}

	viewer, err := s.users.FindByID(uuid.MustParse(claims.UserID))
	if err != nil {
		return nil, fmt.Errorf("load requester: %w", err)
	}
	if viewer == nil {
		return nil, ErrTargetNotFound
	}

	scopeUser, teamName, err := s.resolveScope(ctx, viewer, q)
	if err != nil {
		return nil, err
	}

	now := s.now()
	windows := period.Windows(now)

	tree, err := s.resolver.Resolve(ctx, scopeUser.ID)
	if err != nil {
		log.WithError(err).Error("Hierarchy resolution failed")
		return nil, err
	}

	peers, err := s.users.FindByTeamName(teamName)
	if err != nil {
		log.WithError(err).Error("Team-name member lookup failed")
		return nil, fmt.Errorf("load team members: %w", err)
	}

	comp, err := s.composer.Compose(ctx, rollup.Scope{Viewer: *scopeUser, TeamName: teamName},
		tree, peers, windows, now)
	if err != nil {
		log.WithError(err).Error("Rollup composition failed")
		return nil, err
	}

	return s.assemble(q.Timeframe, windows, now, scopeUser, teamName, comp), nil
}

// resolveScope applies the selector overrides. An explicit target user that
// does not exist is a client error; a team-name override that cannot be
// resolved falls back to the requester's own scope.
func (s *dashboardService) resolveScope(ctx context.Context, viewer *user.User, q Query) (*user.User, string, error) {
	log := config.WithContext(ctx)

	scopeUser := viewer
	if q.TargetUserID != nil {
		target, err := s.users.FindByID(*q.TargetUserID)
		if err != nil {
			return nil, "", fmt.Errorf("load target user: %w", err)
		}
		if target == nil {
			return nil, "", ErrTargetNotFound
		}
		scopeUser = target
	}
	teamName := scopeUser.TeamName

	if q.TeamName != "" && q.TeamName != teamName {
		leader, err := s.teamLeader(q.TeamName)
		if err != nil {
			return nil, "", err
		}
		if leader != nil {
			scopeUser = leader
			teamName = q.TeamName
		} else {
			log.WithField("team", q.TeamName).Info("Team override not resolvable, falling back to requester scope")
		}
	}

	return scopeUser, teamName, nil
}

// teamLeader resolves a foreign team to its leader, who anchors the
// hierarchy walk for that scope. Returns nil when the team or its leader
// cannot be found.
func (s *dashboardService) teamLeader(name string) (*user.User, error) {
	t, err := s.teams.FindByName(name)
	if err != nil {
		return nil, fmt.Errorf("load team: %w", err)
	}
	if t == nil {
		return nil, nil
	}

	members, err := s.users.FindByTeamName(name)
	if err != nil {
		return nil, fmt.Errorf("load team members: %w", err)
	}
	for i := range members {
		if members[i].IsTeamLeader {
			return &members[i], nil
		}
	}
	return nil, nil
}

func (s *dashboardService) assemble(timeframe period.Kind, windows period.Set, now time.Time, scopeUser *user.User, teamName string, comp *rollup.Composition) *Response {
	window := windows.Weekly
	selected := comp.WeeklyTotals
	if timeframe == period.Monthly {
		window = windows.Monthly
		selected = comp.MonthlyTotals
	}

	resp := &Response{
		Timeframe: timeframe,
		Windows:   windows,
		Scope: ScopeResponse{
			UserID:       scopeUser.ID,
			Name:         scopeUser.Name,
			Role:         scopeUser.Role,
			TeamName:     teamName,
			IsTeamLeader: scopeUser.IsTeamLeader,
		},

		WeeklyProgress:   flatten(comp.WeeklyTotals, "weekly"),
		MonthlyProgress:  flatten(comp.MonthlyTotals, "monthly"),
		YesterdayGoals:   flatten(comp.YesterdayGoals, "daily"),
		YesterdayResults: flatten(comp.YesterdayResults, "daily"),
		TodayGoals:       flatten(comp.TodayGoals, "daily"),
		TodayActuals:     flatten(comp.TodayActuals, "daily"),

		Evaluation: evaluate(selected, window, now),
	}

	for _, m := range comp.Members {
		resp.Members = append(resp.Members, toMemberResponse(m, window, now, timeframe))
	}
	for _, st := range comp.Subteams {
		resp.Subteams = append(resp.Subteams, toSubteamResponse(st, window, now, timeframe))
	}
	return resp
}
