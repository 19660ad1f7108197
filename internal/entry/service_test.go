package entry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/jwehrle/salescockpit/internal/auth"
	"github.com/jwehrle/salescockpit/internal/entry"
	"github.com/jwehrle/salescockpit/internal/metric"
	"github.com/jwehrle/salescockpit/internal/period"
	"github.com/jwehrle/salescockpit/internal/user"
)

type memEntries struct {
	rows []entry.DailyEntry
}

func (m *memEntries) Create(e *entry.DailyEntry) error {
	m.rows = append(m.rows, *e)
	return nil
}

func (m *memEntries) InRange(userIDs []uuid.UUID, from, to time.Time) ([]entry.DailyEntry, error) {
	return nil, nil
}

func (m *memEntries) ByDate(userIDs []uuid.UUID, day time.Time) ([]entry.DailyEntry, error) {
	ids := map[uuid.UUID]bool{}
	for _, id := range userIDs {
		ids[id] = true
	}
	var out []entry.DailyEntry
	for _, e := range m.rows {
		if ids[e.UserID] && period.SameDay(e.Date, day) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEntries) MostRecent(userIDs []uuid.UUID) (map[uuid.UUID]entry.DailyEntry, error) {
	return nil, nil
}

type memUsers struct {
	users map[uuid.UUID]user.User
}

func (m *memUsers) FindByID(id uuid.UUID) (*user.User, error) {
	if u, ok := m.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (m *memUsers) FindByEmail(email string) (*user.User, error)               { return nil, nil }
func (m *memUsers) FindByParentLeader(parentID uuid.UUID) ([]user.User, error) { return nil, nil }
func (m *memUsers) FindByTeamName(name string) ([]user.User, error)            { return nil, nil }
func (m *memUsers) Upsert(u *user.User) error                                  { return errors.New("read only") }

func intPtr(v int) *int { return &v }

func newAdvisor(targets map[string]float64) user.User {
	return user.User{
		ID:      uuid.New(),
		Name:    "Advisor",
		Role:    user.RoleAdvisor,
		Targets: datatypes.NewJSONType(user.TargetMap(targets)),
	}
}

func TestCreateToday(t *testing.T) {
	advisor := newAdvisor(map[string]float64{"fa_daily": 5})
	repo := &memEntries{}
	svc := entry.NewService(repo, &memUsers{users: map[uuid.UUID]user.User{advisor.ID: advisor}})
	ctx := auth.WithClaims(context.Background(), &auth.UserClaims{UserID: advisor.ID.String(), Role: "ADVISOR"})

	t.Run("RequiresAuthentication", func(t *testing.T) {
		_, err := svc.CreateToday(context.Background(), entry.CreateEntryDTO{})
		require.ErrorIs(t, err, entry.ErrUnauthorized)
	})

	t.Run("SnapshotsDailyTargets", func(t *testing.T) {
		e, err := svc.CreateToday(ctx, entry.CreateEntryDTO{
			FA:    intPtr(3),
			Todos: []string{"call back Meyer"},
		})
		require.NoError(t, err)

		v, ok := e.Count(metric.FA)
		require.True(t, ok)
		assert.Equal(t, 3, v)

		target, ok := e.DailyTarget(metric.FA)
		require.True(t, ok)
		assert.Equal(t, 5, target)

		// No eh target was configured, so the snapshot stays null.
		_, ok = e.DailyTarget(metric.EH)
		assert.False(t, ok)
	})

	t.Run("OncePerDay", func(t *testing.T) {
		_, err := svc.CreateToday(ctx, entry.CreateEntryDTO{})
		require.ErrorIs(t, err, entry.ErrAlreadyLogged)
	})
}

func TestCreateTodayValidation(t *testing.T) {
	advisor := newAdvisor(nil)
	svc := entry.NewService(&memEntries{}, &memUsers{users: map[uuid.UUID]user.User{advisor.ID: advisor}})
	ctx := auth.WithClaims(context.Background(), &auth.UserClaims{UserID: advisor.ID.String(), Role: "ADVISOR"})

	t.Run("NegativeCounter", func(t *testing.T) {
		_, err := svc.CreateToday(ctx, entry.CreateEntryDTO{FA: intPtr(-1)})
		require.ErrorIs(t, err, entry.ErrNegativeCounter)
	})

	t.Run("MisalignedTodos", func(t *testing.T) {
		_, err := svc.CreateToday(ctx, entry.CreateEntryDTO{
			Todos:     []string{"one", "two"},
			TodosDone: []bool{true},
		})
		require.ErrorIs(t, err, entry.ErrTodosMisaligned)
	})
}

func TestToday(t *testing.T) {
	advisor := newAdvisor(nil)
	repo := &memEntries{}
	svc := entry.NewService(repo, &memUsers{users: map[uuid.UUID]user.User{advisor.ID: advisor}})
	ctx := auth.WithClaims(context.Background(), &auth.UserClaims{UserID: advisor.ID.String(), Role: "ADVISOR"})

	t.Run("NoEntryYet", func(t *testing.T) {
		_, err := svc.Today(ctx)
		require.ErrorIs(t, err, entry.ErrNoEntryToday)
	})

	t.Run("ReturnsTodaysEntry", func(t *testing.T) {
		created, err := svc.CreateToday(ctx, entry.CreateEntryDTO{EH: intPtr(2)})
		require.NoError(t, err)

		got, err := svc.Today(ctx)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	})
}
