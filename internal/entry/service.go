package entry

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/jwehrle/salescockpit/internal/auth"
	"github.com/jwehrle/salescockpit/internal/config"
	"github.com/jwehrle/salescockpit/internal/metric"
	"github.com/jwehrle/salescockpit/internal/period"
	"github.com/jwehrle/salescockpit/internal/user"
)

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrAlreadyLogged   = errors.New("entry for today already exists")
	ErrNoEntryToday    = errors.New("no entry for today")
	ErrNegativeCounter = errors.New("counters must be non-negative")
	ErrTodosMisaligned = errors.New("todos and completion flags must align")
)

type EntryService interface {
	CreateToday(ctx context.Context, dto CreateEntryDTO) (*DailyEntry, error)
	Today(ctx context.Context) (*DailyEntry, error)
}

type entryService struct {
	repo     EntryRepository
	userRepo user.UserRepository
}

func NewService(repo EntryRepository, userRepo user.UserRepository) EntryService {
	return &entryService{repo: repo, userRepo: userRepo}
}

// CreateToday records the advisor's daily log: the achieved counts they
// report for the previous working day plus today's plan. One entry per day.
func (s *entryService) CreateToday(ctx context.Context, dto CreateEntryDTO) (*DailyEntry, error) {
	log := config.WithContext(ctx)

	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.Warn("Attempt to log a daily entry without authentication")
		return nil, ErrUnauthorized
	}
	userID := uuid.MustParse(claims.UserID)

	if err := validate(dto); err != nil {
		return nil, err
	}

	today := period.Day(config.Now())
	existing, err := s.repo.ByDate([]uuid.UUID{userID}, today)
	if err != nil {
		log.WithError(err).Error("Failed to check for an existing entry")
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrAlreadyLogged
	}

	e := &DailyEntry{
		ID:               uuid.New(),
		UserID:           userID,
		Date:             today,
		FA:               dto.FA,
		EH:               dto.EH,
		NewAppointments:  dto.NewAppointments,
		Recommendations:  dto.Recommendations,
		TIVInvitations:   dto.TIVInvitations,
		TAAInvitations:   dto.TAAInvitations,
		TGSRegistrations: dto.TGSRegistrations,
		BAVChecks:        dto.BAVChecks,
		Highlight:        dto.Highlight,
		Obstacle:         dto.Obstacle,
		Todos:            datatypes.NewJSONSlice(dto.Todos),
		TodosDone:        datatypes.NewJSONSlice(dto.TodosDone),
	}

	s.snapshotTargets(ctx, userID, e)

	if err := s.repo.Create(e); err != nil {
		log.WithError(err).Error("Failed to create daily entry")
		return nil, err
	}

	log.WithField("entry_id", e.ID).Info("Daily entry logged")
	return e, nil
}

func (s *entryService) Today(ctx context.Context) (*DailyEntry, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return nil, ErrUnauthorized
	}
	userID := uuid.MustParse(claims.UserID)

	entries, err := s.repo.ByDate([]uuid.UUID{userID}, config.Now())
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoEntryToday
	}
	return &entries[0], nil
}

// snapshotTargets freezes the user's current daily targets onto the entry.
// A missing user or unset target leaves the snapshot null, not zero.
func (s *entryService) snapshotTargets(ctx context.Context, userID uuid.UUID, e *DailyEntry) {
	log := config.WithContext(ctx)

	u, err := s.userRepo.FindByID(userID)
	if err != nil || u == nil {
		if err != nil {
			log.WithError(err).Warn("Could not load user for target snapshot")
		}
		return
	}

	set := func(dst **int, k metric.Key) {
		if v, ok := u.Target(k, user.TargetDaily); ok {
			n := int(v)
			*dst = &n
		}
	}
	set(&e.FATarget, metric.FA)
	set(&e.EHTarget, metric.EH)
	set(&e.NewAppointmentsTarget, metric.NewAppointments)
	set(&e.RecommendationsTarget, metric.Recommendations)
	set(&e.TIVInvitationsTarget, metric.TIVInvitations)
	set(&e.TAAInvitationsTarget, metric.TAAInvitations)
	set(&e.TGSRegistrationsTarget, metric.TGSRegistrations)
	set(&e.BAVChecksTarget, metric.BAVChecks)
}

func validate(dto CreateEntryDTO) error {
	for _, v := range []*int{
		dto.FA, dto.EH, dto.NewAppointments, dto.Recommendations,
		dto.TIVInvitations, dto.TAAInvitations, dto.TGSRegistrations, dto.BAVChecks,
	} {
		if v != nil && *v < 0 {
			return ErrNegativeCounter
		}
	}
	if len(dto.TodosDone) > 0 && len(dto.TodosDone) != len(dto.Todos) {
		return ErrTodosMisaligned
	}
	return nil
}
