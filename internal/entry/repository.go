package entry

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jwehrle/salescockpit/internal/period"
)

type EntryRepository interface {
	Create(e *DailyEntry) error
	// InRange returns all entries of the given users whose date falls in
	// [from, to], both bounds inclusive.
	InRange(userIDs []uuid.UUID, from, to time.Time) ([]DailyEntry, error)
	// ByDate returns the entries of the given users dated exactly on day.
	ByDate(userIDs []uuid.UUID, day time.Time) ([]DailyEntry, error)
	// MostRecent returns each user's newest entry, keyed by user id.
	MostRecent(userIDs []uuid.UUID) (map[uuid.UUID]DailyEntry, error)
}

type entryRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) EntryRepository {
	return &entryRepository{db: db}
}

func (r *entryRepository) Create(e *DailyEntry) error {
	return r.db.Create(e).Error
}

func (r *entryRepository) InRange(userIDs []uuid.UUID, from, to time.Time) ([]DailyEntry, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var entries []DailyEntry
	if err := r.db.
		Where("user_id IN ?", userIDs).
		Where("date >= ? AND date <= ?", period.Day(from), period.Day(to)).
		Order("date ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *entryRepository) ByDate(userIDs []uuid.UUID, day time.Time) ([]DailyEntry, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var entries []DailyEntry
	if err := r.db.
		Where("user_id IN ?", userIDs).
		Where("date = ?", period.Day(day)).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *entryRepository) MostRecent(userIDs []uuid.UUID) (map[uuid.UUID]DailyEntry, error) {
	if len(userIDs) == 0 {
		return map[uuid.UUID]DailyEntry{}, nil
	}
	var entries []DailyEntry
	if err := r.db.
		Where("user_id IN ?", userIDs).
		Order("user_id, date DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	latest := make(map[uuid.UUID]DailyEntry, len(userIDs))
	for _, e := range entries {
		if _, ok := latest[e.UserID]; !ok {
			latest[e.UserID] = e
		}
	}
	return latest, nil
}
