package entry

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/jwehrle/salescockpit/internal/metric"
)

// DailyEntry is one advisor's log for a single calendar day, created once
// per day and read-only afterwards.
//
// The entry dated D carries two things: D's plan (the daily-target snapshot
// per KPI, plus todos) and the achieved counts the advisor reports while
// logging in, which belong to the previous working day. Rollups therefore
// read "yesterday results" from the entry dated today, never from a row
// dated yesterday.
type DailyEntry struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4()" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_entry_user_date" json:"user_id"`
	Date   time.Time `gorm:"type:date;uniqueIndex:idx_entry_user_date" json:"date"`

	// Achieved counts, one per KPI. Null means "not reported", which is
	// distinct from an explicit zero.
	FA               *int `json:"fa,omitempty"`
	EH               *int `json:"eh,omitempty"`
	NewAppointments  *int `json:"new_appointments,omitempty"`
	Recommendations  *int `json:"recommendations,omitempty"`
	TIVInvitations   *int `json:"tiv_invitations,omitempty"`
	TAAInvitations   *int `json:"taa_invitations,omitempty"`
	TGSRegistrations *int `json:"tgs_registrations,omitempty"`
	BAVChecks        *int `json:"bav_checks,omitempty"`

	// Daily-target snapshot taken when the entry is created, so later
	// target edits on the user never rewrite history.
	FATarget               *int `json:"fa_target,omitempty"`
	EHTarget               *int `json:"eh_target,omitempty"`
	NewAppointmentsTarget  *int `json:"new_appointments_target,omitempty"`
	RecommendationsTarget  *int `json:"recommendations_target,omitempty"`
	TIVInvitationsTarget   *int `json:"tiv_invitations_target,omitempty"`
	TAAInvitationsTarget   *int `json:"taa_invitations_target,omitempty"`
	TGSRegistrationsTarget *int `json:"tgs_registrations_target,omitempty"`
	BAVChecksTarget        *int `json:"bav_checks_target,omitempty"`

	Highlight string `json:"highlight"`
	Obstacle  string `json:"obstacle"`

	// Todos and TodosDone are index-aligned.
	Todos     datatypes.JSONSlice[string] `json:"todos"`
	TodosDone datatypes.JSONSlice[bool]   `json:"todos_done"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Count returns the achieved count for one KPI. The bool is false when the
// advisor did not report that KPI; callers decide where null coalesces to
// zero, not this accessor.
func (e *DailyEntry) Count(k metric.Key) (int, bool) {
	return deref(e.counterField(k))
}

// DailyTarget returns the per-entry target snapshot for one KPI.
func (e *DailyEntry) DailyTarget(k metric.Key) (int, bool) {
	return deref(e.targetField(k))
}

// Counter adapts the entry to the shared metric fold.
func (e *DailyEntry) Counter() metric.Counter {
	return e.Count
}

// TargetCounter folds the target snapshots instead of the achieved counts.
func (e *DailyEntry) TargetCounter() metric.Counter {
	return e.DailyTarget
}

func (e *DailyEntry) counterField(k metric.Key) *int {
	switch k {
	case metric.FA:
		return e.FA
	case metric.EH:
		return e.EH
	case metric.NewAppointments:
		return e.NewAppointments
	case metric.Recommendations:
		return e.Recommendations
	case metric.TIVInvitations:
		return e.TIVInvitations
	case metric.TAAInvitations:
		return e.TAAInvitations
	case metric.TGSRegistrations:
		return e.TGSRegistrations
	case metric.BAVChecks:
		return e.BAVChecks
	}
	return nil
}

func (e *DailyEntry) targetField(k metric.Key) *int {
	switch k {
	case metric.FA:
		return e.FATarget
	case metric.EH:
		return e.EHTarget
	case metric.NewAppointments:
		return e.NewAppointmentsTarget
	case metric.Recommendations:
		return e.RecommendationsTarget
	case metric.TIVInvitations:
		return e.TIVInvitationsTarget
	case metric.TAAInvitations:
		return e.TAAInvitationsTarget
	case metric.TGSRegistrations:
		return e.TGSRegistrationsTarget
	case metric.BAVChecks:
		return e.BAVChecksTarget
	}
	return nil
}

func deref(p *int) (int, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}
