package user

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/jwehrle/salescockpit/internal/metric"
)

// TargetMap holds personal numeric targets keyed "<metric>_<scope>",
// e.g. "fa_weekly" or "bav_checks_monthly".
type TargetMap map[string]float64

// User is an advisor or leader in the reporting tree. ParentLeaderID is the
// reports-to edge; the edges form a forest (at most one parent, no cycles).
type User struct {
	ID             uuid.UUID                       `gorm:"type:uuid;default:uuid_generate_v4()" json:"id"`
	Name           string                          `json:"name"`
	Email          string                          `gorm:"uniqueIndex" json:"email"`
	Role           Role                            `json:"role"`
	TeamID         *uuid.UUID                      `gorm:"index" json:"team_id,omitempty"`
	TeamName       string                          `gorm:"index" json:"team_name"`
	ParentLeaderID *uuid.UUID                      `gorm:"index" json:"parent_leader_id,omitempty"`
	IsTeamLeader   bool                            `json:"is_team_leader"`
	Targets        datatypes.JSONType[TargetMap]   `json:"targets"`
	CreatedAt      time.Time                       `json:"created_at"`
	UpdatedAt      time.Time                       `json:"updated_at"`
}

// Target looks up one personal target. The bool reports whether a target is
// set at all; "no target" is a legitimate state and must not read as zero
// until the progress boundary.
func (u *User) Target(k metric.Key, scope TargetScope) (float64, bool) {
	targets := u.Targets.Data()
	if targets == nil {
		return 0, false
	}
	v, ok := targets[fmt.Sprintf("%s_%s", k, scope)]
	return v, ok
}

// TargetTotals collects the user's targets for one scope across all eight
// KPIs; unset targets stay zero with Actual untouched.
func (u *User) TargetTotals(scope TargetScope) metric.Totals {
	totals := metric.NewTotals()
	for _, k := range metric.Keys() {
		if v, ok := u.Target(k, scope); ok {
			totals.Add(k, v, 0)
		}
	}
	return totals
}
