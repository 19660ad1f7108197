package team

import (
	"time"

	"github.com/google/uuid"
)

// Team is a node in the team forest. Level is the depth from the root,
// root = 1; a child's level is always parent.Level + 1.
type Team struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4()" json:"id"`
	Name         string     `gorm:"index" json:"name"`
	ParentTeamID *uuid.UUID `gorm:"index" json:"parent_team_id,omitempty"`
	Level        int        `json:"level"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
