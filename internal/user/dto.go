package user

import (
	"github.com/google/uuid"
)

type GoogleLoginDTO struct {
	Code string `json:"code"`
}

type LoginResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}

type UserResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         Role       `json:"role"`
	TeamID       *uuid.UUID `json:"team_id,omitempty"`
	TeamName     string     `json:"team_name"`
	IsTeamLeader bool       `json:"is_team_leader"`
	Targets      TargetMap  `json:"targets"`
}

func ToResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		TeamID:       u.TeamID,
		TeamName:     u.TeamName,
		IsTeamLeader: u.IsTeamLeader,
		Targets:      u.Targets.Data(),
	}
}
