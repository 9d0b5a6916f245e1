package dto

import (
	"time"

	"github.com/teambudget/team_budget_app/internal/core/domain"
)

// --- Team DTOs ---

// CreateTeamRequest defines data for creating a new team.
type CreateTeamRequest struct {
	Name string `json:"name" binding:"required,max=128"`
}

// UpdateTeamRequest defines data for renaming a team.
type UpdateTeamRequest struct {
	Name string `json:"name" binding:"required,max=128"`
}

// TeamResponse defines data returned for a team.
type TeamResponse struct {
	TeamID    string     `json:"teamID"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"createdAt"`
	CreatedBy string     `json:"createdBy"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// ToTeamResponse converts domain.Team to DTO.
func ToTeamResponse(t *domain.Team) TeamResponse {
	return TeamResponse{
		TeamID:    t.TeamID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
		CreatedBy: t.CreatedBy,
		DeletedAt: t.DeletedAt,
	}
}

// ListTeamsResponse wraps a list of teams.
type ListTeamsResponse struct {
	Teams []TeamResponse `json:"teams"`
}

// ToListTeamsResponse converts a slice of domain.Team to DTO.
func ToListTeamsResponse(ts []domain.Team) ListTeamsResponse {
	list := make([]TeamResponse, len(ts))
	for i := range ts {
		list[i] = ToTeamResponse(&ts[i])
	}
	return ListTeamsResponse{Teams: list}
}

// --- Team Membership DTOs ---

// AddTeamMemberRequest defines data for adding a user to a team.
type AddTeamMemberRequest struct {
	UserID string          `json:"userID" binding:"required"`
	Role   domain.TeamRole `json:"role" binding:"required"`
}

// ChangeTeamMemberRoleRequest defines data for changing a member's role.
type ChangeTeamMemberRoleRequest struct {
	Role domain.TeamRole `json:"role" binding:"required"`
}

// TeamMemberResponse defines data returned for a team membership.
type TeamMemberResponse struct {
	UserID   string          `json:"userID"`
	Username string          `json:"username"`
	Role     domain.TeamRole `json:"role"`
	JoinedAt time.Time       `json:"joinedAt"`
}

// ListTeamMembersResponse wraps the membership list of a team.
type ListTeamMembersResponse struct {
	Members []TeamMemberResponse `json:"members"`
}

// ToListTeamMembersResponse converts a slice of domain.TeamMember to DTO.
func ToListTeamMembersResponse(ms []domain.TeamMember) ListTeamMembersResponse {
	list := make([]TeamMemberResponse, len(ms))
	for i, m := range ms {
		list[i] = TeamMemberResponse{
			UserID:   m.UserID,
			Username: m.Username,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		}
	}
	return ListTeamMembersResponse{Members: list}
}
