package domain

import "time"

// Team is the top-level tenant. It owns books and user memberships.
type Team struct {
	TeamID string `json:"teamID" db:"team_id"` // Primary Key (UUID)
	Name   string `json:"name" db:"name"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"` // Soft delete marker
}

// IsDeleted reports whether the team is soft-deleted.
func (t *Team) IsDeleted() bool {
	return t.DeletedAt != nil
}

// TeamRole defines the possible roles a user can have within a team,
// ordered by privilege: admin > collaborator > viewer.
type TeamRole string

const (
	RoleAdmin        TeamRole = "ADMIN"
	RoleCollaborator TeamRole = "COLLABORATOR"
	RoleViewer       TeamRole = "VIEWER"
)

// IsValid reports whether the role is one of the known team roles.
func (r TeamRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCollaborator, RoleViewer:
		return true
	}
	return false
}

// TeamMember represents the membership of a User in a Team.
type TeamMember struct {
	TeamID   string    `json:"teamID" db:"team_id"`     // FK -> teams.team_id
	UserID   string    `json:"userID" db:"user_id"`     // FK -> users.user_id
	Username string    `json:"username" db:"username"`  // Joined from users for listings
	Role     TeamRole  `json:"role" db:"role"`          // Role of the user in this team
	JoinedAt time.Time `json:"joinedAt" db:"joined_at"` // Timestamp when the user joined
}
