package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/teambudget/team_budget_app/internal/core/domain"
)

func TestTeamRole_IsValid(t *testing.T) {
	tests := []struct {
		name string
		role domain.TeamRole
		want bool
	}{
		{name: "admin", role: domain.RoleAdmin, want: true},
		{name: "collaborator", role: domain.RoleCollaborator, want: true},
		{name: "viewer", role: domain.RoleViewer, want: true},
		{name: "unknown role", role: domain.TeamRole("OWNER"), want: false},
		{name: "empty role", role: domain.TeamRole(""), want: false},
		{name: "lowercase admin", role: domain.TeamRole("admin"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.IsValid())
		})
	}
}

func TestTeam_IsDeleted(t *testing.T) {
	now := time.Now()

	active := domain.Team{TeamID: "team-1"}
	assert.False(t, active.IsDeleted())

	deleted := domain.Team{TeamID: "team-2", DeletedAt: &now}
	assert.True(t, deleted.IsDeleted())
}
