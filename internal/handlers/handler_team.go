package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/teambudget/team_budget_app/internal/core/ports/services"
	"github.com/teambudget/team_budget_app/internal/dto"
	"github.com/teambudget/team_budget_app/internal/middleware"
)

// teamHandler handles HTTP requests related to teams and their members.
type teamHandler struct {
	teamService portssvc.TeamSvcFacade
	userService portssvc.UserSvcFacade
}

// newTeamHandler creates a new teamHandler.
func newTeamHandler(ts portssvc.TeamSvcFacade, us portssvc.UserSvcFacade) *teamHandler {
	return &teamHandler{
		teamService: ts,
		userService: us,
	}
}

// registerTeamRoutes registers routes related to teams, their members and
// their nested books.
func registerTeamRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newTeamHandler(services.Team, services.User)

	teams := rg.Group("/teams")
	{
		teams.POST("", h.createTeam)
		teams.GET("", h.listUserTeams)
	}

	teamSpecific := rg.Group("/teams/:team_id")
	{
		teamSpecific.GET("", h.getTeam)
		teamSpecific.PUT("", h.updateTeam)
		teamSpecific.DELETE("", h.softDeleteTeam)
		teamSpecific.POST("/restore", h.restoreTeam)
		teamSpecific.DELETE("/permanent", h.permanentDeleteTeam)

		teamUsers := teamSpecific.Group("/users")
		{
			teamUsers.GET("", h.listTeamMembers)
			teamUsers.POST("", h.addTeamMember)
			teamUsers.PUT("/:user_id/role", h.changeTeamMemberRole)
			teamUsers.DELETE("/:user_id", h.removeTeamMember)
		}

		registerBookRoutes(teamSpecific, services)
	}
}

// createTeam godoc
// @Summary Create a new team
// @Description Creates a team and makes the creator its first admin.
// @Tags teams
// @Accept json
// @Produce json
// @Param team body dto.CreateTeamRequest true "Team details"
// @Success 201 {object} dto.TeamResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams [post]
func (h *teamHandler) createTeam(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	team, err := h.teamService.CreateTeam(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Team created", slog.String("team_id", team.TeamID))
	c.JSON(http.StatusCreated, dto.ToTeamResponse(team))
}

// listUserTeams godoc
// @Summary List teams for current user
// @Description Retrieves the non-deleted teams the authenticated user belongs to.
// @Tags teams
// @Produce json
// @Success 200 {object} dto.ListTeamsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams [get]
func (h *teamHandler) listUserTeams(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	teams, err := h.teamService.ListUserTeams(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListTeamsResponse(teams))
}

// getTeam godoc
// @Summary Get a team
// @Description Retrieves a team the caller can read.
// @Tags teams
// @Produce json
// @Param team_id path string true "Team ID"
// @Success 200 {object} dto.TeamResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams/{team_id} [get]
func (h *teamHandler) getTeam(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	team, err := h.teamService.GetTeamByID(c.Request.Context(), actor, c.Param("team_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTeamResponse(team))
}

// updateTeam godoc
// @Summary Rename a team
// @Description Renames a team. Requires the ADMIN role.
// @Tags teams
// @Accept json
// @Produce json
// @Param team_id path string true "Team ID"
// @Param team body dto.UpdateTeamRequest true "New team details"
// @Success 200 {object} dto.TeamResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams/{team_id} [put]
func (h *teamHandler) updateTeam(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	var req dto.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	team, err := h.teamService.UpdateTeam(c.Request.Context(), actor, c.Param("team_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTeamResponse(team))
}

// softDeleteTeam godoc
// @Summary Soft-delete a team
// @Description Marks a team as deleted. The team and its contents become read-only until restored.
// @Tags teams
// @Param team_id path string true "Team ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 412 {object} ErrorResponse "Team is already deleted"
// @Security BearerAuth
// @Router /teams/{team_id} [delete]
func (h *teamHandler) softDeleteTeam(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	if err := h.teamService.SoftDeleteTeam(c.Request.Context(), actor, c.Param("team_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// restoreTeam godoc
// @Summary Restore a soft-deleted team
// @Description Reactivates a soft-deleted team.
// @Tags teams
// @Param team_id path string true "Team ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 412 {object} ErrorResponse "Team is not deleted"
// @Security BearerAuth
// @Router /teams/{team_id}/restore [post]
func (h *teamHandler) restoreTeam(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	if err := h.teamService.RestoreTeam(c.Request.Context(), actor, c.Param("team_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// permanentDeleteTeam godoc
// @Summary Permanently delete a team
// @Description Irreversibly removes a soft-deleted team and everything it owns.
// @Tags teams
// @Param team_id path string true "Team ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 412 {object} ErrorResponse "Team must be soft-deleted first"
// @Security BearerAuth
// @Router /teams/{team_id}/permanent [delete]
func (h *teamHandler) permanentDeleteTeam(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	if err := h.teamService.PermanentDeleteTeam(c.Request.Context(), actor, c.Param("team_id")); err != nil {
		respondError(c, err)
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Team permanently deleted", slog.String("team_id", c.Param("team_id")))
	c.Status(http.StatusNoContent)
}

// listTeamMembers godoc
// @Summary List team members
// @Description Retrieves the members of a team the caller can read.
// @Tags teams
// @Produce json
// @Param team_id path string true "Team ID"
// @Success 200 {object} dto.ListTeamMembersResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams/{team_id}/users [get]
func (h *teamHandler) listTeamMembers(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	members, err := h.teamService.ListTeamMembers(c.Request.Context(), actor, c.Param("team_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListTeamMembersResponse(members))
}

// addTeamMember godoc
// @Summary Add a user to a team
// @Description Adds a user to a team with a role. Requires the ADMIN role.
// @Tags teams
// @Accept json
// @Produce json
// @Param team_id path string true "Team ID"
// @Param member body dto.AddTeamMemberRequest true "User ID and role"
// @Success 200 {object} dto.ListTeamMembersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "User already a member"
// @Security BearerAuth
// @Router /teams/{team_id}/users [post]
func (h *teamHandler) addTeamMember(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	var req dto.AddTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	members, err := h.teamService.AddMember(c.Request.Context(), actor, c.Param("team_id"), req.UserID, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListTeamMembersResponse(members))
}

// changeTeamMemberRole godoc
// @Summary Change a member's role
// @Description Changes a team member's role. Demoting the last admin is rejected.
// @Tags teams
// @Accept json
// @Produce json
// @Param team_id path string true "Team ID"
// @Param user_id path string true "User ID"
// @Param role body dto.ChangeTeamMemberRoleRequest true "New role"
// @Success 200 {object} dto.ListTeamMembersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Would remove the last admin"
// @Security BearerAuth
// @Router /teams/{team_id}/users/{user_id}/role [put]
func (h *teamHandler) changeTeamMemberRole(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	var req dto.ChangeTeamMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	members, err := h.teamService.ChangeRole(c.Request.Context(), actor, c.Param("team_id"), c.Param("user_id"), req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListTeamMembersResponse(members))
}

// removeTeamMember godoc
// @Summary Remove a user from a team
// @Description Removes a membership. Removing the last admin is rejected.
// @Tags teams
// @Produce json
// @Param team_id path string true "Team ID"
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.ListTeamMembersResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Would remove the last admin"
// @Security BearerAuth
// @Router /teams/{team_id}/users/{user_id} [delete]
func (h *teamHandler) removeTeamMember(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	members, err := h.teamService.RemoveMember(c.Request.Context(), actor, c.Param("team_id"), c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListTeamMembersResponse(members))
}
