package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teambudget/team_budget_app/internal/apperrors"
	"github.com/teambudget/team_budget_app/internal/core/domain"
	portssvc "github.com/teambudget/team_budget_app/internal/core/ports/services"
	"github.com/teambudget/team_budget_app/internal/middleware"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// getActor loads the authenticated user from the request context. It writes
// the error response itself when authentication is missing or the user no
// longer exists, so callers just return on !ok.
func getActor(c *gin.Context, userSvc portssvc.UserSvcFacade) (domain.User, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return domain.User{}, false
	}

	user, err := userSvc.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		logger.Warn("Authenticated user not found", slog.String("user_id", userID))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return domain.User{}, false
	}
	if !user.Active {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "user is disabled"})
		return domain.User{}, false
	}
	return *user, true
}

// respondError maps a service error onto an HTTP status. AppError messages are
// safe for clients; anything unmapped becomes a plain 500.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrInvalidHierarchy):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrPreconditionFailed):
		status = http.StatusPreconditionFailed
	}

	message := http.StatusText(status)
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && status != http.StatusInternalServerError {
		message = appErr.Message
	}

	if status == http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	}
	c.JSON(status, ErrorResponse{Error: message})
}
