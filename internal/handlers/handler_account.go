package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/teambudget/team_budget_app/internal/core/ports/services"
	"github.com/teambudget/team_budget_app/internal/dto"
)

// accountHandler handles HTTP requests related to accounts and balances.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	balanceService portssvc.BalanceSvc
	userService    portssvc.UserSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, bs portssvc.BalanceSvc, us portssvc.UserSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
		balanceService: bs,
		userService:    us,
	}
}

// registerAccountRoutes registers account routes nested under a specific book.
func registerAccountRoutes(bookGroup *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newAccountHandler(services.Account, services.Balance, services.User)

	accounts := bookGroup.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listBookAccounts)
	}
}

// registerAccountSpecificRoutes registers routes addressed by account ID alone,
// plus the nested transaction routes.
func registerAccountSpecificRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newAccountHandler(services.Account, services.Balance, services.User)

	accountSpecific := rg.Group("/accounts/:account_id")
	{
		accountSpecific.GET("", h.getAccount)
		accountSpecific.PUT("", h.updateAccount)
		accountSpecific.DELETE("", h.deleteAccount)
		accountSpecific.GET("/balance", h.getBalance)

		registerTransactionRoutes(accountSpecific, services)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates an account inside a book. Requires write access through the book's team.
// @Tags accounts
// @Accept json
// @Produce json
// @Param book_id path string true "Book ID"
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /books/{book_id}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), actor, c.Param("book_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listBookAccounts godoc
// @Summary List accounts of a book
// @Description Retrieves all accounts of a book the caller can read.
// @Tags accounts
// @Produce json
// @Param book_id path string true "Book ID"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /books/{book_id}/accounts [get]
func (h *accountHandler) listBookAccounts(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	accounts, err := h.accountService.ListBookAccounts(c.Request.Context(), actor, c.Param("book_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountsResponse(accounts))
}

// getAccount godoc
// @Summary Get an account
// @Description Retrieves an account the caller can read.
// @Tags accounts
// @Produce json
// @Param account_id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{account_id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), actor, c.Param("account_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates an account's name, type or note.
// @Tags accounts
// @Accept json
// @Produce json
// @Param account_id path string true "Account ID"
// @Param account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{account_id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), actor, c.Param("account_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Removes an account. Accounts that still have transactions are rejected.
// @Tags accounts
// @Param account_id path string true "Account ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Account has transactions"
// @Security BearerAuth
// @Router /accounts/{account_id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), actor, c.Param("account_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// getBalance godoc
// @Summary Get account balance
// @Description Returns the exercised and projected balances of an account as of a date (defaults to today).
// @Tags accounts
// @Produce json
// @Param account_id path string true "Account ID"
// @Param asOf query string false "Cutoff date (YYYY-MM-DD)"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} ErrorResponse "Malformed asOf date"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{account_id}/balance [get]
func (h *accountHandler) getBalance(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	accountID := c.Param("account_id")
	asOf := c.Query("asOf")

	balance, err := h.balanceService.ComputeBalance(c.Request.Context(), actor, accountID, asOf)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{
		AccountID: accountID,
		AsOf:      asOf,
		Exercised: balance.Exercised,
		Projected: balance.Projected,
	})
}
