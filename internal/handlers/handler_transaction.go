package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/teambudget/team_budget_app/internal/core/ports/services"
	"github.com/teambudget/team_budget_app/internal/dto"
)

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	userService        portssvc.UserSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade, us portssvc.UserSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
		userService:        us,
	}
}

// registerTransactionRoutes registers transaction routes nested under a
// specific account.
func registerTransactionRoutes(accountGroup *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newTransactionHandler(services.Transaction, services.User)

	transactions := accountGroup.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listAccountTransactions)
	}
}

// registerTransactionSpecificRoutes registers routes addressed by transaction ID alone.
func registerTransactionSpecificRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newTransactionHandler(services.Transaction, services.User)

	transactionSpecific := rg.Group("/transactions/:transaction_id")
	{
		transactionSpecific.GET("", h.getTransaction)
		transactionSpecific.PUT("", h.updateTransaction)
		transactionSpecific.DELETE("", h.deleteTransaction)
	}
}

// createTransaction godoc
// @Summary Create a new transaction
// @Description Creates a transaction on an account. A category, when given, must belong to the account's book.
// @Tags transactions
// @Accept json
// @Produce json
// @Param account_id path string true "Account ID"
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{account_id}/transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), actor, c.Param("account_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listAccountTransactions godoc
// @Summary List transactions of an account
// @Description Retrieves the transactions of an account, newest first, optionally within a date range.
// @Tags transactions
// @Produce json
// @Param account_id path string true "Account ID"
// @Param from query string false "Start date inclusive (YYYY-MM-DD)"
// @Param to query string false "End date inclusive (YYYY-MM-DD)"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse "Malformed date"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{account_id}/transactions [get]
func (h *transactionHandler) listAccountTransactions(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}

	txns, err := h.transactionService.ListAccountTransactions(c.Request.Context(), actor, c.Param("account_id"), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns))
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Retrieves a transaction the caller can read.
// @Tags transactions
// @Produce json
// @Param transaction_id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transaction_id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), actor, c.Param("transaction_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Applies a partial update to a transaction.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction_id path string true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transaction_id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), actor, c.Param("transaction_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Removes a transaction.
// @Tags transactions
// @Param transaction_id path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transaction_id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), actor, c.Param("transaction_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseDateQuery parses an optional YYYY-MM-DD query parameter. It writes the
// error response itself on malformed input.
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	value := c.Query(name)
	if value == "" {
		return nil, true
	}
	date, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + name + " date: " + value})
		return nil, false
	}
	return &date, true
}
