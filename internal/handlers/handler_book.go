package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/teambudget/team_budget_app/internal/core/ports/services"
	"github.com/teambudget/team_budget_app/internal/dto"
)

// bookHandler handles HTTP requests related to books.
type bookHandler struct {
	bookService portssvc.BookSvcFacade
	userService portssvc.UserSvcFacade
}

// newBookHandler creates a new bookHandler.
func newBookHandler(bs portssvc.BookSvcFacade, us portssvc.UserSvcFacade) *bookHandler {
	return &bookHandler{
		bookService: bs,
		userService: us,
	}
}

// registerBookRoutes registers book routes nested under a specific team.
func registerBookRoutes(teamGroup *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newBookHandler(services.Book, services.User)

	books := teamGroup.Group("/books")
	{
		books.POST("", h.createBook)
		books.GET("", h.listTeamBooks)
	}
}

// registerBookSpecificRoutes registers routes addressed by book ID alone, plus
// the nested account and category routes.
func registerBookSpecificRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newBookHandler(services.Book, services.User)

	bookSpecific := rg.Group("/books/:book_id")
	{
		bookSpecific.GET("", h.getBook)
		bookSpecific.PUT("", h.updateBook)
		bookSpecific.DELETE("", h.softDeleteBook)
		bookSpecific.POST("/restore", h.restoreBook)
		bookSpecific.DELETE("/permanent", h.permanentDeleteBook)

		registerAccountRoutes(bookSpecific, services)
		registerCategoryRoutes(bookSpecific, services)
	}
}

// createBook godoc
// @Summary Create a new book
// @Description Creates a book inside a team. Requires write access to the team.
// @Tags books
// @Accept json
// @Produce json
// @Param team_id path string true "Team ID"
// @Param book body dto.CreateBookRequest true "Book details"
// @Success 201 {object} dto.BookResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams/{team_id}/books [post]
func (h *bookHandler) createBook(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	book, err := h.bookService.CreateBook(c.Request.Context(), actor, c.Param("team_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToBookResponse(book))
}

// listTeamBooks godoc
// @Summary List books of a team
// @Description Retrieves the books of a team. Soft-deleted books are included with includeDeleted=true.
// @Tags books
// @Produce json
// @Param team_id path string true "Team ID"
// @Param includeDeleted query bool false "Include soft-deleted books"
// @Success 200 {object} dto.ListBooksResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams/{team_id}/books [get]
func (h *bookHandler) listTeamBooks(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	includeDeleted := c.Query("includeDeleted") == "true"
	books, err := h.bookService.ListTeamBooks(c.Request.Context(), actor, c.Param("team_id"), includeDeleted)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListBooksResponse(books))
}

// getBook godoc
// @Summary Get a book
// @Description Retrieves a book the caller can read.
// @Tags books
// @Produce json
// @Param book_id path string true "Book ID"
// @Success 200 {object} dto.BookResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /books/{book_id} [get]
func (h *bookHandler) getBook(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	book, err := h.bookService.GetBookByID(c.Request.Context(), actor, c.Param("book_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}

// updateBook godoc
// @Summary Update a book
// @Description Updates a book's name, currency symbol or week start.
// @Tags books
// @Accept json
// @Produce json
// @Param book_id path string true "Book ID"
// @Param book body dto.UpdateBookRequest true "Fields to update"
// @Success 200 {object} dto.BookResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /books/{book_id} [put]
func (h *bookHandler) updateBook(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	book, err := h.bookService.UpdateBook(c.Request.Context(), actor, c.Param("book_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}

// softDeleteBook godoc
// @Summary Soft-delete a book
// @Description Marks a book as deleted. The book and its contents become read-only until restored.
// @Tags books
// @Param book_id path string true "Book ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 412 {object} ErrorResponse "Book is already deleted"
// @Security BearerAuth
// @Router /books/{book_id} [delete]
func (h *bookHandler) softDeleteBook(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	if err := h.bookService.SoftDeleteBook(c.Request.Context(), actor, c.Param("book_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// restoreBook godoc
// @Summary Restore a soft-deleted book
// @Description Reactivates a soft-deleted book.
// @Tags books
// @Param book_id path string true "Book ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 412 {object} ErrorResponse "Book is not deleted"
// @Security BearerAuth
// @Router /books/{book_id}/restore [post]
func (h *bookHandler) restoreBook(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	if err := h.bookService.RestoreBook(c.Request.Context(), actor, c.Param("book_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// permanentDeleteBook godoc
// @Summary Permanently delete a book
// @Description Irreversibly removes a soft-deleted book and all its accounts, categories and transactions.
// @Tags books
// @Param book_id path string true "Book ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 412 {object} ErrorResponse "Book must be soft-deleted first"
// @Security BearerAuth
// @Router /books/{book_id}/permanent [delete]
func (h *bookHandler) permanentDeleteBook(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	if err := h.bookService.PermanentDeleteBook(c.Request.Context(), actor, c.Param("book_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
