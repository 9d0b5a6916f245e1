package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/teambudget/team_budget_app/internal/core/ports/services"
	"github.com/teambudget/team_budget_app/internal/dto"
)

// categoryHandler handles HTTP requests related to categories.
type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
	userService     portssvc.UserSvcFacade
}

// newCategoryHandler creates a new categoryHandler.
func newCategoryHandler(cs portssvc.CategorySvcFacade, us portssvc.UserSvcFacade) *categoryHandler {
	return &categoryHandler{
		categoryService: cs,
		userService:     us,
	}
}

// registerCategoryRoutes registers category routes nested under a specific book.
func registerCategoryRoutes(bookGroup *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newCategoryHandler(services.Category, services.User)

	categories := bookGroup.Group("/categories")
	{
		categories.POST("", h.createCategory)
		categories.GET("", h.listBookCategories)
	}
}

// registerCategorySpecificRoutes registers routes addressed by category ID alone.
func registerCategorySpecificRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newCategoryHandler(services.Category, services.User)

	categorySpecific := rg.Group("/categories/:category_id")
	{
		categorySpecific.GET("", h.getCategory)
		categorySpecific.PUT("", h.updateCategory)
		categorySpecific.DELETE("", h.deleteCategory)
	}
}

// createCategory godoc
// @Summary Create a new category
// @Description Creates a category inside a book. A category with a parent inherits the parent's type.
// @Tags categories
// @Accept json
// @Produce json
// @Param book_id path string true "Book ID"
// @Param category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Hierarchy rule violated"
// @Security BearerAuth
// @Router /books/{book_id}/categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), actor, c.Param("book_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// listBookCategories godoc
// @Summary List categories of a book
// @Description Retrieves the two-level category tree of a book.
// @Tags categories
// @Produce json
// @Param book_id path string true "Book ID"
// @Success 200 {object} dto.ListCategoriesResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /books/{book_id}/categories [get]
func (h *categoryHandler) listBookCategories(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	nodes, err := h.categoryService.ListBookCategories(c.Request.Context(), actor, c.Param("book_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListCategoriesResponse(nodes))
}

// getCategory godoc
// @Summary Get a category
// @Description Retrieves a category the caller can read.
// @Tags categories
// @Produce json
// @Param category_id path string true "Category ID"
// @Success 200 {object} dto.CategoryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{category_id} [get]
func (h *categoryHandler) getCategory(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	category, err := h.categoryService.GetCategoryByID(c.Request.Context(), actor, c.Param("category_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// updateCategory godoc
// @Summary Update a category
// @Description Applies a partial update. Changing a root's type cascades to its children; re-parenting re-enters type inheritance.
// @Tags categories
// @Accept json
// @Produce json
// @Param category_id path string true "Category ID"
// @Param category body dto.UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Hierarchy rule violated"
// @Security BearerAuth
// @Router /categories/{category_id} [put]
func (h *categoryHandler) updateCategory(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), actor, c.Param("category_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// deleteCategory godoc
// @Summary Delete a category
// @Description Removes a category. Categories with transactions or subcategories are rejected.
// @Tags categories
// @Param category_id path string true "Category ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Category has transactions or subcategories"
// @Security BearerAuth
// @Router /categories/{category_id} [delete]
func (h *categoryHandler) deleteCategory(c *gin.Context) {
	actor, ok := getActor(c, h.userService)
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), actor, c.Param("category_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
