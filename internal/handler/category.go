package handler

import (
	"net/http"
	"strconv"

	"expense-tracker-backend/internal/middleware"
	"expense-tracker-backend/internal/service"
	"expense-tracker-backend/internal/util"

	"github.com/gin-gonic/gin"
)

// CategoryHandler exposes the category registry. All routes sit behind the
// auth gate.
type CategoryHandler struct {
	Categories *service.Categories
}

func NewCategoryHandler(categories *service.Categories) *CategoryHandler {
	return &CategoryHandler{Categories: categories}
}

type createCategoryReq struct {
	Name string `json:"name"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Missing or invalid token")
		return
	}

	var req createCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "Invalid request body")
		return
	}

	category, err := h.Categories.Create(req.Name, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	util.Created(c, util.Response{"category": category})
}

func (h *CategoryHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Missing or invalid token")
		return
	}

	categories, err := h.Categories.List(userID)
	if err != nil {
		writeError(c, err)
		return
	}
	util.OK(c, util.Response{"categories": categories})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Missing or invalid token")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "Invalid category ID")
		return
	}

	if err := h.Categories.Delete(uint(id), userID); err != nil {
		writeError(c, err)
		return
	}
	util.OK(c, util.Response{"message": "Category deleted"})
}
