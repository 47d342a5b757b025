package handler

import (
	"net/http"
	"strconv"

	"expense-tracker-backend/internal/service"
	"expense-tracker-backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ExpenseHandler exposes the legacy expense routes. They predate the auth
// gate and take the owning user from the body; kept as-is, see DESIGN.md.
type ExpenseHandler struct {
	Expenses *service.Expenses
}

func NewExpenseHandler(expenses *service.Expenses) *ExpenseHandler {
	return &ExpenseHandler{Expenses: expenses}
}

type createExpenseReq struct {
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	CategoryID  *uint           `json:"categoryId"`
	Description string          `json:"description"`
	UserID      uint            `json:"userId"`
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	var req createExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "Invalid request body")
		return
	}

	expense, err := h.Expenses.Create(service.CreateExpenseInput{
		Title:       req.Title,
		Amount:      req.Amount,
		Type:        req.Type,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		UserID:      req.UserID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	util.Created(c, util.Response{"expense": expense})
}

func (h *ExpenseHandler) List(c *gin.Context) {
	expenses, err := h.Expenses.ListAll()
	if err != nil {
		writeError(c, err)
		return
	}
	util.OK(c, util.Response{"expenses": expenses})
}

func (h *ExpenseHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "Invalid expense ID")
		return
	}

	expense, err := h.Expenses.GetByID(uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	util.OK(c, util.Response{"expense": expense})
}

type updateExpenseReq struct {
	Title       *string          `json:"title"`
	Amount      *decimal.Decimal `json:"amount"`
	Type        *string          `json:"type"`
	CategoryID  *uint            `json:"categoryId"`
	Description *string          `json:"description"`
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "Invalid expense ID")
		return
	}

	var req updateExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "Invalid request body")
		return
	}

	expense, err := h.Expenses.Update(uint(id), service.UpdateExpenseInput{
		Title:       req.Title,
		Amount:      req.Amount,
		Type:        req.Type,
		CategoryID:  req.CategoryID,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	util.OK(c, util.Response{"expense": expense})
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "Invalid expense ID")
		return
	}

	if err := h.Expenses.Delete(uint(id)); err != nil {
		writeError(c, err)
		return
	}
	util.OK(c, util.Response{"message": "Expense deleted successfully"})
}

func (h *ExpenseHandler) ListByUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil || userID <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "User ID is required")
		return
	}

	expenses, err2 := h.Expenses.ListByUser(uint(userID))
	if err2 != nil {
		writeError(c, err2)
		return
	}
	util.OK(c, util.Response{"expenses": expenses})
}
