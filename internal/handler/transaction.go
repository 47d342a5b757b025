package handler

import (
	"net/http"
	"strconv"
	"time"

	"expense-tracker-backend/internal/middleware"
	"expense-tracker-backend/internal/models"
	"expense-tracker-backend/internal/service"
	"expense-tracker-backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransactionHandler exposes the ledger and its reports. All routes sit
// behind the auth gate.
type TransactionHandler struct {
	Transactions *service.Transactions
	Reports      *service.Reports
}

func NewTransactionHandler(transactions *service.Transactions, reports *service.Reports) *TransactionHandler {
	return &TransactionHandler{Transactions: transactions, Reports: reports}
}

type createTransactionReq struct {
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	CategoryID  uint            `json:"categoryId"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

func (h *TransactionHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Missing or invalid token")
		return
	}

	var req createTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "Invalid request body")
		return
	}

	in := service.CreateTransactionInput{
		Title:       req.Title,
		Amount:      req.Amount,
		Type:        models.TransactionType(req.Type),
		CategoryID:  req.CategoryID,
		Description: req.Description,
	}
	if req.Date != "" {
		t, ok := parseDate(req.Date)
		if !ok {
			util.Error(c, http.StatusBadRequest, util.CodeValidation, "Invalid date")
			return
		}
		in.Date = &t
	}

	transaction, err := h.Transactions.Create(userID, in)
	if err != nil {
		writeError(c, err)
		return
	}
	util.Created(c, util.Response{"newTransaction": transaction})
}

func (h *TransactionHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Missing or invalid token")
		return
	}

	var filters service.ListFilters
	filters.Type = models.TransactionType(c.Query("type"))
	if v := c.Query("categoryId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			util.Error(c, http.StatusBadRequest, util.CodeValidation, "Invalid category ID")
			return
		}
		filters.CategoryID = uint(id)
	}
	var ok2 bool
	if filters.StartDate, ok2 = parseDateQuery(c, "startDate"); !ok2 {
		return
	}
	if filters.EndDate, ok2 = parseDateQuery(c, "endDate"); !ok2 {
		return
	}

	transactions, err := h.Transactions.List(userID, filters)
	if err != nil {
		writeError(c, err)
		return
	}
	util.OK(c, util.Response{"transactions": transactions})
}

// parseDateQuery reads an optional date query parameter. On a malformed
// value it writes the error response and reports false.
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	v := c.Query(name)
	if v == "" {
		return nil, true
	}
	t, ok := parseDate(v)
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "Invalid "+name)
		return nil, false
	}
	return &t, true
}

func (h *TransactionHandler) Get(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Missing or invalid token")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "Invalid transaction ID")
		return
	}

	transaction, err := h.Transactions.GetByID(uint(id), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	util.OK(c, util.Response{"transaction": transaction})
}

type updateTransactionReq struct {
	Title       *string          `json:"title"`
	Amount      *decimal.Decimal `json:"amount"`
	Type        *string          `json:"type"`
	CategoryID  uint             `json:"categoryId"`
	Description *string          `json:"description"`
	Date        *string          `json:"date"`
}

func (h *TransactionHandler) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Missing or invalid token")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "Invalid transaction ID")
		return
	}

	var req updateTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "Invalid request body")
		return
	}

	in := service.UpdateTransactionInput{
		Title:       req.Title,
		Amount:      req.Amount,
		CategoryID:  req.CategoryID,
		Description: req.Description,
	}
	if req.Type != nil {
		t := models.TransactionType(*req.Type)
		in.Type = &t
	}
	if req.Date != nil && *req.Date != "" {
		t, ok := parseDate(*req.Date)
		if !ok {
			util.Error(c, http.StatusBadRequest, util.CodeValidation, "Invalid date")
			return
		}
		in.Date = &t
	}

	updated, err := h.Transactions.Update(uint(id), userID, in)
	if err != nil {
		writeError(c, err)
		return
	}
	util.OK(c, util.Response{"updated": updated})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Missing or invalid token")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "Invalid transaction ID")
		return
	}

	if err := h.Transactions.Delete(uint(id), userID); err != nil {
		writeError(c, err)
		return
	}
	util.OK(c, util.Response{"message": "Transaction deleted"})
}

func (h *TransactionHandler) Recent(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Missing or invalid token")
		return
	}

	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	transactions, err := h.Transactions.Recent(userID, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	util.OK(c, util.Response{"recentTransactions": transactions})
}

func (h *TransactionHandler) SummaryByCategory(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Missing or invalid token")
		return
	}

	summary, err := h.Reports.SummaryByCategory(userID)
	if err != nil {
		writeError(c, err)
		return
	}
	util.OK(c, util.Response{"summary": summary})
}

func (h *TransactionHandler) MonthlySummary(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Missing or invalid token")
		return
	}

	summary, err := h.Reports.MonthlySummary(userID)
	if err != nil {
		writeError(c, err)
		return
	}
	util.OK(c, util.Response{"summary": summary})
}

func (h *TransactionHandler) TopCategories(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Missing or invalid token")
		return
	}

	var start, end *time.Time
	var ok2 bool
	if start, ok2 = parseDateQuery(c, "startDate"); !ok2 {
		return
	}
	if end, ok2 = parseDateQuery(c, "endDate"); !ok2 {
		return
	}

	limit := 5
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	top, err := h.Reports.TopCategories(userID, start, end, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	util.OK(c, util.Response{"topCategories": top})
}
