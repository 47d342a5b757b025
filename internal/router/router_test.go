package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"expense-tracker-backend/internal/config"
	"expense-tracker-backend/internal/database"
	"expense-tracker-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.SeedGlobalCategories(db))

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		JWT:    config.JWTConfig{Secret: "test-secret", ExpireHours: 1},
	}
	return SetupRouter(cfg, db), db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func errorCode(t *testing.T, body map[string]interface{}) string {
	t.Helper()
	envelope, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "expected error envelope, got %v", body)
	code, _ := envelope["code"].(string)
	return code
}

func TestHealthCheck(t *testing.T) {
	r, _ := newTestRouter(t)

	w, body := doJSON(t, r, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "expense-tracker-backend", body["service"])
}

func TestRegisterLoginAndLedgerFlow(t *testing.T) {
	r, db := newTestRouter(t)

	// register
	w, body := doJSON(t, r, http.MethodPost, "/api/users/register", "", gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "pw123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", user["email"])
	_, hasPassword := user["password"]
	assert.False(t, hasPassword, "credential must be stripped")

	// duplicate registration conflicts
	w, body = doJSON(t, r, http.MethodPost, "/api/users/register", "", gin.H{
		"email":    "alice@example.com",
		"password": "pw123",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", errorCode(t, body))

	// login
	w, body = doJSON(t, r, http.MethodPost, "/api/users/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "pw123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	// the gate rejects requests without a token
	w, body = doJSON(t, r, http.MethodGet, "/api/transactions", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_ERROR", errorCode(t, body))

	// private category
	w, body = doJSON(t, r, http.MethodPost, "/api/categories", token, gin.H{"name": "Groceries"})
	require.Equal(t, http.StatusCreated, w.Code)
	category, ok := body["category"].(map[string]interface{})
	require.True(t, ok)
	categoryID := category["id"].(float64)

	// name collides with a seeded global category
	w, body = doJSON(t, r, http.MethodPost, "/api/categories", token, gin.H{"name": "Food"})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", errorCode(t, body))

	// record a transaction
	w, body = doJSON(t, r, http.MethodPost, "/api/transactions", token, gin.H{
		"title":      "Lunch",
		"amount":     12.50,
		"type":       "EXPENSE",
		"categoryId": categoryID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created, ok := body["newTransaction"].(map[string]interface{})
	require.True(t, ok)
	transactionID := created["id"].(float64)

	// recent returns it with the category name attached
	w, body = doJSON(t, r, http.MethodGet, "/api/transactions/recent", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	recent, ok := body["recentTransactions"].([]interface{})
	require.True(t, ok)
	require.Len(t, recent, 1)
	first := recent[0].(map[string]interface{})
	assert.Equal(t, "Lunch", first["title"])
	cat, ok := first["category"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Groceries", cat["name"])

	// a second user cannot see Alice's transaction
	w, _ = doJSON(t, r, http.MethodPost, "/api/users/register", "", gin.H{
		"email":    "bob@example.com",
		"password": "pw456",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w, body = doJSON(t, r, http.MethodPost, "/api/users/login", "", gin.H{
		"email":    "bob@example.com",
		"password": "pw456",
	})
	require.Equal(t, http.StatusOK, w.Code)
	bobToken, _ := body["token"].(string)
	require.NotEmpty(t, bobToken)

	w, body = doJSON(t, r, http.MethodGet,
		"/api/transactions/"+jsonNumber(transactionID), bobToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))

	// global categories are caller-immutable
	var food models.Category
	require.NoError(t, db.Where("name = ? AND user_id IS NULL", "Food").First(&food).Error)
	w, body = doJSON(t, r, http.MethodDelete,
		"/api/categories/"+jsonNumber(float64(food.ID)), token, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, body))

	// requests carry a request id for the audit trail
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	var auditCount int64
	require.NoError(t, db.Model(&models.AuditLog{}).Count(&auditCount).Error)
	assert.Positive(t, auditCount)
}

func jsonNumber(f float64) string {
	return strconv.FormatInt(int64(f), 10)
}
