package middleware

import (
	"expense-tracker-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditMiddleware tags each request with an id and records it after the
// handler ran. Audit failures never fail the request.
func AuditMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		var userID *uint
		if claims, ok := CurrentClaims(c); ok {
			id := claims.UserID
			userID = &id
		}

		record := models.AuditLog{
			RequestID: requestID,
			UserID:    userID,
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Status:    c.Writer.Status(),
			IP:        c.ClientIP(),
		}
		_ = db.Create(&record).Error
	}
}
