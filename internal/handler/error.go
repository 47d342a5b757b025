package handler

import (
	"errors"
	"net/http"
	"time"

	"expense-tracker-backend/internal/service"
	"expense-tracker-backend/internal/util"

	"github.com/gin-gonic/gin"
)

// writeError translates a service failure into the HTTP error envelope.
// Unclassified errors become an opaque 500.
func writeError(c *gin.Context, err error) {
	var se *service.Error
	if !errors.As(err, &se) {
		util.Error(c, http.StatusInternalServerError, util.CodeInternal, "Internal Server Error")
		return
	}

	switch se.Kind {
	case service.KindValidation:
		util.Error(c, http.StatusBadRequest, util.CodeValidation, se.Message)
	case service.KindAuth:
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, se.Message)
	case service.KindForbidden:
		util.Error(c, http.StatusForbidden, util.CodeForbidden, se.Message)
	case service.KindNotFound:
		util.Error(c, http.StatusNotFound, util.CodeNotFound, se.Message)
	case service.KindConflict:
		util.Error(c, http.StatusConflict, util.CodeConflict, se.Message)
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeInternal, "Internal Server Error")
	}
}

// dateLayouts are the formats accepted wherever a date comes in as a string.
var dateLayouts = []string{
	time.RFC3339,          // 2025-12-03T00:00:00+08:00
	"2006-01-02T15:04:05", // 2025-12-03T00:00:00
	"2006-01-02",          // 2025-12-03
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
