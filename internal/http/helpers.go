package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseIDParam extracts an unsigned integer ID from URL parameters.
// Anything that is not a valid ID cannot name a stored record, so callers
// treat a false result as not found.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func uintString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
