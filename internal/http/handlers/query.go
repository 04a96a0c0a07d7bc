package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// listQuery carries the shared list-endpoint knobs. Page is 1-indexed; the
// store clamps limit to its maximum.
type listQuery struct {
	Paginated bool
	Page      int
	Limit     int
}

func parseListQuery(c *gin.Context) listQuery {
	q := listQuery{
		Paginated: c.Query("paginated") == "true",
		Page:      1,
	}
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		q.Page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		q.Limit = v
	}
	return q
}
