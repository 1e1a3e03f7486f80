package http

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"dublinbikes/station"
)

// parseSearchQuery reads the shared list-endpoint parameters. Invalid
// sort and pagination values degrade to defaults; only minBikes is
// strict because a malformed number is a client mistake worth flagging.
func (s *Server) parseSearchQuery(c *gin.Context) (station.SearchQuery, bool) {
	q := station.SearchQuery{
		Query:    c.Query("q"),
		Status:   c.Query("status"),
		Sort:     station.ParseSortKey(c.Query("sort")),
		Page:     1,
		PageSize: s.cfg.DefaultPageSize,
	}

	q.Descending = strings.EqualFold(c.Query("dir"), "desc")

	if v := c.Query("minBikes"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, false
		}
		q.MinBikes = n
	}

	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			q.Page = n
		}
	}
	if v := c.Query("pageSize"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			q.PageSize = n
		}
	}

	return q, true
}

// stationNumber parses the :number path parameter.
func stationNumber(c *gin.Context) (int, bool) {
	n, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		return 0, false
	}
	return n, true
}
