package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"dublinbikes/station"
)

// handleV1ListStations returns a filtered, sorted page of stations.
// GET /api/v1/stations?q=&status=&minBikes=&sort=&dir=&page=&pageSize=
func (s *Server) handleV1ListStations(c *gin.Context) {
	q, ok := s.parseSearchQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid minBikes"})
		return
	}

	results := s.stations.Search(q)

	c.JSON(http.StatusOK, gin.H{
		"data": results,
		"pagination": gin.H{
			"page":     q.Page,
			"pageSize": q.PageSize,
			"count":    len(results),
		},
	})
}

// handleV1Summary returns aggregate counts over the full station set.
// GET /api/v1/stations/summary
func (s *Server) handleV1Summary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.stations.Summary()})
}

// handleV1GetStation returns a single station by number.
// GET /api/v1/stations/:number
func (s *Server) handleV1GetStation(c *gin.Context) {
	number, ok := stationNumber(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "station number must be an integer"})
		return
	}

	st, found := s.stations.Get(number)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "station not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": st})
}

// handleV1CreateStation upserts a station. The in-memory path never
// reports a key conflict; posting an existing number overwrites it.
// POST /api/v1/stations
func (s *Server) handleV1CreateStation(c *gin.Context) {
	var st station.Station
	if err := c.ShouldBindJSON(&st); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid station payload"})
		return
	}

	s.stations.Add(st)

	c.Header("Location", fmt.Sprintf("/api/v1/stations/%d", st.Number))
	c.JSON(http.StatusCreated, gin.H{"data": st})
}

// handleV1UpdateStation replaces the station stored under :number. A
// payload whose number differs from the path is rejected before it can
// reach the store.
// PUT /api/v1/stations/:number
func (s *Server) handleV1UpdateStation(c *gin.Context) {
	number, ok := stationNumber(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "station number must be an integer"})
		return
	}

	var st station.Station
	if err := c.ShouldBindJSON(&st); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid station payload"})
		return
	}
	if st.Number != number {
		c.JSON(http.StatusBadRequest, gin.H{"error": "station number in body does not match path"})
		return
	}

	if !s.stations.Update(number, st) {
		c.JSON(http.StatusNotFound, gin.H{"error": "station not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// handleV1DeleteStation removes the station stored under :number.
// DELETE /api/v1/stations/:number
func (s *Server) handleV1DeleteStation(c *gin.Context) {
	number, ok := stationNumber(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "station number must be an integer"})
		return
	}

	if !s.stations.Delete(number) {
		c.JSON(http.StatusNotFound, gin.H{"error": "station not found"})
		return
	}

	c.Status(http.StatusNoContent)
}
