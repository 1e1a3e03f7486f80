package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dublinbikes/db"
	"dublinbikes/station"
)

// handleV2ListStations returns a filtered, sorted page of stations,
// with the pipeline executed server-side by the document store.
// GET /api/v2/stations?q=&status=&minBikes=&sort=&dir=&page=&pageSize=
func (s *Server) handleV2ListStations(c *gin.Context) {
	q, ok := s.parseSearchQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid minBikes"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	results, err := s.repo.Search(ctx, q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": results,
		"pagination": gin.H{
			"page":     q.Page,
			"pageSize": q.PageSize,
			"count":    len(results),
		},
	})
}

// handleV2Summary returns aggregate counts computed by the store.
// GET /api/v2/stations/summary
func (s *Server) handleV2Summary(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	sum, err := s.repo.Summary(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sum})
}

// handleV2GetStation returns a single station by number.
// GET /api/v2/stations/:number
func (s *Server) handleV2GetStation(c *gin.Context) {
	number, ok := stationNumber(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "station number must be an integer"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	st, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if st == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "station not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": st})
}

// handleV2CreateStation inserts a new station. Unlike v1, an existing
// number is a conflict rather than an upsert.
// POST /api/v2/stations
func (s *Server) handleV2CreateStation(c *gin.Context) {
	var st station.Station
	if err := c.ShouldBindJSON(&st); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid station payload"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := s.repo.Create(ctx, st); err != nil {
		if errors.Is(err, db.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "station already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Location", fmt.Sprintf("/api/v2/stations/%d", st.Number))
	c.JSON(http.StatusCreated, gin.H{"data": st})
}

// handleV2UpdateStation replaces the document stored under :number.
// PUT /api/v2/stations/:number
func (s *Server) handleV2UpdateStation(c *gin.Context) {
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

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	updated, err := s.repo.Update(ctx, number, st)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "station not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// handleV2DeleteStation removes the document stored under :number.
// DELETE /api/v2/stations/:number
func (s *Server) handleV2DeleteStation(c *gin.Context) {
	number, ok := stationNumber(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "station number must be an integer"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	deleted, err := s.repo.Delete(ctx, number)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "station not found"})
		return
	}

	c.Status(http.StatusNoContent)
}
