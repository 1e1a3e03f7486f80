package http

// registerV1Routes mounts the in-memory-backed station endpoints.
// Group: /api/v1/stations
func (s *Server) registerV1Routes() {
	v1 := s.engine.Group("/api/v1")
	v1.Use(apiVersionMiddleware("v1"))

	stations := v1.Group("/stations")
	{
		stations.GET("", s.handleV1ListStations)
		stations.GET("/summary", s.handleV1Summary)
		stations.GET("/:number", s.handleV1GetStation)
		stations.POST("", s.handleV1CreateStation)
		stations.PUT("/:number", s.handleV1UpdateStation)
		stations.DELETE("/:number", s.handleV1DeleteStation)
	}
}
