package http

// registerV2Routes mounts the document-store-backed station endpoints.
// The group mirrors v1 exactly; only the backend and the create
// conflict behavior differ.
// Group: /api/v2/stations
func (s *Server) registerV2Routes() {
	v2 := s.engine.Group("/api/v2")
	v2.Use(apiVersionMiddleware("v2"))

	stations := v2.Group("/stations")
	{
		stations.GET("", s.handleV2ListStations)
		stations.GET("/summary", s.handleV2Summary)
		stations.GET("/:number", s.handleV2GetStation)
		stations.POST("", s.handleV2CreateStation)
		stations.PUT("/:number", s.handleV2UpdateStation)
		stations.DELETE("/:number", s.handleV2DeleteStation)
	}
}
