package api

import "net/http"

// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  APIResponse
// @Router       /health [get]
func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, "NotesFlow API is running", map[string]string{"version": "2.0.0"})
}
