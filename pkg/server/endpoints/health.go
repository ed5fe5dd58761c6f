package endpoints

import (
	"context"
	"net/http"
	"time"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/app"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/server"
)

const healthTimeout = 3 * time.Second

// HealthResponse represents the response from /management/health
type HealthResponse struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// ComponentHealth is the state of one dependency
type ComponentHealth struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// RegisterHealthEndpoints registers the health endpoint
func RegisterHealthEndpoints(s *server.Server) {
	s.Router.HandleFunc("/management/health", handleHealth(s.Checks)).Methods("GET")
}

func handleHealth(checks []app.HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		resp := HealthResponse{Status: "UP", Components: map[string]ComponentHealth{}}
		code := http.StatusOK
		for _, c := range checks {
			if err := c.Check(ctx); err != nil {
				resp.Components[c.Name] = ComponentHealth{Status: "DOWN", Error: err.Error()}
				resp.Status = "DOWN"
				code = http.StatusServiceUnavailable
				continue
			}
			resp.Components[c.Name] = ComponentHealth{Status: "UP"}
		}
		respondWithJSON(w, code, resp)
	}
}
