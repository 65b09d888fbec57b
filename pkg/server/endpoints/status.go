package endpoints

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/doodlesbykumbi/acts/pkg/server"
	"github.com/doodlesbykumbi/acts/pkg/server/store"
)

// StatusResponse represents the response from GET /
type StatusResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// RegisterStatusEndpoints registers the status and metrics endpoints. Neither
// requires authentication.
func RegisterStatusEndpoints(s *server.Server) {
	s.Router.HandleFunc("/", handleStatus(s.HealthStore, s.Logger)).Methods("GET")
	s.Router.Handle("/metrics", promhttp.Handler()).Methods("GET")
}

func handleStatus(healthStore store.HealthStore, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := healthStore.CheckConnectivity(r.Context()); err != nil {
			log.Warn().Err(err).Msg("database connectivity check failed")
			respondWithJSON(w, http.StatusServiceUnavailable, StatusResponse{
				Status:   "error",
				Database: "unavailable",
			})
			return
		}

		respondWithJSON(w, http.StatusOK, StatusResponse{
			Status:   "ok",
			Database: "ok",
		})
	}
}
