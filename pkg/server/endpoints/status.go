package endpoints

import (
	"net/http"

	"github.com/permauth/permauth-in-go/pkg/routemeta"
	"github.com/permauth/permauth-in-go/pkg/server"
	"github.com/permauth/permauth-in-go/pkg/server/store"
)

// HealthResponse is the body returned by GET /health.
type HealthResponse struct {
	OK bool `json:"ok"`
}

// RegisterStatusEndpoints registers the health endpoint. It is
// anonymous; load balancers probe it without credentials.
func RegisterStatusEndpoints(srv *server.Server) {
	registerRoute(srv, "status.health",
		&routemeta.Meta{Group: "StatusHandler", Method: "Health", Anonymous: true, NonActionable: true},
		"/health", handleHealth(srv.Stores.Health), "GET")
}

func handleHealth(health store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := health.Ping(); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, HealthResponse{OK: false})
			return
		}
		respondWithJSON(w, http.StatusOK, HealthResponse{OK: true})
	}
}
