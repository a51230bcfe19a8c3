// internal/proxy/router/router.go
package router

import (
	"net/http"

	"ledgergate/internal/gate"
	"ledgergate/internal/observability/logging"

	"github.com/gorilla/mux"
)

// New builds the request router: a health endpoint for the load balancer,
// and a catch-all that sends everything else through the gate to the
// upstream. The health route is registered first so it never pays for
// cookie reads.
func New(gateMW *gate.Middleware, upstream http.Handler, logger *logging.Logger) *mux.Router {
	logger = logger.WithModule("router")

	r := mux.NewRouter()

	r.Path("/healthz").Methods(http.MethodGet).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.PathPrefix("/").Handler(gateMW.Handler(upstream))

	logger.Debug("Router configured")
	return r
}
