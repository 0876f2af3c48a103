// Package handlers exposes the operational HTTP surface: liveness and
// metrics. The administrative use cases are not bound to HTTP here.
package handlers

import (
	"github.com/gorilla/mux"
	"github.com/hellofresh/health-go/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewOpsRouter(healthCheck *health.Health) *mux.Router {
	router := mux.NewRouter()
	router.Path("/healthz").HandlerFunc(healthCheck.HandlerFunc)
	router.Path("/metrics").Handler(promhttp.Handler())
	return router
}
