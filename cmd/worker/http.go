package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trovekart/storefront-backend/api/responses"
	"github.com/trovekart/storefront-backend/internal/cartsync"
	pkgerrors "github.com/trovekart/storefront-backend/pkg/errors"
	"github.com/trovekart/storefront-backend/pkg/logger"
)

// newAdminMux exposes the worker's local surface: liveness, metrics
// exposition, and the cart read model maintained by the cartsync consumer.
// It binds to an internal port and is never routed publicly.
func newAdminMux(view *cartsync.View, logg *logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/v1/carts/{userID}", func(w http.ResponseWriter, req *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(req, "userID"))
		if err != nil {
			responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid user id"))
			return
		}
		lines, err := view.Get(req.Context(), userID)
		if err != nil {
			responses.WriteError(req.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart view"))
			return
		}
		if lines == nil {
			lines = []cartsync.Line{}
		}
		responses.WriteSuccess(w, lines)
	})

	return r
}
