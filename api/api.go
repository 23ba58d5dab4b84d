// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/thor-vault/api/admin/health"
	"github.com/vechain/thor-vault/api/delegations"
	"github.com/vechain/thor-vault/api/doc"
	"github.com/vechain/thor-vault/api/events"
	"github.com/vechain/thor-vault/api/middleware"
	"github.com/vechain/thor-vault/api/proposals"
	"github.com/vechain/thor-vault/log"
	"github.com/vechain/thor-vault/metrics"
	"github.com/vechain/thor-vault/runtime"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins       string
	CallGasLimit         uint64
	SkipLogs             bool
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	Log5xxErrors         bool
	EnableMetrics        bool
	LogsLimit            uint64
}

// New return api router
func New(rt *runtime.Runtime, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	router.PathPrefix("/doc").Handler(
		http.StripPrefix("/doc/", http.FileServer(http.FS(doc.FS))),
	)
	router.Path("/").HandlerFunc(
		func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, "doc/vault.yaml", http.StatusTemporaryRedirect)
		})

	delegations.New(rt, opts.CallGasLimit).
		Mount(router, "/delegations")
	proposals.New(rt, opts.CallGasLimit).
		Mount(router, "")
	if !opts.SkipLogs && rt.LogDB() != nil {
		events.New(rt.LogDB(), opts.LogsLimit).
			Mount(router, "/events")
	}

	health.NewAPI(health.New(rt)).
		Mount(router, "/admin/health")

	if opts.EnableMetrics {
		router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
		handlers.ExposedHeaders([]string{"x-vault-ver"}),
	)(handler)

	enabled := opts.EnableReqLogger
	if enabled == nil {
		enabled = &atomic.Bool{}
	}
	handler = middleware.RequestLoggerMiddleware(logger, enabled, opts.SlowQueriesThreshold, opts.Log5xxErrors)(handler)

	return func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("x-vault-ver", doc.Version())
		handler.ServeHTTP(w, req)
	}
}
