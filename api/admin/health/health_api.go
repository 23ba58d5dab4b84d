// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/thor-vault/api/restutil"
)

type API struct {
	healthStatus *Health
}

func NewAPI(healthStatus *Health) *API {
	return &API{
		healthStatus: healthStatus,
	}
}

func (h *API) handleGetHealth(w http.ResponseWriter, r *http.Request) error {
	var maxIdle time.Duration
	if v := r.URL.Query().Get("maxIdle"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return restutil.BadRequest(errors.WithMessage(err, "maxIdle"))
		}
		maxIdle = parsed
	}

	status, err := h.healthStatus.Status(r.Context(), maxIdle)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", restutil.JSONContentType)
	if !status.Healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	return restutil.WriteJSON(w, status)
}

func (h *API) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /admin/health").
		HandlerFunc(restutil.WrapHandlerFunc(h.handleGetHealth))
}
