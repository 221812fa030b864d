package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/billyjitsu/across-network-automation/registry"

	"github.com/go-chi/chi"
)

// TokenRoutes enumerates every chain pair the given token can bridge between.
func TokenRoutes(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))

	routes, err := registry.Routes(symbol)
	if err != nil {
		if errors.Is(err, registry.ErrNotSupported) {
			responseJSON(w, &APIResponse{Status: "error", Message: "unknown token"}, http.StatusNotFound)
			return
		}
		responseJSON(w, &APIResponse{Status: "error", Message: err.Error()}, http.StatusInternalServerError)
		return
	}

	out := make([]APIRouteResponse, 0, len(routes))
	for _, rt := range routes {
		out = append(out, APIRouteResponse{
			Token:            rt.Token,
			OriginChainID:    rt.OriginChainID,
			DestinationChain: rt.DestinationChain,
			InputToken:       rt.InputToken,
			OutputToken:      rt.OutputToken,
		})
	}
	responseJSON(w, out, http.StatusOK)
}
