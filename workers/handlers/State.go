package handlers

import (
	"net/http"

	"github.com/billyjitsu/across-network-automation/types"
)

// State reports run progress: which operation is active and the
// completed/failed counts so far.
func State(state *types.RunState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responseJSON(w, state.Snapshot(), http.StatusOK)
	}
}
