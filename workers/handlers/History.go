package handlers

import (
	"net/http"

	"github.com/billyjitsu/across-network-automation/history"
)

// History serves the full ledger as recorded so far.
func History(recorder *history.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responseJSON(w, recorder.Records(), http.StatusOK)
	}
}
