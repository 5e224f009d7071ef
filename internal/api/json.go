package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"pickroute/internal/opt"
)

// Problem represents an RFC7807 problem details response body.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeProblem(w http.ResponseWriter, status int, title, detail, instance string) {
	writeJSON(w, status, Problem{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: instance,
	})
}

// writeOptimizeError maps optimizer sentinel errors onto problem responses.
// A malformed bin location is the caller's fault; bad geometry means the
// active config cannot support the computation.
func writeOptimizeError(w http.ResponseWriter, err error, instance string) {
	switch {
	case errors.Is(err, opt.ErrMalformedLocation):
		writeProblem(w, http.StatusBadRequest, "Malformed bin location", err.Error(), instance)
	case errors.Is(err, opt.ErrBadGeometry):
		writeProblem(w, http.StatusInternalServerError, "Invalid warehouse configuration", err.Error(), instance)
	default:
		writeProblem(w, http.StatusInternalServerError, "Optimize failed", err.Error(), instance)
	}
}
