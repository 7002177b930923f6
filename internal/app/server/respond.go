package server

import (
	"encoding/json"
	"net/http"

	"github.com/chess-vn/skbclub/pkg/logging"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode response", zap.Error(err))
	}
}

func writeJSONError(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, ErrorResponse{
		Error: err.Error(),
		Code:  code,
	})
}
