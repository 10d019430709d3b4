package serializers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
)

// ErrorResponse is the wire shape of every non-2xx response body.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// RespondJSON writes a JSON response with the given status code and data.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode JSON response: %v\n", err)
	}
}

// RespondError writes a structured error body. The message must already be
// client-safe; internal detail never goes through this path.
func RespondError(w http.ResponseWriter, statusCode int, message string) {
	RespondJSON(w, statusCode, ErrorResponse{Status: statusCode, Message: message})
}
