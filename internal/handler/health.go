package handler

import (
	"encoding/json"
	"net/http"
)

// HandleHealthz reports liveness. It is the only route outside the auth
// middleware besides the page guards.
func HandleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
