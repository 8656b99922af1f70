package httpx

import "net/http"

type healthResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// healthHandler reports that the API process is up.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		return
	}
	WriteJSON(w, http.StatusOK, healthResponse{Message: "Server is running", Status: "OK"})
}
