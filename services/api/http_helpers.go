package api

import (
	"encoding/json"
	"io"
	"net/http"
)

// decodeJSON decodes the request body into dest best-effort. A missing,
// empty, or malformed body leaves dest at its zero value; the validation
// layer then reports the missing fields.
func decodeJSON(r *http.Request, dest any) {
	if r.Body == nil {
		return
	}
	defer r.Body.Close()

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return
	}
	_ = json.Unmarshal(data, dest)
}

// respondJSON writes status and payload. A nil payload serializes as the
// empty object, the pipeline's default body.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		payload = map[string]any{}
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// respondError writes status and the uniform error body. The Error field is
// the sole diagnostic surface exposed to clients.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"Error": msg})
}
