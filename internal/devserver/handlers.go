package devserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// validate is the package-level singleton validator for request bodies.
var validate = validator.New()

// handlers carries the dependencies shared by every endpoint.
type handlers struct {
	store *Store
	auth  *sessionAuth
}

// detailEnvelope mirrors the real backend's error shape: {"detail": "..."}.
type detailEnvelope struct {
	Detail string `json:"detail"`
}

type messageEnvelope struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, detailEnvelope{Detail: detail})
}

// decodeValid decodes the JSON body into v and runs validate tags.
func decodeValid(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return validate.Struct(v)
}
