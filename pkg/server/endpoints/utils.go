package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/criteria"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/server/store"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/service"
)

// ErrorResponse is the payload under "error" in every failed response
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var errBadBody = errors.New("malformed request body")

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithServiceError maps service and store errors to a status code.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
	}
	respondWithError(w, code, ErrorResponse{Code: codeFor(code), Message: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrReferenced):
		return http.StatusConflict
	case errors.Is(err, store.ErrIDExists),
		errors.Is(err, store.ErrInvalidReference),
		errors.Is(err, service.ErrInvalidID),
		errors.Is(err, criteria.ErrInvalidCriteria),
		errors.Is(err, errBadBody):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func codeFor(status int) string {
	switch status {
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusBadRequest:
		return "bad_request"
	}
	return "internal_error"
}
