package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/doodlesbykumbi/acts/pkg/duty"
	"github.com/doodlesbykumbi/acts/pkg/identity"
	"github.com/doodlesbykumbi/acts/pkg/server/store"
	"github.com/doodlesbykumbi/acts/pkg/validate"
)

// Response is the envelope around every REST API response.
type Response struct {
	Success      bool        `json:"success"`
	Message      string      `json:"message"`
	Data         interface{} `json:"data,omitempty"`
	ResponseCode int         `json:"responseCode"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func respondOK(w http.ResponseWriter, code int, message string, data interface{}) {
	respondWithJSON(w, code, Response{
		Success:      true,
		Message:      message,
		Data:         data,
		ResponseCode: code,
	})
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, Response{
		Success:      false,
		Message:      message,
		ResponseCode: code,
	})
}

// resolveError maps err to a status code and client-facing message. Causes
// of internal errors are logged and never sent to the client.
func resolveError(log zerolog.Logger, r *http.Request, err error) (int, string) {
	var invalid *validate.Error
	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest, invalid.Message
	case errors.Is(err, store.ErrPersonNotFound):
		return http.StatusNotFound, store.ErrPersonNotFound.Error()
	case errors.Is(err, store.ErrPersonExists):
		return http.StatusBadRequest, store.ErrPersonExists.Error()
	case errors.Is(err, store.ErrDutyExists):
		return http.StatusBadRequest, store.ErrDutyExists.Error()
	case errors.Is(err, store.ErrDutyTaken):
		return http.StatusBadRequest, store.ErrDutyTaken.Error()
	case errors.Is(err, duty.ErrPersonRetired):
		return http.StatusBadRequest, duty.ErrPersonRetired.Error()
	case errors.Is(err, duty.ErrStartNotAfterCurrent):
		return http.StatusBadRequest, duty.ErrStartNotAfterCurrent.Error()
	case errors.Is(err, duty.ErrRetiredBeforeCareerStart):
		return http.StatusBadRequest, duty.ErrRetiredBeforeCareerStart.Error()
	}

	log.Error().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("request_id", identity.RequestID(r.Context())).
		Msg("unhandled error")
	return http.StatusInternalServerError, "internal server error"
}

func handleError(log zerolog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	code, message := resolveError(log, r, err)
	respondWithError(w, code, message)
}

// pathName returns the unescaped {name} route variable.
func pathName(r *http.Request) (string, error) {
	name, err := url.PathUnescape(mux.Vars(r)["name"])
	if err != nil {
		return "", validate.Errorf("invalid name in path")
	}
	return name, nil
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return validate.Errorf("invalid request body: %v", err)
	}
	return nil
}
