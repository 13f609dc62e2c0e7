package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pable/go-draft-metrics/internal/logger"
	"github.com/pable/go-draft-metrics/internal/service"
)

// Response statuses.
const (
	StatusOK     = "ok"
	StatusNoData = "no_data"
)

// envelope is the body of every successful or degraded response.
type envelope struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func (s *server) ok(w http.ResponseWriter, r *http.Request, data any) {
	if err := writeJSON(w, http.StatusOK, envelope{Status: StatusOK, Data: data}); err != nil {
		s.log.Error(r.Context(), "write response", logger.Error(err))
	}
}

func (s *server) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	if err := writeJSON(w, status, errorBody{Error: message}); err != nil {
		s.log.Error(r.Context(), "write error response", logger.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (s *server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	s.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// serviceError maps analyzer errors onto responses. A fetch failure is not an
// HTTP error: the client gets a no_data envelope and renders a degraded view.
func (s *server) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNoData):
		if werr := writeJSON(w, http.StatusOK, envelope{Status: StatusNoData}); werr != nil {
			s.log.Error(r.Context(), "write response", logger.Error(werr))
		}
	case errors.Is(err, service.ErrInvalidMode), errors.Is(err, service.ErrTeamRequired):
		s.badRequest(w, r, err)
	default:
		s.log.Error(r.Context(), "request failed", logger.String("path", r.URL.Path), logger.Error(err))
		s.errorResponse(w, r, http.StatusInternalServerError,
			"the server encountered a problem and could not process your request")
	}
}
