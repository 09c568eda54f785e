package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/dmitrijs2005/gophauth/internal/server/validation"
)

const (
	maxBodyBytes      = 1 << 20
	healthPingTimeout = 2 * time.Second
)

type tokenResponse struct {
	Token string `json:"token"`
}

type messageResponse struct {
	Msg string `json:"msg"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func (s *HTTPServer) registerUser(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRegistration(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, validation.NewBodyError("Invalid request body"))
		return
	}

	token, err := s.users.Register(r.Context(), req)

	var vErr *validation.Error
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, tokenResponse{Token: token})
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, vErr)
	case errors.Is(err, common.ErrUserAlreadyExists):
		writeJSON(w, http.StatusBadRequest, messageResponse{Msg: common.ErrUserAlreadyExists.Error()})
	default:
		s.logger.Error(r.Context(), "registration failed", "error", err)
		serverError(w)
	}
}

// decodeRegistration accepts a JSON or form-encoded body. An empty body
// decodes to an empty request so that validation reports every field.
func decodeRegistration(w http.ResponseWriter, r *http.Request) (services.RegistrationRequest, error) {
	var req services.RegistrationRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return req, err
		}
		req.Name = r.PostFormValue("name")
		req.Email = r.PostFormValue("email")
		req.Password = r.PostFormValue("password")
		return req, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return req, err
	}
	return req, nil
}

func (s *HTTPServer) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn(r.Context(), "store ping failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, statusResponse{Status: "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func serverError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte("Server Error"))
}
