package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"name": "Ann", "email": "ann@x.io", "password": "secret1"}, body)

		_, _ = w.Write([]byte(`{"token":"tok"}`))
	}))
	defer srv.Close()

	token, err := NewClient(srv.URL+"/", srv.Client()).Register(context.Background(), "Ann", "ann@x.io", []byte("secret1"))
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}

func TestRegister_Rejected(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"duplicate", `{"msg":"User already exists"}`, []string{"User already exists"}},
		{"validation", `{"errors":[{"msg":"Please add name"},{"msg":"Please include a valid email"}]}`,
			[]string{"Please add name", "Please include a valid email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, nil).Register(context.Background(), "Ann", "ann@x.io", []byte("secret1"))

			var rej *RejectedError
			require.ErrorAs(t, err, &rej)
			assert.Equal(t, http.StatusBadRequest, rej.Status)
			assert.Equal(t, tt.want, rej.Messages)
		})
	}
}

func TestRegister_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Server Error"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).Register(context.Background(), "Ann", "ann@x.io", []byte("secret1"))
	assert.ErrorIs(t, err, ErrServer)
}

func TestRegister_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := NewClient(addr, nil).Register(context.Background(), "Ann", "ann@x.io", []byte("secret1"))
	assert.ErrorIs(t, err, ErrUnavailable)
}
