// Package client talks to the registration server over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Token  string `json:"token"`
	Msg    string `json:"msg"`
	Errors []struct {
		Msg string `json:"msg"`
	} `json:"errors"`
}

// Register creates an account and returns the session token. A rejected
// request yields *RejectedError, a server failure ErrServer.
func (c *Client) Register(ctx context.Context, name, email string, password []byte) (string, error) {
	body, err := json.Marshal(registerRequest{Name: name, Email: email, Password: string(password)})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/users", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", ErrServer
	}

	var out registerResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		rej := &RejectedError{Status: resp.StatusCode}
		if out.Msg != "" {
			rej.Messages = append(rej.Messages, out.Msg)
		}
		for _, e := range out.Errors {
			rej.Messages = append(rej.Messages, e.Msg)
		}
		return "", rej
	}

	return out.Token, nil
}
