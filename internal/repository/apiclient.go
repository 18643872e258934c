package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	apperrors "hotelbooking/internal/errors"

	"github.com/google/uuid"
)

const (
	requestIDHeader   = "X-Request-ID"
	idempotencyHeader = "Idempotency-Key"
	maxErrorBodyBytes = 64 << 10
)

// APIClient performs JSON requests against the hotel backend. The session
// cookie and bearer token travel on the underlying http.Client (cookie jar
// and transport), so repositories never touch credentials.
type APIClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewAPIClient(baseURL string, httpClient *http.Client) *APIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &APIClient{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: httpClient}
}

type request struct {
	method  string
	path    string
	query   url.Values
	body    any
	headers map[string]string
}

func (c *APIClient) do(ctx context.Context, req request, out any) error {
	endpoint := c.BaseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("encoding %s %s: %w", req.method, req.path, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return fmt.Errorf("building %s %s: %w", req.method, req.path, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set(requestIDHeader, uuid.NewString())
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return apperrors.NewAPIError(resp.StatusCode, errorMessage(resp.StatusCode, raw))
	}

	if out == nil {
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s %s: %w", req.method, req.path, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if rawOut, ok := out.(*json.RawMessage); ok {
		*rawOut = append((*rawOut)[:0], raw...)
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding %s %s: %w", req.method, req.path, err)
	}
	return nil
}

// errorMessage extracts a human readable message from an error body. The
// backend answers with {message}, {error} or ProblemDetails {title, detail},
// and sometimes with plain text.
func errorMessage(status int, raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return http.StatusText(status)
	}

	var problem struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Title   string `json:"title"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(trimmed, &problem); err == nil {
		switch {
		case problem.Message != "":
			return problem.Message
		case problem.Error != "":
			return problem.Error
		case problem.Detail != "":
			return problem.Detail
		case problem.Title != "":
			return problem.Title
		}
		return http.StatusText(status)
	}

	var text string
	if err := json.Unmarshal(trimmed, &text); err == nil && text != "" {
		return text
	}
	return string(trimmed)
}
