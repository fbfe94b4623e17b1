package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cacutler/recipearchive/internal/client/models"
	"github.com/cacutler/recipearchive/internal/common"
	"github.com/cacutler/recipearchive/internal/logging"
	"github.com/google/uuid"
)

// request performs one exchange with the API.
//
// It returns false without touching out when the server answers 204 No
// Content. Any other 2xx body must be JSON: it is decoded into out, or
// checked and dropped when out is nil. Non-2xx statuses become *APIError;
// transport and decoding failures become *TransportError.
func (c *HTTPClient) request(ctx context.Context, method, endpoint string, body any, requiresAuth bool, out any) (bool, error) {
	op := method + " " + endpoint
	requestID := uuid.NewString()
	ctx = logging.WithRequestID(ctx, requestID)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return false, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return false, fmt.Errorf("%s: build request: %w", op, err)
	}

	req.Header.Set(common.ContentTypeHeader, common.ContentTypeJSON)
	req.Header.Set(common.RequestIDHeader, requestID)
	if requiresAuth {
		if token, ok := c.tokens.Get(ctx); ok {
			req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
		}
	}

	log := c.logger.With("method", method, "path", endpoint)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return false, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request finished", "status", resp.StatusCode, "duration", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, newAPIError(resp)
	}

	if resp.StatusCode == http.StatusNoContent {
		return false, nil
	}
	if out == nil {
		out = new(json.RawMessage)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, &TransportError{Op: op, Err: err, Decode: true}
	}
	return true, nil
}

// newAPIError reads the error body on a best-effort basis. An unreadable or
// non-JSON body falls back to the status-coded message.
func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("API Error: %d", resp.StatusCode),
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}

	var eb models.ErrorBody
	if err := json.Unmarshal(raw, &eb); err != nil {
		return apiErr
	}
	if eb.Message != "" {
		apiErr.Message = eb.Message
	}
	apiErr.Detail = eb.Error
	return apiErr
}

// call runs request for a JSON response of type T. A 204 yields nil.
func call[T any](ctx context.Context, c *HTTPClient, method, endpoint string, body any, requiresAuth bool) (*T, error) {
	var out T
	ok, err := c.request(ctx, method, endpoint, body, requiresAuth, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}
