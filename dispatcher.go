package lsbx

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-lsbx/core"
	"github.com/goliatone/go-lsbx/transport"
)

// IdempotencyKeyHeader carries the caller-supplied or generated
// idempotency key on mutating requests.
const IdempotencyKeyHeader = "Idempotency-Key"

// GenerateIdempotencyKey returns a fresh v4 UUID suitable for the
// idempotency header.
func GenerateIdempotencyKey() string {
	return uuid.NewString()
}

// Request performs one authenticated exchange against the API. body is
// JSON encoded when non-nil; headers and query are merged into the
// request with caller values winning over defaults.
//
// A 401 invalidates the stored token and returns an authentication
// error without resending; the caller decides whether to retry. Any
// other non-2xx status becomes an API error built from the response
// body. Transport failures surface as request-failed errors with no
// HTTP status.
func (c *Client) Request(ctx context.Context, method, path string, body any, headers, query map[string]string) (*transport.Envelope, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	var encoded []byte
	if body != nil {
		encoded, err = json.Marshal(body)
		if err != nil {
			return nil, core.NewValidationError("request body is not encodable: " + err.Error())
		}
	}

	requestHeaders := map[string]string{
		"Authorization": "Bearer " + token,
		"Content-Type":  "application/json",
		"Accept":        "application/json",
	}
	for name, value := range headers {
		requestHeaders[name] = value
	}

	envelope, err := c.adapter.Do(ctx, transport.Request{
		Method:  method,
		URL:     c.config.BaseURL + "/" + strings.TrimLeft(path, "/"),
		Headers: requestHeaders,
		Query:   query,
		Body:    encoded,
		Timeout: c.config.RequestTimeout(),
	})
	if err != nil {
		c.observe(method, path, body, 0, nil)
		c.logger.Error("request failed", "method", method, "path", path, "error", err)
		return nil, core.NewRequestFailedError(err)
	}

	c.observe(method, path, body, envelope.StatusCode, observedBody(envelope))

	if envelope.StatusCode == http.StatusUnauthorized {
		if invalidateErr := c.tokens.Invalidate(ctx); invalidateErr != nil {
			c.logger.Warn("token invalidation failed", "error", invalidateErr)
		}
		return nil, core.NewAuthenticationError("access token has expired")
	}
	if !envelope.IsSuccessful() {
		c.logger.Warn("api error response",
			"method", method,
			"path", path,
			"status", envelope.StatusCode,
		)
		return nil, core.NewAPIError(envelope.StatusCode, envelope.Data())
	}

	c.logger.Debug("request completed", "method", method, "path", path, "status", envelope.StatusCode)
	return envelope, nil
}

func (c *Client) Get(ctx context.Context, path string, query map[string]string) (*transport.Envelope, error) {
	return c.Request(ctx, http.MethodGet, path, nil, nil, query)
}

func (c *Client) Post(ctx context.Context, path string, body any, headers map[string]string) (*transport.Envelope, error) {
	return c.Request(ctx, http.MethodPost, path, body, headers, nil)
}

func (c *Client) Patch(ctx context.Context, path string, body any) (*transport.Envelope, error) {
	return c.Request(ctx, http.MethodPatch, path, body, nil, nil)
}

func (c *Client) Delete(ctx context.Context, path string, body any) (*transport.Envelope, error) {
	return c.Request(ctx, http.MethodDelete, path, body, nil, nil)
}

// observe feeds the request record to the registered observer. The
// observer cannot alter handling; a panic inside it is swallowed.
func (c *Client) observe(method, path string, requestBody any, status int, responseBody any) {
	if c.observer == nil {
		return
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			c.logger.Warn("request observer panicked", "panic", recovered)
		}
	}()
	c.observer(core.RequestRecord{
		Method:         method,
		Path:           path,
		RequestBody:    requestBody,
		ResponseStatus: status,
		ResponseBody:   responseBody,
	})
}

func observedBody(envelope *transport.Envelope) any {
	if envelope == nil {
		return nil
	}
	if list := envelope.List(); list != nil {
		return list
	}
	if data := envelope.Data(); data != nil {
		return data
	}
	return nil
}

// idempotencyHeaders returns the headers for a mutating request,
// generating a key when the caller passed none. The caller's key is
// forwarded untouched.
func idempotencyHeaders(key string) map[string]string {
	if key == "" {
		key = GenerateIdempotencyKey()
	}
	return map[string]string{IdempotencyKeyHeader: key}
}
