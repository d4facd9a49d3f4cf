package transport

import (
	"encoding/json"
	"strings"
)

// Envelope wraps a raw HTTP response. It is immutable once constructed; the
// JSON payload is decoded at most once, on first access, and stays nil when
// the body is not valid JSON.
type Envelope struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte

	decoded bool
	payload any
}

func NewEnvelope(statusCode int, headers map[string]string, body []byte) *Envelope {
	if headers == nil {
		headers = map[string]string{}
	}
	return &Envelope{
		StatusCode: statusCode,
		Headers:    headers,
		Body:       body,
	}
}

// Data returns the decoded JSON body as an object, or nil when the body is
// absent, not valid JSON, or not a JSON object.
func (e *Envelope) Data() map[string]any {
	data, _ := e.decode().(map[string]any)
	return data
}

// List returns the decoded JSON body as an array, or nil otherwise.
func (e *Envelope) List() []any {
	list, _ := e.decode().([]any)
	return list
}

func (e *Envelope) decode() any {
	if e == nil {
		return nil
	}
	if !e.decoded {
		e.decoded = true
		if len(e.Body) > 0 {
			var payload any
			if err := json.Unmarshal(e.Body, &payload); err == nil {
				e.payload = payload
			}
		}
	}
	return e.payload
}

// Header performs a case-insensitive header lookup.
func (e *Envelope) Header(name string) string {
	if e == nil {
		return ""
	}
	for key, value := range e.Headers {
		if strings.EqualFold(key, name) {
			return value
		}
	}
	return ""
}

func (e *Envelope) IsSuccessful() bool {
	return e != nil && e.StatusCode >= 200 && e.StatusCode < 300
}

func (e *Envelope) IsClientError() bool {
	return e != nil && e.StatusCode >= 400 && e.StatusCode < 500
}

func (e *Envelope) IsServerError() bool {
	return e != nil && e.StatusCode >= 500
}
