package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ClientErrorConfiguration  = "CLIENT_CONFIGURATION"
	ClientErrorAuthentication = "CLIENT_AUTHENTICATION"
	ClientErrorAPI            = "CLIENT_API"
	ClientErrorValidation     = "CLIENT_VALIDATION"
)

func NewConfigurationError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithTextCode(ClientErrorConfiguration)
}

func NewAuthenticationError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(ClientErrorAuthentication)
}

// NewTokenExchangeError reports a failed client-credentials exchange,
// appending the upstream reason when the auth server supplied one.
func NewTokenExchangeError(reason string) *goerrors.Error {
	message := "failed to retrieve access token from LSBX API"
	if strings.TrimSpace(reason) != "" {
		message += ": " + strings.TrimSpace(reason)
	}
	return NewAuthenticationError(message)
}

func NewValidationError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryValidation).
		WithCode(http.StatusUnprocessableEntity).
		WithTextCode(ClientErrorValidation)
}

// NewRequestFailedError wraps a transport-level failure (connection refused,
// timeout, DNS). These carry no HTTP status; Code stays zero.
func NewRequestFailedError(cause error) *goerrors.Error {
	if cause == nil {
		return goerrors.New("request failed", goerrors.CategoryExternal).
			WithTextCode(ClientErrorAPI)
	}
	return goerrors.Wrap(cause, goerrors.CategoryExternal, "request failed: "+cause.Error()).
		WithTextCode(ClientErrorAPI)
}

// NewAPIError classifies a non-2xx, non-401 response. The decoded body, when
// present, contributes message/type/code/details; a body that is not valid
// JSON falls back to a generic message instead of failing a second time.
func NewAPIError(statusCode int, data map[string]any) *goerrors.Error {
	message := readString(data, "message")
	if message == "" {
		message = "unknown API error"
	}
	err := goerrors.New(message, goerrors.CategoryExternal).
		WithCode(statusCode).
		WithTextCode(ClientErrorAPI)

	metadata := map[string]any{"http_status": statusCode}
	if errorType := readString(data, "type"); errorType != "" {
		metadata["error_type"] = errorType
	}
	if errorCode := readString(data, "code"); errorCode != "" {
		metadata["error_code"] = errorCode
	}
	if details := readString(data, "details"); details != "" {
		metadata["error_details"] = details
	}
	return err.WithMetadata(metadata)
}

func IsAuthentication(err error) bool {
	return hasTextCode(err, ClientErrorAuthentication)
}

func IsAPI(err error) bool {
	return hasTextCode(err, ClientErrorAPI)
}

func IsConfiguration(err error) bool {
	return hasTextCode(err, ClientErrorConfiguration)
}

// HTTPStatus extracts the HTTP status code carried by an API or
// authentication error, or 0 when none applies.
func HTTPStatus(err error) int {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return 0
	}
	return richErr.Code
}

func hasTextCode(err error, textCode string) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == textCode
}

func readString(data map[string]any, key string) string {
	if len(data) == 0 {
		return ""
	}
	value, ok := data[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}
