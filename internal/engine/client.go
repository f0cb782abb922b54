package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// APIError is a non-2xx answer from a provider.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s", e.StatusCode, e.Message)
}

// errorBody matches the error document of both the Google and OpenAI APIs.
type errorBody struct {
	Error struct {
		Code    any    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func newAPIError(resp *resty.Response, body *errorBody) error {
	msg := ""
	if body != nil {
		msg = strings.TrimSpace(body.Error.Message)
	}
	if msg == "" {
		msg = strings.TrimSpace(resp.String())
	}
	if msg == "" {
		msg = strings.TrimSpace(strings.TrimPrefix(resp.Status(), fmt.Sprintf("%d", resp.StatusCode())))
	}
	return &APIError{StatusCode: resp.StatusCode(), Message: msg}
}

// NewHTTPClient builds the resty client shared by every engine. A zero timeout
// leaves calls unbounded.
func NewHTTPClient(timeout time.Duration, logger zerolog.Logger) *resty.Client {
	c := resty.New().
		SetLogger(restyLogger{logger: logger}).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return c
}

// restyLogger routes resty's own diagnostics into zerolog.
type restyLogger struct {
	logger zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error().Str("component", "http").Msgf(strings.TrimSpace(format), v...)
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn().Str("component", "http").Msgf(strings.TrimSpace(format), v...)
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug().Str("component", "http").Msgf(strings.TrimSpace(format), v...)
}
