package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/valpere/honyaku/internal"
	"github.com/valpere/honyaku/internal/settings"
)

// handleMessage answers with the bare response envelope, the same shape the
// native-messaging host writes.
func (s *Server) handleMessage(c echo.Context) error {
	var req internal.TranslationRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return c.JSON(http.StatusBadRequest, internal.Failed("invalid message: "+err.Error()))
	}
	if req.Type != internal.MessageTypeRequestTranslation {
		resp := internal.Failed("unsupported message type: " + req.Type)
		resp.ID = req.ID
		return c.JSON(http.StatusBadRequest, resp)
	}

	// A requester that gives up does not cancel the remote call; its result
	// is simply discarded.
	ctx := context.WithoutCancel(c.Request().Context())
	return c.JSON(http.StatusOK, s.exec.Execute(ctx, req))
}

func (s *Server) handleGetSettings(c echo.Context) error {
	resolved, err := s.resolver.Resolve(c.Request().Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("resolve settings failed")
		return internalError(c, "Failed to load settings")
	}
	return success(c, map[string]any{
		"settings": resolved.Masked(),
	})
}

// handlePutSettings writes the given keys. A null value removes the key so
// its default applies again.
func (s *Server) handlePutSettings(c echo.Context) error {
	if s.store == nil {
		return internalError(c, "Settings store is not available")
	}

	var payload map[string]any
	if err := json.NewDecoder(c.Request().Body).Decode(&payload); err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}
	if len(payload) == 0 {
		return failValidation(c, map[string]string{"body": "at least one settings field is required"})
	}

	fieldErrors := map[string]string{}
	values := map[string]any{}
	var removals []string
	for key, value := range payload {
		if !settings.IsKnownKey(key) {
			fieldErrors[key] = "is not a supported settings field"
			continue
		}
		if value == nil {
			removals = append(removals, key)
			continue
		}
		if msg := checkValue(key, value); msg != "" {
			fieldErrors[key] = msg
			continue
		}
		values[key] = value
	}
	if len(fieldErrors) > 0 {
		return failValidation(c, fieldErrors)
	}

	ctx := c.Request().Context()
	if len(values) > 0 {
		if err := s.store.SetMany(ctx, values); err != nil {
			s.logger.Error().Err(err).Msg("write settings failed")
			return internalError(c, "Failed to save settings")
		}
	}
	sort.Strings(removals)
	for _, key := range removals {
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Error().Err(err).Str("key", key).Msg("delete setting failed")
			return internalError(c, "Failed to save settings")
		}
	}

	return s.handleGetSettings(c)
}

func checkValue(key string, value any) string {
	if settings.IsBoolKey(key) {
		if _, ok := value.(bool); !ok {
			return "must be a boolean"
		}
		return ""
	}
	if _, ok := value.(string); !ok {
		return fmt.Sprintf("must be a string, got %T", value)
	}
	return ""
}
