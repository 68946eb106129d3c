package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/fadilmartias/resume-critique/internal/critique"
	"github.com/fadilmartias/resume-critique/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: fiber.StatusInternalServerError},
		{name: "fiber error", err: fiber.NewError(fiber.StatusRequestEntityTooLarge, "too big"), want: fiber.StatusRequestEntityTooLarge},
		{name: "form error", err: NewFormError("invalid", map[string]string{"filename": "required"}), want: fiber.StatusBadRequest},
		{name: "not found", err: fmt.Errorf("lookup: %w", repository.ErrNotFound), want: fiber.StatusNotFound},
		{name: "generation", err: &critique.GenerationError{Model: "gpt-4", Err: errors.New("503")}, want: fiber.StatusBadGateway},
		{name: "other", err: errors.New("disk full"), want: fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func doErrorResponse(t *testing.T, verbose bool, err error) (int, map[string]any) {
	t.Helper()
	app := fiber.New()
	r := NewResponder(verbose)
	app.Get("/", func(c *fiber.Ctx) error {
		return r.ErrorResponse(c, ErrorResponseFormat{Message: "failed"}, err)
	})

	resp, testErr := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, testErr)
	raw, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestErrorResponseHidesDetailsWhenNotVerbose(t *testing.T) {
	code, body := doErrorResponse(t, false, &critique.GenerationError{Err: errors.New("upstream 503")})

	assert.Equal(t, fiber.StatusBadGateway, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "failed", body["message"])
	assert.NotContains(t, body, "dev_message")
	assert.NotContains(t, body, "trace")
}

func TestErrorResponseVerbose(t *testing.T) {
	code, body := doErrorResponse(t, true, NewFormError("invalid", map[string]string{"filename": "required"}))

	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "form error: invalid", body["dev_message"])
	assert.Equal(t, map[string]any{"filename": "required"}, body["details"])
	assert.NotEmpty(t, body["trace"])
}
