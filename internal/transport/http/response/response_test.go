package response

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"issue-tracker/internal/domain"
)

func TestFromError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   ErrorBody
	}{
		{"not found", domain.NotFound("Project"), http.StatusNotFound,
			ErrorBody{Error: "Resource not found", Message: "Project not found"}},
		{"reference", domain.ReferenceError("Reporter not found"), http.StatusBadRequest,
			ErrorBody{Error: "Reporter not found"}},
		{"validation", domain.ValidationError("Title can't be blank", "Status is not included in the list"), http.StatusUnprocessableEntity,
			ErrorBody{Error: "Validation failed", Details: []string{"Title can't be blank", "Status is not included in the list"}}},
		{"conflict", domain.Conflict("Email already exists"), http.StatusConflict,
			ErrorBody{Error: "Email already exists"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := FromError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.body, body)
		})
	}
}

func TestFromErrorHidesInternalCause(t *testing.T) {
	status, body := FromError(domain.Internal("Failed to fetch issues", errors.New("pq: connection refused")))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed to fetch issues", body.Error)
	assert.NotEmpty(t, body.Timestamp)

	status, body = FromError(errors.New("raw driver error"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body.Error)
	assert.Empty(t, body.Message)
}

func TestNewUsesTitle(t *testing.T) {
	assert.Equal(t, ErrorBody{Error: "Payload too large", Message: "request body too large"},
		New(http.StatusRequestEntityTooLarge, "request body too large"))
	assert.Equal(t, "I'm a teapot", New(http.StatusTeapot, "").Error)
}
