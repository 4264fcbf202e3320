package goerror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_StatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid format", err: NewInvalidFormat("Invalid email type"), want: http.StatusBadRequest},
		{name: "invalid input", err: NewInvalidInput("", errors.New("boom")), want: http.StatusUnprocessableEntity},
		{name: "conflict", err: NewBusiness("busy", CodeConflict), want: http.StatusConflict},
		{name: "unavailable", err: NewBusiness("down", CodeUnavailable), want: http.StatusServiceUnavailable},
		{name: "server", err: NewServer(errors.New("dial tcp")), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gerr *Error
			require.ErrorAs(t, tt.err, &gerr)
			assert.Equal(t, tt.want, gerr.StatusCode())
		})
	}
}

func TestNewServer_KeepsCauseHidesMessage(t *testing.T) {
	t.Parallel()

	// Arrange
	cause := errors.New("535 authentication failed")

	// Act
	err := NewServer(cause, "Failed to send email")

	// Assert
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "Failed to send email", gerr.Msg())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, TypeServer, gerr.Type())
}

func TestNewInvalidInput_Fields(t *testing.T) {
	t.Parallel()

	err := NewInvalidInput("Invalid email data", nil, "name", "name is a required field")

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, map[string]string{"name": "name is a required field"}, gerr.Fields())

	odd := NewInvalidInput("", nil, "name")
	require.ErrorAs(t, odd, &gerr)
	assert.Equal(t, CodeInvalidFormat, gerr.Code())
}

func TestError_Is(t *testing.T) {
	t.Parallel()

	sentinel := NewInvalidFormat("Invalid email type")

	assert.ErrorIs(t, NewInvalidFormat("Invalid email type"), sentinel)
	assert.NotErrorIs(t, NewInvalidFormat("Invalid request body"), sentinel)
}
