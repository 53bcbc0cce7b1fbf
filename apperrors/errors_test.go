package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, NotFound, KindOf(New(NotFound, "Lobby not found")))
	assert.Equal(t, Unknown, KindOf(errors.New("plain")))
	assert.Equal(t, Unknown, KindOf(nil))

	t.Run("Survives wrapping", func(t *testing.T) {
		err := fmt.Errorf("fetching lobby: %w", New(Forbidden, "Only the creator can delete the lobby"))
		assert.Equal(t, Forbidden, KindOf(err))
		assert.True(t, IsKind(err, Forbidden))
	})
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		Validation:   http.StatusBadRequest,
		NotFound:     http.StatusNotFound,
		AuthRequired: http.StatusUnauthorized,
		Conflict:     http.StatusConflict,
		Forbidden:    http.StatusForbidden,
		Unknown:      http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, HTTPStatus(New(kind, "x")), kind.String())
	}
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestFromStatus(t *testing.T) {
	cases := map[int]Kind{
		http.StatusBadRequest:          Validation,
		http.StatusNotFound:            NotFound,
		http.StatusUnauthorized:        AuthRequired,
		http.StatusConflict:            Conflict,
		http.StatusForbidden:           Forbidden,
		http.StatusInternalServerError: Unknown,
		http.StatusBadGateway:          Unknown,
	}
	for status, kind := range cases {
		err := FromStatus(status, "msg")
		assert.Equal(t, kind, err.Kind, "status %d", status)
		assert.Equal(t, "msg", err.Message)
	}
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Lobby not found", UserMessage(New(NotFound, "Lobby not found")))

	t.Run("Everything else collapses to the generic message", func(t *testing.T) {
		assert.Equal(t, "Something went wrong, try again", UserMessage(errors.New("dial tcp: timeout")))
		assert.Equal(t, "Something went wrong, try again", UserMessage(&Error{Kind: Unknown}))
	})
}

func TestNewValidation(t *testing.T) {
	err := NewValidation(map[string]string{"username": "Username is required"})
	assert.Equal(t, Validation, err.Kind)
	assert.Equal(t, "Form contains invalid fields", err.Message)
	assert.Equal(t, "Username is required", err.Fields["username"])
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(Unknown, "Something went wrong, try again", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}
