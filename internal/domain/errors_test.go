package domain_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/mcortez/taskstack/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		kind       error
		kindName   string
		statusCode int
	}{
		{
			name:       "validation",
			err:        domain.Validation("bad input"),
			kind:       domain.ErrValidation,
			kindName:   "ValidationError",
			statusCode: http.StatusBadRequest,
		},
		{
			name:       "unauthenticated",
			err:        domain.Unauthenticated("who are you"),
			kind:       domain.ErrUnauthenticated,
			kindName:   "Unauthenticated",
			statusCode: http.StatusUnauthorized,
		},
		{
			name:       "conflict",
			err:        domain.Conflict("taken"),
			kind:       domain.ErrConflict,
			kindName:   "Conflict",
			statusCode: http.StatusConflict,
		},
		{
			name:       "not found",
			err:        domain.NotFound("gone"),
			kind:       domain.ErrNotFound,
			kindName:   "NotFound",
			statusCode: http.StatusNotFound,
		},
		{
			name:       "internal",
			err:        domain.Internal(errors.New("db exploded")),
			kind:       domain.ErrInternal,
			kindName:   "Internal",
			statusCode: http.StatusInternalServerError,
		},
		{
			name:       "unknown error defaults to internal",
			err:        errors.New("anything"),
			kindName:   "Internal",
			statusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.kind != nil {
				assert.ErrorIs(t, tt.err, tt.kind)
			}
			assert.Equal(t, tt.kindName, domain.KindName(tt.err))
			assert.Equal(t, tt.statusCode, domain.HTTPStatus(tt.err))
		})
	}
}

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("row scan failed")
	err := domain.Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, domain.ErrInternal)

	// Kind survives another layer of wrapping.
	wrapped := fmt.Errorf("list tasks: %w", domain.NotFound("task not found"))
	assert.ErrorIs(t, wrapped, domain.ErrNotFound)
	assert.Equal(t, "NotFound", domain.KindName(wrapped))
	assert.Equal(t, http.StatusNotFound, domain.HTTPStatus(wrapped))
}
