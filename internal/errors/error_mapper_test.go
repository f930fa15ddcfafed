package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorKeepsAppError(t *testing.T) {
	orig := NewConflictError("house 3 booked")
	wrapped := fmt.Errorf("create order: %w", orig)

	got := MapError(wrapped)
	assert.Same(t, orig, got)
	assert.Equal(t, http.StatusConflict, got.HTTPStatus)
}

func TestMapErrorSentinels(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"not found", fmt.Errorf("house 9: %w", ErrNotFound), ErrCodeNoData, http.StatusNotFound},
		{"stale state", fmt.Errorf("order 2: %w", ErrStaleState), ErrCodeReq, http.StatusUnprocessableEntity},
		{"date conflict", fmt.Errorf("house 4: %w", ErrDateConflict), ErrCodeConflict, http.StatusConflict},
		{"unknown", stderrors.New("boom"), ErrCodeInternalError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.status, got.HTTPStatus)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestMapErrorNil(t *testing.T) {
	assert.Nil(t, MapError(nil))
}

func TestCode(t *testing.T) {
	assert.Equal(t, ErrCodeDB, Code(fmt.Errorf("x: %w", NewDBError("query failed", stderrors.New("conn reset")))))
	assert.Equal(t, "", Code(stderrors.New("plain")))
}
