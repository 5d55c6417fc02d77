package entity

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"gotest.tools/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{ErrValidation, http.StatusBadRequest},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrNotMatchMember, http.StatusForbidden},
		{ErrNotMessageSender, http.StatusForbidden},
		{ErrSwipeNotFound, http.StatusNotFound},
		{ErrMatchNotFound, http.StatusNotFound},
		{ErrMessageNotFound, http.StatusNotFound},
		{ErrUserNotFound, http.StatusNotFound},
		{ErrProfileNotFound, http.StatusNotFound},
		{ErrSwipeExists, http.StatusConflict},
		{ErrStorageUnavailable, http.StatusServiceUnavailable},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, HTTPStatus(tc.err), tc.status, tc.err.Error())
	}
}

func TestHTTPStatusSeesWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("record decision: %w", ErrSwipeExists)
	assert.Equal(t, HTTPStatus(wrapped), http.StatusConflict)
}
