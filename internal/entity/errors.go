package entity

import (
	"errors"
	"net/http"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrSwipeExists        = errors.New("swipe already recorded for this pair")
	ErrSwipeNotFound      = errors.New("swipe not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrMessageNotFound    = errors.New("message not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrNotMatchMember     = errors.New("user is not part of this match")
	ErrNotMessageSender   = errors.New("only the sender can delete a message")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// HTTPStatus maps an error kind to the status the request boundary reports.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotMatchMember), errors.Is(err, ErrNotMessageSender):
		return http.StatusForbidden
	case errors.Is(err, ErrSwipeNotFound),
		errors.Is(err, ErrMatchNotFound),
		errors.Is(err, ErrMessageNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrSwipeExists):
		return http.StatusConflict
	case errors.Is(err, ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
