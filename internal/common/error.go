package common

import "errors"

// ErrValidation is returned when a required field is missing. The check runs
// before any network call.
var ErrValidation = errors.New("Please fill in all fields")

var (
	ErrEmptyComment = errors.New("Comment cannot be empty.")
	ErrEmptyPost    = errors.New("Please provide content or an image for your post.")
)
