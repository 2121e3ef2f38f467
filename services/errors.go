package services

import "errors"

// Validation errors are returned before any state is touched; the caller
// must correct the input. Not-found errors surface as-is. ErrConflict is
// the only error a caller should retry, with freshly reloaded state.
var (
	ErrEmptyNote         = errors.New("check-in note cannot be empty")
	ErrEmptyComment      = errors.New("comment text cannot be empty")
	ErrCategoryRequired  = errors.New("category is required for manual posts")
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrPostNotFound      = errors.New("post not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrConflict          = errors.New("concurrent update conflict")
)

// errAlreadyCheckedIn aborts the membership mutation on a same-day
// duplicate. It never escapes CheckIn; the duplicate is a normal outcome,
// not an error.
var errAlreadyCheckedIn = errors.New("already checked in today")
