package host

import "errors"

var (
	// ErrTabNotFound is returned when a tab id does not refer to an open tab.
	ErrTabNotFound = errors.New("tab does not exist")

	// ErrNoHistory is returned by History.Back when there is no earlier entry.
	ErrNoHistory = errors.New("no previous page in history")

	// ErrInvalidURL is returned when a navigation target is empty.
	ErrInvalidURL = errors.New("invalid navigation url")
)
