package entity

import "errors"

var (
	// ErrNotFound is returned by repositories when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrActivityAlreadyCompleted is returned when a once-per-day activity
	// has already been recorded for the given date.
	ErrActivityAlreadyCompleted = errors.New("activity already completed for the day")

	ErrItemAlreadyUsed = errors.New("inventory item already used")
)
