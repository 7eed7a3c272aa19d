package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrTooManyRecords = errors.New("dataset exceeds the record limit")
)
