package exchange

import "errors"

var (
	ErrSnapshotNotFound = errors.New("rate snapshot not found")
	ErrUnexpectedStatus = errors.New("unexpected status from rate source")
	ErrEmptyRates       = errors.New("rate source returned no rates")
)
