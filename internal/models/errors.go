package models

import "errors"

// Custom errors
var (
	ErrNotFound      = errors.New("stock not found")
	ErrNoData        = errors.New("watchlist is empty")
	ErrUnknownField  = errors.New("unknown field name")
	ErrUnknownMetric = errors.New("unknown metric name")
)
