package ilq

import "errors"

var (
	ErrInsufficientData = errors.New("insufficient data for trend analysis")
)
