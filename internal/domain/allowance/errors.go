package allowance

import "errors"

var (
	ErrAllowanceNotFound         = errors.New("Leave allowance not found")
	ErrAllowanceAlreadyProcessed = errors.New("Leave allowance already processed")
)
