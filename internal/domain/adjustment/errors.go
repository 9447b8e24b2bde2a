package adjustment

import "errors"

var (
	ErrAdjustmentNotFound         = errors.New("Leave adjustment not found")
	ErrAdjustmentAlreadyProcessed = errors.New("Leave adjustment already processed")
)
