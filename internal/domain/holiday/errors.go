package holiday

import "errors"

var ErrHolidayNotFound = errors.New("Public holiday not found")
