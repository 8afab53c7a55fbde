package conveyor

import "errors"

var (
	// Task errors.
	ErrNilTask = errors.New("conveyor: task has no run operation")

	// Cron errors.
	ErrDuplicateEntry = errors.New("conveyor: duplicate cron entry")
	ErrEntryNotFound  = errors.New("conveyor: cron entry not found")
	ErrInvalidSpec    = errors.New("conveyor: invalid cron spec")
)
