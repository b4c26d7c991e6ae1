package apperrors

import "errors"

// Domain entity errors represent records that have not been stored yet.
var (
	// ErrGoalNotFound indicates that no goal profile has been set up.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrMonthNotInSchedule indicates a month key outside the stored schedule.
	ErrMonthNotInSchedule = errors.New("month is not part of the schedule")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInvalidMonth indicates a month key that is not in YYYY-MM form.
	ErrInvalidMonth = errors.New("invalid month format")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveGoal     = errors.New("failed to retrieve goal")
	ErrFailedToSaveGoal         = errors.New("failed to save goal")
	ErrFailedToComputeSchedule  = errors.New("failed to compute schedule")
	ErrFailedToRetrieveSettings = errors.New("failed to retrieve settings")
	ErrFailedToSaveSettings     = errors.New("failed to save settings")
	ErrFailedToClearData        = errors.New("failed to clear data")
	ErrFailedToGetVersionInfo   = errors.New("failed to get version information")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrCorruptRecord indicates a stored record that cannot be decoded or unsealed.
	ErrCorruptRecord = errors.New("stored record is corrupt")
)
