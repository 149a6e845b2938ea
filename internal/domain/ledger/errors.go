package ledger

import "errors"

var (
	ErrAttendanceNotFound    = errors.New("attendance record not found")
	ErrLeaveLedgerNotFound   = errors.New("leave ledger not found")
	ErrAdvanceLedgerNotFound = errors.New("advance ledger not found")
	ErrFineNotFound          = errors.New("fine record not found")
	ErrLedgerVersionConflict = errors.New("leave ledger changed since it was read")
)
