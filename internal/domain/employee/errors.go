package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeIDExists = errors.New("employee id already exists")
	ErrLeavingBeforeJoining = errors.New("date of leaving is before date of joining")
)
