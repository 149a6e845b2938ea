package statutory

import "errors"

var (
	ErrConfigNotFound      = errors.New("statutory config not found")
	ErrLeavePolicyNotFound = errors.New("leave policy not found")
)
