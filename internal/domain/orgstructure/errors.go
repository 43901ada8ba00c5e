package orgstructure

import "errors"

var (
	ErrUnsupportedAction = errors.New("unsupported change action")
)
