package pricing

import "errors"

var (
	ErrInvalidParameter  = errors.New("invalid option parameter")
	ErrInvalidOptionType = errors.New("invalid option type")
)
