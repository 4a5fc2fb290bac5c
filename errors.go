package lumossdk

import (
	"errors"
)

var (
	ErrMissingRepository = errors.New("missing account repository")
)
