package dailylimit

import (
	"github.com/iov-one/custody/errors"
)

// dailylimit reserves error codes 1030 ~ 1039.
var (
	// ErrDailyLimit is returned when an authorization would push the
	// window spending over the limit.
	ErrDailyLimit = errors.Register(1030, "daily limit exceeded")
)
