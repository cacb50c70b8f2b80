package queue

import (
	"errors"
	"strings"

	"github.com/xh3b4sd/tracer"
)

var invalidConfigError = &tracer.Error{
	Kind: "invalidConfigError",
}

func IsInvalidConfig(err error) bool {
	return errors.Is(err, invalidConfigError)
}

var dialError = &tracer.Error{
	Kind: "dialError",
}

// IsDialError reports whether err means redis went away. The controller
// keeps polling on those instead of shutting the daemon down.
func IsDialError(err error) bool {
	if err == nil {
		return false
	}

	s := tracer.Cause(err).Error()

	for _, m := range []string{"EOF", "dial tcp", "read tcp", "connection refused", "connection reset"} {
		if strings.Contains(s, m) {
			return true
		}
	}

	return errors.Is(err, dialError)
}
