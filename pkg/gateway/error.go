package gateway

import (
	"errors"

	"github.com/xh3b4sd/tracer"
)

var invalidConfigError = &tracer.Error{
	Kind: "invalidConfigError",
}

func IsInvalidConfig(err error) bool {
	return errors.Is(err, invalidConfigError)
}

var notFoundError = &tracer.Error{
	Kind: "notFoundError",
	Desc: "This error indicates that no published post matches the requested slug or id.",
}

func IsNotFound(err error) bool {
	return errors.Is(err, notFoundError)
}
