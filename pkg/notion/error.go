package notion

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
	Desc: "This error indicates that the requested object does not exist or is not shared with the integration.",
}

func IsNotFound(err error) bool {
	return errors.Is(err, notFoundError)
}

var requestFailedError = &tracer.Error{
	Kind: "requestFailedError",
	Desc: "This error indicates that the document API answered with an unexpected status code.",
}

func IsRequestFailed(err error) bool {
	return errors.Is(err, requestFailedError)
}
