package block

import (
	"errors"

	"github.com/xh3b4sd/tracer"
)

var invalidPayloadError = &tracer.Error{
	Kind: "invalidPayloadError",
	Desc: "This error indicates that the variant fields of a block could not be decoded for the block's declared type.",
}

func IsInvalidPayload(err error) bool {
	return errors.Is(err, invalidPayloadError)
}
