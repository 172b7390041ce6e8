package bitpress

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// CodecError is the error type every failure in this module reduces to. The
// sentinels below are the full taxonomy; call [CodecError.WithMessage] or
// [CodecError.Wrap] to attach detail while keeping errors.Is matching against
// the sentinel.
type CodecError interface {
	error
	WithMessage(message string) CodecError
	Wrap(err error) CodecError
}

type baseCodecError string

const rootError = baseCodecError("")

// ErrEmptyInput: the symbol stream has no symbols, so there is nothing to
// build a code tree from.
var ErrEmptyInput = rootError.WithMessage("Input stream contains no symbols")

// ErrUnknownSymbol: a symbol in the stream has no codeword in the table.
var ErrUnknownSymbol = rootError.WithMessage("Symbol has no codeword in the table")

// ErrDecodeDesync: no codeword in the table matches the remaining bits. The
// container is corrupted or was paired with the wrong table.
var ErrDecodeDesync = rootError.WithMessage("No codeword matches the remaining bits")

// ErrContainerFormat: a container file is unreadable or its layout doesn't
// match the expected variant schema.
var ErrContainerFormat = rootError.WithMessage("Malformed container")

var ErrNotFound = rootError.WithMessage("No such file or directory")
var ErrInvalidArgument = rootError.WithMessage("Invalid argument")
var ErrUnsupportedMediaKind = rootError.WithMessage("Unsupported media kind")

func (e baseCodecError) Error() string {
	return string(e)
}

func (e baseCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       message,
		originalError: e,
	}
}

func (e baseCodecError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customCodecError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a
// string describing the error.
func (e customCodecError) Error() string {
	return e.message
}

func (e customCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customCodecError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customCodecError) Unwrap() error {
	return e.originalError
}
