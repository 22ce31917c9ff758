package log

import (
	"github.com/cockroachdb/errors"
)

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// marshalStack is installed as zerolog.ErrorStackMarshaler so that errors
// created through pkg/errors (cockroachdb/errors underneath) emit their
// captured stack under StacktraceAttrKey.
func marshalStack(err error) interface{} {
	if st := extractStacktrace(err); st != "" {
		return st
	}
	return nil
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}
