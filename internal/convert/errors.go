package convert

// ErrorKind classifies conversion failures for callers and for the
// HTTP status mapping.
type ErrorKind string

const (
	// KindInvalidInput marks empty or malformed base64 input.
	KindInvalidInput ErrorKind = "invalid_input"
	// KindTimeout marks a conversion killed on deadline or cancellation.
	KindTimeout ErrorKind = "timeout"
	// KindToolFailure marks a gs run that exited non-zero.
	KindToolFailure ErrorKind = "tool_failure"
	// KindOutputMissing marks a zero exit with no output file on disk.
	KindOutputMissing ErrorKind = "output_missing"
	// KindUnexpected marks anything else; detail is logged, not returned.
	KindUnexpected ErrorKind = "unexpected"
)

// GenericFailureMessage is returned for unexpected failures. It is
// deliberately vague: internal paths and stack detail stay in the logs.
const GenericFailureMessage = "conversion failed unexpectedly, please retry or contact support"

// Error is a classified conversion failure.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}
