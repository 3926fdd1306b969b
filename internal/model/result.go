package model

// Result status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result outcome of a logging request, returned to callers verbatim
type Result struct {
	Status       string `json:"status" yaml:"status"`
	Report       string `json:"report,omitempty" yaml:"report,omitempty"`
	ErrorMessage string `json:"error_message,omitempty" yaml:"error_message,omitempty"`
}

// Success builds a success result carrying a human readable report.
func Success(report string) Result {
	return Result{Status: StatusSuccess, Report: report}
}

// Failure builds an error result from err. The message is kept as is.
func Failure(err error) Result {
	return Result{Status: StatusError, ErrorMessage: err.Error()}
}

// OK reports whether the request succeeded.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// Message returns the report or the error message, whichever is set.
func (r Result) Message() string {
	if r.OK() {
		return r.Report
	}
	return r.ErrorMessage
}
