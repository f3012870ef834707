package cli

// ExitCodeLoadFailed is the process status after rendering a failed load.
const ExitCodeLoadFailed = 2

// ExitError asks main to exit with Code. The view has already reported Reason
// to the user, so main does not print it again.
type ExitError struct {
	Code   int
	Reason string
}

func (e *ExitError) Error() string {
	return e.Reason
}
