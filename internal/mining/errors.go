package mining

import "fmt"

// UnsupportedFormatError is returned when the uploaded file's extension
// does not name a supported event log format. It is raised before any
// discovery call is made.
type UnsupportedFormatError struct {
	FileName  string
	Extension string
}

func (e UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported event log format '%s' for file '%s' (supported: .xes, .csv, optionally gzip-compressed)", e.Extension, e.FileName)
}

// MalformedLogError is returned when a log file with a supported
// extension cannot be parsed.
type MalformedLogError struct {
	FileName string
	Cause    error
}

func (e MalformedLogError) Error() string {
	return fmt.Sprintf("failed to parse event log '%s': %v", e.FileName, e.Cause)
}

func (e MalformedLogError) Unwrap() error {
	return e.Cause
}

// DiscoveryError is returned when the pm4py service cannot be reached or
// rejects a request.
type DiscoveryError struct {
	Operation string
	Cause     error
}

func (e DiscoveryError) Error() string {
	return fmt.Sprintf("process mining service failed during %s: %v", e.Operation, e.Cause)
}

func (e DiscoveryError) Unwrap() error {
	return e.Cause
}
