package transcript

import "fmt"

// AlreadyWrittenError is returned when a session's transcript exists.
// Transcripts are written once and never replaced.
type AlreadyWrittenError struct {
	Path string
}

func (e *AlreadyWrittenError) Error() string {
	return fmt.Sprintf("transcript already written to %s", e.Path)
}
