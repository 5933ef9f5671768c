package errors

import "fmt"

var (
	ErrAlreadyRecording = fmt.Errorf("a recording session is already active")
	ErrNotRecording     = fmt.Errorf("no recording session in progress")
	ErrFileNotFound     = fmt.Errorf("file not found")
	ErrCaptureBackend   = fmt.Errorf("capture backend failure")
	ErrWorkerPanic      = fmt.Errorf("worker panic")
)

// TranscodeError reports a failed ffmpeg invocation. Stderr holds an
// excerpt of the tool output, bounded so logs stay readable.
type TranscodeError struct {
	ExitCode int
	Stderr   string
}

func (e *TranscodeError) Error() string {
	return fmt.Sprintf("ffmpeg exited with code %d: %s", e.ExitCode, e.Stderr)
}
