package async

import "errors"

var (
	ErrShutdownTimeout = errors.New("async: pending tasks did not finish before shutdown deadline")
	ErrTaskPanicked    = errors.New("async: task panicked")
	ErrClosed          = errors.New("async: dispatcher closed")
)
