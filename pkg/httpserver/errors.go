package httpserver

import "errors"

var (
	ErrStart         = errors.New("httpserver.start_failed")
	ErrAlreadyActive = errors.New("httpserver.already_running")
	ErrShutdown      = errors.New("httpserver.shutdown_failed")
)
