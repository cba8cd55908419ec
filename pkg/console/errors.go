package console

import "errors"

var (
	ErrStart    = errors.New("console: failed to start server")
	ErrShutdown = errors.New("console: failed to shutdown server gracefully")
)
