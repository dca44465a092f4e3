package service

import (
	"errors"
	"fmt"
)

// ErrRemoteModeRequired is matched by every ConfigurationError.
var ErrRemoteModeRequired = errors.New("database mode required")

// ConfigurationError reports a mutation attempted while the fixture dataset is
// active. Op names the operation, e.g. "creating schools".
type ConfigurationError struct {
	Op string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("Database mode required for %s", e.Op)
}

func (e *ConfigurationError) Unwrap() error { return ErrRemoteModeRequired }

// RemoteError wraps a failure of the remote store. Its message is the
// remote's message, unchanged.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string { return e.Err.Error() }

func (e *RemoteError) Unwrap() error { return e.Err }

