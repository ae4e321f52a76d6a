package popup

import "errors"

var (
	ErrNoSurface   = errors.New("surface is required")
	ErrNoProcessor = errors.New("processor is required")
	ErrNoScheduler = errors.New("scheduler is required")
)

// ConfigError reports a controller constructed without its collaborators.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return "content assist configuration: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
